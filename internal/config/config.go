package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const MinSecretKeyLength = 32

var placeholderSecrets = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type HTTPConfig struct {
	Address      string `yaml:"address" env:"HTTP_ADDR" env-default:":8080"`
	CookieSecure bool   `yaml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DB_DRIVER" env-default:"sqlite"`
	Path   string `yaml:"path" env:"DB_PATH" env-default:"data/daymate.db"`
	DSN    string `yaml:"dsn" env:"DB_DSN"`
}

type AuthConfig struct {
	SecretKey       string        `yaml:"secret_key" env:"JWT_SECRET_KEY"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl" env:"ACCESS_TOKEN_TTL" env-default:"1h"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" env-default:"720h"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
	TimeZone string         `yaml:"time_zone" env:"TZ" env-default:"UTC"`
}

// Load reads configPath when it exists and falls back to the environment otherwise.
// A .env file in the working directory is applied first without overriding real variables.
func Load(configPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if strings.TrimSpace(configPath) == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
		return cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("read config %q: %w", configPath, err)
		}
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
	}
	return cfg, nil
}

func (cfg Config) Validate() error {
	if _, err := cfg.Location(); err != nil {
		return err
	}
	if _, err := cfg.Secret(); err != nil {
		return err
	}
	if cfg.Auth.AccessTokenTTL <= 0 || cfg.Auth.RefreshTokenTTL <= 0 {
		return errors.New("token TTLs must be positive")
	}
	switch cfg.Database.Driver {
	case "sqlite":
		if strings.TrimSpace(cfg.Database.Path) == "" {
			return errors.New("DB_PATH is required for sqlite")
		}
	case "postgres":
		if strings.TrimSpace(cfg.Database.DSN) == "" {
			return errors.New("DB_DSN is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", cfg.Database.Driver)
	}
	return nil
}

func (cfg Config) Location() (*time.Location, error) {
	location, err := time.LoadLocation(strings.TrimSpace(cfg.TimeZone))
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", cfg.TimeZone, err)
	}
	return location, nil
}

func (cfg Config) Secret() ([]byte, error) {
	secret := strings.TrimSpace(cfg.Auth.SecretKey)
	if secret == "" {
		return nil, errors.New("JWT_SECRET_KEY is required")
	}
	if _, ok := placeholderSecrets[strings.ToLower(secret)]; ok {
		return nil, errors.New("JWT_SECRET_KEY uses an insecure placeholder value")
	}
	if len(secret) < MinSecretKeyLength {
		return nil, fmt.Errorf("JWT_SECRET_KEY must be at least %d characters", MinSecretKeyLength)
	}
	return []byte(secret), nil
}
