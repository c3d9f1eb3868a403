package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/daymate/internal/cli"
	"github.com/terraincognita07/daymate/internal/config"
	"github.com/terraincognita07/daymate/internal/db"
	"github.com/terraincognita07/daymate/internal/logger"
	"gorm.io/gorm"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "daymate",
		Short:         "Daymate - todos, habits and routines API",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file (environment is used when absent)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))
	rootCmd.AddCommand(resetPasswordCmd(&configPath))
	return rootCmd
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, appLogger, _, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}
			database, err := openDatabase(cfg, appLogger)
			if err != nil {
				return err
			}
			defer db.Close(database)

			if err := db.Migrate(database); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			appLogger.Info("database is up to date", "driver", cfg.Database.Driver)
			return nil
		},
	}
}

func resetPasswordCmd(configPath *string) *cobra.Command {
	var prompt bool

	cmd := &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Replace a user's password",
		Long: `Replace a user's password.

Without --prompt a temporary password is generated and printed.

Examples:
  daymate reset-password morning-person
  daymate reset-password morning-person --prompt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, appLogger, _, err := loadRuntime(*configPath)
			if err != nil {
				return err
			}

			password := ""
			if prompt {
				password, err = cli.PromptNewPassword(os.Stdin, cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			database, err := openDatabase(cfg, appLogger)
			if err != nil {
				return err
			}
			defer db.Close(database)

			return cli.RunResetPasswordCommand(database, args[0], password, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&prompt, "prompt", false, "read the new password from the terminal instead of generating one")
	return cmd
}

func loadRuntime(configPath string) (config.Config, *log.Logger, io.Writer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, err
	}

	appLogger, writer, err := logger.New(logger.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, appLogger, writer, nil
}

func openDatabase(cfg config.Config, appLogger *log.Logger) (*gorm.DB, error) {
	database, err := db.Open(db.Options{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
		Logger: appLogger.WithPrefix("gorm"),
	})
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}
