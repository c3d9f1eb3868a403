package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/daymate/internal/db"
	"golang.org/x/crypto/bcrypt"
)

type UpdateProfileInput struct {
	Username string
	Password string
	Email    *string
	Nickname *string
}

type UserService struct {
	users     AuthUserRepository
	presenter presenter
}

func NewUserService(users AuthUserRepository, location *time.Location) *UserService {
	return &UserService{users: users, presenter: presenter{location: locationOrUTC(location)}}
}

func (service *UserService) Me(userID uint) (UserView, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if db.IsNotFound(err) {
			return UserView{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return UserView{}, fmt.Errorf("load user: %w", err)
	}
	return service.presenter.user(user), nil
}

// UpdateProfile requires the current username and password; only email and nickname change.
func (service *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (UserView, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		if db.IsNotFound(err) {
			return UserView{}, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return UserView{}, fmt.Errorf("load user: %w", err)
	}

	if strings.TrimSpace(input.Username) != user.Username {
		return UserView{}, ErrUsernameImmutable
	}
	// A password past the bcrypt limit can never match a stored hash.
	if len(input.Password) > MaxPasswordBytes ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		return UserView{}, ErrInvalidCredentials
	}

	validation := &ValidationError{}
	if input.Email != nil {
		email := NormalizeEmail(*input.Email)
		if !validEmail(email) {
			validation.Add("email is not valid", "body", "email")
		} else {
			user.Email = email
		}
	}
	if input.Nickname != nil {
		nickname := strings.TrimSpace(*input.Nickname)
		if nickname == "" {
			validation.Add("nickname must not be empty", "body", "nickname")
		} else {
			user.Nickname = nickname
		}
	}
	if err := validation.OrNil(); err != nil {
		return UserView{}, err
	}

	taken, err := service.users.ExistsByNormalizedEmail(user.Email, user.ID)
	if err != nil {
		return UserView{}, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return UserView{}, ErrEmailTaken
	}

	if err := service.users.Save(&user); err != nil {
		if db.IsUniqueViolation(err) {
			return UserView{}, ErrEmailTaken
		}
		return UserView{}, fmt.Errorf("save user: %w", err)
	}
	return service.presenter.user(user), nil
}

func locationOrUTC(location *time.Location) *time.Location {
	if location == nil {
		return time.UTC
	}
	return location
}
