package auth

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/blog-backend/internal/domain"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 8
	maxPasswordLength = 72 // bcrypt input limit
)

// RegisterInput holds the parameters for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	username := strings.TrimSpace(i.Username)
	if len(username) < minUsernameLength {
		errs = append(errs, domain.FieldError{Field: "username", Message: "min 3 characters"})
	}
	if len(username) > maxUsernameLength {
		errs = append(errs, domain.FieldError{Field: "username", Message: "max 50 characters"})
	}

	if _, err := mail.ParseAddress(i.Email); err != nil {
		errs = append(errs, domain.FieldError{Field: "email", Message: "invalid email address"})
	}

	if len(i.Password) < minPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "min 8 characters"})
	}
	if len(i.Password) > maxPasswordLength {
		errs = append(errs, domain.FieldError{Field: "password", Message: "max 72 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds the parameters for rotating a refresh token.
type RefreshInput struct {
	RefreshToken string
}

// Validate checks that a token was supplied.
func (i RefreshInput) Validate() error {
	if strings.TrimSpace(i.RefreshToken) == "" {
		return domain.NewValidationError("refreshToken", "required")
	}
	return nil
}

// LoginInput holds the parameters for logging in.
type LoginInput struct {
	Email    string
	Password string
}

// Validate checks all fields and collects all errors.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.Email) == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "required"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
