package auth

import (
	"regexp"
	"time"

	"github.com/fintrack/finance-tracker/internal"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterDTO is the transport shape for registration requests.
type RegisterDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// LoginDTO is the transport shape for login requests.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public profile returned by register and login. It never
// carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse pairs the public profile with a freshly signed session token.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

func (d RegisterDTO) Validate() error {
	if !emailPattern.MatchString(d.Email) {
		return internal.NewValidationError("Invalid email", internal.ErrCodeInvalidEmail)
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeInvalidPassword)
	}
	return nil
}

func (d LoginDTO) Validate() error {
	if d.Email == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeInvalidEmail)
	}
	if d.Password == "" {
		return internal.NewValidationError("password is required", internal.ErrCodeInvalidPassword)
	}
	return nil
}
