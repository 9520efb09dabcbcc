package domain

import (
	"fmt"
	"time"

	"notespace-backend/pkg/apperr"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email     string    `json:"email" gorm:"size:254"`
	FirstName string    `json:"first_name" gorm:"size:150"`
	LastName  string    `json:"last_name" gorm:"size:150"`
	Password  string    `json:"-" gorm:"not null"` // Never return password in JSON
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenType distinguishes the two halves of a token pair.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var (
	ErrUserNotFound       = fmt.Errorf("user %w", apperr.ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("no active account found with the given credentials: %w", apperr.ErrUnauthenticated)
	ErrInvalidToken       = fmt.Errorf("token is invalid or expired: %w", apperr.ErrUnauthenticated)
	ErrUsernameTaken      = apperr.NewValidationError("username", "a user with that username already exists")
)
