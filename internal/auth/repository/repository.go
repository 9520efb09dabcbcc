package repository

import (
	"context"

	authdomain "notespace-backend/internal/auth/domain"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create inserts a new user, assigning its ID and timestamps
	Create(ctx context.Context, user *authdomain.User) error

	// FindByUsername returns nil, nil when no user has that username
	FindByUsername(ctx context.Context, username string) (*authdomain.User, error)

	// FindByID returns nil, nil when no user has that ID
	FindByID(ctx context.Context, id string) (*authdomain.User, error)

	// Update persists profile fields and the password hash of an existing user
	Update(ctx context.Context, user *authdomain.User) error

	// Delete removes the user and every note they own
	Delete(ctx context.Context, id string) error
}
