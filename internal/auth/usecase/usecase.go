package usecase

import (
	"context"

	authdomain "notespace-backend/internal/auth/domain"
	authdto "notespace-backend/internal/auth/dto"
)

// AuthUsecase covers registration, token issuing and the self-scoped user
// resource.
type AuthUsecase interface {
	// Register creates a user from a public sign-up request
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, error)

	// Login exchanges credentials for an access/refresh token pair
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenPairResponse, error)

	// RefreshToken exchanges a refresh token for a new access token
	RefreshToken(ctx context.Context, refreshToken string) (*authdto.AccessTokenResponse, error)

	// ValidateToken resolves an access token to the user it identifies
	ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error)

	// VerifyToken checks signature and expiry of either token type
	VerifyToken(token string) error

	// GetUser returns userID's profile if it is the caller
	GetUser(ctx context.Context, callerID, userID string) (*authdomain.User, error)

	// UpdateUser applies profile changes to the caller
	UpdateUser(ctx context.Context, callerID, userID string, req *authdto.UpdateUserRequest) (*authdomain.User, error)

	// DeleteUser removes the caller together with their notes
	DeleteUser(ctx context.Context, callerID, userID string) error
}
