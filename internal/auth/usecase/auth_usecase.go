package usecase

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	authdomain "notespace-backend/internal/auth/domain"
	authdto "notespace-backend/internal/auth/dto"
	"notespace-backend/internal/auth/repository"
	"notespace-backend/pkg/apperr"
	"notespace-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// Claims is the payload of both access and refresh tokens.
type Claims struct {
	UserID    string               `json:"user_id"`
	TokenType authdomain.TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo repository.UserRepository
	config   *config.Config
	log      *zap.Logger
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(userRepo repository.UserRepository, cfg *config.Config, log *zap.Logger) AuthUsecase {
	return &authUsecase{
		userRepo: userRepo,
		config:   cfg,
		log:      log,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.User, error) {
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}

	existing, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, authdomain.ErrUsernameTaken
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  hashedPassword,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	u.log.Info("user registered", zap.String("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenPairResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, authdomain.ErrInvalidCredentials
	}

	access, err := u.signToken(user.ID, authdomain.TokenTypeAccess, u.config.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}
	refresh, err := u.signToken(user.ID, authdomain.TokenTypeRefresh, u.config.JWTRefreshExpiry)
	if err != nil {
		return nil, err
	}

	return &authdto.TokenPairResponse{Access: access, Refresh: refresh}, nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, refreshToken string) (*authdto.AccessTokenResponse, error) {
	claims, err := u.parseToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != authdomain.TokenTypeRefresh {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrInvalidToken
	}

	access, err := u.signToken(user.ID, authdomain.TokenTypeAccess, u.config.JWTAccessExpiry)
	if err != nil {
		return nil, err
	}
	return &authdto.AccessTokenResponse{Access: access}, nil
}

func (u *authUsecase) ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error) {
	claims, err := u.parseToken(accessToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != authdomain.TokenTypeAccess {
		return nil, authdomain.ErrInvalidToken
	}

	user, err := u.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	// A deleted user's outstanding tokens stop working immediately.
	if user == nil {
		return nil, authdomain.ErrInvalidToken
	}
	return user, nil
}

func (u *authUsecase) VerifyToken(token string) error {
	_, err := u.parseToken(token)
	return err
}

func (u *authUsecase) GetUser(ctx context.Context, callerID, userID string) (*authdomain.User, error) {
	if callerID != userID {
		return nil, authdomain.ErrUserNotFound
	}
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, authdomain.ErrUserNotFound
	}
	return user, nil
}

func (u *authUsecase) UpdateUser(ctx context.Context, callerID, userID string, req *authdto.UpdateUserRequest) (*authdomain.User, error) {
	user, err := u.GetUser(ctx, callerID, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != user.Username {
		if err := validateUsername(*req.Username); err != nil {
			return nil, err
		}
		existing, err := u.userRepo.FindByUsername(ctx, *req.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, authdomain.ErrUsernameTaken
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Password != nil {
		if *req.Password == "" {
			return nil, apperr.NewValidationError("password", "this field may not be blank")
		}
		hashed, err := repository.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashed
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) DeleteUser(ctx context.Context, callerID, userID string) error {
	if callerID != userID {
		return authdomain.ErrUserNotFound
	}
	if err := u.userRepo.Delete(ctx, userID); err != nil {
		return err
	}
	u.log.Info("user deleted", zap.String("user_id", userID))
	return nil
}

func (u *authUsecase) signToken(userID string, tokenType authdomain.TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(u.config.JWTSecret))
}

func (u *authUsecase) parseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(u.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, authdomain.ErrInvalidToken
	}
	if claims.UserID == "" {
		return nil, authdomain.ErrInvalidToken
	}
	return claims, nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperr.NewValidationError("username", "this field may not be blank")
	}
	if !usernamePattern.MatchString(username) {
		return apperr.NewValidationError("username", "enter a valid username; only letters, numbers and @/./+/-/_ are allowed")
	}
	return nil
}

// IsAuthError reports whether err should be answered with 401.
func IsAuthError(err error) bool {
	return errors.Is(err, apperr.ErrUnauthenticated)
}
