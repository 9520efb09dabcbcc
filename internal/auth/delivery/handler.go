package delivery

import (
	"encoding/json"
	"net/http"

	authdomain "notespace-backend/internal/auth/domain"
	authdto "notespace-backend/internal/auth/dto"
	"notespace-backend/internal/auth/usecase"
	"notespace-backend/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

// AuthHandler serves the user resource and the token endpoints.
type AuthHandler struct {
	authUsecase        usecase.AuthUsecase
	log                *zap.Logger
	exposeErrorDetails bool
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, log *zap.Logger, exposeErrorDetails bool) *AuthHandler {
	return &AuthHandler{
		authUsecase:        authUsecase,
		log:                log,
		exposeErrorDetails: exposeErrorDetails,
	}
}

// Register is the public sign-up endpoint.
// POST /api/users/
func (h *AuthHandler) Register(c *gin.Context) {
	raw := h.logRequest(c, "user create request")

	var req authdto.RegisterRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		apperr.Respond(c, apperr.FromBinding(err), "", false)
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Error creating user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Me returns the caller's profile.
// GET /api/users/me/
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ListUsers lists the users visible to the caller, which is only the caller.
// GET /api/users/
func (h *AuthHandler) ListUsers(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Authentication credentials were not provided."})
		return
	}
	c.JSON(http.StatusOK, []*authdomain.User{user})
}

// GetUser returns a user by ID when it is the caller.
// GET /api/users/:id/
func (h *AuthHandler) GetUser(c *gin.Context) {
	user, err := h.authUsecase.GetUser(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Error retrieving user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser changes the caller's profile. PUT requires username.
// PUT|PATCH /api/users/:id/
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	raw := h.logRequest(c, "user update request")

	var req authdto.UpdateUserRequest
	if err := binding.JSON.BindBody(raw, &req); err != nil {
		apperr.Respond(c, apperr.FromBinding(err), "", false)
		return
	}
	if c.Request.Method == http.MethodPut && req.Username == nil {
		apperr.Respond(c, apperr.NewValidationError("username", "this field is required"), "", false)
		return
	}

	user, err := h.authUsecase.UpdateUser(c.Request.Context(), c.GetString("userID"), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err, "Error updating user")
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes the caller and all of their notes.
// DELETE /api/users/:id/
func (h *AuthHandler) DeleteUser(c *gin.Context) {
	if err := h.authUsecase.DeleteUser(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		h.respondError(c, err, "Error deleting user")
		return
	}
	c.Status(http.StatusNoContent)
}

// Login issues an access/refresh token pair.
// POST /api/token/
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.FromBinding(err), "", false)
		return
	}

	tokens, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		if usecase.IsAuthError(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
			return
		}
		h.respondError(c, err, "Error issuing token")
		return
	}
	c.JSON(http.StatusOK, tokens)
}

// RefreshToken exchanges a refresh token for a new access token.
// POST /api/token/refresh/
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.FromBinding(err), "", false)
		return
	}

	resp, err := h.authUsecase.RefreshToken(c.Request.Context(), req.Refresh)
	if err != nil {
		if usecase.IsAuthError(err) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
			return
		}
		h.respondError(c, err, "Error refreshing token")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyToken reports whether a token of either type is still valid.
// POST /api/token/verify/
func (h *AuthHandler) VerifyToken(c *gin.Context) {
	var req authdto.VerifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.Respond(c, apperr.FromBinding(err), "", false)
		return
	}

	if err := h.authUsecase.VerifyToken(req.Token); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}
	c.JSON(http.StatusOK, gin.H{})
}

func (h *AuthHandler) respondError(c *gin.Context, err error, prefix string) {
	if apperr.KindOf(err) == apperr.KindInternal {
		h.log.Error(prefix,
			zap.String("user", c.GetString("userID")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	apperr.Respond(c, err, prefix, h.exposeErrorDetails)
}

// logRequest reads the raw body and logs it before the handler acts on it.
// The password field is masked; everything else is logged as sent.
func (h *AuthHandler) logRequest(c *gin.Context, msg string) []byte {
	raw, err := c.GetRawData()
	if err != nil {
		h.log.Warn("read request body", zap.Error(err))
	}
	h.log.Info(msg,
		zap.String("user", c.GetString("userID")),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.ByteString("payload", maskPassword(raw)))
	return raw
}

func maskPassword(raw []byte) []byte {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return raw
	}
	if _, ok := payload["password"]; !ok {
		return raw
	}
	payload["password"] = "********"
	masked, err := json.Marshal(payload)
	if err != nil {
		return raw
	}
	return masked
}

func currentUser(c *gin.Context) (*authdomain.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	user, ok := v.(*authdomain.User)
	return user, ok && user != nil
}
