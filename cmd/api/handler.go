package api

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	authUsecase "notespace-backend/internal/auth/usecase"
	noteUsecasePkg "notespace-backend/internal/note/usecase"
	"notespace-backend/pkg/config"
	"notespace-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	noteUsecase noteUsecasePkg.NoteUsecase
	db          *gorm.DB
	config      *config.Config
	log         *zap.Logger
}

func NewHandler(authUc authUsecase.AuthUsecase, noteUc noteUsecasePkg.NoteUsecase, db *gorm.DB, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		authUsecase: authUc,
		noteUsecase: noteUc,
		db:          db,
		config:      cfg,
		log:         log,
	}
}

// Engine builds the gin engine with middleware and routes.
func (h *Handler) Engine() *gin.Engine {
	if h.config.GinMode != "" {
		gin.SetMode(h.config.GinMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware(h.log))
	r.Use(corsMiddleware(h.config.CORSAllowedOrigins))

	SetupRoutes(r, h.authUsecase, h.noteUsecase, h.db, h.config, h.log)
	return r
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (h *Handler) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         ":" + h.config.Port,
		Handler:      otelhttp.NewHandler(h.Engine(), h.config.OTELServiceName),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		h.log.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	h.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		switch {
		case origin == "":
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		case len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, origin):
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
