package api

import (
	"notespace-backend/internal/auth/delivery"
	authUsecase "notespace-backend/internal/auth/usecase"
	noteDelivery "notespace-backend/internal/note/delivery"
	noteUsecase "notespace-backend/internal/note/usecase"
	"notespace-backend/pkg/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, noteUsecase noteUsecase.NoteUsecase, db *gorm.DB, cfg *config.Config, log *zap.Logger) {
	authHandler := delivery.NewAuthHandler(authUsecase, log, cfg.ExposeErrorDetails)
	noteHandler := noteDelivery.NewNoteHandler(noteUsecase, log, cfg.ExposeErrorDetails)
	requireAuth := delivery.AuthMiddleware(authUsecase, log)

	// Health check (no auth required), live database probe
	health := HealthCheck(db, log, cfg.ExposeErrorDetails)
	r.GET("/", health)
	r.GET("/health/", health)

	api := r.Group("/api")
	{
		// Token routes
		token := api.Group("/token")
		{
			token.POST("/", authHandler.Login)
			token.POST("/refresh/", authHandler.RefreshToken)
			token.POST("/verify/", authHandler.VerifyToken)
		}

		// User routes: registration is public, everything else is self-scoped
		users := api.Group("/users")
		{
			users.POST("/", authHandler.Register)
			users.GET("/", requireAuth, authHandler.ListUsers)
			users.GET("/me/", requireAuth, authHandler.Me)
			users.GET("/:id/", requireAuth, authHandler.GetUser)
			users.PUT("/:id/", requireAuth, authHandler.UpdateUser)
			users.PATCH("/:id/", requireAuth, authHandler.UpdateUser)
			users.DELETE("/:id/", requireAuth, authHandler.DeleteUser)
		}

		// Note routes (protected)
		notes := api.Group("/notes")
		notes.Use(requireAuth)
		{
			notes.GET("/", noteHandler.ListNotes)
			notes.POST("/", noteHandler.CreateNote)
			notes.GET("/:id/", noteHandler.GetNote)
			notes.PUT("/:id/", noteHandler.UpdateNote)
			notes.PATCH("/:id/", noteHandler.UpdateNote)
			notes.DELETE("/:id/", noteHandler.DeleteNote)
		}
	}
}
