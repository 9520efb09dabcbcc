package api

import (
	"net/http"

	"notespace-backend/pkg/database"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// HealthCheck answers 200 {"status":"ok","db":true} only after a successful
// round-trip query, and 500 with db=false otherwise.
func HealthCheck(db *gorm.DB, log *zap.Logger, exposeErrorDetails bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := database.Ping(c.Request.Context(), db); err != nil {
			log.Error("health check failed", zap.Error(err))

			msg := "database unreachable"
			if exposeErrorDetails {
				msg = err.Error()
			}
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "db": false, "error": msg})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": true})
	}
}
