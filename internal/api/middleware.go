package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mapsee-lab/placesync/internal/logger"
)

const corsMaxAgeHours = 12

// corsMiddleware creates a CORS middleware
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Content-Length", "Accept-Encoding",
			"Authorization", "accept", "origin",
			"Cache-Control", "X-Requested-With", "X-API-Key",
		},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           corsMaxAgeHours * time.Hour,
	})
}

// apiKeyAuth guards the webhook endpoints. The analysis pipeline is an
// external collaborator and presents a shared key in X-API-Key.
func apiKeyAuth(expected string, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("X-API-Key")
		if presented != expected {
			log.Error("Invalid API key on webhook",
				logger.String("path", c.Request.URL.Path),
				logger.String("expected", maskSecureString(expected)),
				logger.String("received", maskSecureString(presented)),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid api key",
			})
			return
		}
		c.Next()
	}
}

// maskSecureString keeps the first four characters of a secret and masks
// the rest, so log lines can confirm which key was presented without
// leaking it.
func maskSecureString(s string) string {
	const visible = 4
	if s == "" {
		return "(empty)"
	}
	if len(s) <= visible {
		return strings.Repeat("*", len(s))
	}
	return s[:visible] + strings.Repeat("*", len(s)-visible)
}
