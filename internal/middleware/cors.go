package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows any origin. The API carries no cookies, only bearer tokens.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type", RequestIDHeader},
		ExposeHeaders:   []string{RequestIDHeader, "Content-Disposition"},
		MaxAge:          12 * time.Hour,
	})
}
