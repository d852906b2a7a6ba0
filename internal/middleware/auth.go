package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"autoparts/internal/apierror"
	"autoparts/internal/seed"
)

const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
)

// JWTClaims are the custom claims read from bearer tokens.
type JWTClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity resolves the acting user from an optional Bearer token.
// Requests without a token, or any request when secret is empty, act as the
// demo user. A token that is present but invalid is rejected.
func Identity(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if secret == "" || header == "" {
			c.Set(UserIDKey, seed.DemoUser)
			c.Next()
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Malformed Authorization header"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

// UserID returns the acting user resolved by Identity.
func UserID(c *gin.Context) string {
	if id := c.GetString(UserIDKey); id != "" {
		return id
	}
	return seed.DemoUser
}

// GetClaims returns the token claims, or nil for anonymous requests.
func GetClaims(c *gin.Context) *JWTClaims {
	claims, _ := c.Get(ClaimsKey)
	typed, _ := claims.(*JWTClaims)
	return typed
}
