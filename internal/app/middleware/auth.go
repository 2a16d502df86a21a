package middleware

import (
	"WorldCities/internal/app/config"
	"WorldCities/internal/app/ds"
	"WorldCities/internal/app/repository"
	"WorldCities/internal/app/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	jwtPrefix = "Bearer "

	userIDKey  = "user_id"
	loginKey   = "login"
	isAdminKey = "is_admin"
	tokenKey   = "token"
	claimsKey  = "claims"
)

// AuthMiddleware validates the bearer access token and puts the user into the context
func AuthMiddleware(repo *repository.Repository, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token required"})
			c.Abort()
			return
		}

		if redisClient := repo.GetRedisClient(); redisClient != nil {
			inBlacklist, err := redisClient.IsInBlacklist(c.Request.Context(), tokenString)
			if err != nil {
				logrus.Error("Failed to check token in blacklist: ", err)
			} else if inBlacklist {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalidated"})
				c.Abort()
				return
			}
		}

		claims, err := utils.ValidateToken(tokenString, cfg.JWTSecret, ds.AccessToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(loginKey, claims.Login)
		c.Set(isAdminKey, claims.IsAdmin)
		c.Set(tokenKey, tokenString)
		c.Set(claimsKey, claims)

		logrus.Debugf("User authenticated: %s (ID: %d, Admin: %t)", claims.Login, claims.UserID, claims.IsAdmin)

		c.Next()
	}
}

// AdminOnly must run after AuthMiddleware
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := GetUserID(c); !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		if !IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, jwtPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, jwtPrefix))
	return token, token != ""
}
