package middleware

import (
	"WorldCities/internal/app/ds"

	"github.com/gin-gonic/gin"
)

func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := userID.(uint)
	return id, ok
}

func GetLogin(c *gin.Context) (string, bool) {
	login, exists := c.Get(loginKey)
	if !exists {
		return "", false
	}
	s, ok := login.(string)
	return s, ok
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(isAdminKey)
}

// GetToken returns the raw access token of an authenticated request
func GetToken(c *gin.Context) (string, bool) {
	token := c.GetString(tokenKey)
	return token, token != ""
}

// GetClaims returns the validated claims of an authenticated request
func GetClaims(c *gin.Context) (*ds.JWTClaims, bool) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	typed, ok := claims.(*ds.JWTClaims)
	return typed, ok
}
