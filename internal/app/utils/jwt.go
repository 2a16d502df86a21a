package utils

import (
	"WorldCities/internal/app/ds"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const issuer = "worldcities-service"

var ErrWrongTokenKind = errors.New("wrong token kind")

func GenerateAccessToken(user ds.User, secret string, expiresIn time.Duration) (string, error) {
	return generateToken(user, ds.AccessToken, secret, expiresIn)
}

func GenerateRefreshToken(user ds.User, secret string, expiresIn time.Duration) (string, error) {
	return generateToken(user, ds.RefreshToken, secret, expiresIn)
}

func generateToken(user ds.User, kind, secret string, expiresIn time.Duration) (string, error) {
	now := time.Now()
	claims := ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(expiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    issuer,
			Subject:   user.Login,
		},
		UserID:  user.ID,
		Login:   user.Login,
		IsAdmin: user.IsAdmin,
		Kind:    kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses tokenString and checks signature, expiry and kind.
func ValidateToken(tokenString, secret, kind string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrInvalidKey
	}
	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}

// TimeLeft returns how long the token stays valid, zero if already expired.
func TimeLeft(claims *ds.JWTClaims) time.Duration {
	left := time.Until(time.Unix(claims.ExpiresAt, 0))
	if left < 0 {
		return 0
	}
	return left
}
