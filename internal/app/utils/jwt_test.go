package utils

import (
	"WorldCities/internal/app/ds"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	user := ds.User{ID: 7, Login: "alice", IsAdmin: true}

	token, err := GenerateAccessToken(user, "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token, "secret", ds.AccessToken)
	require.NoError(t, err)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, "alice", claims.Login)
	require.True(t, claims.IsAdmin)
	require.Equal(t, issuer, claims.Issuer)
	require.InDelta(t, time.Hour.Seconds(), TimeLeft(claims).Seconds(), 5)
}

func TestValidateTokenRejects(t *testing.T) {
	user := ds.User{ID: 1, Login: "bob"}

	refresh, err := GenerateRefreshToken(user, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(refresh, "secret", ds.AccessToken)
	require.ErrorIs(t, err, ErrWrongTokenKind)

	access, err := GenerateAccessToken(user, "secret", time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(access, "other-secret", ds.AccessToken)
	require.Error(t, err)

	expired, err := GenerateAccessToken(user, "secret", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(expired, "secret", ds.AccessToken)
	require.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, ds.JWTClaims{UserID: 1, Kind: ds.AccessToken})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateToken(unsigned, "secret", ds.AccessToken)
	require.Error(t, err)
}

func TestTimeLeftExpired(t *testing.T) {
	claims := &ds.JWTClaims{StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Hour).Unix()}}
	require.Zero(t, TimeLeft(claims))
}
