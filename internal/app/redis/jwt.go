package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	blacklistPrefix    = "jwt:blacklist:"
	refreshTokenPrefix = "refresh:token:"
)

// AddToBlacklist invalidates an access token until it would have expired anyway
func (c *Client) AddToBlacklist(ctx context.Context, token string, expiresIn time.Duration) error {
	if expiresIn <= 0 {
		return nil
	}
	return c.Set(ctx, blacklistPrefix+token, "blacklisted", expiresIn)
}

func (c *Client) IsInBlacklist(ctx context.Context, token string) (bool, error) {
	exists, err := c.Exists(ctx, blacklistPrefix+token)
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}
	return exists, nil
}

func (c *Client) SaveRefreshToken(ctx context.Context, userID uint, refreshToken string, expiresIn time.Duration) error {
	return c.Set(ctx, refreshKey(userID), refreshToken, expiresIn)
}

// GetRefreshToken returns an empty string when the user has no stored token
func (c *Client) GetRefreshToken(ctx context.Context, userID uint) (string, error) {
	token, err := c.Get(ctx, refreshKey(userID))
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (c *Client) DeleteRefreshToken(ctx context.Context, userID uint) error {
	return c.Delete(ctx, refreshKey(userID))
}

func refreshKey(userID uint) string {
	return fmt.Sprintf("%s%d", refreshTokenPrefix, userID)
}
