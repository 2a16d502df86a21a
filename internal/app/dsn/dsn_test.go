package dsn

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "cities")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASS", "pw")
	t.Setenv("DB_SSLMODE", "")

	require.Equal(t, "host=db port=6543 user=app password=pw dbname=cities sslmode=disable", FromEnv())
}

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASS", "DB_SSLMODE"} {
		t.Setenv(key, "")
	}

	require.Equal(t, "host=localhost port=5432 user=postgres password=postgres dbname=worldcities sslmode=disable", FromEnv())
}
