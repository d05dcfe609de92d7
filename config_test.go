package users_test

import (
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
)

func TestConfigFromEnv(t *testing.T) {
	t.Run("falls back to development defaults", func(t *testing.T) {
		cfg := users.ConfigFromEnv()

		assert.Equal(t, users.DefaultSigningKey, cfg.GetSigningKey())
		assert.Equal(t, users.DefaultIssuer, cfg.GetIssuer())
		assert.Equal(t, users.DefaultTokenTTLMinutes, cfg.GetTokenTTL())
		assert.Equal(t, users.DefaultListenAddress, cfg.GetListenAddress())
		assert.Equal(t, users.DefaultAdminEmail, cfg.GetAdminEmail())
		assert.Equal(t, users.DefaultAdminPassword, cfg.GetAdminPassword())
		assert.Equal(t, "*", cfg.GetAllowedOrigins())
	})

	t.Run("reads overrides from the environment", func(t *testing.T) {
		t.Setenv("USERS_SIGNING_KEY", "prod-key")
		t.Setenv("USERS_TOKEN_TTL_MINUTES", "60")
		t.Setenv("USERS_LISTEN_ADDRESS", ":9000")

		cfg := users.ConfigFromEnv()

		assert.Equal(t, "prod-key", cfg.GetSigningKey())
		assert.Equal(t, 60, cfg.GetTokenTTL())
		assert.Equal(t, ":9000", cfg.GetListenAddress())
	})

	t.Run("ignores unparseable TTL values", func(t *testing.T) {
		t.Setenv("USERS_TOKEN_TTL_MINUTES", "soon")

		cfg := users.ConfigFromEnv()

		assert.Equal(t, users.DefaultTokenTTLMinutes, cfg.GetTokenTTL())
	})
}
