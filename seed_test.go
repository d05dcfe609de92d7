package users_test

import (
	"context"
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := &users.EnvConfig{
		AdminEmail:    "admin@test.com",
		AdminPassword: "11110",
	}

	t.Run("creates the bootstrap admin with a complete profile", func(t *testing.T) {
		store := users.NewMemoryStore()

		require.NoError(t, users.SeedAdmin(ctx, store, cfg))

		admin, err := store.Get(ctx, "admin@test.com")
		require.NoError(t, err)
		assert.Equal(t, users.RoleAdmin, admin.Role)
		assert.True(t, admin.ProfileCompleted)
		assert.NoError(t, users.ComparePasswordAndHash("11110", admin.PasswordHash))
	})

	t.Run("is idempotent", func(t *testing.T) {
		store := users.NewMemoryStore()

		require.NoError(t, users.SeedAdmin(ctx, store, cfg))
		require.NoError(t, users.SeedAdmin(ctx, store, cfg))

		assert.Equal(t, 1, store.Len())
	})
}
