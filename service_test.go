package users_test

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signupInput() users.SignupInput {
	return users.SignupInput{
		Email:           "jane@example.com",
		Password:        "secret-password",
		EducationLevel:  "university",
		InstitutionName: "Example University",
		Major:           "Physics",
		GraduationMonth: "May",
		GraduationYear:  "2026",
		Name:            "Jane Doe",
		About:           "Physics student interested in optics.",
	}
}

func strptr(s string) *string { return &s }

func TestService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a regular account with a hashed password", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		user, err := service.Signup(ctx, signupInput())

		require.NoError(t, err)
		assert.Equal(t, users.RoleUser, user.Role)
		assert.False(t, user.Blocked)
		assert.Nil(t, user.LastLogin)
		assert.Nil(t, user.Resume)
		assert.True(t, user.ProfileCompleted)
		assert.NotEqual(t, "secret-password", user.PasswordHash)
		assert.NoError(t, users.ComparePasswordAndHash("secret-password", user.PasswordHash))
	})

	t.Run("rejects a duplicate email", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		_, err = service.Signup(ctx, signupInput())
		assert.ErrorIs(t, err, users.ErrEmailTaken)
	})

	t.Run("partial profiles are stored as incomplete", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		input := signupInput()
		input.About = ""

		user, err := service.Signup(ctx, input)

		require.NoError(t, err)
		assert.False(t, user.ProfileCompleted)
	})

	t.Run("uses the injected clock for created_at", func(t *testing.T) {
		store := users.NewMemoryStore()
		createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		service := users.NewService(store).WithClock(func() time.Time { return createdAt })

		user, err := service.Signup(ctx, signupInput())

		require.NoError(t, err)
		assert.Equal(t, createdAt, user.CreatedAt)
	})
}

func TestService_GetProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the safe view", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		profile, err := service.GetProfile(ctx, "jane@example.com")

		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", profile.Name)
	})

	t.Run("unknown account yields not found", func(t *testing.T) {
		service := users.NewService(users.NewMemoryStore())

		_, err := service.GetProfile(ctx, "nobody@example.com")

		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})
}

func TestService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("merges only the supplied fields", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		profile, err := service.UpdateProfile(ctx, "jane@example.com", users.ProfilePatch{
			Major: strptr("Astronomy"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Astronomy", profile.Major)
		assert.Equal(t, "Jane Doe", profile.Name)
		assert.Equal(t, "Example University", profile.InstitutionName)
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		_, err = service.UpdateProfile(ctx, "jane@example.com", users.ProfilePatch{})

		assert.ErrorIs(t, err, users.ErrEmptyUpdate)
	})

	t.Run("recomputes profile completion", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		input := signupInput()
		input.About = ""
		_, err := service.Signup(ctx, input)
		require.NoError(t, err)

		profile, err := service.UpdateProfile(ctx, "jane@example.com", users.ProfilePatch{
			About: strptr("Now with a complete profile."),
		})

		require.NoError(t, err)
		assert.True(t, profile.ProfileCompleted)
	})

	t.Run("unknown account yields not found", func(t *testing.T) {
		service := users.NewService(users.NewMemoryStore())

		_, err := service.UpdateProfile(ctx, "nobody@example.com", users.ProfilePatch{
			Name: strptr("Nobody"),
		})

		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})
}

func TestService_UploadResume(t *testing.T) {
	ctx := context.Background()
	pdf := []byte("%PDF-1.4 fake body")

	t.Run("stores the file as base64 text", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		require.NoError(t, service.UploadResume(ctx, "jane@example.com", pdf, "application/pdf"))

		user, err := store.Get(ctx, "jane@example.com")
		require.NoError(t, err)
		require.NotNil(t, user.Resume)
		assert.Equal(t, base64.StdEncoding.EncodeToString(pdf), *user.Resume)
	})

	t.Run("a later upload overwrites the stored resume", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		require.NoError(t, service.UploadResume(ctx, "jane@example.com", pdf, "application/pdf"))
		second := []byte("%PDF-1.4 revised")
		require.NoError(t, service.UploadResume(ctx, "jane@example.com", second, "application/pdf"))

		user, err := store.Get(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Equal(t, base64.StdEncoding.EncodeToString(second), *user.Resume)
	})

	t.Run("rejects anything that is not a pdf", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		err = service.UploadResume(ctx, "jane@example.com", pdf, "text/plain")
		assert.ErrorIs(t, err, users.ErrInvalidResumeType)

		user, err := store.Get(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.Nil(t, user.Resume)
	})
}

func TestService_ListUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("returns password-free views for every account", func(t *testing.T) {
		store := users.NewMemoryStore()
		service := users.NewService(store)

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		other := signupInput()
		other.Email = "alice@example.com"
		other.Name = "Alice"
		_, err = service.Signup(ctx, other)
		require.NoError(t, err)

		profiles, err := service.ListUsers(ctx)

		require.NoError(t, err)
		require.Len(t, profiles, 2)
		assert.Equal(t, "alice@example.com", profiles[0].Email)
		assert.Equal(t, "jane@example.com", profiles[1].Email)
	})
}

func TestService_Moderation(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*users.Service, *users.MemoryStore, *users.User) {
		t.Helper()

		store := users.NewMemoryStore()
		service := users.NewService(store)

		admin := completeUser()
		admin.Email = "admin@example.com"
		admin.Role = users.RoleAdmin
		require.NoError(t, store.Create(ctx, admin))

		_, err := service.Signup(ctx, signupInput())
		require.NoError(t, err)

		return service, store, admin
	}

	t.Run("block and unblock flip the flag", func(t *testing.T) {
		service, store, admin := setup(t)

		require.NoError(t, service.BlockUser(ctx, admin, "jane@example.com"))

		user, err := store.Get(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.True(t, user.Blocked)

		require.NoError(t, service.UnblockUser(ctx, admin, "jane@example.com"))

		user, err = store.Get(ctx, "jane@example.com")
		require.NoError(t, err)
		assert.False(t, user.Blocked)
	})

	t.Run("remove hard-deletes the record", func(t *testing.T) {
		service, store, admin := setup(t)

		require.NoError(t, service.RemoveUser(ctx, admin, "jane@example.com"))

		_, err := store.Get(ctx, "jane@example.com")
		assert.ErrorIs(t, err, users.ErrUserNotFound)
	})

	t.Run("admins can never target themselves", func(t *testing.T) {
		service, store, admin := setup(t)

		assert.Error(t, service.BlockUser(ctx, admin, admin.Email))
		assert.Error(t, service.UnblockUser(ctx, admin, admin.Email))
		assert.Error(t, service.RemoveUser(ctx, admin, admin.Email))

		// The admin record is intact after every attempt.
		got, err := store.Get(ctx, admin.Email)
		require.NoError(t, err)
		assert.False(t, got.Blocked)
	})

	t.Run("missing targets yield not found before the self check", func(t *testing.T) {
		service, _, admin := setup(t)

		assert.ErrorIs(t, service.BlockUser(ctx, admin, "ghost@example.com"), users.ErrUserNotFound)
		assert.ErrorIs(t, service.UnblockUser(ctx, admin, "ghost@example.com"), users.ErrUserNotFound)
		assert.ErrorIs(t, service.RemoveUser(ctx, admin, "ghost@example.com"), users.ErrUserNotFound)
	})
}
