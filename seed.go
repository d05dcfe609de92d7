package users

import (
	"context"
	"time"

	"github.com/goliatone/go-errors"
)

// SeedAdmin ensures the bootstrap admin account exists. It is the only
// record ever created with the admin role; an already-seeded store is left
// untouched.
func SeedAdmin(ctx context.Context, store Store, cfg Config) error {
	email := cfg.GetAdminEmail()

	if _, err := store.Get(ctx, email); err == nil {
		return nil
	} else if !errors.IsNotFound(err) {
		return err
	}

	hash, err := HashPassword(cfg.GetAdminPassword())
	if err != nil {
		return err
	}

	admin := &User{
		Email:           email,
		PasswordHash:    hash,
		EducationLevel:  "university",
		InstitutionName: "Admin University",
		Major:           "Computer Science",
		GraduationMonth: "May",
		GraduationYear:  "2020",
		Name:            "Admin User",
		About:           "I am the admin of this platform.",
		Role:            RoleAdmin,
		Blocked:         false,
		CreatedAt:       time.Now().UTC(),
	}
	admin.RefreshProfileCompleted()

	return store.Create(ctx, admin)
}
