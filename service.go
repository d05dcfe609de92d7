package users

import (
	"context"
	"encoding/base64"
	"time"

	"github.com/goliatone/go-errors"
)

// ResumeContentType is the only media type accepted for resume uploads.
const ResumeContentType = "application/pdf"

// SignupInput is the validated registration payload the service consumes.
type SignupInput struct {
	Email           string
	Password        string
	EducationLevel  string
	InstitutionName string
	Major           string
	GraduationMonth string
	GraduationYear  string
	Name            string
	About           string
}

// ProfilePatch is a sparse profile update: nil fields are left untouched,
// non-nil fields replace the stored value.
type ProfilePatch struct {
	EducationLevel  *string
	InstitutionName *string
	Major           *string
	GraduationMonth *string
	GraduationYear  *string
	Name            *string
	About           *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p ProfilePatch) IsEmpty() bool {
	return p.EducationLevel == nil &&
		p.InstitutionName == nil &&
		p.Major == nil &&
		p.GraduationMonth == nil &&
		p.GraduationYear == nil &&
		p.Name == nil &&
		p.About == nil
}

func (p ProfilePatch) apply(u *User) {
	if p.EducationLevel != nil {
		u.EducationLevel = *p.EducationLevel
	}
	if p.InstitutionName != nil {
		u.InstitutionName = *p.InstitutionName
	}
	if p.Major != nil {
		u.Major = *p.Major
	}
	if p.GraduationMonth != nil {
		u.GraduationMonth = *p.GraduationMonth
	}
	if p.GraduationYear != nil {
		u.GraduationYear = *p.GraduationYear
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.About != nil {
		u.About = *p.About
	}
}

// Service implements profile self-service and admin moderation over a Store.
type Service struct {
	store  Store
	logger Logger
	now    func() time.Time
}

// NewService returns a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{
		store:  store,
		logger: defLogger{},
		now:    time.Now,
	}
}

func (s *Service) WithLogger(logger Logger) *Service {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock injects a custom clock (useful for tests).
func (s *Service) WithClock(clock func() time.Time) *Service {
	if clock != nil {
		s.now = clock
	}
	return s
}

// Signup registers a new regular account. The email must be unused; the
// password is hashed before the record is stored; no token is issued, the
// caller signs in separately.
func (s *Service) Signup(ctx context.Context, input SignupInput) (*User, error) {
	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:           input.Email,
		PasswordHash:    hash,
		EducationLevel:  input.EducationLevel,
		InstitutionName: input.InstitutionName,
		Major:           input.Major,
		GraduationMonth: input.GraduationMonth,
		GraduationYear:  input.GraduationYear,
		Name:            input.Name,
		About:           input.About,
		Role:            RoleUser,
		Blocked:         false,
		CreatedAt:       s.now().UTC(),
	}
	user.RefreshProfileCompleted()

	if err := s.store.Create(ctx, user); err != nil {
		s.logger.Warn("Signup rejected", "email", input.Email, "error", err)
		return nil, err
	}

	s.logger.Info("User registered", "email", input.Email, "profile_completed", user.ProfileCompleted)
	return user, nil
}

// GetProfile returns the safe view of the given account.
func (s *Service) GetProfile(ctx context.Context, email string) (*Profile, error) {
	user, err := s.store.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// UpdateProfile merges the supplied fields into the stored record. An empty
// patch is rejected; fields not present are left untouched; profile
// completion is recomputed as part of the same atomic update.
func (s *Service) UpdateProfile(ctx context.Context, email string, patch ProfilePatch) (*Profile, error) {
	if patch.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	user, err := s.store.Update(ctx, email, func(u *User) error {
		patch.apply(u)
		u.RefreshProfileCompleted()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Profile updated", "email", email, "profile_completed", user.ProfileCompleted)
	return user.Profile(), nil
}

// UploadResume stores the file bytes on the record as base64 text,
// overwriting any prior resume. The content type must be exactly
// application/pdf.
func (s *Service) UploadResume(ctx context.Context, email string, data []byte, contentType string) error {
	if contentType != ResumeContentType {
		s.logger.Warn("Resume upload rejected", "email", email, "content_type", contentType)
		return ErrInvalidResumeType
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	if _, err := s.store.Update(ctx, email, func(u *User) error {
		u.Resume = &encoded
		return nil
	}); err != nil {
		return err
	}

	s.logger.Info("Resume uploaded", "email", email, "bytes", len(data))
	return nil
}

// ListUsers returns the safe view of every record.
func (s *Service) ListUsers(ctx context.Context) ([]*Profile, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	profiles := make([]*Profile, 0, len(records))
	for _, user := range records {
		profiles = append(profiles, user.Profile())
	}
	return profiles, nil
}

// BlockUser marks the target as blocked. The acting admin can never target
// their own account.
func (s *Service) BlockUser(ctx context.Context, admin *User, email string) error {
	return s.setBlocked(ctx, admin, email, "block", true)
}

// UnblockUser clears the blocked flag, with the same self-protection rules.
func (s *Service) UnblockUser(ctx context.Context, admin *User, email string) error {
	return s.setBlocked(ctx, admin, email, "unblock", false)
}

func (s *Service) setBlocked(ctx context.Context, admin *User, email, action string, blocked bool) error {
	if err := s.checkTarget(ctx, admin, email, action); err != nil {
		return err
	}

	if _, err := s.store.Update(ctx, email, func(u *User) error {
		u.Blocked = blocked
		return nil
	}); err != nil {
		return err
	}

	s.logger.Info("Moderation action applied", "action", action, "admin", admin.Email, "target", email)
	return nil
}

// RemoveUser hard-deletes the target record. There is no tombstone; issued
// tokens for the subject die at the authorization gate.
func (s *Service) RemoveUser(ctx context.Context, admin *User, email string) error {
	if err := s.checkTarget(ctx, admin, email, "remove"); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, email); err != nil {
		return err
	}

	s.logger.Info("Moderation action applied", "action", "remove", "admin", admin.Email, "target", email)
	return nil
}

// checkTarget enforces the shared moderation preconditions: the target must
// exist and must not be the acting admin. Existence is checked first so a
// missing record reports NotFound, matching the original service.
func (s *Service) checkTarget(ctx context.Context, admin *User, email, action string) error {
	if _, err := s.store.Get(ctx, email); err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("Moderation target not found", "action", action, "admin", admin.Email, "target", email)
		}
		return err
	}

	if admin != nil && admin.Email == email {
		s.logger.Warn("Moderation self-target rejected", "action", action, "admin", admin.Email)
		return ErrCannotActOnSelf(action)
	}

	return nil
}
