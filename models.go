package users

import (
	"time"
)

// GraduationMonths are the accepted values for the graduationMonth field.
var GraduationMonths = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// EducationLevels are the accepted values for the educationLevel field.
var EducationLevels = []string{"school", "college", "university"}

// User is the credential record, one per email. Email is the unique key and
// never changes after creation.
type User struct {
	Email            string     `json:"email"`
	PasswordHash     string     `json:"-"`
	EducationLevel   string     `json:"educationLevel"`
	InstitutionName  string     `json:"institutionName"`
	Major            string     `json:"major"`
	GraduationMonth  string     `json:"graduationMonth"`
	GraduationYear   string     `json:"graduationYear"`
	Name             string     `json:"name"`
	About            string     `json:"about"`
	Role             Role       `json:"role"`
	Blocked          bool       `json:"is_blocked"`
	CreatedAt        time.Time  `json:"created_at"`
	LastLogin        *time.Time `json:"last_login"`
	ProfileCompleted bool       `json:"profile_completed"`
	// Resume holds the uploaded file as base64 text; nil until uploaded.
	Resume *string `json:"resume"`
}

// Profile is the safe external view of a User. It carries every field except
// the password hash and is what every read operation returns.
type Profile struct {
	Email            string     `json:"email"`
	EducationLevel   string     `json:"educationLevel"`
	InstitutionName  string     `json:"institutionName"`
	Major            string     `json:"major"`
	GraduationMonth  string     `json:"graduationMonth"`
	GraduationYear   string     `json:"graduationYear"`
	Name             string     `json:"name"`
	About            string     `json:"about"`
	Role             Role       `json:"role"`
	Blocked          bool       `json:"is_blocked"`
	CreatedAt        time.Time  `json:"created_at"`
	LastLogin        *time.Time `json:"last_login"`
	ProfileCompleted bool       `json:"profile_completed"`
	Resume           *string    `json:"resume"`
}

// Profile projects the record into its password-free view.
func (u *User) Profile() *Profile {
	if u == nil {
		return nil
	}
	return &Profile{
		Email:            u.Email,
		EducationLevel:   u.EducationLevel,
		InstitutionName:  u.InstitutionName,
		Major:            u.Major,
		GraduationMonth:  u.GraduationMonth,
		GraduationYear:   u.GraduationYear,
		Name:             u.Name,
		About:            u.About,
		Role:             u.Role,
		Blocked:          u.Blocked,
		CreatedAt:        u.CreatedAt,
		LastLogin:        u.LastLogin,
		ProfileCompleted: u.ProfileCompleted,
		Resume:           u.Resume,
	}
}

// HasCompleteProfile reports whether every required profile field is set.
func (u *User) HasCompleteProfile() bool {
	required := []string{
		u.EducationLevel,
		u.InstitutionName,
		u.Major,
		u.GraduationMonth,
		u.GraduationYear,
		u.Name,
		u.About,
	}
	for _, field := range required {
		if field == "" {
			return false
		}
	}
	return true
}

// RefreshProfileCompleted recomputes the derived completion flag. Call after
// any mutation that touches a profile field.
func (u *User) RefreshProfileCompleted() {
	u.ProfileCompleted = u.HasCompleteProfile()
}

// Clone returns a deep copy so store reads never share mutable state with
// callers.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.LastLogin != nil {
		t := *u.LastLogin
		cp.LastLogin = &t
	}
	if u.Resume != nil {
		r := *u.Resume
		cp.Resume = &r
	}
	return &cp
}
