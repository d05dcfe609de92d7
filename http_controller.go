package users

import (
	"fmt"
	"io"
	"net/url"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/goliatone/go-errors"
)

var (
	graduationYearPattern = regexp.MustCompile(`^(20[2-3][0-9])$`)

	monthRule          = validation.In(toAny(GraduationMonths)...)
	educationLevelRule = validation.In(toAny(EducationLevels)...)
)

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// whenSet validates a sparse-update field: a nil pointer is untouched and
// passes, but a present value must satisfy every rule, empty string
// included. Plain ozzo rules skip empty values, which would let an explicit
// "" blank a bounded field.
func whenSet(rules ...validation.Rule) validation.Rule {
	all := append([]validation.Rule{validation.Required}, rules...)
	return validation.By(func(value any) error {
		switch v := value.(type) {
		case *string:
			if v == nil {
				return nil
			}
			return validation.Validate(*v, all...)
		case string:
			return validation.Validate(v, all...)
		}
		return nil
	})
}

// SignupPayload is the registration request body.
type SignupPayload struct {
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	EducationLevel  string `form:"educationLevel" json:"educationLevel"`
	InstitutionName string `form:"institutionName" json:"institutionName"`
	Major           string `form:"major" json:"major"`
	GraduationMonth string `form:"graduationMonth" json:"graduationMonth"`
	GraduationYear  string `form:"graduationYear" json:"graduationYear"`
	Name            string `form:"name" json:"name"`
	About           string `form:"about" json:"about"`
}

// Validate will run validation rules
func (r SignupPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 0)),
		validation.Field(&r.EducationLevel, validation.Required, educationLevelRule),
		validation.Field(&r.InstitutionName, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.Major, validation.Required, validation.Length(2, 50)),
		validation.Field(&r.GraduationMonth, validation.Required, monthRule),
		validation.Field(&r.GraduationYear, validation.Required, validation.Match(graduationYearPattern)),
		validation.Field(&r.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&r.About, validation.Required, validation.Length(5, 500)),
	)
}

// SigninPayload is the sign-in request body. Username is accepted as an
// alias for email so OAuth2-style password forms keep working.
type SigninPayload struct {
	Email    string `form:"email" json:"email"`
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// GetIdentifier returns the account email, preferring the email field.
func (r SigninPayload) GetIdentifier() string {
	if r.Email != "" {
		return r.Email
	}
	return r.Username
}

// Validate will run validation rules
func (r SigninPayload) Validate() error {
	identifier := r.GetIdentifier()
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.By(func(any) error {
			return validation.Validate(identifier, validation.Required, is.Email)
		})),
		validation.Field(&r.Password, validation.Required),
	)
}

// UpdateProfilePayload is the sparse profile update body: absent fields stay
// untouched, present fields must pass their bounds.
type UpdateProfilePayload struct {
	EducationLevel  *string `form:"educationLevel" json:"educationLevel"`
	InstitutionName *string `form:"institutionName" json:"institutionName"`
	Major           *string `form:"major" json:"major"`
	GraduationMonth *string `form:"graduationMonth" json:"graduationMonth"`
	GraduationYear  *string `form:"graduationYear" json:"graduationYear"`
	Name            *string `form:"name" json:"name"`
	About           *string `form:"about" json:"about"`
}

// Validate will run validation rules
func (r UpdateProfilePayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.EducationLevel, whenSet(educationLevelRule)),
		validation.Field(&r.InstitutionName, whenSet(validation.Length(2, 100))),
		validation.Field(&r.Major, whenSet(validation.Length(2, 50))),
		validation.Field(&r.GraduationMonth, whenSet(monthRule)),
		validation.Field(&r.GraduationYear, whenSet(validation.Match(graduationYearPattern))),
		validation.Field(&r.Name, whenSet(validation.Length(2, 100))),
		validation.Field(&r.About, whenSet(validation.Length(5, 500))),
	)
}

func (r UpdateProfilePayload) patch() ProfilePatch {
	return ProfilePatch{
		EducationLevel:  r.EducationLevel,
		InstitutionName: r.InstitutionName,
		Major:           r.Major,
		GraduationMonth: r.GraduationMonth,
		GraduationYear:  r.GraduationYear,
		Name:            r.Name,
		About:           r.About,
	}
}

// TokenResponse is the sign-in response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Controller exposes the HTTP surface: public signup/signin, bearer-gated
// profile self-service, admin-gated moderation.
type Controller struct {
	Logger  Logger
	Auther  *Auther
	Service *Service
}

type ControllerOption func(*Controller) *Controller

func WithControllerLogger(logger Logger) ControllerOption {
	return func(c *Controller) *Controller {
		if logger != nil {
			c.Logger = logger
		}
		return c
	}
}

func NewController(auther *Auther, service *Service, opts ...ControllerOption) *Controller {
	c := &Controller{
		Logger:  defLogger{},
		Auther:  auther,
		Service: service,
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Auther in users controller...")
	}

	if c.Service == nil {
		panic("Missing Service in users controller...")
	}

	return c
}

// RegisterRoutes mounts every endpoint on the app.
func RegisterRoutes(app *fiber.App, controller *Controller) {
	gate := NewHTTPAuthenticator(controller.Auther)

	app.Post("/signup", controller.Signup).Name("signup.post")
	app.Post("/signin", controller.Signin).Name("signin.post")

	app.Post("/upload_resume", gate.Protected(), controller.UploadResume).Name("resume.post")
	app.Get("/me", gate.Protected(), controller.Me).Name("me.get")
	app.Put("/me", gate.Protected(), controller.UpdateMe).Name("me.put")

	admin := app.Group("/admin", gate.AdminOnly())
	admin.Get("/check", controller.AdminCheck).Name("admin-check.get")
	admin.Get("/users", controller.AdminUsers).Name("admin-users.get")
	admin.Post("/block/:email", controller.AdminBlock).Name("admin-block.post")
	admin.Post("/unblock/:email", controller.AdminUnblock).Name("admin-unblock.post")
	admin.Delete("/remove/:email", controller.AdminRemove).Name("admin-remove.delete")
}

func (a *Controller) Signup(c *fiber.Ctx) error {
	payload := new(SignupPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Signup parse payload", "error", err)
		return RespondError(c, malformedBody(err))
	}

	if err := errors.ValidateWithOzzo(payload.Validate, "Invalid signup payload"); err != nil {
		a.Logger.Error("Signup validate payload", "error", err)
		return RespondError(c, err.WithCode(fiber.StatusUnprocessableEntity))
	}

	input := SignupInput{
		Email:           payload.Email,
		Password:        payload.Password,
		EducationLevel:  payload.EducationLevel,
		InstitutionName: payload.InstitutionName,
		Major:           payload.Major,
		GraduationMonth: payload.GraduationMonth,
		GraduationYear:  payload.GraduationYear,
		Name:            payload.Name,
		About:           payload.About,
	}

	if _, err := a.Service.Signup(c.UserContext(), input); err != nil {
		return RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
	})
}

func (a *Controller) Signin(c *fiber.Ctx) error {
	payload := new(SigninPayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Signin parse payload", "error", err)
		return RespondError(c, malformedBody(err))
	}

	if err := errors.ValidateWithOzzo(payload.Validate, "Invalid signin payload"); err != nil {
		a.Logger.Error("Signin validate payload", "error", err)
		return RespondError(c, err.WithCode(fiber.StatusUnprocessableEntity))
	}

	token, err := a.Auther.Login(c.UserContext(), payload.GetIdentifier(), payload.Password)
	if err != nil {
		return RespondError(c, err)
	}

	return c.JSON(TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

func (a *Controller) UploadResume(c *fiber.Ctx) error {
	user := CurrentUser(c)

	header, err := c.FormFile("file")
	if err != nil {
		a.Logger.Error("Resume upload missing file", "error", err)
		return RespondError(c, malformedBody(err))
	}

	file, err := header.Open()
	if err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "Could not read uploaded file").
			WithCode(errors.CodeInternal))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return RespondError(c, errors.Wrap(err, errors.CategoryInternal, "Could not read uploaded file").
			WithCode(errors.CodeInternal))
	}

	contentType := header.Header.Get(fiber.HeaderContentType)
	if err := a.Service.UploadResume(c.UserContext(), user.Email, data, contentType); err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Resume uploaded successfully"})
}

func (a *Controller) Me(c *fiber.Ctx) error {
	user := CurrentUser(c)
	return c.JSON(user.Profile())
}

func (a *Controller) UpdateMe(c *fiber.Ctx) error {
	user := CurrentUser(c)
	payload := new(UpdateProfilePayload)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("Profile update parse payload", "error", err)
		return RespondError(c, malformedBody(err))
	}

	if err := errors.ValidateWithOzzo(payload.Validate, "Invalid profile payload"); err != nil {
		a.Logger.Error("Profile update validate payload", "error", err)
		return RespondError(c, err.WithCode(fiber.StatusUnprocessableEntity))
	}

	if _, err := a.Service.UpdateProfile(c.UserContext(), user.Email, payload.patch()); err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Profile updated successfully"})
}

func (a *Controller) AdminCheck(c *fiber.Ctx) error {
	user := CurrentUser(c)
	return c.JSON(fiber.Map{
		"message": "Admin access verified",
		"user":    user.Profile(),
	})
}

func (a *Controller) AdminUsers(c *fiber.Ctx) error {
	profiles, err := a.Service.ListUsers(c.UserContext())
	if err != nil {
		return RespondError(c, err)
	}
	return c.JSON(fiber.Map{"users": profiles})
}

func (a *Controller) AdminBlock(c *fiber.Ctx) error {
	email, err := targetEmail(c)
	if err != nil {
		return RespondError(c, err)
	}

	if err := a.Service.BlockUser(c.UserContext(), CurrentUser(c), email); err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s has been blocked", email)})
}

func (a *Controller) AdminUnblock(c *fiber.Ctx) error {
	email, err := targetEmail(c)
	if err != nil {
		return RespondError(c, err)
	}

	if err := a.Service.UnblockUser(c.UserContext(), CurrentUser(c), email); err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s has been unblocked", email)})
}

func (a *Controller) AdminRemove(c *fiber.Ctx) error {
	email, err := targetEmail(c)
	if err != nil {
		return RespondError(c, err)
	}

	if err := a.Service.RemoveUser(c.UserContext(), CurrentUser(c), email); err != nil {
		return RespondError(c, err)
	}

	return c.JSON(fiber.Map{"message": fmt.Sprintf("User %s has been removed", email)})
}

// targetEmail decodes the :email route parameter. Emails carry characters
// that arrive percent-encoded in paths. Params returns a zero-copy view of
// the request buffer and the value outlives the request as a store key, so
// it must be detached before it leaves the handler.
func targetEmail(c *fiber.Ctx) (string, error) {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil || email == "" {
		return "", ErrUserNotFound
	}
	return utils.CopyString(email), nil
}

func malformedBody(err error) error {
	return errors.Wrap(err, errors.CategoryValidation, "Malformed request body").
		WithCode(errors.CodeBadRequest)
}
