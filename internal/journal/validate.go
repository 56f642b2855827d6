package journal

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	validate = newValidator()

	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "strongpassword", func(fl validator.FieldLevel) bool {
		return strongPassword(fl.Field().String())
	})
	mustRegister(v, "category", func(fl validator.FieldLevel) bool {
		return IsCategory(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

func strongPassword(s string) bool {
	var lower, upper, digit bool
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return lower && upper && digit
}

// Validate checks v against its struct tags and returns a *ValidationError
// listing every failing field, or nil.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating input: %w", err)
	}
	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

var (
	categoryMessage = "Category must be one of: " + strings.Join(Categories, ", ")
	dateMessage     = "Date must be a calendar day in YYYY-MM-DD format"
)

// InvalidCategory reports a category outside Categories.
func InvalidCategory() error {
	return Invalid("category", categoryMessage)
}

// InvalidDate reports a date that is not in DateLayout.
func InvalidDate() error {
	return Invalid("date", dateMessage)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "username":
		switch fe.Tag() {
		case "required":
			return "Username is required"
		case "username":
			return "Username can only contain letters, numbers, and underscores"
		default:
			return "Username must be 3-30 characters"
		}
	case "email":
		return "Please provide a valid email"
	case "password":
		switch fe.Tag() {
		case "required":
			return "Password is required"
		case "min":
			return "Password must be at least 6 characters"
		default:
			return "Password must contain at least one lowercase letter, one uppercase letter, and one number"
		}
	case "title", "content":
		name := strings.ToUpper(fe.Field()[:1]) + fe.Field()[1:]
		if fe.Tag() == "max" {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return name + " is required"
	case "category":
		return categoryMessage
	case "date":
		return dateMessage
	case "moodEmoji":
		return "Mood emoji is required"
	case "moodColor":
		return "Mood color is required"
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

// RegisterInput is the payload of an account registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=30,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,strongpassword"`
}

// Normalize trims the username and canonicalizes the email.
func (in *RegisterInput) Normalize() {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = NormalizeEmail(in.Email)
}

// LoginInput is the payload of a login request.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Normalize canonicalizes the email.
func (in *LoginInput) Normalize() {
	in.Email = NormalizeEmail(in.Email)
}

// NormalizeEmail trims and lower-cases an address so that uniqueness
// comparisons are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
