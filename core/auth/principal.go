package auth

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
)

// Principal is an authenticated identity bound to exactly one role.
// It is immutable once constructed.
type Principal struct {
	ID          string `json:"id" db:"id"`
	Email       string `json:"email" db:"email"`
	Role        Role   `json:"role" db:"role"`
	DisplayName string `json:"display_name" db:"display_name"`
}

// Credentials is the transient login input; it is never persisted and is
// discarded after validation regardless of outcome.
type Credentials struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	ClaimedRole Role   `json:"role" validate:"required,role"`
}

// Validate runs the input-shape checks only; it never touches the registry.
// Failures come back as a core.ValidationError with per-field messages.
func (c *Credentials) Validate(validate *validator.Validate, translator ut.Translator) error {
	c.Email = core.NormalizeEmail(c.Email)
	if err := validate.Struct(c); err != nil {
		if vErrs, ok := err.(validator.ValidationErrors); ok {
			return core.NewFieldValidationError(vErrs, translator)
		}
		return err
	}
	return nil
}

var (
	roleTag  = "role"
	roleText = "must be one of: student, faculty, admin, government"
)

// RegisterValidators adds this package's custom validation tags to `validate`.
func RegisterValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(roleTag, roleValidation)
	core.RegisterCustomTranslation(validate, translator, roleTag, roleText)
}

// roleValidation only allows known portal roles.
func roleValidation(fl validator.FieldLevel) bool {
	return Role(fl.Field().String()).Valid()
}
