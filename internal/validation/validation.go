// Package validation holds the shared validator instance and the field
// formats used by registration and login.
package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	idNumberPattern = regexp.MustCompile(`^[0-9]{13}$`)
	phonePattern    = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("idnumber", func(fl validator.FieldLevel) bool {
		return idNumberPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	return v
}

// Validator exposes the shared instance for struct validation.
func Validator() *validator.Validate {
	return validate
}

// Blank reports whether s is empty or only whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func Email(s string) bool {
	return !Blank(s) && validate.Var(s, "email") == nil
}

// IDNumber checks the 13-digit national id convention.
func IDNumber(s string) bool {
	return !Blank(s) && validate.Var(s, "idnumber") == nil
}

// Phone accepts an optional leading '+' followed by 10 to 15 digits.
func Phone(s string) bool {
	return !Blank(s) && validate.Var(s, "phone") == nil
}
