// Package validator adapts go-playground/validator to echo.
package validator

import (
	"reflect"
	"regexp"
	"strings"

	"currypoint/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var phonePattern = regexp.MustCompile(`^\+?[0-9\s]{10,15}$`)

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New returns a validator with the application's custom tags registered.
func New() echo.Validator {
	v := validator.New()
	_ = v.RegisterValidation("phone", validatePhone)
	v.RegisterTagNameFunc(wireName)

	return &CustomValidator{validate: v}
}

// Validate runs struct validation on i.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// validatePhone accepts an optional leading "+" followed by 10-15 digits or spaces.
func validatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// wireName reports fields by their json or query name so error details match
// what the client sent.
func wireName(field reflect.StructField) string {
	for _, tag := range []string{"json", "query"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name != "" && name != "-" {
			return name
		}
	}

	return field.Name
}

// FieldErrors maps each failing field to the rule it broke. It returns nil
// when err carries no field errors.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}

	return fields
}
