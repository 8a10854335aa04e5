// Package validate wraps go-playground/validator struct validation into
// joined, self-describing errors.
package validate

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
}

// Struct validates value against its field tags. The name is used to
// qualify the reported field names.
func Struct(name string, value interface{}) error {
	err := validate.Struct(value)
	if err == nil {
		return nil
	}

	structErrors := make([]error, 0)
	for _, err := range err.(validator.ValidationErrors) {
		structError := &StructValidationError{
			Struct:   name,
			Field:    err.Field(),
			Tag:      err.ActualTag(),
			Value:    err.Value(),
			Expected: err.Param(),
		}
		structErrors = append(structErrors, structError)
	}

	return errors.Join(structErrors...)
}
