package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO runs struct-tag validation and surfaces the first failure.
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			msg := fmt.Sprintf("field [%s] failed validation rule [%s]",
				firstError.Field(),
				firstError.Tag())
			return errors.New(msg)
		}
		// Not a rule failure, e.g. a non-struct value.
		return err
	}
	return nil
}
