// Package configx loads and merges configuration for lime entities.
package configx

import (
	"github.com/go-playground/validator/v10"

	"github.com/limekit/lime/core/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks `validate` struct tags on target. Structs without
// such tags always pass.
func Validate(target any) error {
	if err := validate.Struct(target); err != nil {
		return errors.Wrap(errors.CodeInvalidArgument, "configx.Validate", err)
	}
	return nil
}
