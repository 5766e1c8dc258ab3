package ssmsettings

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the first validation error, or nil on success.
func validateStruct(dst any) error {
	return v.Struct(dst)
}
