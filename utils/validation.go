package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct runs the validate tags declared on request models.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}

// IsValidPropertyID reports whether id is usable as a listing identifier.
// IDs are opaque non-empty strings without whitespace.
func IsValidPropertyID(id string) bool {
	if id == "" {
		return false
	}
	return !strings.ContainsAny(id, " \t\n")
}
