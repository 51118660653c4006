package validators

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"listingdesk/cmd/internal/domain/entity"
)

// Custom validators registered on the shared validator.Validate instance.
// These cover contract-level (request binding) checks; the deep listing
// record validation lives in the schema package.

func ListingType(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}

	return entity.ListingType(val).Known()
}

func NoDupes(fl validator.FieldLevel) bool {
	vals, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}

	seen := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		if _, dup := seen[v]; dup {
			return false
		}
		seen[v] = struct{}{}
	}
	return true
}

func NoWhiteSpaces(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return !strings.ContainsFunc(val, unicode.IsSpace)
}
