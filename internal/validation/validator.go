// Package validation provides input validation for the catalog services
// using the validator/v10 library.
//
// String length limits are counted in user-perceived grapheme clusters, not
// bytes or runes, via the custom maxgraphemes/mingraphemes rules.
package validation

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rivo/uniseg"

	domainerrors "github.com/mediastash/mediastash-server/internal/errors"
)

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New creates a validator configured for the catalog domain.
func New() *Validator {
	v := validator.New()

	// Use JSON tag names in error reporting so field-to-code mapping is
	// stable across struct renames.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		// Remove options like omitempty, -
		for i := 0; i < len(name); i++ {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})

	// Grapheme-cluster length limits.
	must(v.RegisterValidation("maxgraphemes", maxGraphemes))
	must(v.RegisterValidation("mingraphemes", minGraphemes))

	// Six hex digits, optional leading '#', case-insensitive.
	must(v.RegisterValidation("hexcolor6", hexColor6))

	return &Validator{v: v}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate validates a struct and returns a domain error for the first
// failing field. Fields are evaluated in struct declaration order, so input
// structs declare their fields in the order checks must run.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !domainerrors.As(err, &fieldErrs) {
		return domainerrors.ErrInternal.WithCause(err)
	}
	if len(fieldErrs) == 0 {
		return domainerrors.ErrValidation
	}
	return errorFor(fieldErrs[0])
}

// errorFor maps a failing (field, rule) pair to its domain error.
func errorFor(e validator.FieldError) *domainerrors.Error {
	field := e.Field()
	tag := e.Tag()

	switch field {
	case "name":
		switch tag {
		case "maxgraphemes":
			return domainerrors.ErrNameTooLong
		case "mingraphemes":
			return domainerrors.ErrNameTooShort
		default:
			return domainerrors.ErrInvalidName
		}
	case "description":
		return domainerrors.ErrDescriptionTooLong
	case "color":
		return domainerrors.ErrInvalidColor
	case "id":
		return domainerrors.ErrInvalidID
	case "category_id":
		return domainerrors.ErrInvalidCategoryID
	case "base_path_id":
		return domainerrors.ErrInvalidBasePathID
	case "path":
		return domainerrors.ErrInvalidPath
	case "relative_path":
		return domainerrors.ErrInvalidRelativePath
	case "width":
		return domainerrors.ErrInvalidWidth
	case "height":
		return domainerrors.ErrInvalidHeight
	case "size":
		return domainerrors.ErrInvalidSize
	case "mark":
		return domainerrors.ErrInvalidMark
	default:
		return domainerrors.Validationf("%s %s", field, friendlyMessage(e))
	}
}

// friendlyMessage renders a rule violation for fields without a dedicated code.
func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "maxgraphemes":
		return "must not exceed " + e.Param() + " characters"
	case "mingraphemes":
		return "must be at least " + e.Param() + " characters"
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be greater than or equal to " + e.Param()
	case "lte":
		return "must be less than or equal to " + e.Param()
	default:
		return "is invalid"
	}
}

// Graphemes counts user-perceived characters (grapheme clusters).
func Graphemes(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

func maxGraphemes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return Graphemes(fl.Field().String()) <= limit
}

func minGraphemes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return Graphemes(fl.Field().String()) >= limit
}

func hexColor6(fl validator.FieldLevel) bool {
	s := strings.TrimPrefix(fl.Field().String(), "#")
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
