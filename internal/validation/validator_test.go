package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	domainerrors "github.com/mediastash/mediastash-server/internal/errors"
)

func TestGraphemes(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"", 0},
		{"abc", 3},
		{"héllo", 5},
		// A family emoji is many runes but one user-perceived character.
		{"👨‍👩‍👧‍👦", 1},
		{"🇩🇪🇫🇷", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Graphemes(tt.input), "input %q", tt.input)
	}
}

func TestValidateGraphemeLimits(t *testing.T) {
	v := New()

	type params struct {
		Name string `json:"name" validate:"required,maxgraphemes=50"`
	}

	assert.NoError(t, v.Validate(params{Name: strings.Repeat("x", 50)}))
	assert.ErrorIs(t, v.Validate(params{Name: strings.Repeat("x", 51)}), domainerrors.ErrNameTooLong)

	// Limits count grapheme clusters, not runes: 50 family emojis pass even
	// though they are hundreds of runes long.
	assert.NoError(t, v.Validate(params{Name: strings.Repeat("👨‍👩‍👧‍👦", 50)}))
	assert.ErrorIs(t, v.Validate(params{Name: strings.Repeat("👨‍👩‍👧‍👦", 51)}), domainerrors.ErrNameTooLong)

	assert.ErrorIs(t, v.Validate(params{Name: ""}), domainerrors.ErrInvalidName)
}

func TestValidateHexColor(t *testing.T) {
	v := New()

	type params struct {
		Color string `json:"color" validate:"hexcolor6"`
	}

	for _, ok := range []string{"1f77b4", "FF7F0E", "#2ca02c", "000000"} {
		assert.NoError(t, v.Validate(params{Color: ok}), "color %q", ok)
	}
	for _, bad := range []string{"", "fff", "1f77b44", "gggggg", "#1f77b", "# f77b4"} {
		assert.ErrorIs(t, v.Validate(params{Color: bad}), domainerrors.ErrInvalidColor, "color %q", bad)
	}
}

func TestValidateFieldOrder(t *testing.T) {
	v := New()

	type params struct {
		Name        string `json:"name" validate:"required,maxgraphemes=50"`
		Description string `json:"description" validate:"maxgraphemes=300"`
		Color       string `json:"color" validate:"hexcolor6"`
	}

	// The first failing field in declaration order decides the error.
	err := v.Validate(params{Name: "", Description: strings.Repeat("x", 301), Color: "bad"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidName)

	err = v.Validate(params{Name: "ok", Description: strings.Repeat("x", 301), Color: "bad"})
	assert.ErrorIs(t, err, domainerrors.ErrDescriptionTooLong)

	err = v.Validate(params{Name: "ok", Description: "ok", Color: "bad"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidColor)
}

func TestValidateNumericFields(t *testing.T) {
	v := New()

	type params struct {
		Width *int    `json:"width" validate:"omitempty,gt=0"`
		Size  float64 `json:"size" validate:"gt=0"`
		Mark  *int    `json:"mark" validate:"omitempty,gte=1,lte=10"`
	}

	one := 1
	assert.NoError(t, v.Validate(params{Size: 0.5, Width: &one, Mark: &one}))
	assert.NoError(t, v.Validate(params{Size: 1}), "nil pointers are skipped")

	zero := 0
	assert.ErrorIs(t, v.Validate(params{Size: 1, Width: &zero}), domainerrors.ErrInvalidWidth)
	assert.ErrorIs(t, v.Validate(params{Size: 0}), domainerrors.ErrInvalidSize)

	eleven := 11
	assert.ErrorIs(t, v.Validate(params{Size: 1, Mark: &eleven}), domainerrors.ErrInvalidMark)
	assert.ErrorIs(t, v.Validate(params{Size: 1, Mark: &zero}), domainerrors.ErrInvalidMark)
}
