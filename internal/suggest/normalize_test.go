package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and lowercases", "  Canned Chickpeas ", "canned chickpeas"},
		{"collapses underscores", "soy_sauce", "soy sauce"},
		{"collapses hyphen runs", "extra--virgin---olive-oil", "extra virgin olive oil"},
		{"collapses whitespace runs", "ground \t beef", "ground beef"},
		{"mixed separators", " Chipotle_Peppers-in_Adobo ", "chipotle peppers in adobo"},
		{"empty", "", ""},
		{"already normalized", "olive oil", "olive oil"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"  Canned_Chickpeas ", "EXTRA--SPICY", "a  b\tc", "plain"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "Normalize must be idempotent for %q", in)
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{"OVEN", " stove_top "})
	assert.Equal(t, []string{"oven", "stove top"}, got)
}
