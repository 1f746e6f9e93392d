package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringSliceValue(t *testing.T) {
	v, err := StringSlice{"OVEN", "STOVETOP"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["OVEN","STOVETOP"]`, string(v.([]byte)))

	empty, err := StringSlice{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", empty)

	var nilSlice StringSlice
	v, err = nilSlice.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestStringSliceScan(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, StringSlice{"a", "b"}, s)

	require.NoError(t, s.Scan(`["c"]`))
	assert.Equal(t, StringSlice{"c"}, s)

	require.NoError(t, s.Scan(nil))
	assert.Empty(t, s)

	assert.Error(t, s.Scan(42))
}

func TestValidValue(t *testing.T) {
	assert.True(t, ValidValue(ItemCategories, "PANTRY"))
	assert.False(t, ValidValue(ItemCategories, "pantry"))
	assert.False(t, ValidValue(MealSlots, "BRUNCH"))
}
