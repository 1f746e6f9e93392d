package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringSlice represents a slice of strings that can be stored in the database
type StringSlice []string

// Value converts the slice to a JSON string for storage
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// Scan converts the database value back to a slice
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// Enumerated string values. These are stored as plain text columns; the
// handlers validate against the slices below rather than relying on the
// database to enforce them.
var (
	ItemCategories = []string{"PANTRY", "SPICE", "FROZEN", "PRODUCE", "MEAT", "DAIRY", "CONDIMENT", "BAKING", "BEVERAGE", "OTHER"}

	ItemLocations = []string{"PANTRY", "FRIDGE", "FREEZER", "COUNTER", "OTHER"}

	GroceryChannels = []string{"SHIP", "IN_PERSON", "EITHER"}

	RecipeSources = []string{"PERSONAL", "FAMILY", "WEB", "COOKBOOK", "FRIEND"}

	Complexities = []string{"FAMILIAR", "STRETCH", "CHALLENGE"}

	MealSlots = []string{"BREAKFAST", "LUNCH", "DINNER"}
)

// ValidValue reports whether v is one of the allowed values.
func ValidValue(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
