package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImportTextHeadingsAndQuantities(t *testing.T) {
	text := `Pantry:
- Canned Chickpeas (2 cans)
- rice - 1 kg

Spices:
* Black Pepper
Frozen stuff:
• peas (1 bag)
`

	lines := parseImportText(text, "")
	require.Len(t, lines, 4)

	assert.Equal(t, importLine{name: "canned chickpeas", qty: "2 cans", category: "PANTRY", location: "PANTRY"}, lines[0])
	assert.Equal(t, importLine{name: "rice", qty: "1 kg", category: "PANTRY", location: "PANTRY"}, lines[1])
	assert.Equal(t, importLine{name: "black pepper", qty: "", category: "SPICE", location: "PANTRY"}, lines[2])
	assert.Equal(t, importLine{name: "peas", qty: "1 bag", category: "FROZEN", location: "FREEZER"}, lines[3])
}

func TestParseImportTextDefaultLocationOverrides(t *testing.T) {
	lines := parseImportText("Produce:\n- lettuce", "COUNTER")
	require.Len(t, lines, 1)
	assert.Equal(t, "PRODUCE", lines[0].category)
	assert.Equal(t, "COUNTER", lines[0].location)
}

func TestParseImportTextPlainLinesLandInPantry(t *testing.T) {
	lines := parseImportText("olive oil\n\n   \n", "")
	require.Len(t, lines, 1)
	assert.Equal(t, "PANTRY", lines[0].category)
}

func TestHeadingToCategory(t *testing.T) {
	cases := map[string]string{
		"Spices":           "SPICE",
		"Freezer":          "FROZEN",
		"Fresh Vegetables": "PRODUCE",
		"Meat & Seafood":   "MEAT",
		"Dairy":            "DAIRY",
		"Sauces":           "CONDIMENT",
		"Dry Goods":        "PANTRY",
		"Random Shelf":     "OTHER",
	}
	for heading, want := range cases {
		assert.Equal(t, want, headingToCategory(heading), heading)
	}
}

func TestCategoryToDefaultLocation(t *testing.T) {
	assert.Equal(t, "FREEZER", categoryToDefaultLocation("FROZEN"))
	assert.Equal(t, "FREEZER", categoryToDefaultLocation("MEAT"))
	assert.Equal(t, "FRIDGE", categoryToDefaultLocation("PRODUCE"))
	assert.Equal(t, "FRIDGE", categoryToDefaultLocation("DAIRY"))
	assert.Equal(t, "PANTRY", categoryToDefaultLocation("SPICE"))
	assert.Equal(t, "PANTRY", categoryToDefaultLocation("OTHER"))
}

func TestImportInventoryEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/inventory/import", gin.H{
		"text": "Pantry:\n- canned chickpeas (2 cans)\n- rice\n",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(2), decodeBody(t, w)["created"])

	// Every imported item ends up with at least one batch.
	w = doJSON(t, s, http.MethodGet, "/api/v1/inventory/items", nil)
	for _, raw := range decodeBody(t, w)["items"].([]interface{}) {
		item := raw.(map[string]interface{})
		batches := item["batches"].([]interface{})
		assert.NotEmpty(t, batches, item["name"])
	}

	// Re-importing upserts instead of duplicating.
	w = doJSON(t, s, http.MethodPost, "/api/v1/inventory/import", gin.H{
		"text": "- rice",
	})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodGet, "/api/v1/inventory/items", nil)
	assert.Len(t, decodeBody(t, w)["items"], 2)
}

func TestImportInventoryRejectsBadLocation(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/inventory/import", gin.H{
		"text":            "- rice",
		"defaultLocation": "GARAGE",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
