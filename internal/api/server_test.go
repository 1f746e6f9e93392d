package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"larder/internal/config"
	"larder/internal/database"
)

func newTestServer(t *testing.T) (*Server, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(config.DatabaseConfig{
		Driver: "sqlite3",
		DSN:    filepath.Join(t.TempDir(), "larder_test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewServer(db, zap.NewNop(), config.Default()), db
}

func doJSON(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateItemNormalizesName(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/inventory/items", gin.H{
		"item": gin.H{
			"name":     "  Canned_Chickpeas ",
			"category": "PANTRY",
			"location": "PANTRY",
			"staple":   true,
		},
		"batch": gin.H{"quantityText": "2 cans"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	item := body["item"].(map[string]interface{})
	assert.Equal(t, "canned chickpeas", item["name"])

	// Second create with a differently-cased name upserts the same row.
	w = doJSON(t, s, http.MethodPost, "/api/v1/inventory/items", gin.H{
		"item": gin.H{
			"name":     "CANNED CHICKPEAS",
			"category": "PANTRY",
			"location": "PANTRY",
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/inventory/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decodeBody(t, w)["items"].([]interface{})
	assert.Len(t, items, 1)
}

func TestCreateItemRejectsBadCategory(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/inventory/items", gin.H{
		"item": gin.H{"name": "thing", "category": "JUNK", "location": "PANTRY"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCookLogValidation(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/cooklogs", gin.H{
		"recipeId": "whatever",
		"rating":   6,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/cooklogs", gin.H{
		"recipeId": "missing-recipe",
		"rating":   4,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecipeLifecycle(t *testing.T) {
	s, _ := newTestServer(t)

	create := gin.H{
		"title":        "Garlic Butter Pasta",
		"servings":     2,
		"totalMin":     20,
		"cuisine":      "Italian",
		"instructions": "Cook pasta, toss with garlic butter.",
		"tags":         []string{"WEEKNIGHT"},
		"ingredients": []gin.H{
			{"name": "pasta", "required": true},
			{"name": "butter", "required": true, "substitutions": []string{"olive oil"}},
		},
		"techniques": []string{"Sautéing"},
	}

	w := doJSON(t, s, http.MethodPost, "/api/v1/recipes", create)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	recipeID := decodeBody(t, w)["recipe"].(map[string]interface{})["id"].(string)

	// Same title upserts rather than duplicating.
	w = doJSON(t, s, http.MethodPost, "/api/v1/recipes", create)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	recipes := decodeBody(t, w)["recipes"].([]interface{})
	require.Len(t, recipes, 1)

	recipe := recipes[0].(map[string]interface{})
	ingredients := recipe["ingredients"].([]interface{})
	assert.Len(t, ingredients, 2, "re-import replaces, not appends, ingredients")

	// Log a cook against it.
	w = doJSON(t, s, http.MethodPost, "/api/v1/cooklogs", gin.H{
		"recipeId": recipeID,
		"rating":   5,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, s, http.MethodGet, "/api/v1/cooklogs", nil)
	logs := decodeBody(t, w)["logs"].([]interface{})
	require.Len(t, logs, 1)
	log := logs[0].(map[string]interface{})
	assert.Equal(t, true, log["wouldRepeat"], "wouldRepeat defaults to true")

	// Delete cascades to children.
	w = doJSON(t, s, http.MethodDelete, "/api/v1/recipes/"+recipeID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, s, http.MethodGet, "/api/v1/cooklogs", nil)
	assert.Empty(t, decodeBody(t, w)["logs"])
}

func TestSuggestEndToEnd(t *testing.T) {
	s, _ := newTestServer(t)

	// Pantry: rice in stock, nothing else.
	w := doJSON(t, s, http.MethodPost, "/api/v1/inventory/items", gin.H{
		"item":  gin.H{"name": "rice", "category": "PANTRY", "location": "PANTRY"},
		"batch": gin.H{"quantityText": "2 kg"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	// One fully-stocked recipe, one with a missing required ingredient.
	for _, recipe := range []gin.H{
		{
			"title":        "Plain Rice",
			"servings":     2,
			"instructions": "Boil rice.",
			"ingredients":  []gin.H{{"name": "rice", "required": true}},
		},
		{
			"title":        "Chicken Rice",
			"servings":     2,
			"instructions": "Boil rice, add chicken.",
			"ingredients": []gin.H{
				{"name": "rice", "required": true},
				{"name": "chicken", "required": true},
			},
		},
	} {
		w := doJSON(t, s, http.MethodPost, "/api/v1/recipes", recipe)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/suggest", gin.H{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	results := decodeBody(t, w)["results"].([]interface{})
	require.Len(t, results, 2)

	first := results[0].(map[string]interface{})
	second := results[1].(map[string]interface{})
	assert.Equal(t, "Plain Rice", first["title"], "full coverage ranks first")
	assert.Equal(t, 60.0, first["score"])
	assert.Equal(t, 18.0, second["score"], "half coverage minus missing penalty")
	assert.Contains(t, second["missing"], "chicken")
}

func TestSuggestRejectsBadSeason(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/suggest", gin.H{"season": "MONSOON"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGroceryPlanFromRecipeAndStaples(t *testing.T) {
	s, db := newTestServer(t)

	// Staple with no batches: has run out.
	w := doJSON(t, s, http.MethodPost, "/api/v1/inventory/items", gin.H{
		"item": gin.H{"name": "olive oil", "category": "PANTRY", "location": "PANTRY", "staple": true},
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/v1/recipes", gin.H{
		"title":        "Tomato Soup",
		"servings":     2,
		"instructions": "Simmer tomatoes.",
		"ingredients":  []gin.H{{"name": "canned crushed tomatoes", "required": true}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	recipeID := decodeBody(t, w)["recipe"].(map[string]interface{})["id"].(string)

	w = doJSON(t, s, http.MethodPost, "/api/v1/grocery/plan", gin.H{
		"recipeIds": []string{recipeID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["created"])

	byName := map[string]map[string]interface{}{}
	for _, raw := range body["items"].([]interface{}) {
		item := raw.(map[string]interface{})
		byName[item["name"].(string)] = item
	}
	require.Contains(t, byName, "canned crushed tomatoes")
	assert.Equal(t, "IN_PERSON", byName["canned crushed tomatoes"]["channel"])
	require.Contains(t, byName, "olive oil")
	assert.Equal(t, "SHIP", byName["olive oil"]["channel"])

	_ = db
}

func TestTechniqueComfortBounds(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/v1/techniques", gin.H{"name": "Braising", "difficulty": 3})
	require.Equal(t, http.StatusOK, w.Code)
	techID := decodeBody(t, w)["technique"].(map[string]interface{})["id"].(string)

	w = doJSON(t, s, http.MethodPut, "/api/v1/techniques/"+techID+"/comfort", gin.H{"comfort": 4})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodPut, "/api/v1/techniques/"+techID+"/comfort", gin.H{"comfort": 2})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["technique"].(map[string]interface{})["comfort"])
}
