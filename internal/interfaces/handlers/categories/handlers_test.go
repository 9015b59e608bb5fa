package categories

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoriesTest(t *testing.T) *fiber.App {
	app := fiber.New()
	h := &Handlers{}
	app.Get("/api/categories", h.List)
	return app
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestListCategories(t *testing.T) {
	app := setupCategoriesTest(t)

	code, out := getJSON(t, app, "/api/categories")
	assert.Equal(t, 200, code)
	cats := out["categories"].([]any)
	assert.NotEmpty(t, cats)
	first := cats[0].(map[string]any)
	assert.NotEmpty(t, first["name"])
	_, hasFields := out["fields"]
	assert.False(t, hasFields)
}

func TestListCategoriesWithFields(t *testing.T) {
	app := setupCategoriesTest(t)

	code, out := getJSON(t, app, "/api/categories?category=Vehicles&subcategory=Cars")
	assert.Equal(t, 200, code)
	fields, ok := out["fields"].([]any)
	require.True(t, ok)
	assert.NotEmpty(t, fields)
}
