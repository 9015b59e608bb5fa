package router

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"speedlist-backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthReportsDatabaseDisconnectedWithoutDB(t *testing.T) {
	app, db, rdb, err := CreateApp(&config.Config{})
	require.NoError(t, err)
	require.Nil(t, db)
	require.Nil(t, rdb)

	resp, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	deps := out["dependencies"].(map[string]any)
	database := deps["database"].(map[string]any)
	assert.Equal(t, "disconnected", database["status"])
	assert.Nil(t, database["pingMs"])
}

func TestDashboardWithoutDB(t *testing.T) {
	app, _, _, err := CreateApp(&config.Config{})
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
}
