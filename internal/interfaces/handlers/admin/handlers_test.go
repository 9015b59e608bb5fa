package admin

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"

	adsvc "speedlist-backend/internal/application/ads"
	repsvc "speedlist-backend/internal/application/reports"
	"speedlist-backend/internal/aivalidate"
	"speedlist-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAdminTest(t *testing.T) (*fiber.App, *adsvc.Service, *repsvc.Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Ad{}, &domain.Report{}))

	ads := &adsvc.Service{DB: db}
	reports := &repsvc.Service{DB: db}
	h := &Handlers{Ads: ads, Reports: reports}

	app := fiber.New()
	group := app.Group("/api/admin", basicauth.New(basicauth.Config{
		Users: map[string]string{"admin": "secret"},
	}))
	group.Get("/ads/pending", h.ListPending)
	group.Post("/ads/:id/approve", h.Approve)
	group.Post("/ads/:id/reject", h.Reject)
	group.Delete("/ads/:id", h.DeleteAd)
	group.Get("/reports", h.ListReports)
	group.Post("/reports/:id/resolve", h.ResolveReport)
	return app, ads, reports
}

func adminReq(t *testing.T, app *fiber.App, method, path string, authed bool) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authed {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:secret")))
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestAdminRequiresBasicAuth(t *testing.T) {
	app, _, _ := setupAdminTest(t)
	code, _ := adminReq(t, app, "GET", "/api/admin/ads/pending", false)
	assert.Equal(t, 401, code)
}

func TestApproveFlow(t *testing.T) {
	app, ads, _ := setupAdminTest(t)
	created, err := ads.CreateFromDraft(context.Background(), adsvc.CreateFromDraftInput{
		Draft: aivalidate.ListingDraft{Title: "Pending", Description: "d"},
	})
	require.NoError(t, err)

	code, out := adminReq(t, app, "GET", "/api/admin/ads/pending", true)
	assert.Equal(t, 200, code)
	assert.Len(t, out["ads"], 1)

	code, out = adminReq(t, app, "POST", "/api/admin/ads/"+created.ID.String()+"/approve", true)
	assert.Equal(t, 200, code)
	ad := out["ad"].(map[string]any)
	assert.Equal(t, true, ad["approved"])

	code, out = adminReq(t, app, "GET", "/api/admin/ads/pending", true)
	assert.Equal(t, 200, code)
	assert.Empty(t, out["ads"])
}

func TestRejectDeactivates(t *testing.T) {
	app, ads, _ := setupAdminTest(t)
	created, err := ads.CreateFromDraft(context.Background(), adsvc.CreateFromDraftInput{
		Draft: aivalidate.ListingDraft{Title: "Spam", Description: "d"},
	})
	require.NoError(t, err)

	code, out := adminReq(t, app, "POST", "/api/admin/ads/"+created.ID.String()+"/reject", true)
	assert.Equal(t, 200, code)
	ad := out["ad"].(map[string]any)
	assert.Equal(t, false, ad["approved"])
	assert.Equal(t, false, ad["active"])
}

func TestResolveReport(t *testing.T) {
	app, ads, reports := setupAdminTest(t)
	created, err := ads.CreateFromDraft(context.Background(), adsvc.CreateFromDraftInput{
		Draft: aivalidate.ListingDraft{Title: "Ad", Description: "d"},
	})
	require.NoError(t, err)
	report, err := reports.Create(context.Background(), created.ID, "scam", "asks for deposit")
	require.NoError(t, err)

	code, out := adminReq(t, app, "GET", "/api/admin/reports", true)
	assert.Equal(t, 200, code)
	assert.Len(t, out["reports"], 1)

	code, out = adminReq(t, app, "POST", "/api/admin/reports/"+report.ID.String()+"/resolve", true)
	assert.Equal(t, 200, code)
	resolved := out["report"].(map[string]any)
	assert.Equal(t, true, resolved["resolved"])

	code, out = adminReq(t, app, "GET", "/api/admin/reports", true)
	assert.Equal(t, 200, code)
	assert.Empty(t, out["reports"])
}

func TestAdminInvalidIDs(t *testing.T) {
	app, _, _ := setupAdminTest(t)
	code, _ := adminReq(t, app, "POST", "/api/admin/ads/not-a-uuid/approve", true)
	assert.Equal(t, 400, code)
	code, _ = adminReq(t, app, "DELETE", "/api/admin/ads/not-a-uuid", true)
	assert.Equal(t, 400, code)
}
