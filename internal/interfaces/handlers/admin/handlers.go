// Package admin exposes the moderation console endpoints. All routes are
// mounted behind HTTP basic auth.
package admin

import (
	"errors"

	adsvc "speedlist-backend/internal/application/ads"
	repsvc "speedlist-backend/internal/application/reports"
	"speedlist-backend/internal/domain"
	"speedlist-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Ads     *adsvc.Service
	Reports *repsvc.Service
}

// GET /api/admin/ads/pending
func (h *Handlers) ListPending(c *fiber.Ctx) error {
	found, err := h.Ads.ListPending(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	if found == nil {
		found = []domain.Ad{}
	}
	return response.OK(c, fiber.Map{"ads": found})
}

// POST /api/admin/ads/:id/approve
func (h *Handlers) Approve(c *fiber.Ctx) error {
	return h.setApproved(c, true)
}

// POST /api/admin/ads/:id/reject
func (h *Handlers) Reject(c *fiber.Ctx) error {
	return h.setApproved(c, false)
}

func (h *Handlers) setApproved(c *fiber.Ctx, approved bool) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	ad, err := h.Ads.SetApproved(c.Context(), id, approved)
	if err != nil {
		if errors.Is(err, adsvc.ErrNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.OK(c, fiber.Map{"ad": ad})
}

// DELETE /api/admin/ads/:id
func (h *Handlers) DeleteAd(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	if err := h.Ads.Delete(c.Context(), id); err != nil {
		if errors.Is(err, adsvc.ErrNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.OK(c, fiber.Map{"deleted": true})
}

// GET /api/admin/reports
func (h *Handlers) ListReports(c *fiber.Ctx) error {
	found, err := h.Reports.ListOpen(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	if found == nil {
		found = []domain.Report{}
	}
	return response.OK(c, fiber.Map{"reports": found})
}

// POST /api/admin/reports/:id/resolve
func (h *Handlers) ResolveReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid report id", fiber.StatusBadRequest, nil)
	}
	report, err := h.Reports.Resolve(c.Context(), id)
	if err != nil {
		if errors.Is(err, repsvc.ErrReportNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.OK(c, fiber.Map{"report": report})
}
