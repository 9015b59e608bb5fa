package ads

import (
	"encoding/json"
	"errors"
	"strconv"

	adsvc "speedlist-backend/internal/application/ads"
	repsvc "speedlist-backend/internal/application/reports"
	"speedlist-backend/internal/domain"
	"speedlist-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type Handlers struct {
	Service *adsvc.Service
	Reports *repsvc.Service
}

// GET /api/ads — latest approved ads. Optional ?limit=N.
func (h *Handlers) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	found, err := h.Service.ListLatest(c.Context(), limit)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	if found == nil {
		found = []domain.Ad{}
	}
	return response.OK(c, fiber.Map{"ads": found})
}

// GET /api/ads/:id — one ad; bumps the visit counter.
func (h *Handlers) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	ad, err := h.Service.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, adsvc.ErrNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.OK(c, fiber.Map{"ad": ad})
}

// patchRequest keeps price raw so that "price": null (clear) is
// distinguishable from an absent key.
type patchRequest struct {
	Title        *string         `json:"title"`
	Description  *string         `json:"description"`
	Category     *string         `json:"category"`
	Location     *string         `json:"location"`
	Price        json.RawMessage `json:"price"`
	ContactPhone *string         `json:"contact_phone"`
	ContactEmail *string         `json:"contact_email"`
}

// PATCH /api/ads/:id — partial edit; spends one remaining edit.
func (h *Handlers) Patch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	var body patchRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	in := adsvc.UpdateInput{
		Title:        body.Title,
		Description:  body.Description,
		Category:     body.Category,
		Location:     body.Location,
		ContactPhone: body.ContactPhone,
		ContactEmail: body.ContactEmail,
	}
	if len(body.Price) > 0 {
		in.PriceSet = true
		var v *float64
		if err := json.Unmarshal(body.Price, &v); err != nil {
			return response.Error(c, "price must be a number or null", fiber.StatusBadRequest, nil)
		}
		in.Price = v
	}

	ad, err := h.Service.Update(c.Context(), id, in)
	if err != nil {
		switch {
		case errors.Is(err, adsvc.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, adsvc.ErrNoEditsLeft):
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case errors.Is(err, adsvc.ErrNothingToSet):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.OK(c, fiber.Map{"ad": ad})
}

// DELETE /api/ads/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, adsvc.ErrNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.OK(c, fiber.Map{"deleted": true})
}

type reportRequest struct {
	Reason  string `json:"reason"`
	Details string `json:"details"`
}

// POST /api/ads/:id/report — file a complaint against an ad.
func (h *Handlers) Report(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, "Invalid ad id", fiber.StatusBadRequest, nil)
	}
	var body reportRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	report, err := h.Reports.Create(c.Context(), id, body.Reason, body.Details)
	if err != nil {
		switch {
		case errors.Is(err, repsvc.ErrEmptyReason):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, repsvc.ErrAdNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Created(c, fiber.Map{"report": report})
}
