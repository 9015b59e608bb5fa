package ai

import (
	"encoding/json"
	"errors"

	aisvc "speedlist-backend/internal/application/ai"
	"speedlist-backend/internal/domain"
	"speedlist-backend/internal/middleware"
	"speedlist-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *aisvc.Service
}

type createAdRequest struct {
	Prompt string   `json:"prompt"`
	Images []string `json:"images"`
}

type searchRequest struct {
	Prompt string `json:"prompt"`
}

// POST /api/ai/create-ad — natural language (+photos) in, persisted ad out.
func (h *Handlers) CreateAd(c *fiber.Ctx) error {
	var body createAdRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	ad, err := h.Service.CreateAd(c.Context(), aisvc.CreateAdInput{
		Prompt:   body.Prompt,
		Images:   body.Images,
		Language: middleware.GetLanguage(c),
	})
	if err != nil {
		return aiError(c, err)
	}
	return response.Created(c, fiber.Map{"ad": ad})
}

// POST /api/ai/search-ads — natural language in, ads + interpreted filters out.
func (h *Handlers) SearchAds(c *fiber.Ctx) error {
	var body searchRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	found, filters, err := h.Service.SearchAds(c.Context(), body.Prompt, middleware.GetLanguage(c))
	if err != nil {
		return aiError(c, err)
	}
	if found == nil {
		found = []domain.Ad{}
	}
	return response.OK(c, fiber.Map{"ads": found, "filters": filters})
}

func aiError(c *fiber.Ctx, err error) error {
	var imgErr *aisvc.ImageError
	var draftErr *aisvc.DraftError
	var upErr *aisvc.UpstreamError
	switch {
	case errors.Is(err, aisvc.ErrEmptyPrompt):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.As(err, &imgErr):
		return response.Error(c, imgErr.Msg, fiber.StatusBadRequest, nil)
	case errors.As(err, &draftErr):
		return response.Error(c, draftErr.Error(), fiber.StatusUnprocessableEntity, fiber.Map{"fields": draftErr.Fields})
	case errors.As(err, &upErr):
		return response.Error(c, upErr.Error(), fiber.StatusInternalServerError, nil)
	default:
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
}
