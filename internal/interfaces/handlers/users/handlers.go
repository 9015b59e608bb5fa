package users

import (
	"encoding/json"
	"errors"

	usersvc "speedlist-backend/internal/application/users"
	"speedlist-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *usersvc.Service
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// POST /api/users/register
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, code, err := h.Service.Register(c.Context(), usersvc.RegisterInput{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
		Phone:    body.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrInvalidEmail), errors.Is(err, usersvc.ErrWeakPassword):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, usersvc.ErrEmailTaken):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	// Mail delivery is out of process; the code is logged for the operator.
	log.Info().Str("email", user.Email).Str("verify_code", code).Msg("verification code issued")
	return response.Created(c, fiber.Map{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/users/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	user, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, usersvc.ErrInvalidCredentials) {
			return response.Unauthorized(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.OK(c, fiber.Map{"user": user})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// POST /api/users/verify
func (h *Handlers) Verify(c *fiber.Ctx) error {
	var body verifyRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	user, err := h.Service.Verify(c.Context(), body.Email, body.Code)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, usersvc.ErrBadVerifyCode):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.OK(c, fiber.Map{"user": user})
}
