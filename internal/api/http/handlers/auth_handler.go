package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketing-api/internal/api/dto"
	"github.com/spec-kit/ticketing-api/internal/service"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	token, err := h.auth.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": dto.LoginResponse{Token: token.Value, TokenID: token.ID, ExpiresAt: token.ExpiresAt},
	})
}
