package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticketing-api/internal/auth"
	apperrors "github.com/spec-kit/ticketing-api/pkg/util/errorutil"
)

// bindRequest fills out from the query string and then from the body, if
// one was sent. Body values win over query values.
func bindRequest(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return apperrors.NewValidationError("invalid query parameters", map[string]any{"reason": err.Error()})
	}
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload", map[string]any{"reason": err.Error()})
	}
	return nil
}

func pathID(c *fiber.Ctx, field string) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(field+" must be a positive integer", map[string]any{field: c.Params("id")})
	}
	return id, nil
}

func actor(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Username == "" {
		return "", apperrors.NewUnauthorized("authentication required")
	}
	return principal.Username, nil
}
