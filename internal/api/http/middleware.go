package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/ticketing-api/internal/observability"
	apperrors "github.com/spec-kit/ticketing-api/pkg/util/errorutil"
)

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, timeout time.Duration) {
	if timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware renders returned errors and recovered panics as
// the {"error": {...}} envelope.
func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Path()),
					zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err == nil {
				return
			}
			domainErr := toDomainError(err)
			metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
			if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
				logger.Error("request failed",
					zap.String("method", c.Method()),
					zap.String("path", c.Path()),
					zap.Error(domainErr))
			}
			err = writeError(c, domainErr)
		}()
		return c.Next()
	}
}

func writeError(c *fiber.Ctx, domainErr *apperrors.DomainError) error {
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": domainErr.Message,
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}

func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.FromHTTPStatus(fiberErr.Code, fiberErr.Message)
	}
	return apperrors.ToDomainError(err)
}
