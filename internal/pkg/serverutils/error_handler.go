package serverutils

import (
	"errors"

	"portfolio-cms-be/internal/pkg/logger"
	"portfolio-cms-be/internal/repository/contract"
	"portfolio-cms-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const logModule = "HTTP"

// ErrorHandler renders every error returned by a handler as the JSON
// envelope. It is installed as fiber.Config.ErrorHandler.
func ErrorHandler(l logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		code, message := classify(err)
		if code >= fiber.StatusInternalServerError {
			l.Error(logModule, "request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err,
			})
		}

		var verr *RequestValidationError
		if errors.As(err, &verr) {
			return ctx.Status(code).JSON(ErrorResponseWithData(code, message, verr.Fields))
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	var verr *RequestValidationError
	var fetchErr *contract.FetchError

	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, "Invalid request"
	case errors.Is(err, service.ErrSessionNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrUnknownContentKind),
		errors.Is(err, service.ErrUnknownBulkAction),
		errors.Is(err, service.ErrNothingSelected),
		errors.Is(err, contract.ErrInvalidCursor):
		return fiber.StatusBadRequest, err.Error()
	case errors.As(err, &fetchErr):
		return fiber.StatusBadGateway, "Content source unavailable"
	}
	return fiber.StatusInternalServerError, "Internal server error"
}
