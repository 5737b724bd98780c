package serverutils

import (
	"errors"

	"rag-symptom-be/internal/pkg/logger"
	"rag-symptom-be/pkg/rag"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps domain errors to an HTTP status and a caller-safe message.
// Unknown errors become 500 without leaking their text.
func StatusFor(err error) (int, string) {
	var fe *fiber.Error
	var ve *ValidationError

	switch {
	case errors.As(err, &ve):
		return fiber.StatusBadRequest, ve.Error()
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, rag.ErrSessionNotFound):
		return fiber.StatusNotFound, rag.ErrSessionNotFound.Error()
	case errors.Is(err, rag.ErrConditionNotFound):
		return fiber.StatusNotFound, rag.ErrConditionNotFound.Error()
	case errors.Is(err, rag.ErrSessionFinalized):
		return fiber.StatusConflict, rag.ErrSessionFinalized.Error()
	case errors.Is(err, rag.ErrTurnInProgress):
		return fiber.StatusConflict, rag.ErrTurnInProgress.Error()
	case errors.Is(err, rag.ErrGenerationFailed):
		return fiber.StatusBadGateway, rag.GenerationFailedReply
	case errors.Is(err, rag.ErrIndexUnavailable):
		return fiber.StatusServiceUnavailable, rag.ErrIndexUnavailable.Error()
	default:
		return fiber.StatusInternalServerError, "internal server error"
	}
}

// ErrorHandlerMiddleware turns errors returned by handlers into the
// standard response envelope. 5xx causes are logged, never returned.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := StatusFor(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"status": code,
				"error":  err.Error(),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
