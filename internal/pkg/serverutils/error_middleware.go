package serverutils

import (
	"errors"

	"nex-terminal-be/internal/dto"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts typed errors returned by controllers into
// JSON envelopes. Nothing here is fatal to the process; every failure path
// becomes a response.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var limitErr *dto.LimitExceededError
		if errors.As(err, &limitErr) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(dto.LimitExceededResponse{
				Success:   false,
				Code:      fiber.StatusTooManyRequests,
				Message:   limitErr.Error(),
				ErrorType: "LIMIT_EXCEEDED",
				Data: dto.LimitExceededData{
					Limit:      limitErr.Limit,
					Used:       limitErr.Used,
					ResetAfter: limitErr.ResetAfter,
				},
			})
		}

		var apiErr *ApiError
		if errors.As(err, &apiErr) {
			return ctx.Status(apiErr.Code).JSON(ErrorResponse{
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse{
				Success: false,
				Code:    fiberErr.Code,
				Message: fiberErr.Message,
			})
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Success: false,
			Code:    fiber.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}
