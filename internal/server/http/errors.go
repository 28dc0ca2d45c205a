package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmitrijs2005/gophdrop/internal/common"
)

// statusFor maps service errors onto HTTP status codes and the message
// shown to clients. Storage and unknown errors never leak details.
func statusFor(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, common.ErrRefreshTokenExpired):
		return fiber.StatusUnauthorized, "Refresh token expired"
	case errors.Is(err, common.ErrTokenExpired):
		return fiber.StatusUnauthorized, "Token expired"
	case errors.Is(err, common.ErrorUnauthorized):
		return fiber.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, common.ErrorNotFound):
		return fiber.StatusNotFound, "File not found"
	case errors.Is(err, common.ErrorForbidden):
		return fiber.StatusForbidden, "Forbidden"
	case errors.Is(err, common.ErrorValidation):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrorAlreadyExists):
		return fiber.StatusConflict, err.Error()
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

// errorHandler renders every error as {"error": "..."}.
func (s *HTTPServer) errorHandler(c *fiber.Ctx, err error) error {
	code, msg := statusFor(err)
	return c.Status(code).JSON(fiber.Map{"error": msg})
}
