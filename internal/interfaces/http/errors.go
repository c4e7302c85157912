package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/leads-api/internal/application/dto"
	"github.com/jhoicas/leads-api/internal/domain"
	"github.com/jhoicas/leads-api/pkg/logger"
)

// writeDomainError maps domain errors onto the documented statuses. Anything
// outside the taxonomy is logged and reported as an opaque 500: internal
// detail never reaches the caller.
func writeDomainError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var fe *domain.FieldError
	switch {
	case errors.As(err, &fe):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: fe.Message, Field: fe.Field,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "invalid input",
		})
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "EMAIL_EXISTS", Message: "user already exists",
		})
	case errors.Is(err, domain.ErrLeadEmailExists):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "DUPLICATE_LEAD_EMAIL", Message: "lead with this email already exists",
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "INVALID_CREDENTIALS", Message: "invalid credentials",
		})
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "user not found",
		})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Code: "NOT_FOUND", Message: "lead not found",
		})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "server error",
		})
	}
}
