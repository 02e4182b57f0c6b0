package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

// Códigos de error devueltos en dto.ErrorResponse.Code.
const (
	CodeInvalidBody  = "INVALID_BODY"
	CodeValidation   = "VALIDATION"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeDuplicate    = "DUPLICATE"
	CodeConflict     = "CONFLICT"
	CodeUpstream     = "UPSTREAM"
	CodeInternal     = "INTERNAL"
)

// statusFor traduce un error de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	var be *bodyError
	switch {
	case errors.As(err, &be):
		return fiber.StatusBadRequest, be.code
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, CodeValidation
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, CodeDuplicate
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrUpstream), errors.Is(err, domain.ErrMalformedResponse):
		return fiber.StatusInternalServerError, CodeUpstream
	default:
		return fiber.StatusInternalServerError, CodeInternal
	}
}

// writeError responde con el envelope de error. Es el único lugar donde un
// error de dominio se convierte en respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: err.Error(), Code: code})
}

func fail(c *fiber.Ctx, status int, code, msg string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Success: false, Error: msg, Code: code})
}
