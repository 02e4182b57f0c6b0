package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("x: %w", domain.ErrInvalidInput), fiber.StatusBadRequest, CodeValidation},
		{&bodyError{code: CodeInvalidBody, msg: "cuerpo inválido"}, fiber.StatusBadRequest, CodeInvalidBody},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized, CodeUnauthorized},
		{fmt.Errorf("turno: %w", domain.ErrForbidden), fiber.StatusForbidden, CodeForbidden},
		{fmt.Errorf("turno T: %w", domain.ErrNotFound), fiber.StatusNotFound, CodeNotFound},
		{domain.ErrDuplicate, fiber.StatusConflict, CodeDuplicate},
		{domain.ErrConflict, fiber.StatusConflict, CodeConflict},
		{fmt.Errorf("ventas: %w", domain.ErrUpstream), fiber.StatusInternalServerError, CodeUpstream},
		{domain.ErrMalformedResponse, fiber.StatusInternalServerError, CodeUpstream},
		{errors.New("otra cosa"), fiber.StatusInternalServerError, CodeInternal},
	}
	for _, c := range cases {
		status, code := statusFor(c.err)
		assert.Equal(t, c.status, status, c.err.Error())
		assert.Equal(t, c.code, code, c.err.Error())
	}
}

func TestBodyError_EsEntradaInvalida(t *testing.T) {
	err := error(&bodyError{code: CodeValidation, msg: "nombre es requerido"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "nombre es requerido", err.Error())
}
