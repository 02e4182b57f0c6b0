package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/auth"
	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
)

// AuthHandler maneja el login por ID de empleado y PIN.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "empleadoId, pin"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, err)
	}
	u, err := h.uc.Login(c.UserContext(), in.EmpleadoID.String(), in.PIN.String())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.LoginResponse{Success: true, Usuario: dto.NewUserResponse(u)})
}
