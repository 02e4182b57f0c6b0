package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/application/dto"
)

// ServiceInfo datos mostrados en GET /.
type ServiceInfo struct {
	Name    string
	Version string
	CORS    string
}

// Health godoc
// @Summary      Verificación de vida
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  dto.HealthResponse
// @Router       /health [get]
func Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "OK"})
}

// Info godoc
// @Summary      Nombre y versión del servicio
// @Tags         sistema
// @Produce      json
// @Success      200  {object}  dto.ServiceInfoResponse
// @Router       / [get]
func Info(info ServiceInfo) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(dto.ServiceInfoResponse{
			Status:   "OK",
			Servicio: info.Name,
			Version:  info.Version,
			CORS:     info.CORS,
		})
	}
}
