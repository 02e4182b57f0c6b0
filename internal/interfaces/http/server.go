package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/diegoleonuniline/umo-pos-api/pkg/logger"
)

// ServerConfig opciones de la app Fiber.
type ServerConfig struct {
	Name        string
	CORSOrigins string
	// SwaggerFile ruta del swagger.json; vacío no monta /docs.
	SwaggerFile string
	BodyLimit   int
}

// NewApp arma la app con recover, request id, CORS, log de peticiones y el
// manejador de errores común. Las rutas se registran aparte con Router.
func NewApp(cfg ServerConfig, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 4 * 1024 * 1024
	}
	if cfg.CORSOrigins == "" {
		cfg.CORSOrigins = "*"
	}
	httpLog := log.Component("http")

	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))
	app.Use(RequestLogger(httpLog))

	// Swagger UI: http://localhost:<port>/docs
	if cfg.SwaggerFile != "" {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.SwaggerFile,
			Path:     "docs",
			Title:    cfg.Name,
		}))
	}
	return app
}
