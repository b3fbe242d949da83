package server

import (
	"context"
	"log"

	"notibot-be/internal/bootstrap"
	"notibot-be/internal/chat/telegram"
	"notibot-be/internal/config"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB
	})

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	registerRoutes(app, cfg, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("✅ Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func registerRoutes(app *fiber.App, cfg *config.Config, c *bootstrap.Container) {
	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/webhook/telegram", webhookHandler(cfg, c))
}

// webhookHandler accepts Telegram update deliveries.
func webhookHandler(cfg *config.Config, c *bootstrap.Container) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if cfg.Telegram.WebhookSecret != "" &&
			ctx.Get("X-Telegram-Bot-Api-Secret-Token") != cfg.Telegram.WebhookSecret {
			return ctx.SendStatus(fiber.StatusForbidden)
		}

		var update telegram.Update
		if err := ctx.BodyParser(&update); err != nil {
			c.Logger.Warn("server", "malformed webhook body", map[string]interface{}{
				"error": err.Error(),
			})
			// Still 200: Telegram retries non-2xx deliveries forever.
			return ctx.SendStatus(fiber.StatusOK)
		}

		ev, ok := telegram.ParseUpdate(&update)
		if !ok {
			return ctx.SendStatus(fiber.StatusOK)
		}

		// Routed before the 200 goes out: Telegram holds the next update
		// for this bot until the current delivery is answered, so finishing
		// here is what keeps a user's events in arrival order.
		c.Router.Route(context.Background(), ev)

		return ctx.SendStatus(fiber.StatusOK)
	}
}
