package handler

import (
	"context"
	"time"

	"skilltrack/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything with a health probe; the database pool and the
// cache both qualify.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	appName string
	env     string
	db      Pinger
	cache   Pinger
}

func NewHealthHandler(appName, env string, db, cache Pinger) *HealthHandler {
	return &HealthHandler{appName: appName, env: env, db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	body := fiber.Map{
		"app":      h.appName,
		"env":      h.env,
		"database": probe(ctx, h.db),
		"cache":    probe(ctx, h.cache),
	}

	if body["database"] != "up" {
		return response.Error(c, fiber.StatusServiceUnavailable, "degraded", body)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, body)
}

func probe(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p.Ping(ctx); err != nil {
		return "down"
	}
	return "up"
}
