package app

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"skilltrack/internal/database/migration"
	"skilltrack/internal/delivery/http/handler"
	"skilltrack/internal/delivery/http/middleware"
	"skilltrack/internal/delivery/http/routes"
	v1 "skilltrack/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())
	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())

	health := handler.NewHealthHandler(c.Config.App.AppName, c.Config.App.Environment, c.DB, c.Cache)
	routes.NewRegistry(health, v1.Deps{
		Skills:     c.SkillUC,
		Categories: c.CategoryUC,
		Extraction: c.ExtractionUC,
	}).Register(f)

	return &App{Fiber: f, Container: c}
}

// Bootstrap applies pending migrations, warms the lookup cache and
// builds the HTTP app. The returned cleanup closes every connection.
func Bootstrap(c *Container) (*App, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := Migrate(ctx, c); err != nil {
		return nil, nil, err
	}

	c.Lookup.Refresh(ctx)

	app := New(c)
	return app, c.Close, nil
}

// Migrate applies pending schema migrations from MIGRATIONS_DIR
// (default "migrations").
func Migrate(ctx context.Context, c *Container) error {
	runner := migration.Runner{Dir: migrationsDir(), Log: c.Log}
	if err := runner.Run(ctx, c.DB.SQLDB()); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func migrationsDir() string {
	if dir := strings.TrimSpace(os.Getenv("MIGRATIONS_DIR")); dir != "" {
		return dir
	}
	return "migrations"
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
