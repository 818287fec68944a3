package v1

import (
	"skilltrack/internal/delivery/http/handler"
	"skilltrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the usecases the v1 API exposes. Wiring happens in the
// app container; routes only bind handlers to paths.
type Deps struct {
	Skills     usecase.SkillUsecase
	Categories usecase.CategoryUsecase
	Extraction usecase.ExtractionUsecase
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	handler.NewSkillHandler(d.Skills).RegisterRoutes(r)
	handler.NewCategoryHandler(d.Categories).RegisterRoutes(r)
	handler.NewExtractionHandler(d.Extraction).RegisterRoutes(r)
}
