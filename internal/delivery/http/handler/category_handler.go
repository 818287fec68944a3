package handler

import (
	"strconv"

	"skilltrack/internal/pkg/response"
	"skilltrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CategoryHandler struct {
	uc usecase.CategoryUsecase
}

func NewCategoryHandler(uc usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

func (h *CategoryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/categories")
	grp.Get("/", h.List)
	grp.Get("/most-used", h.MostUsed)
}

func (h *CategoryHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListCategories(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *CategoryHandler) MostUsed(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	items, err := h.uc.MostUsed(c.Context(), limit)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}
