package handler

import (
	"errors"

	"skilltrack/internal/pkg/response"
	"skilltrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SkillHandler struct {
	uc usecase.SkillUsecase
}

type createSkillRequest struct {
	Name       string     `json:"name"`
	CategoryID *uuid.UUID `json:"category_id"`
	Variants   []string   `json:"variants"`
}

type blacklistRequest struct {
	Blacklisted *bool `json:"blacklisted"`
}

func NewSkillHandler(uc usecase.SkillUsecase) *SkillHandler {
	return &SkillHandler{uc: uc}
}

func (h *SkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/skills")
	grp.Get("/", h.List)
	grp.Post("/", h.Create)
	grp.Post("/:id/blacklist", h.Blacklist)
}

func (h *SkillHandler) List(c fiber.Ctx) error {
	items, err := h.uc.ListSkills(c.Context())
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, items)
}

func (h *SkillHandler) Create(c fiber.Ctx) error {
	var req createSkillRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	created, err := h.uc.AddSkill(c.Context(), usecase.AddSkillParams{
		Name:       req.Name,
		CategoryID: req.CategoryID,
		Variants:   req.Variants,
	})
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusCreated, "skill created", created)
}

func (h *SkillHandler) Blacklist(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	// Absent body defaults to blacklisting; the flag allows undoing it.
	blacklisted := true
	var req blacklistRequest
	if err := c.Bind().Body(&req); err == nil && req.Blacklisted != nil {
		blacklisted = *req.Blacklisted
	}

	if err := h.uc.SetBlacklist(c.Context(), id, blacklisted); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			return response.Error(c, fiber.StatusNotFound, response.MessageNotFound, nil)
		}
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"id": id, "blacklisted": blacklisted})
}
