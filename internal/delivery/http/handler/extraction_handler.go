package handler

import (
	"skilltrack/internal/extraction"
	"skilltrack/internal/pkg/response"
	"skilltrack/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ExtractionHandler struct {
	uc usecase.ExtractionUsecase
}

type extractRequest struct {
	Text string `json:"text"`
}

type extractBatchRequest struct {
	Texts []string `json:"texts"`
}

func NewExtractionHandler(uc usecase.ExtractionUsecase) *ExtractionHandler {
	return &ExtractionHandler{uc: uc}
}

func (h *ExtractionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/extract")
	grp.Post("/", h.Extract)
	grp.Post("/batch", h.ExtractBatch)
}

func (h *ExtractionHandler) Extract(c fiber.Ctx) error {
	var req extractRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	res, err := h.uc.Extract(c.Context(), req.Text)
	if err != nil {
		return err
	}
	status := extractionStatus(res)
	if status >= 400 {
		return response.Error(c, status, res.Error, res)
	}
	return response.Success(c, status, response.MessageOK, res)
}

// extractionStatus maps a pipeline result to an HTTP status. Empty
// input is a normal terminal state and stays 200 so callers can always
// read the structured payload.
func extractionStatus(res extraction.ProcessedSkills) int {
	if res.Success || res.Kind == extraction.FailEmptyInput {
		return fiber.StatusOK
	}
	switch res.Kind {
	case extraction.FailModelNotLoaded, extraction.FailInternal:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusUnprocessableEntity
	}
}

func (h *ExtractionHandler) ExtractBatch(c fiber.Ctx) error {
	var req extractBatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return response.Error(c, fiber.StatusBadRequest, response.MessageBadRequest, nil)
	}

	res, err := h.uc.ExtractBatch(c.Context(), req.Texts)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{
		"results": res,
		"total":   len(res),
	})
}
