package usecase

import (
	"context"

	"skilltrack/internal/extraction"
)

// maxBatchTexts caps one batch request; larger loads go through the
// job pipeline instead.
const maxBatchTexts = 100

type ExtractionUsecase interface {
	Extract(ctx context.Context, text string) (extraction.ProcessedSkills, error)
	ExtractBatch(ctx context.Context, texts []string) ([]extraction.ProcessedSkills, error)
}

type Extraction struct {
	proc    *extraction.Service
	workers int
}

func NewExtractionUsecase(proc *extraction.Service, workers int) *Extraction {
	if workers <= 0 {
		workers = 4
	}
	return &Extraction{proc: proc, workers: workers}
}

// Extract does not pre-validate the text: an empty description is a
// normal pipeline outcome and comes back as a structured failure
// result, not an error.
func (u *Extraction) Extract(ctx context.Context, text string) (extraction.ProcessedSkills, error) {
	return u.proc.ProcessJobDescription(ctx, text), nil
}

func (u *Extraction) ExtractBatch(ctx context.Context, texts []string) ([]extraction.ProcessedSkills, error) {
	if len(texts) == 0 || len(texts) > maxBatchTexts {
		return nil, ErrInvalidInput
	}
	return u.proc.ProcessBatch(ctx, texts, u.workers), nil
}
