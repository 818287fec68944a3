package extraction

import (
	"context"
	"fmt"
	"log"
	"time"

	"skilltrack/internal/domain/skill"
)

// Service chains extraction, normalization and categorization into one
// pipeline run. Every stage failure is folded into the result; the
// pipeline never panics outward.
type Service struct {
	extractor   *Extractor
	normalizer  *Normalizer
	categorizer *Categorizer
	log         *log.Logger
}

func NewService(extractor *Extractor, normalizer *Normalizer, categorizer *Categorizer, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		extractor:   extractor,
		normalizer:  normalizer,
		categorizer: categorizer,
		log:         logger,
	}
}

// ProcessJobDescription runs the full pipeline on one text. Later
// stages keep the output of earlier ones on failure, so a
// categorization error still returns the extracted and normalized
// skills.
func (s *Service) ProcessJobDescription(ctx context.Context, text string) (res ProcessedSkills) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Printf("stage=pipeline status=panic err=%v", r)
			res = ProcessedSkills{
				Extracted:   []string{},
				Normalized:  []skill.CanonicalSkill{},
				Unmatched:   []string{},
				Categorized: map[string][]skill.CanonicalSkill{},
				Success:     false,
				Kind:        FailInternal,
				Error:       fmt.Sprintf("pipeline failed: %v", r),
			}
		}
	}()

	started := time.Now()

	extracted := s.extractor.Extract(ctx, text)
	if !extracted.Success {
		return ProcessedSkills{
			Extracted:   []string{},
			Normalized:  []skill.CanonicalSkill{},
			Unmatched:   []string{},
			Categorized: map[string][]skill.CanonicalSkill{},
			Success:     false,
			Kind:        extracted.Kind,
			Error:       extracted.Error,
		}
	}

	normalized := s.normalizer.Normalize(ctx, extracted.Skills)
	if !normalized.Success {
		return ProcessedSkills{
			Extracted:   extracted.Skills,
			Normalized:  []skill.CanonicalSkill{},
			Unmatched:   []string{},
			Categorized: map[string][]skill.CanonicalSkill{},
			Total:       len(extracted.Skills),
			Success:     false,
			Kind:        normalized.Kind,
			Error:       normalized.Error,
		}
	}

	categorized, err := s.categorizer.Categorize(ctx, normalized.Normalized)
	if err != nil {
		s.log.Printf("stage=categorize status=failed err=%v", err)
		return ProcessedSkills{
			Extracted:   extracted.Skills,
			Normalized:  normalized.Normalized,
			Unmatched:   normalized.Unmatched,
			Categorized: map[string][]skill.CanonicalSkill{},
			Total:       len(normalized.Normalized) + len(normalized.Unmatched),
			Success:     false,
			Kind:        FailCategorization,
			Error:       fmt.Sprintf("categorization failed: %v", err),
		}
	}

	res = ProcessedSkills{
		Extracted:   extracted.Skills,
		Normalized:  normalized.Normalized,
		Unmatched:   normalized.Unmatched,
		Categorized: categorized,
		Total:       len(normalized.Normalized) + len(normalized.Unmatched),
		Success:     true,
	}
	s.log.Printf("stage=pipeline status=done extracted=%d normalized=%d unmatched=%d took=%s",
		len(extracted.Skills), len(normalized.Normalized), len(normalized.Unmatched), time.Since(started).Round(time.Millisecond))
	return res
}
