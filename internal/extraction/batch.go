package extraction

import (
	"context"

	"skilltrack/internal/domain/skill"
	"skilltrack/internal/pkg/workerpool"
)

// ProcessBatch runs the pipeline over many texts on a bounded worker
// pool. Results come back in input order; a slot whose task never ran
// (cancelled context) stays a failure result.
func (s *Service) ProcessBatch(ctx context.Context, texts []string, workers int) []ProcessedSkills {
	if workers <= 0 {
		workers = 4
	}
	if len(texts) == 0 {
		return []ProcessedSkills{}
	}

	results := make([]ProcessedSkills, len(texts))
	for i := range results {
		results[i] = ProcessedSkills{
			Extracted:   []string{},
			Normalized:  []skill.CanonicalSkill{},
			Unmatched:   []string{},
			Categorized: map[string][]skill.CanonicalSkill{},
			Success:     false,
			Kind:        FailInternal,
			Error:       "not processed",
		}
	}

	pool := workerpool.New(workers, len(texts))
	for i, text := range texts {
		i, text := i, text
		pool.Submit(func(ctx context.Context) error {
			results[i] = s.ProcessJobDescription(ctx, text)
			return nil
		})
	}
	pool.Close()

	done := 0
	for range pool.Run(ctx) {
		done++
	}
	if done < len(texts) {
		s.log.Printf("stage=batch status=incomplete processed=%d total=%d", done, len(texts))
	} else {
		s.log.Printf("stage=batch status=done total=%d workers=%d", done, workers)
	}

	return results
}
