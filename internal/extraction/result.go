package extraction

import "skilltrack/internal/domain/skill"

// FailKind tags a failure result so callers can tell a normal terminal
// state (empty input) apart from a real failure.
type FailKind string

const (
	FailNone           FailKind = ""
	FailEmptyInput     FailKind = "empty_input"
	FailModelNotLoaded FailKind = "model_not_loaded"
	FailExtraction     FailKind = "extraction_failed"
	FailNormalization  FailKind = "normalization_failed"
	FailCategorization FailKind = "categorization_failed"
	FailInternal       FailKind = "internal"
)

// ExtractionResult is the ordered raw candidate list of one extraction.
// It is transient: the normalizer consumes it immediately.
type ExtractionResult struct {
	Skills  []string `json:"skills"`
	Total   int      `json:"total"`
	Success bool     `json:"success"`
	Kind    FailKind `json:"kind,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// NormalizedResult splits candidates into canonical references and
// unknown strings. No canonical skill appears twice in Normalized.
type NormalizedResult struct {
	Normalized []skill.CanonicalSkill `json:"normalized"`
	Unmatched  []string               `json:"unmatched"`
	Success    bool                   `json:"success"`
	Kind       FailKind               `json:"kind,omitempty"`
	Error      string                 `json:"error,omitempty"`
}

// ProcessedSkills is the single result the CRUD layer consumes. Failure
// is always reported here, never raised.
type ProcessedSkills struct {
	Extracted   []string                          `json:"extracted"`
	Normalized  []skill.CanonicalSkill            `json:"normalized"`
	Unmatched   []string                          `json:"unmatched"`
	Categorized map[string][]skill.CanonicalSkill `json:"categorized"`
	Total       int                               `json:"total"`
	Success     bool                              `json:"success"`
	Kind        FailKind                          `json:"kind,omitempty"`
	Error       string                            `json:"error,omitempty"`
}

func extractionFailure(kind FailKind, msg string) ExtractionResult {
	return ExtractionResult{Skills: []string{}, Success: false, Kind: kind, Error: msg}
}

func normalizationFailure(kind FailKind, msg string) NormalizedResult {
	return NormalizedResult{Normalized: []skill.CanonicalSkill{}, Unmatched: []string{}, Success: false, Kind: kind, Error: msg}
}
