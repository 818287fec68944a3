package skill

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CanonicalSkill is the single authoritative record for a skill concept.
// Extraction output references canonical skills, it never copies them.
// The JSON shape is part of the extract API and of the cached
// extraction payloads.
type CanonicalSkill struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Blacklisted bool       `json:"blacklisted,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Variant is an alternate spelling bound to exactly one canonical skill.
// Variants only widen lookup hits; they carry no identity of their own.
type Variant struct {
	ID      uuid.UUID
	SkillID uuid.UUID
	Name    string
}

type Category struct {
	ID        uuid.UUID
	Name      string
	Type      string
	CreatedAt time.Time
}

const CategoryTypeSkill = "skill"

// CategoryItem is a leaf entry within a category carrying matchable
// keywords. NormalizedName is unique within its category.
type CategoryItem struct {
	ID             uuid.UUID
	CategoryID     uuid.UUID
	Name           string
	NormalizedName string
	Keywords       []string
	UsageCount     int64
}

// NormalizeName folds an item name the way it is stored and compared.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
