package extraction

import (
	"context"
	"fmt"
	"log"
	"strings"

	"skilltrack/internal/domain/skill"
	"skilltrack/internal/repository"
	"skilltrack/internal/textproc"
)

// Membership selects how category membership is decided.
type Membership int

const (
	// MembershipExactLink buckets by the skill's explicit category
	// reference.
	MembershipExactLink Membership = iota
	// MembershipKeywordFuzzy matches skills against category items by
	// name, keywords, word overlap and abbreviation expansion.
	MembershipKeywordFuzzy
)

const (
	// BucketUncategorized collects skills without a category link.
	BucketUncategorized = "Uncategorized"
	// BucketOther collects skills no keyword item matched.
	BucketOther = "Other"
)

// DefaultAbbreviations maps common abbreviations to their expansions.
// Matching is bidirectional.
func DefaultAbbreviations() map[string]string {
	return map[string]string{
		"js":    "javascript",
		"ts":    "typescript",
		"py":    "python",
		"cpp":   "c++",
		"cs":    "c#",
		"db":    "database",
		"api":   "application programming interface",
		"ui":    "user interface",
		"ux":    "user experience",
		"ml":    "machine learning",
		"ai":    "artificial intelligence",
		"aws":   "amazon web services",
		"gcp":   "google cloud platform",
		"k8s":   "kubernetes",
		"ci/cd": "continuous integration continuous deployment",
	}
}

// Categorizer groups normalized skills into category buckets.
//
// With MembershipKeywordFuzzy a successful keyword match increments the
// matched item's usage counter: Categorize mutates the vocabulary
// store, it is not a pure function.
type Categorizer struct {
	store    repository.CategoryRepository
	strategy Membership
	overlap  float64
	abbr     map[string]string
	rev      map[string]string
	log      *log.Logger
}

func NewCategorizer(store repository.CategoryRepository, strategy Membership, overlapRatio float64, logger *log.Logger) *Categorizer {
	if logger == nil {
		logger = log.Default()
	}
	if overlapRatio <= 0 || overlapRatio > 1 {
		overlapRatio = 0.6
	}

	abbr := DefaultAbbreviations()
	rev := make(map[string]string, len(abbr))
	for k, v := range abbr {
		rev[v] = k
	}

	return &Categorizer{
		store:    store,
		strategy: strategy,
		overlap:  overlapRatio,
		abbr:     abbr,
		rev:      rev,
		log:      logger,
	}
}

// Categorize places every input skill into exactly one bucket. The
// first category (in vocabulary load order) with a matching item wins.
func (c *Categorizer) Categorize(ctx context.Context, skills []skill.CanonicalSkill) (map[string][]skill.CanonicalSkill, error) {
	switch c.strategy {
	case MembershipKeywordFuzzy:
		return c.categorizeByKeywords(ctx, skills)
	default:
		return c.categorizeByLink(ctx, skills)
	}
}

func (c *Categorizer) categorizeByLink(ctx context.Context, skills []skill.CanonicalSkill) (map[string][]skill.CanonicalSkill, error) {
	categories, err := c.store.ListCategories(ctx, skill.CategoryTypeSkill)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	nameByID := make(map[string]string, len(categories))
	buckets := make(map[string][]skill.CanonicalSkill, len(categories)+1)
	for _, cat := range categories {
		nameByID[cat.ID.String()] = cat.Name
		buckets[cat.Name] = []skill.CanonicalSkill{}
	}

	for _, s := range skills {
		bucket := BucketUncategorized
		if s.CategoryID != nil {
			if name, ok := nameByID[s.CategoryID.String()]; ok {
				bucket = name
			}
		}
		buckets[bucket] = append(buckets[bucket], s)
	}

	return buckets, nil
}

func (c *Categorizer) categorizeByKeywords(ctx context.Context, skills []skill.CanonicalSkill) (map[string][]skill.CanonicalSkill, error) {
	groups, err := c.store.ListCategoriesWithItems(ctx, skill.CategoryTypeSkill)
	if err != nil {
		return nil, fmt.Errorf("list category items: %w", err)
	}

	buckets := make(map[string][]skill.CanonicalSkill, len(groups)+1)
	for _, g := range groups {
		buckets[g.Category.Name] = []skill.CanonicalSkill{}
	}

	for _, s := range skills {
		placed := false
		for _, g := range groups {
			item, ok := c.matchItem(s.Name, g.Items)
			if !ok {
				continue
			}
			if err := c.store.IncrementUsage(ctx, item.ID); err != nil {
				c.log.Printf("stage=categorize status=usage_increment_failed item=%s err=%v", item.ID, err)
			}
			buckets[g.Category.Name] = append(buckets[g.Category.Name], s)
			placed = true
			break
		}
		if !placed {
			buckets[BucketOther] = append(buckets[BucketOther], s)
		}
	}

	return buckets, nil
}

// matchItem returns the first item of a category matching the skill
// name, in priority order: normalized-name equality, substring either
// way, keyword exact or substring, word-set overlap, abbreviation
// expansion.
func (c *Categorizer) matchItem(name string, items []skill.CategoryItem) (skill.CategoryItem, bool) {
	folded := textproc.Fold(name)
	if folded == "" {
		return skill.CategoryItem{}, false
	}
	words := textproc.WordSet(folded)

	for _, item := range items {
		if item.NormalizedName == folded {
			return item, true
		}
		if item.NormalizedName != "" &&
			(strings.Contains(folded, item.NormalizedName) || strings.Contains(item.NormalizedName, folded)) {
			return item, true
		}

		for _, keyword := range item.Keywords {
			kw := textproc.Fold(keyword)
			if kw == "" {
				continue
			}
			if kw == folded {
				return item, true
			}
			if strings.Contains(folded, kw) || strings.Contains(kw, folded) {
				return item, true
			}
			if c.wordOverlap(words, textproc.WordSet(kw)) {
				return item, true
			}
			if c.abbreviationMatch(folded, kw) {
				return item, true
			}
		}
	}
	return skill.CategoryItem{}, false
}

// wordOverlap reports whether the intersection covers the configured
// share of the smaller word set.
func (c *Categorizer) wordOverlap(a, b map[string]struct{}) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	inter := 0
	for w := range small {
		if _, ok := large[w]; ok {
			inter++
		}
	}
	return float64(inter) >= c.overlap*float64(len(small))
}

func (c *Categorizer) abbreviationMatch(name, keyword string) bool {
	if exp, ok := c.abbr[name]; ok && strings.Contains(keyword, exp) {
		return true
	}
	if exp, ok := c.abbr[keyword]; ok && strings.Contains(name, exp) {
		return true
	}
	if ab, ok := c.rev[name]; ok && strings.Contains(keyword, ab) {
		return true
	}
	if ab, ok := c.rev[keyword]; ok && strings.Contains(name, ab) {
		return true
	}
	return false
}
