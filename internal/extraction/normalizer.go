package extraction

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode"

	"skilltrack/internal/textproc"
	"skilltrack/internal/vocab"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/google/uuid"
)

// BlacklistChecker answers whether a candidate spelling is blacklisted.
// Checked together with the noise classifier, before lookup resolution,
// so a blacklisted spelling can never resolve to a canonical skill.
type BlacklistChecker interface {
	IsBlacklisted(ctx context.Context, name string) (bool, error)
}

// acronymAllowList holds names always rendered upper-case.
var acronymAllowList = map[string]struct{}{
	"IOS": {}, "SQL": {}, "HTML": {}, "CSS": {}, "XML": {},
	"JSON": {}, "API": {}, "REST": {}, "MYSQL": {}, "NOSQL": {},
}

// Normalizer filters extracted candidates and resolves them against the
// canonical vocabulary.
type Normalizer struct {
	noise     *textproc.NoiseClassifier
	lookup    *vocab.Lookup
	blacklist BlacklistChecker
	log       *log.Logger
}

func NewNormalizer(noise *textproc.NoiseClassifier, lookup *vocab.Lookup, blacklist BlacklistChecker, logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Normalizer{noise: noise, lookup: lookup, blacklist: blacklist, log: logger}
}

// Normalize processes candidates in order: trim, drop noise and
// blacklisted spellings, apply the casing rule, resolve through the
// lookup cache. Matched results are deduplicated by canonical identity;
// both output lists keep first-occurrence order. The call is atomic: an
// unexpected panic yields a failure result, never a partial one.
func (n *Normalizer) Normalize(ctx context.Context, raw []string) (res NormalizedResult) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Printf("stage=normalize status=panic err=%v", r)
			res = normalizationFailure(FailNormalization, fmt.Sprintf("normalization failed: %v", r))
		}
	}()

	res = NormalizedResult{Normalized: nil, Unmatched: nil, Success: true}
	if len(raw) == 0 {
		return res
	}

	seen := map[uuid.UUID]struct{}{}
	for _, candidate := range raw {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}

		if n.noise.IsNoise(candidate) {
			continue
		}
		if n.blacklist != nil {
			blacklisted, err := n.blacklist.IsBlacklisted(ctx, candidate)
			if err != nil {
				n.log.Printf("stage=normalize status=blacklist_check_failed candidate=%q err=%v", candidate, err)
			} else if blacklisted {
				continue
			}
		}

		candidate = applyCasing(candidate)

		if canonical, ok := n.lookup.Find(ctx, candidate); ok {
			if _, dup := seen[canonical.ID]; dup {
				continue
			}
			seen[canonical.ID] = struct{}{}
			res.Normalized = append(res.Normalized, canonical)
		} else {
			res.Unmatched = append(res.Unmatched, candidate)
		}
	}

	return res
}

// applyCasing upper-cases known acronyms and title-cases everything
// else, except names that already carry internal capitals (JavaScript,
// TypeScript) which are preserved as written.
func applyCasing(s string) string {
	upper := strings.ToUpper(s)
	if _, ok := acronymAllowList[upper]; ok {
		return upper
	}
	if hasInternalCapital(s) {
		return s
	}
	return cases.Title(language.English).String(s)
}

func hasInternalCapital(s string) bool {
	for i, r := range s {
		if i == 0 {
			continue
		}
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
