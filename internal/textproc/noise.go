package textproc

import (
	"regexp"
	"strings"
)

// NoiseConfig is the injected vocabulary for the noise classifier. One
// shared instance serves every pipeline component.
type NoiseConfig struct {
	// Phrases are generic filler phrases that disqualify a candidate on
	// exact or word-boundary substring match.
	Phrases []string
	// StopWords disqualify a candidate when they make up more than half
	// of its tokens.
	StopWords []string
	// ShortAllow lists legitimate skills of one or two characters.
	ShortAllow []string
}

// DefaultNoiseConfig returns the curated noise vocabulary. Callers that
// tune the lists supply their own config instead.
func DefaultNoiseConfig() NoiseConfig {
	return NoiseConfig{
		Phrases: []string{
			// generic experience/background phrases
			"related industry", "relevant experience", "similar role", "comparable position",
			"equivalent experience", "related field", "similar background", "relevant background",
			"industry experience", "professional experience", "work experience", "prior experience",

			// time durations
			"years experience", "years of experience", "year experience", "months experience",
			"minimum years", "plus years", "or more years", "at least years",

			// generic requirements
			"strong background", "solid background", "proven track record", "demonstrated ability",
			"ability to work", "willingness to", "desire to", "passion for", "interest in",

			// location and logistics
			"remote work", "on site", "hybrid work", "flexible schedule", "full time", "part time",
			"contract position", "permanent position", "temporary position",

			// education levels
			"bachelor degree", "master degree", "phd", "high school", "college degree",
			"university degree", "advanced degree",

			// company-specific filler
			"company culture", "team environment", "fast paced", "startup environment",
			"corporate environment", "small team", "large team",

			// vague descriptors
			"good understanding", "basic knowledge", "working knowledge", "familiarity with",
			"exposure to", "some experience", "hands on experience",
		},
		StopWords: []string{
			"the", "and", "or", "of", "in", "to", "for", "with", "on", "at", "by", "from",
		},
		ShortAllow: []string{"r", "go", "ai", "ml", "qa", "c#", "bi", "c"},
	}
}

// NoiseClassifier decides whether an extracted candidate phrase is a
// genuine skill or filler language.
type NoiseClassifier struct {
	phrases    []string
	phraseRes  []*regexp.Regexp
	stopWords  map[string]struct{}
	shortAllow map[string]struct{}
}

func NewNoiseClassifier(cfg NoiseConfig) *NoiseClassifier {
	c := &NoiseClassifier{
		phrases:    make([]string, 0, len(cfg.Phrases)),
		phraseRes:  make([]*regexp.Regexp, 0, len(cfg.Phrases)),
		stopWords:  make(map[string]struct{}, len(cfg.StopWords)),
		shortAllow: make(map[string]struct{}, len(cfg.ShortAllow)),
	}

	for _, p := range cfg.Phrases {
		p = Fold(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile(`(^|[^a-z0-9])` + regexp.QuoteMeta(p) + `([^a-z0-9]|$)`)
		if err != nil {
			continue
		}
		c.phrases = append(c.phrases, p)
		c.phraseRes = append(c.phraseRes, re)
	}
	for _, w := range cfg.StopWords {
		if w = Fold(w); w != "" {
			c.stopWords[w] = struct{}{}
		}
	}
	for _, s := range cfg.ShortAllow {
		if s = Fold(s); s != "" {
			c.shortAllow[s] = struct{}{}
		}
	}
	return c
}

// IsNoise reports whether candidate should be dropped before lookup.
func (c *NoiseClassifier) IsNoise(candidate string) bool {
	folded := Fold(candidate)
	if folded == "" {
		return true
	}

	if len([]rune(folded)) <= 2 {
		_, ok := c.shortAllow[folded]
		return !ok
	}

	if isDigits(folded) {
		return true
	}

	for i, p := range c.phrases {
		if folded == p {
			return true
		}
		// substring in either direction, on word boundaries
		if c.phraseRes[i].MatchString(folded) {
			return true
		}
		if ContainsWord(p, folded) {
			return true
		}
	}

	words := strings.Fields(folded)
	if len(words) > 0 {
		stops := 0
		for _, w := range words {
			if _, ok := c.stopWords[w]; ok {
				stops++
			}
		}
		if stops*2 > len(words) {
			return true
		}
	}

	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
