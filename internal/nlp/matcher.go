package nlp

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var ErrModelNotLoaded = errors.New("skill matcher not loaded")

type MatchKind string

const (
	// MatchFull is an exact phrase occurrence in the text.
	MatchFull MatchKind = "full"
	// MatchNgram is a partial, token-level occurrence carrying a score.
	MatchNgram MatchKind = "ngram"
)

// Match is one raw candidate produced by annotation. Value preserves
// the casing the phrase had in the source text.
type Match struct {
	Value string
	Kind  MatchKind
	Score float64
}

type phrase struct {
	text     string
	tokens   []string
	full     *regexp.Regexp
	tokenRes []*regexp.Regexp
}

// Matcher is the phrase-matching model. It is built once from the known
// phrase vocabulary and is read-only afterwards, so a single instance is
// shared across concurrent extractions.
type Matcher struct {
	phrases []phrase
}

// NewMatcher compiles the phrase vocabulary. An empty vocabulary means
// the model cannot annotate anything and is treated as a load failure.
func NewMatcher(vocabulary []string) (*Matcher, error) {
	seen := map[string]struct{}{}
	phrases := make([]phrase, 0, len(vocabulary))

	for _, raw := range vocabulary {
		text := strings.ToLower(strings.TrimSpace(raw))
		if text == "" {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}

		full, err := compileBoundary(text)
		if err != nil {
			continue
		}

		p := phrase{text: text, tokens: strings.Fields(text), full: full}
		if len(p.tokens) > 1 {
			p.tokenRes = make([]*regexp.Regexp, 0, len(p.tokens))
			for _, tok := range p.tokens {
				re, err := compileBoundary(tok)
				if err != nil {
					re = nil
				}
				p.tokenRes = append(p.tokenRes, re)
			}
		}
		phrases = append(phrases, p)
	}

	if len(phrases) == 0 {
		return nil, ErrModelNotLoaded
	}
	return &Matcher{phrases: phrases}, nil
}

func compileBoundary(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)(?:^|[^a-zA-Z0-9])(` + regexp.QuoteMeta(term) + `)(?:[^a-zA-Z0-9]|$)`)
}

// Annotate runs the model over cleaned text and returns full matches
// followed by scored n-gram matches. The context is checked between
// phrases so callers can bound the invocation with a deadline.
func (m *Matcher) Annotate(ctx context.Context, text string) ([]Match, error) {
	if m == nil {
		return nil, ErrModelNotLoaded
	}

	padded := " " + text + " "
	out := make([]Match, 0)
	var ngrams []Match

	for i := range m.phrases {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		p := &m.phrases[i]

		if loc := p.full.FindStringSubmatchIndex(padded); loc != nil {
			out = append(out, Match{
				Value: padded[loc[2]:loc[3]],
				Kind:  MatchFull,
				Score: 1.0,
			})
			continue
		}

		if len(p.tokens) <= 1 {
			continue
		}

		found := make([]string, 0, len(p.tokens))
		for _, re := range p.tokenRes {
			if re == nil {
				continue
			}
			if loc := re.FindStringSubmatchIndex(padded); loc != nil {
				found = append(found, padded[loc[2]:loc[3]])
			}
		}
		if len(found) == 0 {
			continue
		}
		ngrams = append(ngrams, Match{
			Value: strings.Join(found, " "),
			Kind:  MatchNgram,
			Score: float64(len(found)) / float64(len(p.tokens)),
		})
	}

	return append(out, ngrams...), nil
}

// VocabularySize returns the number of compiled phrases.
func (m *Matcher) VocabularySize() int {
	if m == nil {
		return 0
	}
	return len(m.phrases)
}
