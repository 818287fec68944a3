package nlp

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

// PhraseSource supplies the phrase vocabulary the matcher is built from,
// typically the canonical skill names and variants plus the built-in
// phrase set.
type PhraseSource func(ctx context.Context) ([]string, error)

// Provider owns the lazily-initialized matcher. Initialization is
// guarded so concurrent first callers build the model exactly once; a
// failed load sticks until Reset so every subsequent call surfaces
// ErrModelNotLoaded instead of retrying.
type Provider struct {
	source PhraseSource
	log    *log.Logger

	mu     sync.Mutex
	m      *Matcher
	err    error
	loaded bool
}

func NewProvider(source PhraseSource, logger *log.Logger) *Provider {
	if logger == nil {
		logger = log.Default()
	}
	return &Provider{source: source, log: logger}
}

// Matcher returns the shared model, loading it on first use.
func (p *Provider) Matcher(ctx context.Context) (*Matcher, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.loaded {
		return p.m, p.err
	}

	start := time.Now()
	p.loaded = true
	p.m, p.err = p.load(ctx)
	if p.err != nil {
		p.log.Printf("component=skill_matcher status=load_failed err=%v", p.err)
		return nil, p.err
	}
	p.log.Printf("component=skill_matcher status=loaded phrases=%d duration=%s", p.m.VocabularySize(), time.Since(start))
	return p.m, nil
}

func (p *Provider) load(ctx context.Context) (*Matcher, error) {
	phrases := DefaultPhrases()
	if p.source != nil {
		extra, err := p.source(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrModelNotLoaded, err)
		}
		phrases = append(phrases, extra...)
	}
	return NewMatcher(phrases)
}

// Reset discards the loaded model so the next call re-initializes it.
// Used after vocabulary writes and by operators recovering from a
// failed load.
func (p *Provider) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.m = nil
	p.err = nil
	p.loaded = false
}
