package extraction

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"strings"
	"time"

	"skilltrack/internal/config"
	"skilltrack/internal/nlp"
	"skilltrack/internal/textproc"
)

// ResultCache stores extraction results by content hash. Extraction is
// the most expensive stage and job descriptions repeat across scrape
// attempts, so hits skip the model entirely.
type ResultCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Extractor runs the phrase-matching model over cleaned text.
type Extractor struct {
	models    *nlp.Provider
	cache     ResultCache
	ttl       time.Duration
	timeout   time.Duration
	threshold float64
	log       *log.Logger
}

func NewExtractor(models *nlp.Provider, cache ResultCache, cfg config.ExtractionConfig, logger *log.Logger) *Extractor {
	if logger == nil {
		logger = log.Default()
	}
	threshold := cfg.NgramThreshold
	if threshold <= 0 {
		threshold = 0.7
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 90 * time.Minute
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Extractor{
		models:    models,
		cache:     cache,
		ttl:       ttl,
		timeout:   timeout,
		threshold: threshold,
		log:       logger,
	}
}

// Extract cleans the text and annotates it. Empty input is a normal
// terminal state, not an error; a missing model is a hard failure that
// repeats until the model is re-initialized.
func (e *Extractor) Extract(ctx context.Context, text string) (res ExtractionResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Printf("stage=extract status=panic err=%v", r)
			res = extractionFailure(FailExtraction, fmt.Sprintf("skill extraction failed: %v", r))
		}
	}()

	if strings.TrimSpace(text) == "" {
		return extractionFailure(FailEmptyInput, "no text provided")
	}

	cleaned := textproc.Clean(text)
	if cleaned == "" {
		return extractionFailure(FailEmptyInput, "text is empty after cleaning")
	}

	key := cacheKey(cleaned)
	if e.cache != nil {
		var cached ExtractionResult
		if hit, err := e.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached
		}
	}

	matcher, err := e.models.Matcher(ctx)
	if err != nil {
		return extractionFailure(FailModelNotLoaded, err.Error())
	}

	mctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	matches, err := matcher.Annotate(mctx, cleaned)
	if err != nil {
		return extractionFailure(FailExtraction, fmt.Sprintf("skill extraction failed: %v", err))
	}

	skills := make([]string, 0, len(matches))
	for _, m := range matches {
		value := strings.TrimSpace(m.Value)
		if len([]rune(value)) <= 1 {
			continue
		}
		// partial matches survive only above the threshold, never at it
		if m.Kind == nlp.MatchNgram && m.Score <= e.threshold {
			continue
		}
		skills = append(skills, value)
	}

	res = ExtractionResult{Skills: skills, Total: len(skills), Success: true}
	if e.cache != nil {
		if err := e.cache.SetJSON(ctx, key, res, e.ttl); err != nil {
			e.log.Printf("stage=extract status=cache_write_failed err=%v", err)
		}
	}
	return res
}

func cacheKey(cleaned string) string {
	sum := sha256.Sum256([]byte(cleaned))
	return "skills:extract:" + hex.EncodeToString(sum[:])
}
