package nlp

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNewMatcher_EmptyVocabulary(t *testing.T) {
	if _, err := NewMatcher(nil); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("expected ErrModelNotLoaded, got %v", err)
	}
	if _, err := NewMatcher([]string{"", "   "}); !errors.Is(err, ErrModelNotLoaded) {
		t.Fatalf("blank-only vocabulary should fail to load, got %v", err)
	}
}

func TestMatcher_FullMatchesPreserveCasing(t *testing.T) {
	m, err := NewMatcher([]string{"python", "django", "rest api"})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	matches, err := m.Annotate(context.Background(), "Looking for a Python developer with Django and REST API design")
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}

	got := map[string]Match{}
	for _, mt := range matches {
		got[mt.Value] = mt
	}

	for _, want := range []string{"Python", "Django", "REST API"} {
		mt, ok := got[want]
		if !ok {
			t.Fatalf("expected match %q, got %v", want, matches)
		}
		if mt.Kind != MatchFull {
			t.Fatalf("%q should be a full match, got %s", want, mt.Kind)
		}
	}
}

func TestMatcher_WordBoundaries(t *testing.T) {
	m, err := NewMatcher([]string{"rest", "go"})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	matches, err := m.Annotate(context.Background(), "restful services with Golang")
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("phrases inside words must not match, got %v", matches)
	}
}

func TestMatcher_NgramScoring(t *testing.T) {
	m, err := NewMatcher([]string{"amazon web services"})
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	matches, err := m.Annotate(context.Background(), "experience with web services integration")
	if err != nil {
		t.Fatalf("Annotate: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected one ngram match, got %v", matches)
	}
	mt := matches[0]
	if mt.Kind != MatchNgram {
		t.Fatalf("expected ngram kind, got %s", mt.Kind)
	}
	want := 2.0 / 3.0
	if mt.Score < want-0.001 || mt.Score > want+0.001 {
		t.Fatalf("expected score %.3f, got %.3f", want, mt.Score)
	}
}

func TestMatcher_ContextCancellation(t *testing.T) {
	vocab := make([]string, 0, 200)
	for i := 0; i < 200; i++ {
		vocab = append(vocab, "skillphrase"+string(rune('a'+i%26))+string(rune('a'+(i/26)%26)))
	}
	m, err := NewMatcher(vocab)
	if err != nil {
		t.Fatalf("NewMatcher: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Annotate(ctx, "some text"); err == nil {
		t.Fatalf("cancelled context should abort annotation")
	}
}

func TestProvider_LoadsOnceAndSticksOnFailure(t *testing.T) {
	calls := 0
	failing := NewProvider(func(context.Context) ([]string, error) {
		calls++
		return nil, errors.New("store down")
	}, nil)

	for i := 0; i < 3; i++ {
		if _, err := failing.Matcher(context.Background()); !errors.Is(err, ErrModelNotLoaded) {
			t.Fatalf("expected ErrModelNotLoaded, got %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("failed load must not be retried automatically, got %d calls", calls)
	}

	failing.Reset()
	_, _ = failing.Matcher(context.Background())
	if calls != 2 {
		t.Fatalf("Reset should allow one re-initialization, got %d calls", calls)
	}
}

func TestProvider_SharedMatcher(t *testing.T) {
	p := NewProvider(nil, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	first, err := p.Matcher(ctx)
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	second, err := p.Matcher(ctx)
	if err != nil {
		t.Fatalf("Matcher: %v", err)
	}
	if first != second {
		t.Fatalf("provider must return the same loaded model")
	}
}
