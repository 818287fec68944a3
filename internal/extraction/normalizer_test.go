package extraction

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skilltrack/internal/domain/skill"
	"skilltrack/internal/textproc"
	"skilltrack/internal/vocab"

	"github.com/google/uuid"
)

type stubVocabSource struct {
	skills   []skill.CanonicalSkill
	variants []skill.Variant
}

func (s *stubVocabSource) ListActiveSkills(context.Context) ([]skill.CanonicalSkill, error) {
	return s.skills, nil
}

func (s *stubVocabSource) ListVariants(context.Context) ([]skill.Variant, error) {
	return s.variants, nil
}

type stubBlacklist struct {
	names map[string]bool
	err   error
}

func (b *stubBlacklist) IsBlacklisted(_ context.Context, name string) (bool, error) {
	if b.err != nil {
		return false, b.err
	}
	return b.names[strings.ToLower(name)], nil
}

func testLookup(skills ...skill.CanonicalSkill) *vocab.Lookup {
	return vocab.NewLookup(&stubVocabSource{skills: skills}, testLogger)
}

func testNoise() *textproc.NoiseClassifier {
	return textproc.NewNoiseClassifier(textproc.DefaultNoiseConfig())
}

func TestNormalizeDeduplicatesCaseVariants(t *testing.T) {
	python := skill.CanonicalSkill{ID: uuid.New(), Name: "Python"}
	n := NewNormalizer(testNoise(), testLookup(python), nil, testLogger)

	res := n.Normalize(context.Background(), []string{"Python", "python", "PYTHON"})
	if !res.Success {
		t.Fatalf("normalize failed: %s", res.Error)
	}
	if len(res.Normalized) != 1 {
		t.Fatalf("normalized = %d entries, want 1: %+v", len(res.Normalized), res.Normalized)
	}
	if res.Normalized[0].ID != python.ID {
		t.Fatalf("resolved to %s, want %s", res.Normalized[0].ID, python.ID)
	}
	if len(res.Unmatched) != 0 {
		t.Fatalf("unmatched = %v, want none", res.Unmatched)
	}
}

func TestNormalizeDropsNoise(t *testing.T) {
	python := skill.CanonicalSkill{ID: uuid.New(), Name: "Python"}
	n := NewNormalizer(testNoise(), testLookup(python), nil, testLogger)

	res := n.Normalize(context.Background(), []string{"5 years experience", "xx", "12345", "Python"})
	if !res.Success {
		t.Fatalf("normalize failed: %s", res.Error)
	}
	if len(res.Normalized) != 1 || res.Normalized[0].Name != "Python" {
		t.Fatalf("normalized = %+v, want only Python", res.Normalized)
	}
	if len(res.Unmatched) != 0 {
		t.Fatalf("unmatched = %v, want none", res.Unmatched)
	}
}

func TestNormalizeDropsBlacklisted(t *testing.T) {
	php := skill.CanonicalSkill{ID: uuid.New(), Name: "PHP"}
	bl := &stubBlacklist{names: map[string]bool{"php": true}}
	n := NewNormalizer(testNoise(), testLookup(php), bl, testLogger)

	res := n.Normalize(context.Background(), []string{"PHP"})
	if !res.Success {
		t.Fatalf("normalize failed: %s", res.Error)
	}
	if len(res.Normalized) != 0 || len(res.Unmatched) != 0 {
		t.Fatalf("blacklisted spelling leaked: %+v", res)
	}
}

func TestNormalizeBlacklistErrorIsNonFatal(t *testing.T) {
	python := skill.CanonicalSkill{ID: uuid.New(), Name: "Python"}
	bl := &stubBlacklist{err: errors.New("store down")}
	n := NewNormalizer(testNoise(), testLookup(python), bl, testLogger)

	res := n.Normalize(context.Background(), []string{"Python"})
	if !res.Success {
		t.Fatalf("normalize failed: %s", res.Error)
	}
	if len(res.Normalized) != 1 {
		t.Fatalf("normalized = %+v, want Python despite blacklist error", res.Normalized)
	}
}

func TestNormalizeCasingRules(t *testing.T) {
	n := NewNormalizer(testNoise(), testLookup(), nil, testLogger)

	res := n.Normalize(context.Background(), []string{"sql", "javaScript", "elixir"})
	if !res.Success {
		t.Fatalf("normalize failed: %s", res.Error)
	}

	want := []string{"SQL", "javaScript", "Elixir"}
	if len(res.Unmatched) != len(want) {
		t.Fatalf("unmatched = %v, want %v", res.Unmatched, want)
	}
	for i, w := range want {
		if res.Unmatched[i] != w {
			t.Fatalf("unmatched[%d] = %q, want %q", i, res.Unmatched[i], w)
		}
	}
}

func TestNormalizeResolvesVariants(t *testing.T) {
	js := skill.CanonicalSkill{ID: uuid.New(), Name: "JavaScript"}
	source := &stubVocabSource{
		skills:   []skill.CanonicalSkill{js},
		variants: []skill.Variant{{ID: uuid.New(), SkillID: js.ID, Name: "ECMAScript"}},
	}
	n := NewNormalizer(testNoise(), vocab.NewLookup(source, testLogger), nil, testLogger)

	res := n.Normalize(context.Background(), []string{"ECMAScript"})
	if !res.Success {
		t.Fatalf("normalize failed: %s", res.Error)
	}
	if len(res.Normalized) != 1 || res.Normalized[0].Name != "JavaScript" {
		t.Fatalf("normalized = %+v, want canonical JavaScript", res.Normalized)
	}
}

func TestNormalizePanicYieldsFailure(t *testing.T) {
	// A nil lookup makes resolution panic; the result must still be a
	// complete failure value, never a partial list.
	n := NewNormalizer(testNoise(), nil, nil, testLogger)

	res := n.Normalize(context.Background(), []string{"Python"})
	if res.Success {
		t.Fatal("expected failure result")
	}
	if res.Kind != FailNormalization {
		t.Fatalf("kind = %q, want %q", res.Kind, FailNormalization)
	}
	if res.Normalized == nil || res.Unmatched == nil {
		t.Fatal("failure result must carry empty, non-nil lists")
	}
}
