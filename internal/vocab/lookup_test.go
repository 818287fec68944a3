package vocab

import (
	"context"
	"errors"
	"testing"

	"skilltrack/internal/domain/skill"

	"github.com/google/uuid"
)

type mockSource struct {
	skills   []skill.CanonicalSkill
	variants []skill.Variant
	err      error
}

func (m *mockSource) ListActiveSkills(context.Context) ([]skill.CanonicalSkill, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.skills, nil
}

func (m *mockSource) ListVariants(context.Context) ([]skill.Variant, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.variants, nil
}

func TestLookup_FindCaseVariants(t *testing.T) {
	py := skill.CanonicalSkill{ID: uuid.New(), Name: "Python"}
	js := skill.CanonicalSkill{ID: uuid.New(), Name: "JavaScript"}
	src := &mockSource{
		skills: []skill.CanonicalSkill{py, js},
		variants: []skill.Variant{
			{ID: uuid.New(), SkillID: js.ID, Name: "js"},
			{ID: uuid.New(), SkillID: js.ID, Name: "ECMAScript"},
		},
	}

	l := NewLookup(src, nil)
	ctx := context.Background()

	for _, name := range []string{"Python", "python", "PYTHON"} {
		got, ok := l.Find(ctx, name)
		if !ok || got.ID != py.ID {
			t.Fatalf("Find(%q) = %v ok=%t, want Python", name, got, ok)
		}
	}

	for _, name := range []string{"js", "JS", "ECMAScript", "ecmascript"} {
		got, ok := l.Find(ctx, name)
		if !ok || got.ID != js.ID {
			t.Fatalf("Find(%q) should resolve to JavaScript", name)
		}
	}

	if _, ok := l.Find(ctx, "Cobol"); ok {
		t.Fatalf("unknown skill must not resolve")
	}
}

func TestLookup_RefreshPicksUpNewSkills(t *testing.T) {
	src := &mockSource{}
	l := NewLookup(src, nil)
	ctx := context.Background()

	if _, ok := l.Find(ctx, "Rust"); ok {
		t.Fatalf("empty vocabulary should resolve nothing")
	}

	created := skill.CanonicalSkill{ID: uuid.New(), Name: "Rust"}
	src.skills = append(src.skills, created)
	l.Refresh(ctx)

	for _, name := range []string{"Rust", "rust", "RUST"} {
		got, ok := l.Find(ctx, name)
		if !ok || got.ID != created.ID {
			t.Fatalf("Find(%q) after refresh should resolve", name)
		}
	}
}

func TestLookup_FailSoftOnStoreError(t *testing.T) {
	src := &mockSource{err: errors.New("connection refused")}
	l := NewLookup(src, nil)

	if _, ok := l.Find(context.Background(), "Python"); ok {
		t.Fatalf("unavailable store must yield empty index, not a hit")
	}
	if l.Size() != 0 {
		t.Fatalf("expected empty index, got %d keys", l.Size())
	}
}
