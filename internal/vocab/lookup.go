package vocab

import (
	"context"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"skilltrack/internal/domain/skill"
)

// Source is the slice of the vocabulary store the lookup cache reads.
// Blacklisted skills and their variants are excluded by the store.
type Source interface {
	ListActiveSkills(ctx context.Context) ([]skill.CanonicalSkill, error)
	ListVariants(ctx context.Context) ([]skill.Variant, error)
}

type index map[string]skill.CanonicalSkill

// Lookup maps every known skill name and variant to its canonical
// record. Refresh replaces the whole index atomically, so concurrent
// readers see either the old or the new mapping, never a partial one.
type Lookup struct {
	source Source
	log    *log.Logger

	idx atomic.Pointer[index]
	mu  sync.Mutex
}

func NewLookup(source Source, logger *log.Logger) *Lookup {
	if logger == nil {
		logger = log.Default()
	}
	return &Lookup{source: source, log: logger}
}

// Find resolves a name to its canonical skill: exact match first, then
// case-folded. The index is built on first use.
func (l *Lookup) Find(ctx context.Context, name string) (skill.CanonicalSkill, bool) {
	idx := l.idx.Load()
	if idx == nil {
		l.Refresh(ctx)
		idx = l.idx.Load()
	}
	if idx == nil {
		return skill.CanonicalSkill{}, false
	}

	m := *idx
	if s, ok := m[name]; ok {
		return s, true
	}
	if s, ok := m[strings.ToLower(name)]; ok {
		return s, true
	}
	return skill.CanonicalSkill{}, false
}

// Refresh discards and rebuilds the index. Callers must invoke it after
// any write to skills or variants; the cache is not reactive. When the
// store is unavailable the index becomes empty so extraction degrades
// to everything-unmatched instead of failing.
func (l *Lookup) Refresh(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := index{}

	skills, err := l.source.ListActiveSkills(ctx)
	if err != nil {
		l.log.Printf("component=skill_lookup status=degraded err=%v", err)
		l.idx.Store(&next)
		return
	}

	byID := make(map[string]skill.CanonicalSkill, len(skills))
	for _, s := range skills {
		byID[s.ID.String()] = s
		insert(next, s.Name, s)
	}

	variants, err := l.source.ListVariants(ctx)
	if err != nil {
		l.log.Printf("component=skill_lookup status=degraded err=%v", err)
		l.idx.Store(&next)
		return
	}
	for _, v := range variants {
		owner, ok := byID[v.SkillID.String()]
		if !ok {
			continue
		}
		insert(next, v.Name, owner)
	}

	l.idx.Store(&next)
	l.log.Printf("component=skill_lookup status=refreshed skills=%d variants=%d keys=%d", len(skills), len(variants), len(next))
}

// Size returns the number of indexed keys.
func (l *Lookup) Size() int {
	idx := l.idx.Load()
	if idx == nil {
		return 0
	}
	return len(*idx)
}

func insert(m index, name string, s skill.CanonicalSkill) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	folded := strings.ToLower(name)
	m[folded] = s
	if folded != name {
		m[name] = s
	}
}
