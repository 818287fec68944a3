package usecase

import (
	"context"
	"log"
	"strings"

	"skilltrack/internal/nlp"
	"skilltrack/internal/repository"
	"skilltrack/internal/vocab"

	"github.com/google/uuid"
)

type SkillItem struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	CategoryID  *uuid.UUID `json:"category_id,omitempty"`
	Blacklisted bool       `json:"blacklisted"`
}

type AddSkillParams struct {
	Name       string
	CategoryID *uuid.UUID
	Variants   []string
}

type SkillUsecase interface {
	ListSkills(ctx context.Context) ([]SkillItem, error)
	AddSkill(ctx context.Context, params AddSkillParams) (SkillItem, error)
	SetBlacklist(ctx context.Context, id uuid.UUID, blacklisted bool) error
}

// Skill owns the canonical vocabulary. Every write refreshes the lookup
// cache and resets the matcher so the next extraction sees the change.
type Skill struct {
	repo   repository.SkillRepository
	lookup *vocab.Lookup
	models *nlp.Provider
	log    *log.Logger
}

func NewSkillUsecase(repo repository.SkillRepository, lookup *vocab.Lookup, models *nlp.Provider, logger *log.Logger) *Skill {
	if logger == nil {
		logger = log.Default()
	}
	return &Skill{repo: repo, lookup: lookup, models: models, log: logger}
}

func (u *Skill) ListSkills(ctx context.Context) ([]SkillItem, error) {
	items, err := u.repo.ListSkills(ctx)
	if err != nil {
		u.log.Printf("usecase=skill op=list status=error err=%v", err)
		return nil, ErrInternal
	}

	out := make([]SkillItem, 0, len(items))
	for _, it := range items {
		out = append(out, SkillItem{ID: it.ID, Name: it.Name, CategoryID: it.CategoryID, Blacklisted: it.Blacklisted})
	}
	return out, nil
}

func (u *Skill) AddSkill(ctx context.Context, params AddSkillParams) (SkillItem, error) {
	name := strings.TrimSpace(params.Name)
	if name == "" {
		return SkillItem{}, ErrInvalidInput
	}

	created, err := u.repo.CreateSkill(ctx, name, params.CategoryID)
	if err != nil {
		u.log.Printf("usecase=skill op=add status=error name=%q err=%v", name, err)
		return SkillItem{}, ErrInternal
	}

	for _, v := range params.Variants {
		v = strings.TrimSpace(v)
		if v == "" || strings.EqualFold(v, name) {
			continue
		}
		if _, err := u.repo.AddVariant(ctx, created.ID, v); err != nil {
			u.log.Printf("usecase=skill op=add_variant status=error skill_id=%s variant=%q err=%v", created.ID, v, err)
		}
	}

	u.invalidate(ctx)
	return SkillItem{ID: created.ID, Name: created.Name, CategoryID: created.CategoryID, Blacklisted: created.Blacklisted}, nil
}

func (u *Skill) SetBlacklist(ctx context.Context, id uuid.UUID, blacklisted bool) error {
	if id == uuid.Nil {
		return ErrInvalidInput
	}

	found, err := u.repo.SetBlacklist(ctx, id, blacklisted)
	if err != nil {
		u.log.Printf("usecase=skill op=blacklist status=error skill_id=%s err=%v", id, err)
		return ErrInternal
	}
	if !found {
		return ErrNotFound
	}

	u.invalidate(ctx)
	return nil
}

func (u *Skill) invalidate(ctx context.Context) {
	if u.lookup != nil {
		u.lookup.Refresh(ctx)
	}
	if u.models != nil {
		u.models.Reset()
	}
}
