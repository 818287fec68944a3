package usecase

import (
	"context"
	"log"

	"skilltrack/internal/domain/skill"
	"skilltrack/internal/repository"

	"github.com/google/uuid"
)

type CategoryItemView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	UsageCount int64     `json:"usage_count"`
}

type CategoryView struct {
	ID    uuid.UUID          `json:"id"`
	Name  string             `json:"name"`
	Items []CategoryItemView `json:"items"`
}

type CategoryUsecase interface {
	ListCategories(ctx context.Context) ([]CategoryView, error)
	MostUsed(ctx context.Context, limit int) ([]CategoryItemView, error)
}

type Category struct {
	repo repository.CategoryRepository
	log  *log.Logger
}

func NewCategoryUsecase(repo repository.CategoryRepository, logger *log.Logger) *Category {
	if logger == nil {
		logger = log.Default()
	}
	return &Category{repo: repo, log: logger}
}

func (u *Category) ListCategories(ctx context.Context) ([]CategoryView, error) {
	groups, err := u.repo.ListCategoriesWithItems(ctx, skill.CategoryTypeSkill)
	if err != nil {
		u.log.Printf("usecase=category op=list status=error err=%v", err)
		return nil, ErrInternal
	}

	out := make([]CategoryView, 0, len(groups))
	for _, g := range groups {
		view := CategoryView{ID: g.Category.ID, Name: g.Category.Name, Items: make([]CategoryItemView, 0, len(g.Items))}
		for _, it := range g.Items {
			view.Items = append(view.Items, CategoryItemView{ID: it.ID, Name: it.Name, UsageCount: it.UsageCount})
		}
		out = append(out, view)
	}
	return out, nil
}

func (u *Category) MostUsed(ctx context.Context, limit int) ([]CategoryItemView, error) {
	items, err := u.repo.MostUsedItems(ctx, limit)
	if err != nil {
		u.log.Printf("usecase=category op=most_used status=error err=%v", err)
		return nil, ErrInternal
	}

	out := make([]CategoryItemView, 0, len(items))
	for _, it := range items {
		out = append(out, CategoryItemView{ID: it.ID, Name: it.Name, UsageCount: it.UsageCount})
	}
	return out, nil
}
