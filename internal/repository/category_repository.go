package repository

import (
	"context"
	"errors"

	"skilltrack/internal/database"
	"skilltrack/internal/domain/skill"

	"github.com/jackc/pgx/v5"

	"github.com/google/uuid"
)

// CategoryWithItems is a category and its items in load order.
type CategoryWithItems struct {
	Category skill.Category
	Items    []skill.CategoryItem
}

// CategoryRepository is the category half of the vocabulary store.
// IncrementUsage is the one write the categorizer performs.
type CategoryRepository interface {
	ListCategories(ctx context.Context, categoryType string) ([]skill.Category, error)
	ListCategoryItems(ctx context.Context, categoryID uuid.UUID) ([]skill.CategoryItem, error)
	ListCategoriesWithItems(ctx context.Context, categoryType string) ([]CategoryWithItems, error)
	IncrementUsage(ctx context.Context, itemID uuid.UUID) error
	MostUsedItems(ctx context.Context, limit int) ([]skill.CategoryItem, error)
}

type PostgresCategoryRepository struct {
	db database.DB
}

func NewPostgresCategoryRepository(db database.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

func (r *PostgresCategoryRepository) ListCategories(ctx context.Context, categoryType string) ([]skill.Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, category_type, created_at
		FROM categories
		WHERE category_type = $1
		ORDER BY created_at ASC, name ASC`,
		categoryType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Category, 0)
	for rows.Next() {
		var c skill.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCategoryRepository) ListCategoryItems(ctx context.Context, categoryID uuid.UUID) ([]skill.CategoryItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, name, normalized_name, keywords, usage_count
		FROM category_items
		WHERE category_id = $1
		ORDER BY name ASC`,
		categoryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (r *PostgresCategoryRepository) ListCategoriesWithItems(ctx context.Context, categoryType string) ([]CategoryWithItems, error) {
	categories, err := r.ListCategories(ctx, categoryType)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryWithItems, 0, len(categories))
	for _, c := range categories {
		items, err := r.ListCategoryItems(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, CategoryWithItems{Category: c, Items: items})
	}
	return out, nil
}

func (r *PostgresCategoryRepository) IncrementUsage(ctx context.Context, itemID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `UPDATE category_items SET usage_count = usage_count + 1 WHERE id = $1`, itemID)
	return err
}

func (r *PostgresCategoryRepository) MostUsedItems(ctx context.Context, limit int) ([]skill.CategoryItem, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, category_id, name, normalized_name, keywords, usage_count
		FROM category_items
		ORDER BY usage_count DESC, name ASC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func scanItems(rows database.Rows) ([]skill.CategoryItem, error) {
	out := make([]skill.CategoryItem, 0)
	for rows.Next() {
		var it skill.CategoryItem
		if err := rows.Scan(&it.ID, &it.CategoryID, &it.Name, &it.NormalizedName, &it.Keywords, &it.UsageCount); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
