package repository

import (
	"context"
	"strings"

	"skilltrack/internal/database"
	"skilltrack/internal/domain/skill"

	"github.com/google/uuid"
)

// SkillRepository is the canonical-skill half of the vocabulary store.
// Active listings exclude blacklisted skills; the lookup cache is built
// from those.
type SkillRepository interface {
	ListSkills(ctx context.Context) ([]skill.CanonicalSkill, error)
	ListActiveSkills(ctx context.Context) ([]skill.CanonicalSkill, error)
	ListVariants(ctx context.Context) ([]skill.Variant, error)
	GetSkillByName(ctx context.Context, name string) (skill.CanonicalSkill, bool, error)
	CreateSkill(ctx context.Context, name string, categoryID *uuid.UUID) (skill.CanonicalSkill, error)
	AddVariant(ctx context.Context, skillID uuid.UUID, name string) (skill.Variant, error)
	SetBlacklist(ctx context.Context, id uuid.UUID, blacklisted bool) (bool, error)
	IsBlacklisted(ctx context.Context, name string) (bool, error)
}

type PostgresSkillRepository struct {
	db database.DB
}

func NewPostgresSkillRepository(db database.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

func (r *PostgresSkillRepository) ListSkills(ctx context.Context) ([]skill.CanonicalSkill, error) {
	return r.listSkills(ctx, `SELECT id, name, category_id, is_blacklisted, created_at FROM skills ORDER BY name ASC`)
}

func (r *PostgresSkillRepository) ListActiveSkills(ctx context.Context) ([]skill.CanonicalSkill, error) {
	return r.listSkills(ctx, `SELECT id, name, category_id, is_blacklisted, created_at FROM skills WHERE is_blacklisted = FALSE ORDER BY name ASC`)
}

func (r *PostgresSkillRepository) listSkills(ctx context.Context, query string) ([]skill.CanonicalSkill, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.CanonicalSkill, 0)
	for rows.Next() {
		var s skill.CanonicalSkill
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID, &s.Blacklisted, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) ListVariants(ctx context.Context) ([]skill.Variant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT v.id, v.skill_id, v.name
		FROM skill_variants v
		JOIN skills s ON s.id = v.skill_id
		WHERE s.is_blacklisted = FALSE
		ORDER BY v.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]skill.Variant, 0)
	for rows.Next() {
		var v skill.Variant
		if err := rows.Scan(&v.ID, &v.SkillID, &v.Name); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRepository) GetSkillByName(ctx context.Context, name string) (skill.CanonicalSkill, bool, error) {
	var s skill.CanonicalSkill
	err := r.db.QueryRow(ctx,
		`SELECT id, name, category_id, is_blacklisted, created_at FROM skills WHERE LOWER(name) = LOWER($1)`,
		strings.TrimSpace(name),
	).Scan(&s.ID, &s.Name, &s.CategoryID, &s.Blacklisted, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return skill.CanonicalSkill{}, false, nil
		}
		return skill.CanonicalSkill{}, false, err
	}
	return s, true, nil
}

func (r *PostgresSkillRepository) CreateSkill(ctx context.Context, name string, categoryID *uuid.UUID) (skill.CanonicalSkill, error) {
	var s skill.CanonicalSkill
	err := r.db.QueryRow(ctx, `
		INSERT INTO skills (id, name, category_id, is_blacklisted)
		VALUES ($1, $2, $3, FALSE)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, category_id, is_blacklisted, created_at`,
		uuid.New(), strings.TrimSpace(name), categoryID,
	).Scan(&s.ID, &s.Name, &s.CategoryID, &s.Blacklisted, &s.CreatedAt)
	if err != nil {
		return skill.CanonicalSkill{}, err
	}
	return s, nil
}

func (r *PostgresSkillRepository) AddVariant(ctx context.Context, skillID uuid.UUID, name string) (skill.Variant, error) {
	v := skill.Variant{ID: uuid.New(), SkillID: skillID, Name: strings.TrimSpace(name)}
	_, err := r.db.Exec(ctx, `
		INSERT INTO skill_variants (id, skill_id, name)
		VALUES ($1, $2, $3)
		ON CONFLICT (skill_id, name) DO NOTHING`,
		v.ID, v.SkillID, v.Name,
	)
	if err != nil {
		return skill.Variant{}, err
	}
	return v, nil
}

func (r *PostgresSkillRepository) SetBlacklist(ctx context.Context, id uuid.UUID, blacklisted bool) (bool, error) {
	affected, err := r.db.Exec(ctx, `UPDATE skills SET is_blacklisted = $2 WHERE id = $1`, id, blacklisted)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PostgresSkillRepository) IsBlacklisted(ctx context.Context, name string) (bool, error) {
	var blacklisted bool
	err := r.db.QueryRow(ctx, `
		SELECT s.is_blacklisted
		FROM skills s
		LEFT JOIN skill_variants v ON v.skill_id = s.id
		WHERE LOWER(s.name) = LOWER($1) OR LOWER(v.name) = LOWER($1)
		LIMIT 1`,
		strings.TrimSpace(name),
	).Scan(&blacklisted)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, err
	}
	return blacklisted, nil
}
