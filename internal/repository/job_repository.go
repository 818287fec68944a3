package repository

import (
	"context"

	"skilltrack/internal/database"

	"github.com/google/uuid"
)

// JobForExtraction is the slice of a job record the batch pipeline
// needs. Job ownership stays with the CRUD layer; this repository only
// reads descriptions and writes skill links.
type JobForExtraction struct {
	ID          uuid.UUID
	Title       string
	Description string
}

type JobRepository interface {
	ListJobsWithoutSkills(ctx context.Context, limit, offset int) ([]JobForExtraction, error)
	LinkSkills(ctx context.Context, jobID uuid.UUID, skillIDs []uuid.UUID) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) ListJobsWithoutSkills(ctx context.Context, limit, offset int) ([]JobForExtraction, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.db.Query(ctx, `
		SELECT j.id, j.title, j.description
		FROM jobs j
		WHERE NOT EXISTS (SELECT 1 FROM job_skills js WHERE js.job_id = j.id)
		ORDER BY j.created_at ASC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]JobForExtraction, 0)
	for rows.Next() {
		var j JobForExtraction
		if err := rows.Scan(&j.ID, &j.Title, &j.Description); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresJobRepository) LinkSkills(ctx context.Context, jobID uuid.UUID, skillIDs []uuid.UUID) error {
	if len(skillIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, sid := range skillIDs {
		if sid == uuid.Nil {
			continue
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO job_skills (job_id, skill_id)
			VALUES ($1, $2)
			ON CONFLICT (job_id, skill_id) DO NOTHING`,
			jobID, sid,
		); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
