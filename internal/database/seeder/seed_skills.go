package seeder

import (
	"context"
	"fmt"

	"skilltrack/internal/database"
)

type skillSeed struct {
	Name     string
	Variants []string
}

func skillSeeds() []skillSeed {
	return []skillSeed{
		{Name: "Python", Variants: []string{"python3", "py"}},
		{Name: "JavaScript", Variants: []string{"ECMAScript", "JS"}},
		{Name: "TypeScript", Variants: []string{"TS"}},
		{Name: "Java"},
		{Name: "Go", Variants: []string{"Golang"}},
		{Name: "Rust"},
		{Name: "PHP"},
		{Name: "Ruby"},
		{Name: "C#", Variants: []string{"CSharp"}},
		{Name: "C++"},
		{Name: "SQL"},
		{Name: "React", Variants: []string{"ReactJS", "React.js"}},
		{Name: "Angular"},
		{Name: "Vue", Variants: []string{"Vue.js"}},
		{Name: "Node.js", Variants: []string{"NodeJS"}},
		{Name: "Django"},
		{Name: "Flask"},
		{Name: "Spring", Variants: []string{"Spring Boot"}},
		{Name: "HTML"},
		{Name: "CSS"},
		{Name: "PostgreSQL", Variants: []string{"Postgres"}},
		{Name: "MySQL"},
		{Name: "MongoDB"},
		{Name: "Redis"},
		{Name: "Elasticsearch"},
		{Name: "AWS", Variants: []string{"Amazon Web Services"}},
		{Name: "Azure"},
		{Name: "GCP", Variants: []string{"Google Cloud"}},
		{Name: "Docker"},
		{Name: "Kubernetes", Variants: []string{"K8s"}},
		{Name: "Terraform"},
		{Name: "Git"},
		{Name: "Machine Learning", Variants: []string{"ML"}},
		{Name: "Deep Learning"},
		{Name: "Data Science"},
		{Name: "TensorFlow"},
		{Name: "PyTorch"},
		{Name: "Pandas"},
	}
}

type SkillsSeeder struct{}

func (SkillsSeeder) Name() string { return "skills" }

func (SkillsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "skills", "id", "name", "category_id", "is_blacklisted"); err != nil {
		return err
	}
	if err := ensureTableColumns(ctx, db, "skill_variants", "id", "skill_id", "name"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, s := range skillSeeds() {
		var skillID string
		err := tx.QueryRow(ctx, `
			INSERT INTO skills (id, name, is_blacklisted)
			VALUES (gen_random_uuid(), $1, FALSE)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			s.Name,
		).Scan(&skillID)
		if err != nil {
			return fmt.Errorf("skill %s: %w", s.Name, err)
		}

		for _, v := range s.Variants {
			if _, err := tx.Exec(ctx, `
				INSERT INTO skill_variants (id, skill_id, name)
				VALUES (gen_random_uuid(), $1, $2)
				ON CONFLICT (skill_id, name) DO NOTHING`,
				skillID, v,
			); err != nil {
				return fmt.Errorf("variant %s: %w", v, err)
			}
		}
	}

	return tx.Commit(ctx)
}
