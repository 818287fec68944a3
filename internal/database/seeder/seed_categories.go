package seeder

import (
	"context"
	"fmt"

	"skilltrack/internal/database"
	"skilltrack/internal/domain/skill"
)

type categoryItemSeed struct {
	Name     string
	Keywords []string
}

type categorySeed struct {
	Name  string
	Items []categoryItemSeed
}

// categorySeeds mirrors the keyword vocabulary the categorizer matches
// against. Keyword lists include the common spellings and
// abbreviations of each technology.
func categorySeeds() []categorySeed {
	return []categorySeed{
		{
			Name: "Programming Languages",
			Items: []categoryItemSeed{
				{Name: "Python", Keywords: []string{"python", "py", "python3"}},
				{Name: "JavaScript", Keywords: []string{"javascript", "js", "ecmascript", "es6"}},
				{Name: "TypeScript", Keywords: []string{"typescript", "ts"}},
				{Name: "Java", Keywords: []string{"java", "openjdk"}},
				{Name: "C#", Keywords: []string{"c#", "csharp", "dotnet", ".net"}},
				{Name: "C++", Keywords: []string{"c++", "cpp"}},
				{Name: "PHP", Keywords: []string{"php"}},
				{Name: "Ruby", Keywords: []string{"ruby"}},
				{Name: "Go", Keywords: []string{"go", "golang"}},
				{Name: "Rust", Keywords: []string{"rust"}},
				{Name: "Swift", Keywords: []string{"swift", "swiftui"}},
				{Name: "Kotlin", Keywords: []string{"kotlin"}},
				{Name: "SQL", Keywords: []string{"sql", "structured query language"}},
			},
		},
		{
			Name: "Web Technologies",
			Items: []categoryItemSeed{
				{Name: "React", Keywords: []string{"react", "reactjs", "react.js", "react native"}},
				{Name: "Angular", Keywords: []string{"angular", "angularjs"}},
				{Name: "Vue", Keywords: []string{"vue", "vuejs", "vue.js", "nuxt"}},
				{Name: "Node.js", Keywords: []string{"node", "nodejs", "node.js", "express"}},
				{Name: "Django", Keywords: []string{"django", "django rest framework"}},
				{Name: "Flask", Keywords: []string{"flask"}},
				{Name: "Spring", Keywords: []string{"spring", "spring boot"}},
				{Name: "Laravel", Keywords: []string{"laravel"}},
				{Name: "Rails", Keywords: []string{"rails", "ruby on rails"}},
				{Name: "HTML", Keywords: []string{"html", "html5"}},
				{Name: "CSS", Keywords: []string{"css", "css3", "sass", "scss"}},
				{Name: "Tailwind", Keywords: []string{"tailwind", "tailwindcss"}},
			},
		},
		{
			Name: "Cloud & DevOps",
			Items: []categoryItemSeed{
				{Name: "AWS", Keywords: []string{"aws", "amazon web services", "ec2", "s3", "lambda"}},
				{Name: "Azure", Keywords: []string{"azure", "microsoft azure"}},
				{Name: "GCP", Keywords: []string{"gcp", "google cloud", "google cloud platform"}},
				{Name: "Docker", Keywords: []string{"docker", "containerization"}},
				{Name: "Kubernetes", Keywords: []string{"kubernetes", "k8s", "helm"}},
				{Name: "Jenkins", Keywords: []string{"jenkins"}},
				{Name: "Terraform", Keywords: []string{"terraform", "infrastructure as code"}},
				{Name: "Ansible", Keywords: []string{"ansible"}},
				{Name: "Git", Keywords: []string{"git", "github", "gitlab", "version control"}},
				{Name: "CI/CD", Keywords: []string{"ci/cd", "continuous integration", "continuous deployment"}},
			},
		},
		{
			Name: "Databases",
			Items: []categoryItemSeed{
				{Name: "MySQL", Keywords: []string{"mysql", "mariadb"}},
				{Name: "PostgreSQL", Keywords: []string{"postgresql", "postgres", "psql"}},
				{Name: "MongoDB", Keywords: []string{"mongodb", "mongo"}},
				{Name: "Redis", Keywords: []string{"redis"}},
				{Name: "Elasticsearch", Keywords: []string{"elasticsearch", "elk stack"}},
				{Name: "SQLite", Keywords: []string{"sqlite"}},
				{Name: "SQL Server", Keywords: []string{"sql server", "mssql"}},
				{Name: "DynamoDB", Keywords: []string{"dynamodb"}},
			},
		},
		{
			Name: "Data & ML",
			Items: []categoryItemSeed{
				{Name: "Machine Learning", Keywords: []string{"machine learning", "ml"}},
				{Name: "Deep Learning", Keywords: []string{"deep learning", "neural networks"}},
				{Name: "Data Science", Keywords: []string{"data science", "data analysis"}},
				{Name: "Pandas", Keywords: []string{"pandas"}},
				{Name: "TensorFlow", Keywords: []string{"tensorflow"}},
				{Name: "PyTorch", Keywords: []string{"pytorch"}},
				{Name: "Spark", Keywords: []string{"spark", "apache spark"}},
			},
		},
	}
}

type CategoriesSeeder struct{}

func (CategoriesSeeder) Name() string { return "categories" }

func (CategoriesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := ensureTableColumns(ctx, db, "categories", "id", "name", "category_type"); err != nil {
		return err
	}
	if err := ensureTableColumns(ctx, db, "category_items", "id", "category_id", "name", "normalized_name", "keywords"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, cat := range categorySeeds() {
		var categoryID string
		err := tx.QueryRow(ctx, `
			INSERT INTO categories (id, name, category_type)
			VALUES (gen_random_uuid(), $1, $2)
			ON CONFLICT (name, category_type) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			cat.Name, skill.CategoryTypeSkill,
		).Scan(&categoryID)
		if err != nil {
			return fmt.Errorf("category %s: %w", cat.Name, err)
		}

		for _, it := range cat.Items {
			if _, err := tx.Exec(ctx, `
				INSERT INTO category_items (id, category_id, name, normalized_name, keywords)
				VALUES (gen_random_uuid(), $1, $2, $3, $4)
				ON CONFLICT (category_id, normalized_name) DO UPDATE SET keywords = EXCLUDED.keywords`,
				categoryID, it.Name, skill.NormalizeName(it.Name), it.Keywords,
			); err != nil {
				return fmt.Errorf("category item %s: %w", it.Name, err)
			}
		}
	}

	return tx.Commit(ctx)
}
