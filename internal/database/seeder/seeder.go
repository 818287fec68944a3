package seeder

import (
	"context"
	"fmt"
	"log"

	"skilltrack/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

type Runner struct {
	Seeders []Seeder
	Log     *log.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	logger := r.Log
	if logger == nil {
		logger = log.Default()
	}

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		logger.Printf("component=seeder status=done seeder=%s", s.Name())
	}
	return nil
}

// Run applies the default seeders: categories first, then skills.
func Run(ctx context.Context, db database.DB, logger *log.Logger) error {
	return Runner{
		Seeders: []Seeder{CategoriesSeeder{}, SkillsSeeder{}},
		Log:     logger,
	}.Run(ctx, db)
}
