package app

import (
	"context"
	"log"
	"time"

	"skilltrack/internal/config"
	"skilltrack/internal/database"
	dbpostgres "skilltrack/internal/database/postgres"
	"skilltrack/internal/extraction"
	"skilltrack/internal/infrastructure/cache"
	"skilltrack/internal/nlp"
	"skilltrack/internal/pipeline"
	"skilltrack/internal/repository"
	"skilltrack/internal/textproc"
	"skilltrack/internal/usecase"
	"skilltrack/internal/vocab"
)

// Container wires the whole dependency graph once; both binaries build
// on it.
type Container struct {
	Config config.Config
	Log    *log.Logger

	DB    database.DB
	Cache *cache.Redis

	Skills     repository.SkillRepository
	Categories repository.CategoryRepository
	Jobs       repository.JobRepository

	Lookup *vocab.Lookup
	Models *nlp.Provider

	Extraction *extraction.Service
	Pipeline   *pipeline.JobSkillPipeline

	SkillUC      usecase.SkillUsecase
	CategoryUC   usecase.CategoryUsecase
	ExtractionUC usecase.ExtractionUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Log: logger, DB: db}
	c.Cache = cache.NewRedis(cfg.Redis, logger)

	c.Skills = repository.NewPostgresSkillRepository(db)
	c.Categories = repository.NewPostgresCategoryRepository(db)
	c.Jobs = repository.NewPostgresJobRepository(db)

	c.Lookup = vocab.NewLookup(c.Skills, logger)
	c.Models = nlp.NewProvider(c.phraseSource(), logger)

	noise := textproc.NewNoiseClassifier(textproc.DefaultNoiseConfig())
	extractor := extraction.NewExtractor(c.Models, c.Cache, cfg.Extraction, logger)
	normalizer := extraction.NewNormalizer(noise, c.Lookup, c.Skills, logger)
	categorizer := extraction.NewCategorizer(c.Categories, extraction.MembershipKeywordFuzzy, cfg.Extraction.OverlapRatio, logger)
	c.Extraction = extraction.NewService(extractor, normalizer, categorizer, logger)

	c.Pipeline = pipeline.NewJobSkillPipeline(c.Jobs, c.Skills, c.Extraction, c.Lookup, c.Models, logger)

	c.SkillUC = usecase.NewSkillUsecase(c.Skills, c.Lookup, c.Models, logger)
	c.CategoryUC = usecase.NewCategoryUsecase(c.Categories, logger)
	c.ExtractionUC = usecase.NewExtractionUsecase(c.Extraction, cfg.Extraction.Workers)

	return c, nil
}

// phraseSource feeds the matcher every active skill name and variant so
// the model recognizes what the vocabulary already knows.
func (c *Container) phraseSource() nlp.PhraseSource {
	return func(ctx context.Context) ([]string, error) {
		skills, err := c.Skills.ListActiveSkills(ctx)
		if err != nil {
			return nil, err
		}
		variants, err := c.Skills.ListVariants(ctx)
		if err != nil {
			return nil, err
		}

		out := make([]string, 0, len(skills)+len(variants))
		for _, s := range skills {
			out = append(out, s.Name)
		}
		for _, v := range variants {
			out = append(out, v.Name)
		}
		return out, nil
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
