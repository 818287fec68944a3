package pipeline

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"skilltrack/internal/config"
	"skilltrack/internal/domain/skill"
	"skilltrack/internal/extraction"
	"skilltrack/internal/nlp"
	"skilltrack/internal/repository"
	"skilltrack/internal/textproc"
	"skilltrack/internal/vocab"

	"github.com/google/uuid"
)

var testLogger = log.New(io.Discard, "", 0)

type fakeJobRepo struct {
	mu    sync.Mutex
	jobs  []repository.JobForExtraction
	links map[uuid.UUID][]uuid.UUID
}

func (r *fakeJobRepo) ListJobsWithoutSkills(_ context.Context, limit, offset int) ([]repository.JobForExtraction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// jobs with links fall out of the result set, like the NOT EXISTS query
	pending := make([]repository.JobForExtraction, 0, len(r.jobs))
	for _, j := range r.jobs {
		if len(r.links[j.ID]) == 0 {
			pending = append(pending, j)
		}
	}

	if offset >= len(pending) {
		return nil, nil
	}
	end := offset + limit
	if end > len(pending) {
		end = len(pending)
	}
	return pending[offset:end], nil
}

func (r *fakeJobRepo) LinkSkills(_ context.Context, jobID uuid.UUID, skillIDs []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.links == nil {
		r.links = map[uuid.UUID][]uuid.UUID{}
	}
	r.links[jobID] = append(r.links[jobID], skillIDs...)
	return nil
}

type fakeSkillRepo struct {
	mu     sync.Mutex
	skills map[string]skill.CanonicalSkill
}

func newFakeSkillRepo(names ...string) *fakeSkillRepo {
	r := &fakeSkillRepo{skills: map[string]skill.CanonicalSkill{}}
	for _, n := range names {
		r.skills[n] = skill.CanonicalSkill{ID: uuid.New(), Name: n}
	}
	return r
}

func (r *fakeSkillRepo) ListSkills(context.Context) ([]skill.CanonicalSkill, error) {
	return r.ListActiveSkills(context.Background())
}

func (r *fakeSkillRepo) ListActiveSkills(context.Context) ([]skill.CanonicalSkill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]skill.CanonicalSkill, 0, len(r.skills))
	for _, s := range r.skills {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeSkillRepo) ListVariants(context.Context) ([]skill.Variant, error) {
	return nil, nil
}

func (r *fakeSkillRepo) GetSkillByName(_ context.Context, name string) (skill.CanonicalSkill, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.skills[name]
	return s, ok, nil
}

func (r *fakeSkillRepo) CreateSkill(_ context.Context, name string, _ *uuid.UUID) (skill.CanonicalSkill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.skills[name]; ok {
		return s, nil
	}
	s := skill.CanonicalSkill{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	r.skills[name] = s
	return s, nil
}

func (r *fakeSkillRepo) AddVariant(_ context.Context, skillID uuid.UUID, name string) (skill.Variant, error) {
	return skill.Variant{ID: uuid.New(), SkillID: skillID, Name: name}, nil
}

func (r *fakeSkillRepo) SetBlacklist(context.Context, uuid.UUID, bool) (bool, error) {
	return true, nil
}

func (r *fakeSkillRepo) IsBlacklisted(context.Context, string) (bool, error) {
	return false, nil
}

type emptyCategoryStore struct{}

func (emptyCategoryStore) ListCategories(context.Context, string) ([]skill.Category, error) {
	return nil, nil
}

func (emptyCategoryStore) ListCategoryItems(context.Context, uuid.UUID) ([]skill.CategoryItem, error) {
	return nil, nil
}

func (emptyCategoryStore) ListCategoriesWithItems(context.Context, string) ([]repository.CategoryWithItems, error) {
	return nil, nil
}

func (emptyCategoryStore) IncrementUsage(context.Context, uuid.UUID) error { return nil }

func (emptyCategoryStore) MostUsedItems(context.Context, int) ([]skill.CategoryItem, error) {
	return nil, nil
}

func newTestPipeline(jobs *fakeJobRepo, skills *fakeSkillRepo) *JobSkillPipeline {
	provider := nlp.NewProvider(nil, testLogger)
	cfg := config.ExtractionConfig{NgramThreshold: 0.7, CacheTTL: time.Minute, Timeout: 5 * time.Second}
	extractor := extraction.NewExtractor(provider, nil, cfg, testLogger)
	lookup := vocab.NewLookup(skills, testLogger)
	noise := textproc.NewNoiseClassifier(textproc.DefaultNoiseConfig())
	normalizer := extraction.NewNormalizer(noise, lookup, skills, testLogger)
	categorizer := extraction.NewCategorizer(emptyCategoryStore{}, extraction.MembershipKeywordFuzzy, 0.6, testLogger)
	proc := extraction.NewService(extractor, normalizer, categorizer, testLogger)
	return NewJobSkillPipeline(jobs, skills, proc, lookup, provider, testLogger)
}

func TestPipelineLinksExtractedSkills(t *testing.T) {
	skills := newFakeSkillRepo("Python", "Django")
	jobID := uuid.New()
	jobs := &fakeJobRepo{jobs: []repository.JobForExtraction{
		{ID: jobID, Title: "Backend Engineer", Description: "Python and Django backend services."},
	}}

	p := newTestPipeline(jobs, skills)
	if err := p.Run(context.Background(), RunParams{Workers: 2}); err != nil {
		t.Fatalf("run: %v", err)
	}

	linked := jobs.links[jobID]
	if len(linked) < 2 {
		t.Fatalf("linked %d skills, want at least Python and Django: %v", len(linked), linked)
	}
}

func TestPipelineCreatesSkillsForUnmatched(t *testing.T) {
	// Kubernetes is in the matcher's phrase set but not in the store, so
	// it comes back unmatched and must be created.
	skills := newFakeSkillRepo("Python")
	jobID := uuid.New()
	jobs := &fakeJobRepo{jobs: []repository.JobForExtraction{
		{ID: jobID, Description: "Python services deployed on Kubernetes."},
	}}

	p := newTestPipeline(jobs, skills)
	if err := p.Run(context.Background(), RunParams{Workers: 1}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if _, ok, _ := skills.GetSkillByName(context.Background(), "Kubernetes"); !ok {
		t.Fatal("unmatched skill Kubernetes was not created")
	}
	if len(jobs.links[jobID]) != 2 {
		t.Fatalf("linked = %v, want Python and Kubernetes", jobs.links[jobID])
	}
}

func TestPipelineDrainsBacklogInOneRun(t *testing.T) {
	// With a page size of 1 and linked jobs dropping out of the pending
	// query, every job must still be processed in a single run, including
	// the empty one sitting between two real descriptions.
	skills := newFakeSkillRepo("Python", "Django")
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	jobs := &fakeJobRepo{jobs: []repository.JobForExtraction{
		{ID: ids[0], Description: "Python backend services."},
		{ID: ids[1], Description: "Django web applications."},
		{ID: ids[2], Description: "   "},
		{ID: ids[3], Description: "Python and Django together."},
	}}

	p := newTestPipeline(jobs, skills)
	if err := p.Run(context.Background(), RunParams{Workers: 1, Limit: 1}); err != nil {
		t.Fatalf("run: %v", err)
	}

	for _, id := range []uuid.UUID{ids[0], ids[1], ids[3]} {
		if len(jobs.links[id]) == 0 {
			t.Fatalf("job %s was never linked: links=%v", id, jobs.links)
		}
	}
	if len(jobs.links[ids[2]]) != 0 {
		t.Fatalf("empty job gained links: %v", jobs.links[ids[2]])
	}
}

func TestPipelineSkipsEmptyJobs(t *testing.T) {
	skills := newFakeSkillRepo("Python")
	jobs := &fakeJobRepo{jobs: []repository.JobForExtraction{
		{ID: uuid.New(), Title: "", Description: "   "},
	}}

	p := newTestPipeline(jobs, skills)
	if err := p.Run(context.Background(), RunParams{}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(jobs.links) != 0 {
		t.Fatalf("links = %v, want none", jobs.links)
	}
}
