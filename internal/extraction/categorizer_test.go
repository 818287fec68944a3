package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"skilltrack/internal/domain/skill"
	"skilltrack/internal/repository"

	"github.com/google/uuid"
)

type stubCategoryStore struct {
	groups     []repository.CategoryWithItems
	err        error
	increments map[uuid.UUID]int
}

func newStubCategoryStore(groups ...repository.CategoryWithItems) *stubCategoryStore {
	return &stubCategoryStore{groups: groups, increments: map[uuid.UUID]int{}}
}

func (s *stubCategoryStore) ListCategories(context.Context, string) ([]skill.Category, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make([]skill.Category, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g.Category)
	}
	return out, nil
}

func (s *stubCategoryStore) ListCategoryItems(_ context.Context, categoryID uuid.UUID) ([]skill.CategoryItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, g := range s.groups {
		if g.Category.ID == categoryID {
			return g.Items, nil
		}
	}
	return nil, nil
}

func (s *stubCategoryStore) ListCategoriesWithItems(context.Context, string) ([]repository.CategoryWithItems, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.groups, nil
}

func (s *stubCategoryStore) IncrementUsage(_ context.Context, itemID uuid.UUID) error {
	s.increments[itemID]++
	return nil
}

func (s *stubCategoryStore) MostUsedItems(context.Context, int) ([]skill.CategoryItem, error) {
	return nil, nil
}

func category(name string) skill.Category {
	return skill.Category{ID: uuid.New(), Name: name, Type: skill.CategoryTypeSkill, CreatedAt: time.Now()}
}

func item(categoryID uuid.UUID, name string, keywords ...string) skill.CategoryItem {
	return skill.CategoryItem{
		ID:             uuid.New(),
		CategoryID:     categoryID,
		Name:           name,
		NormalizedName: skill.NormalizeName(name),
		Keywords:       keywords,
	}
}

func named(names ...string) []skill.CanonicalSkill {
	out := make([]skill.CanonicalSkill, 0, len(names))
	for _, n := range names {
		out = append(out, skill.CanonicalSkill{ID: uuid.New(), Name: n})
	}
	return out
}

func bucketNames(buckets map[string][]skill.CanonicalSkill, name string) []string {
	out := make([]string, 0, len(buckets[name]))
	for _, s := range buckets[name] {
		out = append(out, s.Name)
	}
	return out
}

func TestCategorizeByKeywordsExactAndFuzzy(t *testing.T) {
	langs := category("Programming Languages")
	web := category("Web Frameworks")
	store := newStubCategoryStore(
		repository.CategoryWithItems{
			Category: langs,
			Items: []skill.CategoryItem{
				item(langs.ID, "Python", "python", "py"),
				item(langs.ID, "JavaScript", "javascript", "js"),
			},
		},
		repository.CategoryWithItems{
			Category: web,
			Items: []skill.CategoryItem{
				item(web.ID, "Django", "django"),
			},
		},
	)
	c := NewCategorizer(store, MembershipKeywordFuzzy, 0.6, testLogger)

	buckets, err := c.Categorize(context.Background(), named("Python", "Django", "Fortran"))
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}

	if got := bucketNames(buckets, "Programming Languages"); len(got) != 1 || got[0] != "Python" {
		t.Fatalf("languages bucket = %v", got)
	}
	if got := bucketNames(buckets, "Web Frameworks"); len(got) != 1 || got[0] != "Django" {
		t.Fatalf("frameworks bucket = %v", got)
	}
	if got := bucketNames(buckets, BucketOther); len(got) != 1 || got[0] != "Fortran" {
		t.Fatalf("other bucket = %v", got)
	}
}

func TestCategorizeEverySkillLandsInExactlyOneBucket(t *testing.T) {
	langs := category("Programming Languages")
	store := newStubCategoryStore(repository.CategoryWithItems{
		Category: langs,
		Items:    []skill.CategoryItem{item(langs.ID, "Python", "python")},
	})
	c := NewCategorizer(store, MembershipKeywordFuzzy, 0.6, testLogger)

	in := named("Python", "Haskell", "Erlang", "python")
	buckets, err := c.Categorize(context.Background(), in)
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}

	total := 0
	for _, skills := range buckets {
		total += len(skills)
	}
	if total != len(in) {
		t.Fatalf("bucketed %d skills, want %d", total, len(in))
	}
}

func TestCategorizeAbbreviationIncrementsUsage(t *testing.T) {
	langs := category("Programming Languages")
	jsItem := item(langs.ID, "JavaScript", "javascript")
	store := newStubCategoryStore(repository.CategoryWithItems{
		Category: langs,
		Items:    []skill.CategoryItem{jsItem},
	})
	c := NewCategorizer(store, MembershipKeywordFuzzy, 0.6, testLogger)

	buckets, err := c.Categorize(context.Background(), named("js"))
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}
	if got := bucketNames(buckets, "Programming Languages"); len(got) != 1 {
		t.Fatalf("languages bucket = %v, want the abbreviation match", got)
	}
	if store.increments[jsItem.ID] != 1 {
		t.Fatalf("usage increments = %d, want 1", store.increments[jsItem.ID])
	}
}

func TestCategorizeWordOverlap(t *testing.T) {
	data := category("Data & ML")
	store := newStubCategoryStore(repository.CategoryWithItems{
		Category: data,
		Items:    []skill.CategoryItem{item(data.ID, "Machine Learning", "machine learning")},
	})
	c := NewCategorizer(store, MembershipKeywordFuzzy, 0.6, testLogger)

	// No substring relation, but both of the keyword's words occur.
	buckets, err := c.Categorize(context.Background(), named("learning machine systems"))
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}
	if got := bucketNames(buckets, "Data & ML"); len(got) != 1 {
		t.Fatalf("bucket = %v, want the overlap match", got)
	}
}

func TestCategorizeFirstCategoryWins(t *testing.T) {
	first := category("First")
	second := category("Second")
	store := newStubCategoryStore(
		repository.CategoryWithItems{
			Category: first,
			Items:    []skill.CategoryItem{item(first.ID, "Python", "python")},
		},
		repository.CategoryWithItems{
			Category: second,
			Items:    []skill.CategoryItem{item(second.ID, "Python Tools", "python")},
		},
	)
	c := NewCategorizer(store, MembershipKeywordFuzzy, 0.6, testLogger)

	buckets, err := c.Categorize(context.Background(), named("Python"))
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}
	if len(buckets["First"]) != 1 || len(buckets["Second"]) != 0 {
		t.Fatalf("first=%v second=%v, want the earlier category to win",
			bucketNames(buckets, "First"), bucketNames(buckets, "Second"))
	}
}

func TestCategorizeByLink(t *testing.T) {
	langs := category("Programming Languages")
	store := newStubCategoryStore(repository.CategoryWithItems{Category: langs})
	c := NewCategorizer(store, MembershipExactLink, 0.6, testLogger)

	linked := skill.CanonicalSkill{ID: uuid.New(), Name: "Python", CategoryID: &langs.ID}
	loose := skill.CanonicalSkill{ID: uuid.New(), Name: "Fortran"}

	buckets, err := c.Categorize(context.Background(), []skill.CanonicalSkill{linked, loose})
	if err != nil {
		t.Fatalf("categorize: %v", err)
	}
	if got := bucketNames(buckets, "Programming Languages"); len(got) != 1 || got[0] != "Python" {
		t.Fatalf("languages bucket = %v", got)
	}
	if got := bucketNames(buckets, BucketUncategorized); len(got) != 1 || got[0] != "Fortran" {
		t.Fatalf("uncategorized bucket = %v", got)
	}
}

func TestCategorizeStoreError(t *testing.T) {
	store := newStubCategoryStore()
	store.err = errors.New("connection refused")
	c := NewCategorizer(store, MembershipKeywordFuzzy, 0.6, testLogger)

	if _, err := c.Categorize(context.Background(), named("Python")); err == nil {
		t.Fatal("expected error from failing store")
	}
}
