package listctl

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hr-partner/hrp/internal/hrpartner"
)

// fakeStore keeps vacancies in memory and counts List calls.
type fakeStore struct {
	items     []*hrpartner.Vacancy
	nextID    int64
	listCalls int
	failWrite bool
}

func (f *fakeStore) List(_ context.Context) ([]*hrpartner.Vacancy, error) {
	f.listCalls++
	out := make([]*hrpartner.Vacancy, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeStore) Create(_ context.Context, v *hrpartner.Vacancy) error {
	if f.failWrite {
		return fmt.Errorf("write refused")
	}
	f.nextID++
	clone := *v
	clone.ID = f.nextID
	f.items = append(f.items, &clone)
	return nil
}

func (f *fakeStore) Update(_ context.Context, id int64, v *hrpartner.Vacancy) error {
	if f.failWrite {
		return fmt.Errorf("write refused")
	}
	for i, item := range f.items {
		if item.ID == id {
			clone := *v
			clone.ID = id
			f.items[i] = &clone
			return nil
		}
	}
	return fmt.Errorf("vacancy %d not found", id)
}

func (f *fakeStore) Delete(_ context.Context, id int64) error {
	if f.failWrite {
		return fmt.Errorf("write refused")
	}
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("vacancy %d not found", id)
}

func newVacancyFixture() *fakeStore {
	return &fakeStore{
		nextID: 3,
		items: []*hrpartner.Vacancy{
			{ID: 1, Title: "Go Developer", Status: "active"},
			{ID: 2, Title: "Java Developer", Status: "Активная"},
			{ID: 3, Title: "QA Engineer", Status: "open"},
		},
	}
}

func newController(store *fakeStore) *Controller[*hrpartner.Vacancy] {
	return New[*hrpartner.Vacancy](store, VacancyHooks(), zap.NewNop())
}

func TestFilterEmptyQueryTabZeroPassesAllStatusCasings(t *testing.T) {
	c := newController(newVacancyFixture())
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.Filter("", 0)
	if len(got) != 3 {
		t.Fatalf("expected full unfiltered set, got %d items", len(got))
	}
}

func TestFilterByStatusTab(t *testing.T) {
	store := newVacancyFixture()
	store.items = append(store.items, &hrpartner.Vacancy{ID: 4, Title: "PM", Status: "закрыта"})

	c := newController(store)
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	active := c.Filter("", VacancyTabActive)
	if len(active) != 3 {
		t.Fatalf("expected 3 active vacancies across casing variants, got %d", len(active))
	}

	closed := c.Filter("", VacancyTabClosed)
	if len(closed) != 1 || closed[0].ID != 4 {
		t.Fatalf("unexpected closed set: %d items", len(closed))
	}
}

func TestFilterCombinesTextAndStatus(t *testing.T) {
	c := newController(newVacancyFixture())
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := c.Filter("developer", VacancyTabActive)
	if len(got) != 2 {
		t.Fatalf("expected 2 developer vacancies, got %d", len(got))
	}

	got = c.Filter("go dev", 0)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("expected case-insensitive substring match, got %d items", len(got))
	}
}

func TestCreateRefreshesCollection(t *testing.T) {
	store := newVacancyFixture()
	c := newController(store)
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := store.listCalls
	err := c.Create(context.Background(), &hrpartner.Vacancy{Title: "DevOps", Status: "active"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.listCalls != before+1 {
		t.Fatalf("expected a reload after create")
	}
	if len(c.Items()) != 4 {
		t.Fatalf("expected 4 items after create, got %d", len(c.Items()))
	}
}

func TestFailedWriteLeavesListUntouched(t *testing.T) {
	store := newVacancyFixture()
	c := newController(store)
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	store.failWrite = true
	before := store.listCalls

	if err := c.Create(context.Background(), &hrpartner.Vacancy{Title: "DevOps"}); err == nil {
		t.Fatalf("expected error")
	}
	if err := c.Delete(context.Background(), 1); err == nil {
		t.Fatalf("expected error")
	}

	if store.listCalls != before {
		t.Fatalf("expected no reload after failed writes")
	}
	if len(c.Items()) != 3 {
		t.Fatalf("expected cached list untouched, got %d items", len(c.Items()))
	}
}

func TestDuplicateStripsIdentityAndMarksTitle(t *testing.T) {
	store := newVacancyFixture()
	c := newController(store)
	if _, err := c.Load(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	original := store.items[0]
	original.CreatedAt = "2026-01-01T00:00:00"

	if err := c.Duplicate(context.Background(), original); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	copied := store.items[len(store.items)-1]
	if !strings.HasSuffix(copied.Title, hrpartner.CopySuffix) {
		t.Fatalf("expected copy marker suffix, got %q", copied.Title)
	}
	if copied.CreatedAt != "" {
		t.Fatalf("expected createdAt dropped, got %q", copied.CreatedAt)
	}
	// The fake store assigned a fresh id, so the payload carried none.
	if copied.ID == original.ID {
		t.Fatalf("expected a new identity for the copy")
	}
}

func TestCandidateTextMatchCoversSkills(t *testing.T) {
	hooks := CandidateHooks()

	candidate := &hrpartner.Candidate{
		Name:       "Иванов Иван",
		Position:   "Backend Developer",
		HardSkills: []string{"Go", "PostgreSQL"},
	}

	if !hooks.TextMatch(candidate, "postgres") {
		t.Fatalf("expected skill substring match")
	}
	if !hooks.TextMatch(candidate, "иванов") {
		t.Fatalf("expected name match")
	}
	if hooks.TextMatch(candidate, "kotlin") {
		t.Fatalf("did not expect match")
	}
}

func TestCandidateTabMatchUsesRichStatusID(t *testing.T) {
	hooks := CandidateHooks()

	withStatus := &hrpartner.Candidate{CandidateStatus: &hrpartner.CandidateStatus{ID: 2, Title: "Отклонены"}}
	withoutStatus := &hrpartner.Candidate{Status: "new"}

	if !hooks.TabMatch(withStatus, 2) {
		t.Fatalf("expected tab 2 to match status id 2")
	}
	if hooks.TabMatch(withStatus, 3) {
		t.Fatalf("did not expect tab 3 to match status id 2")
	}
	if hooks.TabMatch(withoutStatus, 1) {
		t.Fatalf("candidates without a rich status belong to no tab")
	}
}
