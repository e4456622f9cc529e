package hrpartner

import "testing"

func TestCopyPayload(t *testing.T) {
	original := &Vacancy{
		ID:        7,
		Title:     "Go Developer",
		Company:   "Acme",
		Status:    "active",
		CreatedAt: "2026-01-15T10:00:00",
		Skills:    []string{"Go", "PostgreSQL"},
	}

	payload := original.CopyPayload()

	if payload.ID != 0 {
		t.Fatalf("expected id to be dropped, got %d", payload.ID)
	}
	if payload.CreatedAt != "" {
		t.Fatalf("expected createdAt to be dropped, got %q", payload.CreatedAt)
	}
	if payload.Title != "Go Developer (копия)" {
		t.Fatalf("unexpected title: %q", payload.Title)
	}
	if payload.Company != "Acme" {
		t.Fatalf("expected company to be copied, got %q", payload.Company)
	}
	if original.ID != 7 || original.Title != "Go Developer" {
		t.Fatalf("original must not be mutated")
	}
}

func TestVacancySkillList(t *testing.T) {
	v := &Vacancy{Skills: "['React', 'Go']"}

	skills := v.SkillList()
	if len(skills) != 2 || skills[0] != "React" || skills[1] != "Go" {
		t.Fatalf("unexpected skills: %v", skills)
	}
}

func TestFindByID(t *testing.T) {
	vacancies := &Vacancies{Items: []*Vacancy{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
	}}

	if got := vacancies.FindByID(2); got == nil || got.Title != "Two" {
		t.Fatalf("unexpected result: %+v", got)
	}
	if got := vacancies.FindByID(99); got != nil {
		t.Fatalf("expected nil for unknown id, got %+v", got)
	}
}

func TestTitlesPreserveListOrder(t *testing.T) {
	vacancies := &Vacancies{Items: []*Vacancy{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
		{ID: 3, Title: "Three"},
	}}

	titles := vacancies.Titles()
	if len(titles) != vacancies.Len() {
		t.Fatalf("expected %d titles, got %d", vacancies.Len(), len(titles))
	}
	// Selecting the n-th title must address the n-th vacancy.
	for i, want := range []string{"One", "Two", "Three"} {
		if titles[i] != want {
			t.Fatalf("expected title %q at %d, got %q", want, i, titles[i])
		}
	}
}

func TestCandidateStatusTitlePrecedence(t *testing.T) {
	c := &Candidate{
		Status:          "new",
		CandidateStatus: &CandidateStatus{ID: 3, Title: "Автоподбор"},
	}
	if got := c.StatusTitle(); got != "Автоподбор" {
		t.Fatalf("expected rich status to win, got %q", got)
	}

	c = &Candidate{Status: "new"}
	if got := c.StatusTitle(); got != "new" {
		t.Fatalf("expected legacy status fallback, got %q", got)
	}
}
