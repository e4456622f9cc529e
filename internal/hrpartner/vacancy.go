package hrpartner

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hr-partner/hrp/internal/normalize"
)

// CopySuffix is appended to the title of a duplicated vacancy.
const CopySuffix = " (копия)"

type Vacancies struct {
	Items []*Vacancy
}

type Vacancy struct {
	ID               int64  `json:"id,omitempty"`
	Title            string `json:"title,omitempty"`
	Description      string `json:"description,omitempty"`
	Requirements     string `json:"requirements,omitempty"`
	Company          string `json:"company,omitempty"`
	Responsibilities string `json:"responsibilities,omitempty"`
	// Skills may arrive as a native array, a bracketed pseudo-JSON string or
	// a comma-separated string. Kept loose here and normalized at the edge.
	Skills     any    `json:"skills,omitempty"`
	SalaryFrom int    `json:"salaryFrom,omitempty"`
	SalaryTo   int    `json:"salaryTo,omitempty"`
	Location   string `json:"location,omitempty"`
	Source     string `json:"source,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	Currency   string `json:"currency,omitempty"`
	Experience string `json:"experience,omitempty"`
	URL        string `json:"url,omitempty"`
	OriginalID string `json:"originalId,omitempty"`
	Status     string `json:"status,omitempty"`
	FormatWork string `json:"formatWork,omitempty"`
}

// VacancyStats are the dashboard counters returned by /vacancies/stats.
type VacancyStats struct {
	TotalVacancies      int `json:"totalVacancies"`
	ActiveVacancies     int `json:"activeVacancies"`
	Status5Vacancies    int `json:"status5Vacancies"`
	TotalCandidates     int `json:"totalCandidates"`
	HighScoreCandidates int `json:"highScoreCandidates"`
	MatchesToday        int `json:"matchesToday"`
}

// VacancyBrief is the structured request for AI vacancy generation.
type VacancyBrief struct {
	Position        string   `json:"position"`
	Company         string   `json:"company"`
	RequiredSkills  []string `json:"requiredSkills"`
	ExperienceYears int      `json:"experienceYears"`
	Location        string   `json:"location"`
	Description     string   `json:"description,omitempty"`
}

func (c *Client) GetVacancies(ctx context.Context) (*Vacancies, error) {
	var items []*Vacancy
	if err := c.getJSON(ctx, "/vacancies", nil, &items); err != nil {
		return nil, err
	}

	return &Vacancies{Items: items}, nil
}

func (c *Client) GetVacancy(ctx context.Context, id int64) (*Vacancy, error) {
	var vacancy *Vacancy
	if err := c.getJSON(ctx, fmt.Sprintf("/vacancies/%d", id), nil, &vacancy); err != nil {
		return nil, err
	}

	return vacancy, nil
}

func (c *Client) CreateVacancy(ctx context.Context, vacancy *Vacancy) error {
	return c.sendJSON(ctx, http.MethodPost, "/vacancies", vacancy, nil)
}

func (c *Client) UpdateVacancy(ctx context.Context, id int64, vacancy *Vacancy) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/vacancies/%d", id), vacancy, nil)
}

func (c *Client) DeleteVacancy(ctx context.Context, id int64) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/vacancies/%d", id))
}

func (c *Client) GetVacancyStats(ctx context.Context) (*VacancyStats, error) {
	var stats *VacancyStats
	if err := c.getJSON(ctx, "/vacancies/stats", nil, &stats); err != nil {
		return nil, err
	}

	return stats, nil
}

// GenerateVacancy asks the backend to draft a vacancy from a structured brief.
func (c *Client) GenerateVacancy(ctx context.Context, brief *VacancyBrief) error {
	return c.sendJSON(ctx, http.MethodPost, "/vacancies/generate", brief, nil)
}

// ParseVacancy imports a vacancy from a named job board by URL.
func (c *Client) ParseVacancy(ctx context.Context, source, url string) error {
	return c.sendJSON(ctx, http.MethodPost, "/vacancies/parse", map[string]string{
		"source": source,
		"url":    url,
	}, nil)
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

func (v *Vacancies) FindByID(id int64) *Vacancy {
	for _, vacancy := range v.Items {
		if vacancy.ID == id {
			return vacancy
		}
	}
	return nil
}

func (v *Vacancies) Titles() []string {
	titles := make([]string, 0, len(v.Items))
	for _, vacancy := range v.Items {
		titles = append(titles, vacancy.Title)
	}
	return titles
}

// SkillList returns the normalized skills of the vacancy.
func (v *Vacancy) SkillList() []string {
	return normalize.Skills(v.Skills)
}

// Salary returns the display form of the salary range.
func (v *Vacancy) Salary() string {
	return normalize.SalaryRange(v.SalaryFrom, v.SalaryTo, v.Currency)
}

// StatusLabel returns the canonical display status.
func (v *Vacancy) StatusLabel() string {
	return normalize.StatusLabel(v.Status)
}

// CopyPayload builds a creation payload for duplicating the vacancy: the
// identity and creation timestamp are dropped and the title gets a copy
// marker.
func (v *Vacancy) CopyPayload() *Vacancy {
	clone := *v
	clone.ID = 0
	clone.CreatedAt = ""
	clone.Title = v.Title + CopySuffix

	return &clone
}
