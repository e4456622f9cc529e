package hrpartner

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hr-partner/hrp/internal/normalize"
)

type Candidates struct {
	Items []*Candidate
}

// Candidate is a résumé record. Several fields are kept loose on purpose:
// education arrives either as free text or a list of records, the three
// skill fields overlap, and the rich candidateStatus takes precedence over
// the legacy status string when present.
type Candidate struct {
	ID       int64  `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
	Position string `json:"position,omitempty"`
	Location string `json:"location,omitempty"`
	Salary   string `json:"salary,omitempty"`

	HardSkills []string `json:"hardSkills,omitempty"`
	SoftSkills []string `json:"softSkills,omitempty"`
	Skills     any      `json:"skills,omitempty"`

	Education      any               `json:"education,omitempty"`
	WorkExperience []*WorkExperience `json:"workExperience,omitempty"`

	Status           string           `json:"status,omitempty"`
	CandidateStatus  *CandidateStatus `json:"candidateStatus,omitempty"`
	MatchedVacancies []MatchedVacancy `json:"matchedVacancies,omitempty"`

	Source    string `json:"source,omitempty"`
	ResumeURL string `json:"resumeUrl,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type WorkExperience struct {
	CompanyName  string   `json:"company_name,omitempty" mapstructure:"company_name"`
	Role         string   `json:"role,omitempty"`
	StartDate    string   `json:"start_date,omitempty" mapstructure:"start_date"`
	EndDate      string   `json:"end_date,omitempty" mapstructure:"end_date"`
	Technologies []string `json:"technologies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// CandidateStatus is the backend-assigned rich status enumeration entry.
type CandidateStatus struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type MatchedVacancy struct {
	VacancyID int64  `json:"vacancyId"`
	Title     string `json:"title"`
}

// Résumé files accepted by the upload endpoint.
var allowedResumeExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

func (c *Client) GetCandidates(ctx context.Context) (*Candidates, error) {
	var items []*Candidate
	if err := c.getJSON(ctx, "/resumes", nil, &items); err != nil {
		return nil, err
	}

	return &Candidates{Items: items}, nil
}

func (c *Client) GetCandidate(ctx context.Context, id int64) (*Candidate, error) {
	var candidate *Candidate
	if err := c.getJSON(ctx, fmt.Sprintf("/resumes/%d", id), nil, &candidate); err != nil {
		return nil, err
	}

	return candidate, nil
}

func (c *Client) CreateCandidate(ctx context.Context, candidate *Candidate) error {
	return c.sendJSON(ctx, http.MethodPost, "/resumes", candidate, nil)
}

func (c *Client) UpdateCandidate(ctx context.Context, id int64, candidate *Candidate) error {
	return c.sendJSON(ctx, http.MethodPut, fmt.Sprintf("/resumes/%d", id), candidate, nil)
}

func (c *Client) DeleteCandidate(ctx context.Context, id int64) error {
	return c.deleteJSON(ctx, fmt.Sprintf("/resumes/%d", id))
}

// UploadResume imports a candidate from a résumé file. Only PDF, DOC and
// DOCX files are accepted.
func (c *Client) UploadResume(ctx context.Context, fileName string, file io.Reader, email string) error {
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedResumeExtensions[ext] {
		return fmt.Errorf("unsupported resume file type %q: want pdf, doc or docx", ext)
	}

	fields := map[string]string{"email": email}

	return c.postMultipart(ctx, "/resumes/upload", fields, "file", fileName, file, nil)
}

// UpdateCandidateStatus assigns a status from the /candidate-status
// enumeration to a résumé.
func (c *Client) UpdateCandidateStatus(ctx context.Context, resumeID, statusID int64) error {
	return c.sendJSON(ctx, http.MethodPost, "/resumes/update-status", map[string]int64{
		"resumeId": resumeID,
		"statusId": statusID,
	}, nil)
}

// GetCandidateStatuses returns the backend status enumeration.
func (c *Client) GetCandidateStatuses(ctx context.Context) ([]*CandidateStatus, error) {
	var statuses []*CandidateStatus
	if err := c.getJSON(ctx, "/candidate-status", nil, &statuses); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (c *Candidates) FindByID(id int64) *Candidate {
	for _, candidate := range c.Items {
		if candidate.ID == id {
			return candidate
		}
	}
	return nil
}

// AllSkills unions the three possibly-overlapping skill sources for display.
// No de-duplication is guaranteed by the backend and none is applied here.
func (c *Candidate) AllSkills() []string {
	skills := make([]string, 0, len(c.HardSkills)+len(c.SoftSkills))
	skills = append(skills, normalize.Skills(c.HardSkills)...)
	skills = append(skills, normalize.Skills(c.SoftSkills)...)
	skills = append(skills, normalize.Skills(c.Skills)...)

	return skills
}

// EducationText returns the merged education display string.
func (c *Candidate) EducationText() string {
	return normalize.Education(c.Education)
}

// StatusTitle returns the display status: the rich backend-assigned status
// wins over the legacy free-form field.
func (c *Candidate) StatusTitle() string {
	if c.CandidateStatus != nil && c.CandidateStatus.Title != "" {
		return c.CandidateStatus.Title
	}
	return c.Status
}
