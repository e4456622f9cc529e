package listctl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/hr-partner/hrp/internal/hrpartner"
)

// CandidateStore adapts the backend client to the generic controller.
type CandidateStore struct {
	Client *hrpartner.Client
}

func (s *CandidateStore) List(ctx context.Context) ([]*hrpartner.Candidate, error) {
	candidates, err := s.Client.GetCandidates(ctx)
	if err != nil {
		return nil, err
	}
	return candidates.Items, nil
}

func (s *CandidateStore) Create(ctx context.Context, c *hrpartner.Candidate) error {
	return s.Client.CreateCandidate(ctx, c)
}

func (s *CandidateStore) Update(ctx context.Context, id int64, c *hrpartner.Candidate) error {
	return s.Client.UpdateCandidate(ctx, id, c)
}

func (s *CandidateStore) Delete(ctx context.Context, id int64) error {
	return s.Client.DeleteCandidate(ctx, id)
}

// SetStatus assigns an entry of the /candidate-status enumeration, supplied
// as its numeric id.
func (s *CandidateStore) SetStatus(ctx context.Context, id int64, status string) error {
	statusID, err := strconv.ParseInt(status, 10, 64)
	if err != nil {
		return fmt.Errorf("candidate status must be a numeric id: %w", err)
	}

	return s.Client.UpdateCandidateStatus(ctx, id, statusID)
}

// NewCandidateController wires the candidate store with candidate filter
// policies.
func NewCandidateController(client *hrpartner.Client, logger *zap.Logger) *Controller[*hrpartner.Candidate] {
	return New[*hrpartner.Candidate](&CandidateStore{Client: client}, CandidateHooks(), logger)
}

// CandidateHooks returns the candidate filter policies. Candidates cannot be
// duplicated: a résumé belongs to one person.
func CandidateHooks() Hooks[*hrpartner.Candidate] {
	return Hooks[*hrpartner.Candidate]{
		TextMatch: func(c *hrpartner.Candidate, query string) bool {
			q := strings.ToLower(query)
			if strings.Contains(strings.ToLower(c.Name), q) {
				return true
			}
			if strings.Contains(strings.ToLower(c.Position), q) || strings.Contains(strings.ToLower(c.Role), q) {
				return true
			}
			for _, skill := range c.AllSkills() {
				if strings.Contains(strings.ToLower(skill), q) {
					return true
				}
			}
			return false
		},
		// Candidate tabs map 1:1 onto backend status ids.
		TabMatch: func(c *hrpartner.Candidate, tab int) bool {
			return c.CandidateStatus != nil && c.CandidateStatus.ID == int64(tab)
		},
	}
}
