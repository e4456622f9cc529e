package listctl

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/hr-partner/hrp/internal/hrpartner"
	"github.com/hr-partner/hrp/internal/normalize"
)

// Vacancy status tabs.
const (
	VacancyTabAll = iota
	VacancyTabActive
	VacancyTabClosed
)

// VacancyStore adapts the backend client to the generic controller.
type VacancyStore struct {
	Client *hrpartner.Client
}

func (s *VacancyStore) List(ctx context.Context) ([]*hrpartner.Vacancy, error) {
	vacancies, err := s.Client.GetVacancies(ctx)
	if err != nil {
		return nil, err
	}
	return vacancies.Items, nil
}

func (s *VacancyStore) Create(ctx context.Context, v *hrpartner.Vacancy) error {
	return s.Client.CreateVacancy(ctx, v)
}

func (s *VacancyStore) Update(ctx context.Context, id int64, v *hrpartner.Vacancy) error {
	return s.Client.UpdateVacancy(ctx, id, v)
}

func (s *VacancyStore) Delete(ctx context.Context, id int64) error {
	return s.Client.DeleteVacancy(ctx, id)
}

// SetStatus toggles a vacancy between active and closed. The backend has no
// dedicated status endpoint for vacancies, so the full record is re-sent.
func (s *VacancyStore) SetStatus(ctx context.Context, id int64, status string) error {
	vacancy, err := s.Client.GetVacancy(ctx, id)
	if err != nil {
		return err
	}
	if vacancy == nil {
		return fmt.Errorf("vacancy %d not found", id)
	}

	vacancy.Status = status

	return s.Client.UpdateVacancy(ctx, id, vacancy)
}

// NewVacancyController wires the vacancy store with vacancy filter policies.
func NewVacancyController(client *hrpartner.Client, logger *zap.Logger) *Controller[*hrpartner.Vacancy] {
	return New[*hrpartner.Vacancy](&VacancyStore{Client: client}, VacancyHooks(), logger)
}

// VacancyHooks returns the vacancy filter and duplication policies.
func VacancyHooks() Hooks[*hrpartner.Vacancy] {
	return Hooks[*hrpartner.Vacancy]{
		TextMatch: func(v *hrpartner.Vacancy, query string) bool {
			return strings.Contains(strings.ToLower(v.Title), strings.ToLower(query))
		},
		TabMatch: func(v *hrpartner.Vacancy, tab int) bool {
			switch tab {
			case VacancyTabActive:
				return normalize.IsActive(v.Status)
			case VacancyTabClosed:
				return normalize.IsClosed(v.Status)
			default:
				return true
			}
		},
		Copy: func(v *hrpartner.Vacancy) *hrpartner.Vacancy {
			return v.CopyPayload()
		},
	}
}
