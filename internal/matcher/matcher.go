// Package matcher orchestrates on-demand résumé-to-vacancy matching: it
// validates the supplied sources, picks the right backend operation for the
// source-kind combination, enforces single-flight, and keeps a small recency
// buffer of results.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hr-partner/hrp/internal/hrpartner"
)

// recentLimit bounds the in-memory recent-history buffer.
const recentLimit = 5

// ErrMatchInProgress is returned when Perform is called while another match
// is still in flight. The policy is reject-new: the caller re-triggers after
// the current request settles.
var ErrMatchInProgress = errors.New("a match request is already in progress")

// State is the orchestrator lifecycle state.
type State int

const (
	StateIdle State = iota
	StateRequesting
	StateSucceeded
	StateFailed
)

// Backend is the slice of the HR Partner client the orchestrator calls.
// *hrpartner.Client implements it.
type Backend interface {
	MatchResumeFileToVacancyURL(ctx context.Context, file *hrpartner.ResumeFile, vacancyURL string) (*hrpartner.MatchResult, error)
	MatchResumeFileToVacancyText(ctx context.Context, file *hrpartner.ResumeFile, vacancyText string) (*hrpartner.MatchResult, error)
	MatchResumeURLToVacancyURL(ctx context.Context, resumeURL, vacancyURL string) (*hrpartner.MatchResult, error)
	MatchResumeURLToVacancyText(ctx context.Context, resumeURL, vacancyText string) (*hrpartner.MatchResult, error)
	MatchResumeTextToVacancyURL(ctx context.Context, resumeText, vacancyURL string) (*hrpartner.MatchResult, error)
	MatchResumeTextToVacancyText(ctx context.Context, resumeText, vacancyText string) (*hrpartner.MatchResult, error)
	MatchFull(ctx context.Context, resumeID, vacancyID int64) (*hrpartner.MatchResult, error)
	GetMatchHistory(ctx context.Context, page, limit int) (*hrpartner.MatchPage, error)
	GetMatch(ctx context.Context, id int64) (*hrpartner.MatchResult, error)
}

type Orchestrator struct {
	backend Backend
	logger  *zap.Logger

	mu       sync.Mutex
	state    State
	inFlight bool
	current  *hrpartner.MatchResult
	recent   []*hrpartner.MatchResult
}

func New(backend Backend, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		backend: backend,
		logger:  logger,
		state:   StateIdle,
	}
}

// Perform validates both sources, dispatches exactly one backend operation
// for the source-kind combination, and on success caches the result as
// current and prepends it to the recent buffer. While a request is in
// flight any further Perform call returns ErrMatchInProgress.
func (o *Orchestrator) Perform(ctx context.Context, resume ResumeSource, vacancy VacancySource) (*hrpartner.MatchResult, error) {
	if err := resume.validate(); err != nil {
		return nil, err
	}
	if err := vacancy.validate(); err != nil {
		return nil, err
	}
	if (resume.Kind == KindRecord) != (vacancy.Kind == KindRecord) {
		return nil, validationErr("source", "record-id matching requires both a resume id and a vacancy id")
	}

	if err := o.acquire(); err != nil {
		return nil, err
	}

	o.logger.Debug("performing match",
		zap.Stringer("resume_source", resume.Kind),
		zap.Stringer("vacancy_source", vacancy.Kind),
	)

	result, err := o.dispatch(ctx, resume, vacancy)
	if err == nil && result == nil {
		// The transport tolerates empty 2xx bodies; an absent match result
		// is still a failure up here.
		err = errors.New("backend returned no match result")
	}
	if err != nil {
		o.release(nil)
		return nil, err
	}

	o.release(result)

	return result, nil
}

func (o *Orchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.inFlight {
		return ErrMatchInProgress
	}
	o.inFlight = true
	o.state = StateRequesting

	return nil
}

// release settles the in-flight request. A nil result marks failure; nothing
// partial is ever cached.
func (o *Orchestrator) release(result *hrpartner.MatchResult) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.inFlight = false
	if result == nil {
		o.state = StateFailed
		return
	}

	o.state = StateSucceeded
	o.current = result
	o.recent = append([]*hrpartner.MatchResult{result}, o.recent...)
	if len(o.recent) > recentLimit {
		o.recent = o.recent[:recentLimit]
	}
}

// dispatch covers the full cross product of source kinds. Mixed record and
// non-record pairs were rejected during validation, so both sides are
// records exactly when one of them is.
func (o *Orchestrator) dispatch(ctx context.Context, resume ResumeSource, vacancy VacancySource) (*hrpartner.MatchResult, error) {
	if resume.Kind == KindRecord {
		return o.backend.MatchFull(ctx, resume.RecordID, vacancy.RecordID)
	}

	switch resume.Kind {
	case KindFile:
		file := &hrpartner.ResumeFile{Name: resume.FileName, Content: resume.Content, Email: resume.Email}
		switch vacancy.Kind {
		case KindURL:
			return o.backend.MatchResumeFileToVacancyURL(ctx, file, CleanURL(vacancy.URL))
		default:
			return o.backend.MatchResumeFileToVacancyText(ctx, file, vacancy.Text)
		}
	case KindURL:
		switch vacancy.Kind {
		case KindURL:
			return o.backend.MatchResumeURLToVacancyURL(ctx, CleanURL(resume.URL), CleanURL(vacancy.URL))
		default:
			return o.backend.MatchResumeURLToVacancyText(ctx, CleanURL(resume.URL), vacancy.Text)
		}
	case KindText:
		switch vacancy.Kind {
		case KindURL:
			return o.backend.MatchResumeTextToVacancyURL(ctx, resume.Text, CleanURL(vacancy.URL))
		default:
			return o.backend.MatchResumeTextToVacancyText(ctx, resume.Text, vacancy.Text)
		}
	default:
		return nil, fmt.Errorf("unsupported resume source kind %v", resume.Kind)
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Current returns the last successful match, nil when none.
func (o *Orchestrator) Current() *hrpartner.MatchResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.current
}

// Recent returns a copy of the recency buffer, newest first.
func (o *Orchestrator) Recent() []*hrpartner.MatchResult {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]*hrpartner.MatchResult, len(o.recent))
	copy(out, o.recent)

	return out
}

// History fetches one page of the persisted match history.
func (o *Orchestrator) History(ctx context.Context, page, limit int) (*hrpartner.MatchPage, error) {
	return o.backend.GetMatchHistory(ctx, page, limit)
}

// Get fetches one persisted match by id and caches it as current.
func (o *Orchestrator) Get(ctx context.Context, id int64) (*hrpartner.MatchResult, error) {
	result, err := o.backend.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, fmt.Errorf("match %d not found", id)
	}

	o.mu.Lock()
	o.current = result
	o.mu.Unlock()

	return result, nil
}
