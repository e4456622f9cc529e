package matcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/hr-partner/hrp/internal/hrpartner"
)

// stubBackend records calls and lets a test block an in-flight request.
type stubBackend struct {
	mu      sync.Mutex
	calls   []string
	result  *hrpartner.MatchResult
	err     error
	empty   bool
	block   chan struct{}
	started chan struct{}
	history *hrpartner.MatchPage
}

func (s *stubBackend) record(op string) (*hrpartner.MatchResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, op)
	block := s.block
	started := s.started
	s.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if block != nil {
		<-block
	}
	if s.err != nil {
		return nil, s.err
	}
	if s.empty {
		return nil, nil
	}
	if s.result != nil {
		return s.result, nil
	}
	return &hrpartner.MatchResult{Score: 0.5}, nil
}

func (s *stubBackend) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *stubBackend) MatchResumeFileToVacancyURL(_ context.Context, _ *hrpartner.ResumeFile, _ string) (*hrpartner.MatchResult, error) {
	return s.record("file-url")
}

func (s *stubBackend) MatchResumeFileToVacancyText(_ context.Context, _ *hrpartner.ResumeFile, _ string) (*hrpartner.MatchResult, error) {
	return s.record("file-text")
}

func (s *stubBackend) MatchResumeURLToVacancyURL(_ context.Context, _, _ string) (*hrpartner.MatchResult, error) {
	return s.record("url-url")
}

func (s *stubBackend) MatchResumeURLToVacancyText(_ context.Context, _, _ string) (*hrpartner.MatchResult, error) {
	return s.record("url-text")
}

func (s *stubBackend) MatchResumeTextToVacancyURL(_ context.Context, _, _ string) (*hrpartner.MatchResult, error) {
	return s.record("text-url")
}

func (s *stubBackend) MatchResumeTextToVacancyText(_ context.Context, _, _ string) (*hrpartner.MatchResult, error) {
	return s.record("text-text")
}

func (s *stubBackend) MatchFull(_ context.Context, _, _ int64) (*hrpartner.MatchResult, error) {
	return s.record("full")
}

func (s *stubBackend) GetMatchHistory(_ context.Context, _, _ int) (*hrpartner.MatchPage, error) {
	if s.history != nil {
		return s.history, nil
	}
	return &hrpartner.MatchPage{}, nil
}

func (s *stubBackend) GetMatch(_ context.Context, id int64) (*hrpartner.MatchResult, error) {
	return &hrpartner.MatchResult{ID: id}, nil
}

const longText = "Опытный разработчик Go с десятилетним стажем построения распределенных систем и обработки данных."

func TestPerformRejectsBadResumeURLBeforeNetwork(t *testing.T) {
	backend := &stubBackend{}
	o := New(backend, zap.NewNop())

	_, err := o.Perform(context.Background(), ResumeFromURL("not-a-url"), VacancyFromText(longText))

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	if verr.Field != "resumeUrl" {
		t.Fatalf("expected offending field resumeUrl, got %q", verr.Field)
	}
	if backend.callCount() != 0 {
		t.Fatalf("expected zero transport calls, got %d", backend.callCount())
	}
}

func TestPerformValidationCases(t *testing.T) {
	tests := []struct {
		name    string
		resume  ResumeSource
		vacancy VacancySource
		field   string
	}{
		{
			name:    "short resume text",
			resume:  ResumeFromText("too short"),
			vacancy: VacancyFromText(longText),
			field:   "resumeText",
		},
		{
			name:    "short vacancy text",
			resume:  ResumeFromText(longText),
			vacancy: VacancyFromText("short"),
			field:   "vacancyText",
		},
		{
			name:    "file without email",
			resume:  ResumeFromFile("resume.pdf", []byte("%PDF"), "no-at-sign"),
			vacancy: VacancyFromText(longText),
			field:   "email",
		},
		{
			name:    "bad vacancy url",
			resume:  ResumeFromText(longText),
			vacancy: VacancyFromURL("https://example.com/vacancy/1"),
			field:   "vacancyUrl",
		},
		{
			name:    "mixed record and text",
			resume:  ResumeFromRecord(1),
			vacancy: VacancyFromText(longText),
			field:   "source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &stubBackend{}
			o := New(backend, zap.NewNop())

			_, err := o.Perform(context.Background(), tt.resume, tt.vacancy)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T: %v", err, err)
			}
			if verr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, verr.Field)
			}
			if backend.callCount() != 0 {
				t.Fatalf("expected zero transport calls, got %d", backend.callCount())
			}
		})
	}
}

func TestPerformDispatch(t *testing.T) {
	tests := []struct {
		name    string
		resume  ResumeSource
		vacancy VacancySource
		op      string
	}{
		{
			name:    "file against url",
			resume:  ResumeFromFile("r.pdf", []byte("%PDF"), "a@b.c"),
			vacancy: VacancyFromURL("https://hh.ru/vacancy/123"),
			op:      "file-url",
		},
		{
			name:    "file against text",
			resume:  ResumeFromFile("r.pdf", []byte("%PDF"), "a@b.c"),
			vacancy: VacancyFromText(longText),
			op:      "file-text",
		},
		{
			name:    "url against url",
			resume:  ResumeFromURL("https://hh.ru/resume/abc123"),
			vacancy: VacancyFromURL("https://www.hh.ru/vacancy/9"),
			op:      "url-url",
		},
		{
			name:    "url against text",
			resume:  ResumeFromURL("@https://hh.ru/resume/abc123"),
			vacancy: VacancyFromText(longText),
			op:      "url-text",
		},
		{
			name:    "text against url",
			resume:  ResumeFromText(longText),
			vacancy: VacancyFromURL("https://hh.ru/vacancy/1"),
			op:      "text-url",
		},
		{
			name:    "text against text",
			resume:  ResumeFromText(longText),
			vacancy: VacancyFromText(longText),
			op:      "text-text",
		},
		{
			name:    "records use full match",
			resume:  ResumeFromRecord(3),
			vacancy: VacancyFromRecord(7),
			op:      "full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &stubBackend{}
			o := New(backend, zap.NewNop())

			if _, err := o.Perform(context.Background(), tt.resume, tt.vacancy); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(backend.calls) != 1 || backend.calls[0] != tt.op {
				t.Fatalf("expected single %q call, got %v", tt.op, backend.calls)
			}
		})
	}
}

func TestPerformSingleFlight(t *testing.T) {
	backend := &stubBackend{
		block:   make(chan struct{}),
		started: make(chan struct{}, 1),
	}
	o := New(backend, zap.NewNop())

	firstDone := make(chan error, 1)
	go func() {
		_, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText))
		firstDone <- err
	}()

	// Wait until the first request reaches the transport.
	<-backend.started

	_, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText))
	if !errors.Is(err, ErrMatchInProgress) {
		t.Fatalf("expected ErrMatchInProgress, got %v", err)
	}

	close(backend.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("unexpected error from first request: %v", err)
	}

	if backend.callCount() != 1 {
		t.Fatalf("expected exactly one transport call, got %d", backend.callCount())
	}

	// The orchestrator is usable again after the first request settles.
	backend.block = nil
	if _, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText)); err != nil {
		t.Fatalf("unexpected error after settle: %v", err)
	}
}

func TestPerformCachesResultAndBoundsRecent(t *testing.T) {
	backend := &stubBackend{}
	o := New(backend, zap.NewNop())

	for i := 0; i < recentLimit+2; i++ {
		backend.result = &hrpartner.MatchResult{ID: int64(i), Score: 0.9}
		if _, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	recent := o.Recent()
	if len(recent) != recentLimit {
		t.Fatalf("expected recent buffer capped at %d, got %d", recentLimit, len(recent))
	}
	if recent[0].ID != int64(recentLimit+1) {
		t.Fatalf("expected newest first, got id %d", recent[0].ID)
	}
	if o.Current().ID != int64(recentLimit+1) {
		t.Fatalf("expected current to be the latest result")
	}
	if o.State() != StateSucceeded {
		t.Fatalf("expected succeeded state, got %v", o.State())
	}
}

func TestPerformEmptyBackendResultIsAnError(t *testing.T) {
	backend := &stubBackend{empty: true}
	o := New(backend, zap.NewNop())

	result, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText))
	if err == nil {
		t.Fatalf("expected an error for an absent match result, got result %v", result)
	}
	if result != nil {
		t.Fatalf("expected nil result alongside the error, got %v", result)
	}

	if o.Current() != nil {
		t.Fatalf("expected no current match after an empty response")
	}
	if o.State() != StateFailed {
		t.Fatalf("expected failed state, got %v", o.State())
	}

	// The flight slot is released like any other failure.
	backend.empty = false
	if _, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText)); err != nil {
		t.Fatalf("unexpected error after empty response: %v", err)
	}
}

func TestPerformFailureCachesNothing(t *testing.T) {
	backend := &stubBackend{err: fmt.Errorf("backend exploded")}
	o := New(backend, zap.NewNop())

	_, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText))
	if err == nil || err.Error() != "backend exploded" {
		t.Fatalf("expected verbatim backend error, got %v", err)
	}

	if o.Current() != nil {
		t.Fatalf("expected no current match after failure")
	}
	if len(o.Recent()) != 0 {
		t.Fatalf("expected empty recent buffer after failure")
	}
	if o.State() != StateFailed {
		t.Fatalf("expected failed state, got %v", o.State())
	}

	// A follow-up request goes through: failure releases the flight slot.
	backend.err = nil
	if _, err := o.Perform(context.Background(), ResumeFromText(longText), VacancyFromText(longText)); err != nil {
		t.Fatalf("unexpected error after failure: %v", err)
	}
}
