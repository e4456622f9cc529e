package hrpartner

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mitchellh/mapstructure"
)

// MatchResult is the backend-computed compatibility assessment between one
// résumé and one vacancy. Immutable once received.
type MatchResult struct {
	ID                  int64    `json:"id,omitempty"`
	ResumeID            int64    `json:"resumeId,omitempty"`
	VacancyID           int64    `json:"vacancyId,omitempty"`
	Score               float64  `json:"score"`
	Verdict             string   `json:"verdict,omitempty"`
	MatchedSkills       []string `json:"matchedSkills,omitempty"`
	UnmatchedSkills     []string `json:"unmatchedSkills,omitempty"`
	Positives           []string `json:"positives,omitempty"`
	Negatives           []string `json:"negatives,omitempty"`
	LLMComment          string   `json:"llmComment,omitempty"`
	ClarifyingQuestions []string `json:"clarifyingQuestions,omitempty"`
	CreatedAt           string   `json:"createdAt,omitempty"`
}

// MatchPage is one page of the persisted match history.
type MatchPage struct {
	Items []*MatchResult
	Page  int
	Limit int
	Total int
}

// ResumeFile is an uploaded résumé with the owner's email, as the multipart
// matching endpoints require.
type ResumeFile struct {
	Name    string
	Content []byte
	Email   string
}

// MatchResumeFileToVacancyURL matches an uploaded résumé against a job-board
// vacancy URL.
func (c *Client) MatchResumeFileToVacancyURL(ctx context.Context, file *ResumeFile, vacancyURL string) (*MatchResult, error) {
	var result *MatchResult
	fields := map[string]string{
		"email":      file.Email,
		"vacancyUrl": vacancyURL,
	}
	if err := c.postMultipart(ctx, "/matching/resume-file", fields, "resume", file.Name, bytes.NewReader(file.Content), &result); err != nil {
		return nil, err
	}

	return result, nil
}

// MatchResumeFileToVacancyText matches an uploaded résumé against a free-text
// vacancy description.
func (c *Client) MatchResumeFileToVacancyText(ctx context.Context, file *ResumeFile, vacancyText string) (*MatchResult, error) {
	var result *MatchResult
	fields := map[string]string{
		"email":       file.Email,
		"vacancyText": vacancyText,
	}
	if err := c.postMultipart(ctx, "/matching/resume-file-vacancy-text", fields, "resume", file.Name, bytes.NewReader(file.Content), &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) MatchResumeURLToVacancyURL(ctx context.Context, resumeURL, vacancyURL string) (*MatchResult, error) {
	return c.postMatch(ctx, "/matching/resume-url", map[string]string{
		"resumeUrl":  resumeURL,
		"vacancyUrl": vacancyURL,
	})
}

func (c *Client) MatchResumeURLToVacancyText(ctx context.Context, resumeURL, vacancyText string) (*MatchResult, error) {
	return c.postMatch(ctx, "/matching/resume-url-vacancy-text", map[string]string{
		"resumeUrl":   resumeURL,
		"vacancyText": vacancyText,
	})
}

func (c *Client) MatchResumeTextToVacancyURL(ctx context.Context, resumeText, vacancyURL string) (*MatchResult, error) {
	return c.postMatch(ctx, "/matching/resume-text-vacancy-url", map[string]string{
		"resumeText": resumeText,
		"vacancyUrl": vacancyURL,
	})
}

func (c *Client) MatchResumeTextToVacancyText(ctx context.Context, resumeText, vacancyText string) (*MatchResult, error) {
	return c.postMatch(ctx, "/matching/resume-text-vacancy-text", map[string]string{
		"resumeText":  resumeText,
		"vacancyText": vacancyText,
	})
}

// MatchFull matches an existing résumé record against an existing vacancy
// record by their ids.
func (c *Client) MatchFull(ctx context.Context, resumeID, vacancyID int64) (*MatchResult, error) {
	var result *MatchResult
	body := map[string]int64{
		"resumeId":  resumeID,
		"vacancyId": vacancyID,
	}
	if err := c.sendJSON(ctx, http.MethodPost, "/resume-vacancy-matches/full", body, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// GetMatchHistory fetches one page of the persisted match history. The
// backend has returned both a bare array and a wrapped {data: [...]} object
// over time; both are accepted.
func (c *Client) GetMatchHistory(ctx context.Context, page, limit int) (*MatchPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var raw any
	if err := c.getJSON(ctx, "/resume-vacancy-matches", q, &raw); err != nil {
		return nil, err
	}

	return decodeHistoryPage(raw, page, limit)
}

// GetMatch fetches one persisted match by id.
func (c *Client) GetMatch(ctx context.Context, id int64) (*MatchResult, error) {
	var result *MatchResult
	if err := c.getJSON(ctx, fmt.Sprintf("/matching/%d", id), nil, &result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) postMatch(ctx context.Context, path string, body map[string]string) (*MatchResult, error) {
	var result *MatchResult
	if err := c.sendJSON(ctx, http.MethodPost, path, body, &result); err != nil {
		return nil, err
	}

	return result, nil
}

// decodeHistoryPage accepts both history shapes the backend has used: a bare
// array, and a {data: [...], total, page} wrapper. Pagination fields absent
// from the payload fall back to the requested page and the item count.
func decodeHistoryPage(raw any, page, limit int) (*MatchPage, error) {
	result := &MatchPage{Page: page, Limit: limit}

	list, ok := raw.([]any)
	if !ok {
		wrapper, isMap := raw.(map[string]any)
		if !isMap {
			return result, nil
		}
		if total, found := intField(wrapper, "total"); found {
			result.Total = total
		}
		if p, found := intField(wrapper, "page"); found {
			result.Page = p
		}
		list, ok = wrapper["data"].([]any)
		if !ok {
			return result, nil
		}
	}

	var items []*MatchResult
	cfg := &mapstructure.DecoderConfig{
		Result:  &items,
		TagName: "json",
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(list); err != nil {
		return nil, fmt.Errorf("decode match history: %w", err)
	}

	result.Items = items
	if result.Total == 0 {
		result.Total = len(items)
	}

	return result, nil
}

// intField reads a numeric field that arrives as a JSON number.
func intField(m map[string]any, key string) (int, bool) {
	v, ok := m[key].(float64)
	if !ok {
		return 0, false
	}
	return int(v), true
}
