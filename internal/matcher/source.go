package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// SourceKind discriminates how a résumé or vacancy was supplied for matching.
type SourceKind int

const (
	KindFile SourceKind = iota
	KindURL
	KindText
	KindRecord
)

func (k SourceKind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindURL:
		return "url"
	case KindText:
		return "text"
	default:
		return "record"
	}
}

// minTextLen is the minimum rune count for a free-text résumé or vacancy.
const minTextLen = 50

var (
	resumeURLPattern  = regexp.MustCompile(`^https?://(www\.)?hh\.ru/resume/\w+`)
	vacancyURLPattern = regexp.MustCompile(`^https?://(www\.)?hh\.ru/vacancy/\d+`)
)

// ResumeSource is a tagged union over the four ways a résumé can be supplied.
type ResumeSource struct {
	Kind     SourceKind
	FileName string
	Content  []byte
	Email    string
	URL      string
	Text     string
	RecordID int64
}

// VacancySource is a tagged union over the three ways a vacancy can be
// supplied.
type VacancySource struct {
	Kind     SourceKind
	URL      string
	Text     string
	RecordID int64
}

func ResumeFromFile(name string, content []byte, email string) ResumeSource {
	return ResumeSource{Kind: KindFile, FileName: name, Content: content, Email: email}
}

func ResumeFromURL(url string) ResumeSource {
	return ResumeSource{Kind: KindURL, URL: url}
}

func ResumeFromText(text string) ResumeSource {
	return ResumeSource{Kind: KindText, Text: text}
}

func ResumeFromRecord(id int64) ResumeSource {
	return ResumeSource{Kind: KindRecord, RecordID: id}
}

func VacancyFromURL(url string) VacancySource {
	return VacancySource{Kind: KindURL, URL: url}
}

func VacancyFromText(text string) VacancySource {
	return VacancySource{Kind: KindText, Text: text}
}

func VacancyFromRecord(id int64) VacancySource {
	return VacancySource{Kind: KindRecord, RecordID: id}
}

// ValidationError is a client-side precondition failure. It never reaches
// the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func validationErr(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// validate enforces all preconditions before any network call.
func (r ResumeSource) validate() error {
	switch r.Kind {
	case KindFile:
		if len(r.Content) == 0 {
			return validationErr("resumeFile", "a resume file is required")
		}
		if !strings.Contains(r.Email, "@") {
			return validationErr("email", "a syntactically valid email is required")
		}
	case KindURL:
		if !resumeURLPattern.MatchString(CleanURL(r.URL)) {
			return validationErr("resumeUrl", "expected an hh.ru resume link")
		}
	case KindText:
		if utf8.RuneCountInString(r.Text) < minTextLen {
			return validationErr("resumeText", fmt.Sprintf("at least %d characters are required", minTextLen))
		}
	case KindRecord:
		if r.RecordID <= 0 {
			return validationErr("resumeId", "a resume record id is required")
		}
	}

	return nil
}

func (v VacancySource) validate() error {
	switch v.Kind {
	case KindFile:
		return validationErr("vacancy", "a vacancy cannot be supplied as a file")
	case KindURL:
		if !vacancyURLPattern.MatchString(CleanURL(v.URL)) {
			return validationErr("vacancyUrl", "expected an hh.ru vacancy link")
		}
	case KindText:
		if utf8.RuneCountInString(v.Text) < minTextLen {
			return validationErr("vacancyText", fmt.Sprintf("at least %d characters are required", minTextLen))
		}
	case KindRecord:
		if v.RecordID <= 0 {
			return validationErr("vacancyId", "a vacancy record id is required")
		}
	}

	return nil
}

// CleanURL trims surrounding whitespace and a leading "@", which users paste
// in from messengers.
func CleanURL(raw string) string {
	return strings.TrimPrefix(strings.TrimSpace(raw), "@")
}
