// Package normalize coerces loosely-typed backend fields into canonical
// display shapes. All functions are pure and total: any input yields a
// usable value, never an error.
package normalize

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// NotSpecifiedF is the placeholder for absent feminine-gender fields (salary).
	NotSpecifiedF = "Не указана"
	// NotSpecifiedN is the placeholder for absent neuter-gender fields (education).
	NotSpecifiedN = "Не указано"
	// UnknownStatus is the placeholder for an absent status.
	UnknownStatus = "Неизвестно"

	StatusActive = "Активная"
	StatusClosed = "Закрыта"
)

// Skills coerces a skills payload into a clean list of strings. The backend
// is known to return a native JSON array, a bracketed pseudo-JSON string
// (sometimes with single quotes), or a plain comma-separated string.
// Unparseable JSON-shaped input falls back to comma-splitting. The result is
// never nil.
func Skills(input any) []string {
	switch v := input.(type) {
	case nil:
		return []string{}
	case []string:
		return cleanSkillSlice(v)
	case []any:
		items := make([]string, 0, len(v))
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanSkillSlice(items)
	case string:
		return skillsFromString(v)
	default:
		return []string{}
	}
}

func skillsFromString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		// Single quotes are common in payloads serialized by the parser
		// service. Repair them before decoding.
		repaired := strings.ReplaceAll(trimmed, "'", `"`)

		var parsed []string
		if err := json.Unmarshal([]byte(repaired), &parsed); err == nil {
			return cleanSkillSlice(parsed)
		}
	}

	parts := strings.Split(trimmed, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.NewReplacer("[", "", "]", "").Replace(part)
		items = append(items, part)
	}

	return cleanSkillSlice(items)
}

// cleanSkillSlice trims every element, strips a leading bracket on the first
// element and a trailing bracket on the last, and drops empty entries.
func cleanSkillSlice(raw []string) []string {
	result := make([]string, 0, len(raw))
	for i, skill := range raw {
		if i == 0 {
			skill = strings.TrimPrefix(strings.TrimSpace(skill), "[")
		}
		if i == len(raw)-1 {
			skill = strings.TrimSuffix(strings.TrimSpace(skill), "]")
		}
		skill = strings.TrimSpace(skill)
		if skill != "" {
			result = append(result, skill)
		}
	}
	return result
}

// EducationRecord is one entry of a structured education history.
type EducationRecord struct {
	Degree    string `json:"degree" mapstructure:"degree"`
	Direction string `json:"direction" mapstructure:"direction"`
	Specialty string `json:"specialty" mapstructure:"specialty"`
}

// Education merges an education payload into one display string. The backend
// sends either free text or an ordered list of records; records are joined
// field-wise with ", " and record-wise with "; ".
func Education(input any) string {
	switch v := input.(type) {
	case nil:
		return NotSpecifiedN
	case string:
		if strings.TrimSpace(v) == "" {
			return NotSpecifiedN
		}
		return v
	case []EducationRecord:
		return joinEducation(v)
	case []any:
		records := make([]EducationRecord, 0, len(v))
		for _, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			records = append(records, EducationRecord{
				Degree:    stringValue(m["degree"]),
				Direction: stringValue(m["direction"]),
				Specialty: stringValue(m["specialty"]),
			})
		}
		return joinEducation(records)
	default:
		return NotSpecifiedN
	}
}

func joinEducation(records []EducationRecord) string {
	entries := make([]string, 0, len(records))
	for _, rec := range records {
		fields := make([]string, 0, 3)
		for _, field := range []string{rec.Degree, rec.Direction, rec.Specialty} {
			if strings.TrimSpace(field) != "" {
				fields = append(fields, field)
			}
		}
		if len(fields) > 0 {
			entries = append(entries, strings.Join(fields, ", "))
		}
	}
	if len(entries) == 0 {
		return NotSpecifiedN
	}
	return strings.Join(entries, "; ")
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// SalaryRange renders a salary range. A zero bound means the bound is absent;
// the currency suffix is appended only when present.
func SalaryRange(from, to int, currency string) string {
	suffix := ""
	if currency != "" {
		suffix = " " + currency
	}

	switch {
	case from > 0 && to > 0:
		return fmt.Sprintf("от %d до %d%s", from, to, suffix)
	case from > 0:
		return fmt.Sprintf("от %d%s", from, suffix)
	case to > 0:
		return fmt.Sprintf("до %d%s", to, suffix)
	default:
		return NotSpecifiedF
	}
}

// activeSynonyms and closedSynonyms are the known spellings of the two
// canonical vacancy states, lowercase.
var (
	activeSynonyms = map[string]bool{
		"active":   true,
		"активная": true,
		"open":     true,
		"открыта":  true,
	}
	closedSynonyms = map[string]bool{
		"closed":  true,
		"закрыта": true,
	}
)

// StatusLabel maps known Russian and English synonyms for active/closed to
// the two canonical labels. Unknown values pass through unchanged.
func StatusLabel(raw string) string {
	if raw == "" {
		return UnknownStatus
	}

	switch lower := strings.ToLower(raw); {
	case activeSynonyms[lower]:
		return StatusActive
	case closedSynonyms[lower]:
		return StatusClosed
	default:
		return raw
	}
}

// IsActive reports whether the raw status denotes an active vacancy.
func IsActive(raw string) bool {
	return activeSynonyms[strings.ToLower(raw)]
}

// IsClosed reports whether the raw status denotes a closed vacancy.
func IsClosed(raw string) bool {
	return closedSynonyms[strings.ToLower(raw)]
}

// WorkPeriod formats an employment period as "start — end", omitting the
// separator when either side is absent.
func WorkPeriod(start, end string) string {
	if start != "" && end != "" {
		return start + " — " + end
	}
	return start + end
}
