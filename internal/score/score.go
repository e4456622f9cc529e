// Package score maps numeric match scores onto the color bands and verdict
// labels shown for a match result.
package score

import (
	"fmt"
	"math"
)

// Band is the coarse traffic-light grouping of a score.
type Band int

const (
	BandBad Band = iota
	BandWarn
	BandGood
)

// Color band thresholds. Boundary values belong to the higher band.
const (
	goodThreshold = 0.7
	warnThreshold = 0.5
)

// Verdict label thresholds. Boundary values belong to the higher band.
const (
	excellentThreshold = 0.8
	goodFitThreshold   = 0.6
	mediumThreshold    = 0.4
)

const (
	VerdictExcellent = "Отличное соответствие"
	VerdictGood      = "Хорошее соответствие"
	VerdictMedium    = "Среднее соответствие"
	VerdictLow       = "Низкое соответствие"
)

// Assessment is the presentation classification of one score.
type Assessment struct {
	Band    Band
	Verdict string
}

// Color returns the UI hex color of the band.
func (b Band) Color() string {
	switch b {
	case BandGood:
		return "#4caf50"
	case BandWarn:
		return "#ff9800"
	default:
		return "#f44336"
	}
}

func (b Band) String() string {
	switch b {
	case BandGood:
		return "good"
	case BandWarn:
		return "warn"
	default:
		return "bad"
	}
}

// Classify maps a score in [0,1] to its color band and verdict label.
func Classify(score float64) Assessment {
	a := Assessment{Band: BandBad, Verdict: VerdictLow}

	switch {
	case score >= goodThreshold:
		a.Band = BandGood
	case score >= warnThreshold:
		a.Band = BandWarn
	}

	switch {
	case score >= excellentThreshold:
		a.Verdict = VerdictExcellent
	case score >= goodFitThreshold:
		a.Verdict = VerdictGood
	case score >= mediumThreshold:
		a.Verdict = VerdictMedium
	}

	return a
}

// FormatPercent renders a score in [0,1] as an integer percentage, rounding
// half away from zero.
func FormatPercent(score float64) string {
	return fmt.Sprintf("%d%%", int(math.Round(score*100)))
}
