package score

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		score   float64
		band    Band
		verdict string
	}{
		{name: "excellent at boundary", score: 0.8, band: BandGood, verdict: VerdictExcellent},
		{name: "excellent above boundary", score: 0.95, band: BandGood, verdict: VerdictExcellent},
		{name: "good band boundary inclusive", score: 0.6, band: BandWarn, verdict: VerdictGood},
		{name: "good color at color boundary", score: 0.7, band: BandGood, verdict: VerdictGood},
		{name: "medium", score: 0.45, band: BandBad, verdict: VerdictMedium},
		{name: "medium at boundary", score: 0.4, band: BandBad, verdict: VerdictMedium},
		{name: "low", score: 0.39, band: BandBad, verdict: VerdictLow},
		{name: "warn color boundary", score: 0.5, band: BandWarn, verdict: VerdictMedium},
		{name: "zero", score: 0, band: BandBad, verdict: VerdictLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.score)
			require.Equal(t, tt.band, got.Band)
			require.Equal(t, tt.verdict, got.Verdict)
		})
	}
}

func TestBandColor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "#4caf50", BandGood.Color())
	require.Equal(t, "#ff9800", BandWarn.Color())
	require.Equal(t, "#f44336", BandBad.Color())
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score  float64
		expect string
	}{
		{score: 0.666, expect: "67%"},
		{score: 0.5, expect: "50%"},
		{score: 0.005, expect: "1%"},
		{score: 0, expect: "0%"},
		{score: 1, expect: "100%"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.expect, FormatPercent(tt.score), "score=%v", tt.score)
	}
}
