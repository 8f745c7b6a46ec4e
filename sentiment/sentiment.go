// Package sentiment scores text polarity on a [-1, 1] scale, higher being
// more favorable.
package sentiment

import (
	"context"
	"strings"

	"github.com/jonreiter/govader"
)

// Vader scores text with the VADER lexicon. It runs offline and never fails.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader creates a lexicon-based scorer.
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Polarity returns the VADER compound score. Blank text scores 0.
func (v *Vader) Polarity(_ context.Context, text string) (float64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}
	return clamp(v.analyzer.PolarityScores(text).Compound), nil
}

func clamp(x float64) float64 {
	switch {
	case x > 1:
		return 1
	case x < -1:
		return -1
	}
	return x
}
