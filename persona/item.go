// Package persona turns an account's recent posts and comments into summary
// statistics: top communities, most active hour, overall tone and
// self-descriptive snippets.
package persona

import "time"

// Kind distinguishes posts from comments.
type Kind string

const (
	KindPost    Kind = "post"
	KindComment Kind = "comment"
)

// Item is one piece of fetched content.
type Item struct {
	Kind      Kind
	Body      string
	URL       string
	Community string
	CreatedAt time.Time
}

// Tone is the categorical label for the average polarity.
type Tone string

const (
	TonePositive Tone = "Positive"
	ToneNeutral  Tone = "Neutral"
	ToneNegative Tone = "Negative"
)

// toneThreshold is the magnitude the average polarity must strictly exceed
// to count as positive or negative.
const toneThreshold = 0.2

// ToneFor labels an average polarity. Exactly ±0.2 is Neutral.
func ToneFor(avg float64) Tone {
	switch {
	case avg > toneThreshold:
		return TonePositive
	case avg < -toneThreshold:
		return ToneNegative
	default:
		return ToneNeutral
	}
}

// CommunityCount is a community with the number of items posted there.
type CommunityCount struct {
	Name  string
	Count int
}

// SelfDescription is a truncated first-person snippet and where it came from.
type SelfDescription struct {
	Snippet string
	URL     string
}

// Summary is the aggregated persona of one account. ActiveHour is only
// meaningful when HasActiveHour is set.
type Summary struct {
	Username         string
	TopCommunities   []CommunityCount
	Posts            int
	Comments         int
	ActiveHour       int
	HasActiveHour    bool
	AverageTone      float64
	Tone             Tone
	SelfDescriptions []SelfDescription
}
