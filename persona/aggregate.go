package persona

import (
	"sort"
	"time"
)

const topCommunityCount = 5

// Aggregator accumulates statistics as items arrive. It is not safe for
// concurrent use.
type Aggregator struct {
	location         *time.Location
	communityCounts  map[string]int
	communityOrder   []string
	polarities       []float64
	hours            []int
	selfDescriptions []SelfDescription
	posts            int
	comments         int
}

// NewAggregator creates an aggregator that buckets activity by hour in loc.
// A nil loc means local time.
func NewAggregator(loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.Local
	}
	return &Aggregator{
		location:        loc,
		communityCounts: make(map[string]int),
	}
}

// Add records one item and its polarity.
func (a *Aggregator) Add(item Item, polarity float64) {
	switch item.Kind {
	case KindPost:
		a.posts++
	case KindComment:
		a.comments++
	}

	if _, seen := a.communityCounts[item.Community]; !seen {
		a.communityOrder = append(a.communityOrder, item.Community)
	}
	a.communityCounts[item.Community]++

	a.polarities = append(a.polarities, polarity)
	a.hours = append(a.hours, item.CreatedAt.In(a.location).Hour())

	if IsSelfDescription(item.Body) {
		a.selfDescriptions = append(a.selfDescriptions, SelfDescription{
			Snippet: Snippet(item.Body),
			URL:     item.URL,
		})
	}
}

// Summary computes the derived statistics. Username is left empty.
func (a *Aggregator) Summary() Summary {
	avg := averageOf(a.polarities)
	hour, ok := MostActiveHour(a.hours)

	return Summary{
		TopCommunities:   a.topCommunities(topCommunityCount),
		Posts:            a.posts,
		Comments:         a.comments,
		ActiveHour:       hour,
		HasActiveHour:    ok,
		AverageTone:      avg,
		Tone:             ToneFor(avg),
		SelfDescriptions: append([]SelfDescription(nil), a.selfDescriptions...),
	}
}

// topCommunities returns up to n communities by count, ties in first-seen
// order.
func (a *Aggregator) topCommunities(n int) []CommunityCount {
	ranked := make([]CommunityCount, len(a.communityOrder))
	for i, name := range a.communityOrder {
		ranked[i] = CommunityCount{Name: name, Count: a.communityCounts[name]}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MostActiveHour returns the most frequent hour of day. Ties go to the
// smallest hour. ok is false when hours is empty.
func MostActiveHour(hours []int) (hour int, ok bool) {
	if len(hours) == 0 {
		return 0, false
	}

	var histogram [24]int
	for _, h := range hours {
		if h >= 0 && h < 24 {
			histogram[h]++
		}
	}

	best := 0
	for h := 1; h < 24; h++ {
		if histogram[h] > histogram[best] {
			best = h
		}
	}
	return best, true
}

func averageOf(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
