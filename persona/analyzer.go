package persona

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ContentSource lists an account's content, newest first.
type ContentSource interface {
	Posts(ctx context.Context, username string, limit int) ([]Item, error)
	Comments(ctx context.Context, username string, limit int) ([]Item, error)
}

// Scorer maps text to a polarity in [-1, 1].
type Scorer interface {
	Polarity(ctx context.Context, text string) (float64, error)
}

// Analyzer builds a Summary for one account.
type Analyzer struct {
	source       ContentSource
	scorer       Scorer
	postLimit    int
	commentLimit int
	location     *time.Location
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPostLimit sets how many recent posts are fetched.
func WithPostLimit(n int) Option {
	return func(a *Analyzer) {
		a.postLimit = n
	}
}

// WithCommentLimit sets how many recent comments are fetched.
func WithCommentLimit(n int) Option {
	return func(a *Analyzer) {
		a.commentLimit = n
	}
}

// WithLocation sets the timezone used for the activity histogram.
func WithLocation(loc *time.Location) Option {
	return func(a *Analyzer) {
		a.location = loc
	}
}

// NewAnalyzer creates an analyzer reading from source and scoring with scorer.
func NewAnalyzer(source ContentSource, scorer Scorer, opts ...Option) *Analyzer {
	a := &Analyzer{
		source:       source,
		scorer:       scorer,
		postLimit:    30,
		commentLimit: 50,
		location:     time.Local,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze fetches the account's posts and comments and aggregates them.
// Everything is fetched before anything is scored, so any failure returns
// an error and no partial summary.
func (a *Analyzer) Analyze(ctx context.Context, username string) (*Summary, error) {
	slog.Info("analyzing user", "username", username, "post_limit", a.postLimit, "comment_limit", a.commentLimit)

	posts, err := a.source.Posts(ctx, username, a.postLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch posts for %s: %w", username, err)
	}
	comments, err := a.source.Comments(ctx, username, a.commentLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch comments for %s: %w", username, err)
	}
	slog.Info("fetched content", "username", username, "posts", len(posts), "comments", len(comments))

	agg := NewAggregator(a.location)
	for _, items := range [][]Item{posts, comments} {
		for _, item := range items {
			polarity, err := a.scorer.Polarity(ctx, item.Body)
			if err != nil {
				return nil, fmt.Errorf("score %s %s: %w", item.Kind, item.URL, err)
			}
			agg.Add(item, polarity)
		}
	}

	summary := agg.Summary()
	summary.Username = username

	slog.Info("analysis complete",
		"username", username,
		"tone", summary.Tone,
		"average_tone", summary.AverageTone,
		"self_descriptions", len(summary.SelfDescriptions),
	)
	return &summary, nil
}
