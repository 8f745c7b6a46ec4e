package persona

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// Mocks

type mockSource struct {
	posts       []Item
	comments    []Item
	postsErr    error
	commentsErr error
	limits      []int
}

func (m *mockSource) Posts(ctx context.Context, username string, limit int) ([]Item, error) {
	m.limits = append(m.limits, limit)
	if m.postsErr != nil {
		return nil, m.postsErr
	}
	return m.posts, nil
}

func (m *mockSource) Comments(ctx context.Context, username string, limit int) ([]Item, error) {
	m.limits = append(m.limits, limit)
	if m.commentsErr != nil {
		return nil, m.commentsErr
	}
	return m.comments, nil
}

// mockScorer scores by keyword and records the order texts were scored in.
type mockScorer struct {
	scored []string
	failOn string
}

func (m *mockScorer) Polarity(ctx context.Context, text string) (float64, error) {
	m.scored = append(m.scored, text)
	if m.failOn != "" && strings.Contains(text, m.failOn) {
		return 0, errors.New("scoring failed")
	}
	switch {
	case strings.Contains(text, "love"):
		return 0.9, nil
	case strings.Contains(text, "hate"):
		return -0.9, nil
	}
	return 0, nil
}

func sampleSource() *mockSource {
	return &mockSource{
		posts: []Item{
			{Kind: KindPost, Body: "I love Go. I'm a backend developer", URL: "https://reddit.com/p/2", Community: "golang", CreatedAt: at(21)},
			{Kind: KindPost, Body: "Weekend plans", URL: "https://reddit.com/p/1", Community: "boston", CreatedAt: at(10)},
		},
		comments: []Item{
			{Kind: KindComment, Body: "I love this", URL: "https://reddit.com/c/3", Community: "golang", CreatedAt: at(21)},
			{Kind: KindComment, Body: "My name is Sam btw", URL: "https://reddit.com/c/2", Community: "rust", CreatedAt: at(10)},
			{Kind: KindComment, Body: "I love it too", URL: "https://reddit.com/c/1", Community: "golang", CreatedAt: at(21)},
		},
	}
}

func TestAnalyze(t *testing.T) {
	source := sampleSource()
	scorer := &mockScorer{}
	a := NewAnalyzer(source, scorer, WithPostLimit(30), WithCommentLimit(50), WithLocation(time.UTC))

	s, err := a.Analyze(context.Background(), "sam")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if s.Username != "sam" {
		t.Errorf("Username = %q, want sam", s.Username)
	}
	if diff := cmp.Diff([]int{30, 50}, source.limits); diff != "" {
		t.Errorf("requested limits mismatch (-want +got):\n%s", diff)
	}
	if s.Posts != 2 || s.Comments != 3 {
		t.Errorf("Posts, Comments = %d, %d; want 2, 3", s.Posts, s.Comments)
	}
	if !s.HasActiveHour || s.ActiveHour != 21 {
		t.Errorf("ActiveHour = %d (%v), want 21", s.ActiveHour, s.HasActiveHour)
	}
	// (0.9 + 0 + 0.9 + 0 + 0.9) / 5 = 0.54
	if s.Tone != TonePositive {
		t.Errorf("Tone = %q, want Positive (avg %f)", s.Tone, s.AverageTone)
	}

	wantCommunities := []CommunityCount{
		{Name: "golang", Count: 3},
		{Name: "boston", Count: 1},
		{Name: "rust", Count: 1},
	}
	if diff := cmp.Diff(wantCommunities, s.TopCommunities); diff != "" {
		t.Errorf("TopCommunities mismatch (-want +got):\n%s", diff)
	}

	// Posts first, then comments, each newest first.
	wantSelf := []SelfDescription{
		{Snippet: "I love Go. I'm a backend developer...", URL: "https://reddit.com/p/2"},
		{Snippet: "My name is Sam btw...", URL: "https://reddit.com/c/2"},
	}
	if diff := cmp.Diff(wantSelf, s.SelfDescriptions); diff != "" {
		t.Errorf("SelfDescriptions mismatch (-want +got):\n%s", diff)
	}

	if len(scorer.scored) != 5 || scorer.scored[0] != source.posts[0].Body || scorer.scored[2] != source.comments[0].Body {
		t.Errorf("items scored in unexpected order: %q", scorer.scored)
	}
}

func TestAnalyzeEmptyAccount(t *testing.T) {
	a := NewAnalyzer(&mockSource{}, &mockScorer{})

	s, err := a.Analyze(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if s.HasActiveHour {
		t.Error("HasActiveHour should be false for an empty account")
	}
	if s.Tone != ToneNeutral {
		t.Errorf("Tone = %q, want Neutral", s.Tone)
	}
	if s.Posts != 0 || s.Comments != 0 || len(s.SelfDescriptions) != 0 {
		t.Errorf("unexpected content in empty summary: %+v", s)
	}
}

func TestAnalyzeFetchErrors(t *testing.T) {
	fetchErr := errors.New("not found")

	tests := []struct {
		name   string
		source *mockSource
	}{
		{"posts", &mockSource{postsErr: fetchErr}},
		{"comments", &mockSource{posts: sampleSource().posts, commentsErr: fetchErr}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scorer := &mockScorer{}
			s, err := NewAnalyzer(tt.source, scorer).Analyze(context.Background(), "sam")
			if !errors.Is(err, fetchErr) {
				t.Fatalf("err = %v, want wrapped fetch error", err)
			}
			if s != nil {
				t.Error("expected no summary on failure")
			}
			if len(scorer.scored) != 0 {
				t.Errorf("scored %d items before fetching completed", len(scorer.scored))
			}
		})
	}
}

func TestAnalyzeScorerError(t *testing.T) {
	a := NewAnalyzer(sampleSource(), &mockScorer{failOn: "Weekend"})

	s, err := a.Analyze(context.Background(), "sam")
	if err == nil {
		t.Fatal("expected error from scorer")
	}
	if !strings.Contains(err.Error(), "https://reddit.com/p/1") {
		t.Errorf("error %q should name the failing item", err)
	}
	if s != nil {
		t.Error("expected no summary on failure")
	}
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := NewAnalyzer(sampleSource(), &mockScorer{}, WithLocation(time.UTC))

	first, err := a.Analyze(context.Background(), "sam")
	if err != nil {
		t.Fatal(err)
	}
	second, err := a.Analyze(context.Background(), "sam")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated analysis differs (-first +second):\n%s", diff)
	}
}
