package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultModel   = "gemini-2.0-flash-lite"
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	// maxPromptText bounds how much of an item is sent to the model.
	maxPromptText = 4000
)

// Gemini scores polarity by asking a Gemini model.
type Gemini struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption configures a Gemini scorer.
type GeminiOption func(*Gemini)

// WithModel sets the Gemini model to use.
func WithModel(model string) GeminiOption {
	return func(g *Gemini) {
		g.model = model
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) GeminiOption {
	return func(g *Gemini) {
		g.baseURL = url
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) GeminiOption {
	return func(g *Gemini) {
		g.httpClient.Timeout = d
	}
}

// NewGemini creates a model-backed scorer.
func NewGemini(apiKey string, opts ...GeminiOption) *Gemini {
	g := &Gemini{
		apiKey:     apiKey,
		model:      defaultModel,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Polarity asks the model for a score and clamps it to [-1, 1]. Blank text
// scores 0 without a request.
func (g *Gemini) Polarity(ctx context.Context, text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	if r := []rune(text); len(r) > maxPromptText {
		text = string(r[:maxPromptText])
	}

	payload, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: buildPrompt(text)}}}},
	})
	if err != nil {
		return 0, fmt.Errorf("encode gemini request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	// The key travels in a header so it never shows up in a *url.Error.
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode gemini response: %w", err)
	}

	reply, err := out.firstText()
	if err != nil {
		return 0, err
	}
	return parsePolarity(reply)
}

func buildPrompt(text string) string {
	return fmt.Sprintf(`Rate the overall sentiment of the following social media text as a number between -1 (very negative) and 1 (very positive), with 0 meaning neutral.

Text:
%s

Respond with JSON only, in this exact format:
{"polarity": 0.0}`, text)
}

// parsePolarity reads {"polarity": x} from a model reply, tolerating a
// surrounding markdown fence.
func parsePolarity(reply string) (float64, error) {
	var result struct {
		Polarity *float64 `json:"polarity"`
	}
	if err := json.Unmarshal([]byte(unfence(reply)), &result); err != nil {
		return 0, fmt.Errorf("reply is not polarity JSON: %w", err)
	}
	if result.Polarity == nil {
		return 0, errors.New("reply has no polarity field")
	}
	return clamp(*result.Polarity), nil
}

// unfence removes a ``` or ```json fence around s, if present.
func unfence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// firstText returns the text of the first part of the first candidate.
func (r *geminiResponse) firstText() (string, error) {
	if len(r.Candidates) == 0 {
		return "", errors.New("gemini reply has no candidates")
	}
	parts := r.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", errors.New("gemini candidate has no parts")
	}
	return parts[0].Text, nil
}
