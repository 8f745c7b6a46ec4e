package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	defaultBaseURL  = "https://oauth.reddit.com"
	defaultTokenURL = "https://www.reddit.com/api/v1/access_token"
	defaultPageSize = 100
	// permalinkHost prefixes the site-relative permalinks the API returns.
	permalinkHost = "https://reddit.com"
)

// Credentials identifies a Reddit script or web application.
type Credentials struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
}

// Submission is a post authored by the account.
type Submission struct {
	Title      string  `json:"title"`
	Selftext   string  `json:"selftext"`
	Subreddit  string  `json:"subreddit"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

// URL returns the absolute link to the submission.
func (s Submission) URL() string { return permalinkHost + s.Permalink }

// CreatedAt returns the creation time.
func (s Submission) CreatedAt() time.Time { return unixTime(s.CreatedUTC) }

// Comment is a comment authored by the account.
type Comment struct {
	Body       string  `json:"body"`
	Subreddit  string  `json:"subreddit"`
	Permalink  string  `json:"permalink"`
	CreatedUTC float64 `json:"created_utc"`
}

// URL returns the absolute link to the comment.
func (c Comment) URL() string { return permalinkHost + c.Permalink }

// CreatedAt returns the creation time.
func (c Comment) CreatedAt() time.Time { return unixTime(c.CreatedUTC) }

func unixTime(sec float64) time.Time {
	return time.Unix(int64(sec), 0)
}

// Client provides read access to a user's public Reddit history.
type Client struct {
	httpClient *http.Client
	creds      Credentials
	baseURL    string
	tokenURL   string
	pageSize   int
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets the API base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTokenURL sets the OAuth token endpoint (for testing).
func WithTokenURL(url string) Option {
	return func(c *Client) {
		c.tokenURL = url
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithPageSize sets how many items are requested per listing page.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithHTTPClient replaces the OAuth-authenticated client. The caller is
// then responsible for authorization.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a Reddit API client authenticated with the
// application-only client_credentials grant.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds:    creds,
		baseURL:  defaultBaseURL,
		tokenURL: defaultTokenURL,
		pageSize: defaultPageSize,
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = c.oauthClient()
	}
	return c
}

func (c *Client) oauthClient() *http.Client {
	// Token requests go through this client; Reddit rejects them without a
	// User-Agent.
	base := &http.Client{
		Timeout:   c.timeout,
		Transport: &userAgentTransport{base: http.DefaultTransport, userAgent: c.creds.UserAgent},
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)

	cc := &clientcredentials.Config{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		TokenURL:     c.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
	hc := cc.Client(ctx)
	hc.Timeout = c.timeout
	return hc
}

// Submissions returns up to limit of the user's newest submissions.
func (c *Client) Submissions(ctx context.Context, username string, limit int) ([]Submission, error) {
	return fetchListing[Submission](ctx, c, "fetch submissions", "/user/"+url.PathEscape(username)+"/submitted", limit)
}

// Comments returns up to limit of the user's newest comments.
func (c *Client) Comments(ctx context.Context, username string, limit int) ([]Comment, error) {
	return fetchListing[Comment](ctx, c, "fetch comments", "/user/"+url.PathEscape(username)+"/comments", limit)
}

type listing[T any] struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Data T `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

// fetchListing follows the after cursor until limit items are collected or
// the listing is exhausted.
func fetchListing[T any](ctx context.Context, c *Client, op, path string, limit int) ([]T, error) {
	var items []T
	after := ""
	for len(items) < limit {
		page, err := getPage[T](ctx, c, op, path, min(c.pageSize, limit-len(items)), after)
		if err != nil {
			return nil, err
		}
		for _, child := range page.Data.Children {
			items = append(items, child.Data)
		}
		slog.Debug("fetched listing page", "op", op, "path", path, "items", len(page.Data.Children), "total", len(items))

		if page.Data.After == "" || len(page.Data.Children) == 0 {
			break
		}
		after = page.Data.After
	}

	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func getPage[T any](ctx context.Context, c *Client, op, path string, limit int, after string) (*listing[T], error) {
	query := url.Values{}
	query.Set("sort", "new")
	query.Set("raw_json", "1")
	query.Set("limit", strconv.Itoa(limit))
	if after != "" {
		query.Set("after", after)
	}
	reqURL := c.baseURL + path + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.creds.UserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(op, resp.StatusCode)
	}

	var page listing[T]
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &FetchError{Kind: KindDecode, Op: op, Err: err}
	}
	return &page, nil
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}
