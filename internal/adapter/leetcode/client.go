package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"leetcode-export/internal/domain/model"
	"leetcode-export/internal/domain/ports"
)

const (
	DefaultEndpoint  = "https://leetcode.com/graphql"
	DefaultReferer   = "https://leetcode.com"
	DefaultUserAgent = "Mozilla/5.0"
	DefaultPageSize  = 50

	maxResponseBytes = 8 << 20
)

// Options configures a Client.
type Options struct {
	Endpoint    string
	SiteURL     string
	PageSize    int
	ListDelay   time.Duration
	DetailDelay time.Duration
	Timeout     time.Duration
	Referer     string
	UserAgent   string
	Session     string
	CSRFToken   string
}

// Client implements ProblemLister and ProblemFetcher against the LeetCode GraphQL API.
// Calls are paced, never concurrent, and never retried.
type Client struct {
	httpClient  *http.Client
	opts        Options
	listPacer   *rate.Limiter
	detailPacer *rate.Limiter
	normalizer  ports.TextNormalizer
	logger      ports.Logger
}

var (
	_ ports.ProblemLister  = (*Client)(nil)
	_ ports.ProblemFetcher = (*Client)(nil)
)

// New creates a new LeetCode client. A zero Timeout leaves requests unbounded.
func New(opts Options, normalizer ports.TextNormalizer, logger ports.Logger) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.SiteURL == "" {
		opts.SiteURL = model.DefaultSiteURL
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Referer == "" {
		opts.Referer = DefaultReferer
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	return &Client{
		httpClient:  &http.Client{Timeout: opts.Timeout},
		opts:        opts,
		listPacer:   newPacer(opts.ListDelay),
		detailPacer: newPacer(opts.DetailDelay),
		normalizer:  normalizer,
		logger:      logger,
	}
}

// newPacer allows one request immediately and then one per delay.
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// post sends one GraphQL document and returns the raw body and status code.
// Only failures to perform the exchange are reported as errors.
func (c *Client) post(ctx context.Context, query string, variables map[string]any) ([]byte, int, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, 0, fmt.Errorf("marshal graphql payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	if len(data) > maxResponseBytes {
		return nil, resp.StatusCode, fmt.Errorf("response exceeds %d bytes", maxResponseBytes)
	}
	return data, resp.StatusCode, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Referer", c.opts.Referer)
	req.Header.Set("User-Agent", c.opts.UserAgent)

	var cookies []string
	if c.opts.Session != "" {
		cookies = append(cookies, "LEETCODE_SESSION="+c.opts.Session)
	}
	if c.opts.CSRFToken != "" {
		cookies = append(cookies, "csrftoken="+c.opts.CSRFToken)
		req.Header.Set("x-csrftoken", c.opts.CSRFToken)
	}
	if len(cookies) > 0 {
		req.Header.Set("Cookie", strings.Join(cookies, "; "))
	}
}

func snippet(data []byte) string {
	const limit = 256
	if len(data) > limit {
		data = data[:limit]
	}
	return strings.TrimSpace(string(data))
}
