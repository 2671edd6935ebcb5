package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobradar-engine/internal/domain"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://serpapi.com/search.json"

type Config struct {
	BaseURL   string // override for tests
	Engine    string
	Boards    []Board
	PagePause time.Duration // spacing between page requests
}

// Client fetches job postings from the search API one page at a time. It
// holds no state across Fetch calls; the seen-links set is per invocation.
type Client struct {
	cfg   Config
	hc    *http.Client
	pacer *rate.Limiter
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Engine == "" {
		cfg.Engine = "google_jobs"
	}
	if len(cfg.Boards) == 0 {
		cfg.Boards = DefaultBoards()
	}
	if cfg.PagePause <= 0 {
		cfg.PagePause = 600 * time.Millisecond
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: 20 * time.Second},
		// burst 1 so the first request goes out immediately and every
		// later one waits out the pause
		pacer: rate.NewLimiter(rate.Every(cfg.PagePause), 1),
	}
}

type Query struct {
	Query    string
	Location string
	MaxPages int    // requests issued, not pages promised
	APIKey   string // resolved by the caller via internal/secrets

	// OnPage, when set, is called after each page with the page number
	// (1-based) and the running row count.
	OnPage func(page, total int)
}

// Fetch runs the whole pagination loop on the caller's goroutine. Any
// upstream failure aborts the fetch; there are no retries and no partial
// results.
func (c *Client) Fetch(ctx context.Context, q Query) ([]domain.JobRecord, error) {
	key := strings.TrimSpace(q.APIKey)
	if key == "" {
		return nil, &ConfigError{Reason: "missing API key"}
	}

	pages := q.MaxPages
	if pages < 1 {
		pages = 1
	}

	seen := map[string]bool{}
	var rows []domain.JobRecord
	token := ""

	for page := 1; page <= pages; page++ {
		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := c.fetchPage(ctx, q, key, token)
		if err != nil {
			return nil, err
		}

		for _, j := range resp.JobsResults {
			link := j.bestLink()
			if link != "" {
				if seen[link] {
					continue
				}
				seen[link] = true
			}
			rows = append(rows, domain.JobRecord{
				Source:    classifySource(c.cfg.Boards, link, j.Via, j.Source),
				Title:     strings.TrimSpace(j.Title),
				Company:   strings.TrimSpace(j.CompanyName),
				Location:  strings.TrimSpace(j.Location),
				Posted:    FirstNonBlank(j.DetectedExtensions.PostedAt, j.DetectedExtensions.Posted),
				ApplyLink: link,
			})
		}

		if q.OnPage != nil {
			q.OnPage(page, len(rows))
		}

		// The token, not the page size, decides whether more pages exist.
		token = FirstNonBlank(
			resp.SerpapiPagination.NextPageToken,
			resp.SearchMetadata.NextPageToken,
		)
		if token == "" {
			break
		}
	}

	return rows, nil
}

func (c *Client) fetchPage(ctx context.Context, q Query, key, token string) (*serpResponse, error) {
	params := url.Values{}
	params.Set("engine", c.cfg.Engine)
	params.Set("q", q.Query)
	if q.Location != "" {
		params.Set("location", q.Location)
	}
	params.Set("api_key", key)
	if token != "" {
		params.Set("next_page_token", token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "JobRadar/1.0 (+local)")
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, &UpstreamError{Status: res.StatusCode, Message: strings.TrimSpace(string(b))}
	}

	var resp serpResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("search decode: %w", err)
	}
	if resp.Error != "" {
		return nil, &UpstreamError{Message: resp.Error}
	}
	return &resp, nil
}
