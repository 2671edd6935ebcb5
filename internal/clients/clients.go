// Package clients reads the operator's client directory from an
// Airtable-backed table. The directory is optional: missing configuration
// disables it quietly instead of failing the engine.
package clients

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

	"golang.org/x/sync/singleflight"
)

const defaultBaseURL = "https://api.airtable.com/v0"

type Config struct {
	BaseURL         string // override for tests
	APIKey          string
	BaseID          string
	Table           string
	View            string
	NameField       string
	ProfessionField string
}

// Shared across Client values so concurrent lookups collapse even when each
// request builds its own Client from the current config snapshot.
var listFlight singleflight.Group

type Client struct {
	cfg Config
	hc  *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.NameField == "" {
		cfg.NameField = "Name"
	}
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Enabled reports whether enough configuration exists to call the table at
// all. List short-circuits to an empty slice when it doesn't.
func (c *Client) Enabled() bool {
	return c.cfg.APIKey != "" && c.cfg.BaseID != "" && c.cfg.Table != ""
}

type airtablePage struct {
	Records []struct {
		ID     string                 `json:"id"`
		Fields map[string]interface{} `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

// List walks the table's offset cursor and returns one record per distinct
// non-blank name, first seen wins. Concurrent identical calls (UI refresh
// storms) collapse onto one upstream walk via singleflight; nothing is
// cached between calls.
func (c *Client) List(ctx context.Context) ([]domain.ClientRecord, error) {
	if !c.Enabled() {
		return nil, nil
	}

	key := c.cfg.BaseID + "/" + c.cfg.Table + "/" + c.cfg.View
	v, err, _ := listFlight.Do(key, func() (interface{}, error) {
		return c.list(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.ClientRecord), nil
}

func (c *Client) list(ctx context.Context) ([]domain.ClientRecord, error) {
	var out []domain.ClientRecord
	seen := map[string]bool{}
	offset := ""

	for {
		page, err := c.fetchPage(ctx, offset)
		if err != nil {
			return nil, err
		}

		for _, rec := range page.Records {
			name := strings.TrimSpace(fieldString(rec.Fields, c.cfg.NameField))
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true

			out = append(out, domain.ClientRecord{
				Name:       name,
				Profession: strings.TrimSpace(fieldString(rec.Fields, c.cfg.ProfessionField)),
			})
		}

		if page.Offset == "" {
			return out, nil
		}
		offset = page.Offset
	}
}

func (c *Client) fetchPage(ctx context.Context, offset string) (*airtablePage, error) {
	params := url.Values{}
	if c.cfg.View != "" {
		params.Set("view", c.cfg.View)
	}
	if offset != "" {
		params.Set("offset", offset)
	}

	u := fmt.Sprintf("%s/%s/%s", c.cfg.BaseURL, url.PathEscape(c.cfg.BaseID), url.PathEscape(c.cfg.Table))
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Accept", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("client directory get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("client directory status %d: %s", res.StatusCode, strings.TrimSpace(string(b)))
	}

	var page airtablePage
	if err := json.NewDecoder(res.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("client directory decode: %w", err)
	}
	return &page, nil
}

// fieldString pulls a field out of Airtable's loosely typed fields map.
// Single-select and lookup fields can surface as arrays; take the first
// string in that case.
func fieldString(fields map[string]interface{}, key string) string {
	if key == "" {
		return ""
	}
	switch v := fields[key].(type) {
	case string:
		return v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return ""
}
