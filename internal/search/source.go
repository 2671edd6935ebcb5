package search

import (
	"net/url"
	"strings"
)

// Board maps link-host suffixes to a display label.
type Board struct {
	Label    string
	Suffixes []string
}

// DefaultBoards covers the boards the operator actually places candidates
// through. Config can replace the table wholesale.
func DefaultBoards() []Board {
	return []Board{
		{Label: "Seek", Suffixes: []string{"seek.co.nz", "seek.com.au", "seek.com"}},
		{Label: "Trade Me", Suffixes: []string{"trademe.co.nz"}},
		{Label: "Indeed", Suffixes: []string{"indeed.com"}},
		{Label: "LinkedIn", Suffixes: []string{"linkedin.com"}},
	}
}

// classifySource labels a row: known board suffix first, then the API's
// provenance fields, then the bare host, then "Web".
func classifySource(boards []Board, link, via, apiSource string) string {
	host := hostOf(link)
	if host != "" {
		for _, b := range boards {
			for _, suf := range b.Suffixes {
				if host == suf || strings.HasSuffix(host, "."+suf) {
					return b.Label
				}
			}
		}
	}
	return FirstNonBlank(via, apiSource, host, "Web")
}

func hostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Host)
}
