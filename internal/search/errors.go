package search

import "fmt"

// ConfigError means the fetch refused to start; nothing was sent upstream.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "search not configured: " + e.Reason }

// UpstreamError means the search API failed the fetch, either with a non-2xx
// transport status or with an error payload in an otherwise valid response.
// The fetch aborts with no partial results.
type UpstreamError struct {
	Status  int // HTTP status; 0 when the API returned an error payload
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("search API status %d: %s", e.Status, e.Message)
	}
	return "search API error: " + e.Message
}
