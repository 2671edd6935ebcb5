package httpapi

import (
	"time"

	"jobradar-engine/internal/domain"
)

type SearchStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastCount int    `json:"last_count"`
	Running   bool   `json:"running"`
}

// ResultSet is the last successful fetch, held in memory for /export. It is
// replaced by the next fetch and never written anywhere except the CSV the
// user downloads.
type ResultSet struct {
	Query      string             `json:"query"`
	Client     string             `json:"client"`
	Occupation string             `json:"occupation"`
	FetchedAt  time.Time          `json:"fetched_at"`
	Rows       []domain.JobRecord `json:"rows"`
}
