package domain

// JobRecord is one normalized job posting row as the UI and the CSV export
// see it. Records are immutable once produced and live only for the fetch
// session that produced them.
type JobRecord struct {
	Source    string `json:"source"`
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	Posted    string `json:"posted"`
	ApplyLink string `json:"applyLink"` // dedupe key when non-blank
}
