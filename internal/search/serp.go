package search

// Wire types for the SerpAPI google_jobs engine. Only the fields the row
// mapping reads are declared.

type serpResponse struct {
	Error       string    `json:"error"`
	JobsResults []serpJob `json:"jobs_results"`

	// The continuation token has moved between these two objects across API
	// versions; accept either.
	SerpapiPagination struct {
		NextPageToken string `json:"next_page_token"`
	} `json:"serpapi_pagination"`
	SearchMetadata struct {
		NextPageToken string `json:"next_page_token"`
	} `json:"search_metadata"`
}

type serpJob struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Location    string `json:"location"`
	Via         string `json:"via"`
	Source      string `json:"source"`

	DetectedExtensions struct {
		PostedAt string `json:"posted_at"`
		Posted   string `json:"posted"`
	} `json:"detected_extensions"`

	ApplyLink    string `json:"apply_link"`
	ApplyOptions []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"apply_options"`
	Link string `json:"link"`
}

// bestLink prefers the direct apply link over the generic posting link.
func (j serpJob) bestLink() string {
	first := ""
	if len(j.ApplyOptions) > 0 {
		first = j.ApplyOptions[0].Link
	}
	return FirstNonBlank(j.ApplyLink, first, j.Link)
}
