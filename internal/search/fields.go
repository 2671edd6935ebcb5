package search

import "strings"

// FirstNonBlank returns the first value that is non-blank after trimming,
// or "". The API scatters the same fact across several optional fields, so
// row mapping is ordered fallback all the way down.
func FirstNonBlank(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
