package export

import (
	"strings"
	"time"
)

// Namer turns free text into a filesystem-safe export filename. Normalize is
// pure and total: any input comes out bounded and non-blank.
type Namer struct {
	MaxLen  int    // rune bound on the normalized stem
	Default string // substituted when nothing survives normalization
}

func DefaultNamer() Namer {
	return Namer{MaxLen: 120, Default: "results"}
}

func (n Namer) Normalize(s string) string {
	s = strings.TrimSpace(s)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		ok := r == '-' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if ok {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		// spaces and every other character become a single underscore
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	out := strings.Trim(b.String(), "_")

	max := n.MaxLen
	if max <= 0 {
		max = 120
	}
	if runes := []rune(out); len(runes) > max {
		out = strings.Trim(string(runes[:max]), "_")
	}

	if out == "" {
		if n.Default != "" {
			return n.Default
		}
		return "results"
	}
	return out
}

// ExportName composes `<normalized-stem>_<timestamp>.csv`.
func (n Namer) ExportName(stem string, now time.Time) string {
	return n.Normalize(stem) + "_" + now.Format("20060102-1504") + ".csv"
}
