package config

import (
	"fmt"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus errors/warnings the UI
// can render. Saving goes through this; loading only applies defaults.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	applyDefaults(&out)

	out.Search.Engine = strings.TrimSpace(out.Search.Engine)
	out.Search.Location = strings.TrimSpace(out.Search.Location)

	// Normalize board tables: drop blank suffixes, lowercase them, drop
	// label-less or empty entries.
	var boards []Board
	for _, b := range out.Search.Boards {
		label := strings.TrimSpace(b.Label)
		var sufs []string
		seen := map[string]bool{}
		for _, s := range b.Suffixes {
			s = strings.ToLower(strings.TrimSpace(s))
			if s == "" || seen[s] {
				continue
			}
			seen[s] = true
			sufs = append(sufs, s)
		}
		if label == "" || len(sufs) == 0 {
			res.addWarn("dropping board entry with empty label or no suffixes (label=%q)", b.Label)
			continue
		}
		boards = append(boards, Board{Label: label, Suffixes: sufs})
	}
	out.Search.Boards = boards

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	if out.Search.MaxPages <= 0 {
		res.addErr("search.max_pages must be > 0")
	}
	if out.Search.DefaultPages <= 0 {
		res.addErr("search.default_pages must be > 0")
	}
	if out.Search.DefaultPages > out.Search.MaxPages {
		res.addErr("search.default_pages (%d) exceeds search.max_pages (%d)",
			out.Search.DefaultPages, out.Search.MaxPages)
	}
	if out.Search.PagePauseMS < 0 {
		res.addErr("search.page_pause_ms must be >= 0")
	} else if out.Search.PagePauseMS < 200 {
		res.addWarn("search.page_pause_ms is very low (%d) and may trip the upstream rate limit.", out.Search.PagePauseMS)
	}

	if out.Export.FilenameMax < 8 {
		res.addErr("export.filename_max must be >= 8")
	}

	// Airtable is optional as a whole, but a half-configured block is a
	// common mistake worth flagging.
	at := out.Airtable
	if (at.BaseID == "") != (at.Table == "") {
		res.addWarn("airtable.base_id and airtable.table should be set together; client lookup stays disabled until both are present.")
	}
	if at.BaseID != "" && at.Table != "" && strings.TrimSpace(at.NameField) == "" {
		res.addErr("airtable.name_field is required when airtable.base_id and airtable.table are set")
	}

	return out, res
}
