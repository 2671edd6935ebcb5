package httpapi

import (
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/export"
	"jobradar-engine/internal/search"
)

type ExportHandler struct {
	CfgVal     *atomic.Value // config.Config
	LastResult *atomic.Value // httpapi.ResultSet
}

// Get streams the last fetch as a CSV attachment. The filename stem prefers
// the client the search ran for, then the query itself.
func (h ExportHandler) Get(w http.ResponseWriter, r *http.Request) {
	v := h.LastResult.Load()
	if v == nil {
		WriteError(w, r, http.StatusConflict, "no_results", "run a search before exporting")
		return
	}
	rs := v.(ResultSet)

	cfg := h.CfgVal.Load().(config.Config)
	namer := export.Namer{MaxLen: cfg.Export.FilenameMax, Default: cfg.Export.DefaultBasename}

	stem := search.FirstNonBlank(rs.Client, rs.Query)
	name := namer.ExportName(stem, time.Now())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+strconv.Quote(name))

	cols := export.Columns{Client: rs.Client, Occupation: rs.Occupation}
	if err := export.WriteCSV(w, rs.Rows, cols); err != nil {
		// headers are gone by now; log-level handling happens in AccessLog
		return
	}
}
