package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/events"
	"jobradar-engine/internal/search"
	"jobradar-engine/internal/secrets"
)

type SearchHandler struct {
	CfgVal       *atomic.Value // config.Config
	SearchStatus *atomic.Value // httpapi.SearchStatus
	LastResult   *atomic.Value // httpapi.ResultSet
	Hub          *events.Hub
	RunFetch     func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error)
}

type searchReq struct {
	Query      string `json:"query"`
	Location   string `json:"location"`
	Pages      int    `json:"pages"`
	Client     string `json:"client"`
	Occupation string `json:"occupation"`
	APIKey     string `json:"api_key"`
}

type searchResp struct {
	Count int                `json:"count"`
	Rows  []domain.JobRecord `json:"rows"`
}

func (h SearchHandler) Status(w http.ResponseWriter, r *http.Request) {
	st := h.SearchStatus.Load().(SearchStatus)
	writeJSON(w, st)
}

// Run executes the whole fetch on the request goroutine: the UI blocks on
// the response and watches /events for page progress in the meantime.
func (h SearchHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req searchReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_query", "search query is required")
		return
	}

	st := h.SearchStatus.Load().(SearchStatus)
	if st.Running {
		WriteError(w, r, http.StatusConflict, "search_running", "a fetch is already in progress")
		return
	}

	cfg := h.CfgVal.Load().(config.Config)

	key, err := secrets.ResolveSearchKey(req.APIKey)
	if err != nil {
		WriteError(w, r, http.StatusUnprocessableEntity, "missing_api_key", err.Error())
		return
	}

	pages := req.Pages
	if pages <= 0 {
		pages = cfg.Search.DefaultPages
	}
	if pages > cfg.Search.MaxPages {
		pages = cfg.Search.MaxPages
	}
	location := search.FirstNonBlank(req.Location, cfg.Search.Location)

	reqID := RequestIDFrom(r.Context())
	now := time.Now().Format(time.RFC3339)
	h.SearchStatus.Store(SearchStatus{
		LastRunAt: now,
		Running:   true,
		LastOkAt:  st.LastOkAt,
	})
	h.Hub.Publish(events.MakeEvent(reqID, "search_started", 1, map[string]any{
		"query": req.Query, "pages": pages,
	}))

	rows, err := h.RunFetch(r.Context(), cfg, search.Query{
		Query:    req.Query,
		Location: location,
		MaxPages: pages,
		APIKey:   key,
		OnPage: func(page, total int) {
			h.Hub.Publish(events.MakeEvent(reqID, "search_page", 1, map[string]any{
				"page": page, "total": total,
			}))
		},
	})

	done := time.Now().Format(time.RFC3339)
	next := h.SearchStatus.Load().(SearchStatus)
	next.Running = false
	next.LastRunAt = done

	if err != nil {
		next.LastError = err.Error()
		h.SearchStatus.Store(next)
		h.Hub.Publish(events.MakeEvent(reqID, "search_failed", 1, map[string]any{"error": err.Error()}))
		writeFetchError(w, r, err)
		return
	}

	next.LastError = ""
	next.LastOkAt = done
	next.LastCount = len(rows)
	h.SearchStatus.Store(next)

	h.LastResult.Store(ResultSet{
		Query:      req.Query,
		Client:     req.Client,
		Occupation: req.Occupation,
		FetchedAt:  time.Now().UTC(),
		Rows:       rows,
	})
	h.Hub.Publish(events.MakeEvent(reqID, "search_done", 1, map[string]any{"count": len(rows)}))

	if rows == nil {
		rows = []domain.JobRecord{}
	}
	writeJSON(w, searchResp{Count: len(rows), Rows: rows})
}

func writeFetchError(w http.ResponseWriter, r *http.Request, err error) {
	var cfgErr *search.ConfigError
	if errors.As(err, &cfgErr) {
		WriteError(w, r, http.StatusUnprocessableEntity, "missing_api_key", cfgErr.Error())
		return
	}
	var upErr *search.UpstreamError
	if errors.As(err, &upErr) {
		WriteError(w, r, http.StatusBadGateway, "upstream_error", upErr.Error())
		return
	}
	WriteError(w, r, http.StatusInternalServerError, "fetch_failed", err.Error())
}
