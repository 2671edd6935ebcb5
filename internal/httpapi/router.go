package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Search
	sh := SearchHandler{
		CfgVal:       d.CfgVal,
		SearchStatus: d.SearchStatus,
		LastResult:   d.LastResult,
		Hub:          d.Hub,
		RunFetch:     d.RunFetch,
	}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Run,
	}))
	mux.HandleFunc("/search/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Status,
	}))

	// Export
	xh := ExportHandler{CfgVal: d.CfgVal, LastResult: d.LastResult}
	mux.HandleFunc("/export", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: xh.Get,
	}))

	// Client directory
	clh := ClientsHandler{CfgVal: d.CfgVal, ListClients: d.ListClients}
	mux.HandleFunc("/clients", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: clh.List,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// Secrets
	skh := SecretsHandler{}
	mux.HandleFunc("/api/secrets/serpapi", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: skh.SetSearchKey,
	}))
	mux.HandleFunc("/api/secrets/airtable", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: skh.SetAirtableKey,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
