package httpapi

import (
	"context"
	"net/http"
	"sync/atomic"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
)

type ClientsHandler struct {
	CfgVal      *atomic.Value // config.Config
	ListClients func(ctx context.Context, cfg config.Config) ([]domain.ClientRecord, error)
}

func (h ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	cfg := h.CfgVal.Load().(config.Config)

	recs, err := h.ListClients(r.Context(), cfg)
	if err != nil {
		WriteError(w, r, http.StatusBadGateway, "upstream_error", err.Error())
		return
	}
	if recs == nil {
		recs = []domain.ClientRecord{}
	}
	writeJSON(w, recs)
}
