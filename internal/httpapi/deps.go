package httpapi

import (
	"context"
	"sync/atomic"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/events"
	"jobradar-engine/internal/search"
)

type Deps struct {
	Hub *events.Hub

	// Atomic stores
	CfgVal       *atomic.Value // stores config.Config
	SearchStatus *atomic.Value // stores httpapi.SearchStatus
	LastResult   *atomic.Value // stores httpapi.ResultSet

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Upstream entrypoints (injected for testability)
	RunFetch    func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error)
	ListClients func(ctx context.Context, cfg config.Config) ([]domain.ClientRecord, error)
}
