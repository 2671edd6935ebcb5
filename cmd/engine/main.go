package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"jobradar-engine/internal/clients"
	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/events"
	"jobradar-engine/internal/httpapi"
	"jobradar-engine/internal/search"
	"jobradar-engine/internal/secrets"

	"github.com/gofrs/flock"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one), else local folder.
	dataDir := os.Getenv("JOBRADAR_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; a second instance would fight over the
	// config file and the export snapshot.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("instance lock failed: %v", err)
	}
	if !locked {
		log.Fatalf("another engine is already running in %s", dataDir)
	}
	defer lock.Unlock()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		cfg, err := config.Load(userCfgPath)
		if err != nil {
			return cfg, err
		}
		config.OverlayEnv(&cfg)
		return cfg, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	var searchStatus atomic.Value
	searchStatus.Store(httpapi.SearchStatus{})

	var lastResult atomic.Value // stores httpapi.ResultSet; nil until first fetch

	hub := events.NewHub()

	deps := httpapi.Deps{
		Hub:          hub,
		CfgVal:       &cfgVal,
		SearchStatus: &searchStatus,
		LastResult:   &lastResult,
		UserCfgPath:  userCfgPath,
		LoadCfg:      loadCfg,
		RunFetch:     runFetch,
		ListClients:  listClients,
	}

	mux := httpapi.NewMux(deps)

	// Shutdown endpoint stays in main: it needs the server handle and a
	// token nobody else holds.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Handler: httpapi.Chain(mux,
			httpapi.RequestID,
			httpapi.AccessLog,
			httpapi.Recover,
			httpapi.Cors,
		),
		ReadHeaderTimeout: 5 * time.Second,
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	log.Printf("engine listening on http://%s (cfg=%s)", addr, userCfgPath)
	log.Printf("shutdown token: %s", token)
	log.Fatal(srv.Serve(ln))
}

// runFetch builds a fresh search client from the config snapshot so config
// edits apply to the next fetch without a restart.
func runFetch(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
	cli := search.New(search.Config{
		Engine:    cfg.Search.Engine,
		Boards:    mapBoards(cfg.Search.Boards),
		PagePause: time.Duration(cfg.Search.PagePauseMS) * time.Millisecond,
	})
	return cli.Fetch(ctx, q)
}

func listClients(ctx context.Context, cfg config.Config) ([]domain.ClientRecord, error) {
	cli := clients.New(clients.Config{
		APIKey:          secrets.ResolveAirtableKey(),
		BaseID:          cfg.Airtable.BaseID,
		Table:           cfg.Airtable.Table,
		View:            cfg.Airtable.View,
		NameField:       cfg.Airtable.NameField,
		ProfessionField: cfg.Airtable.ProfessionField,
	})
	return cli.List(ctx)
}
