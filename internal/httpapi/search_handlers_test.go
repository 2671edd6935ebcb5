package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"jobradar-engine/internal/config"
	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/events"
	"jobradar-engine/internal/search"
)

func testDeps(runFetch func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error)) Deps {
	var cfgVal, status, last atomic.Value
	var cfg config.Config
	cfg.App.Port = 38472
	cfg.Search.Engine = "google_jobs"
	cfg.Search.Location = "New Zealand"
	cfg.Search.DefaultPages = 2
	cfg.Search.MaxPages = 5
	cfg.Export.FilenameMax = 120
	cfg.Export.DefaultBasename = "results"
	cfgVal.Store(cfg)
	status.Store(SearchStatus{})

	return Deps{
		Hub:          events.NewHub(),
		CfgVal:       &cfgVal,
		SearchStatus: &status,
		LastResult:   &last,
		RunFetch:     runFetch,
		ListClients: func(ctx context.Context, cfg config.Config) ([]domain.ClientRecord, error) {
			return nil, nil
		},
	}
}

func postSearch(t *testing.T, srv *httptest.Server, body string) *http.Response {
	t.Helper()
	res, err := http.Post(srv.URL+"/search", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestSearchEndpoint_ReturnsRowsAndStoresResult(t *testing.T) {
	rows := []domain.JobRecord{
		{Source: "Seek", Title: "Design Engineer", Company: "Acme", ApplyLink: "https://www.seek.co.nz/job/1"},
		{Source: "Web", Title: "Fitter"},
	}
	var gotQuery search.Query
	deps := testDeps(func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
		gotQuery = q
		return rows, nil
	})

	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	res := postSearch(t, srv, `{"query": "design engineer", "api_key": "k", "client": "Jane Smith", "occupation": "Engineer"}`)
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(res.Body)
		t.Fatalf("status = %d: %s", res.StatusCode, b)
	}

	var out searchResp
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if out.Count != 2 || len(out.Rows) != 2 {
		t.Fatalf("got %+v", out)
	}

	// defaults flowed into the query
	if gotQuery.Location != "New Zealand" || gotQuery.MaxPages != 2 {
		t.Fatalf("query defaults wrong: %+v", gotQuery)
	}

	// status settled
	st := deps.SearchStatus.Load().(SearchStatus)
	if st.Running || st.LastCount != 2 || st.LastError != "" || st.LastOkAt == "" {
		t.Fatalf("status = %+v", st)
	}

	// snapshot is available for export
	rs := deps.LastResult.Load().(ResultSet)
	if rs.Client != "Jane Smith" || len(rs.Rows) != 2 {
		t.Fatalf("result set = %+v", rs)
	}
}

func TestSearchEndpoint_PagesClampedToMax(t *testing.T) {
	var gotPages int
	deps := testDeps(func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
		gotPages = q.MaxPages
		return nil, nil
	})
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	res := postSearch(t, srv, `{"query": "x", "api_key": "k", "pages": 50}`)
	res.Body.Close()
	if gotPages != 5 {
		t.Fatalf("pages = %d, want clamped 5", gotPages)
	}
}

func TestSearchEndpoint_MissingQuery(t *testing.T) {
	deps := testDeps(func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
		t.Fatal("fetch should not run")
		return nil, nil
	})
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	res := postSearch(t, srv, `{"query": "   ", "api_key": "k"}`)
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", res.StatusCode)
	}
}

func TestSearchEndpoint_UpstreamErrorMapsTo502(t *testing.T) {
	deps := testDeps(func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
		return nil, &search.UpstreamError{Message: "quota exhausted"}
	})
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	res := postSearch(t, srv, `{"query": "x", "api_key": "k"}`)
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", res.StatusCode)
	}
	var apiErr APIError
	if err := json.NewDecoder(res.Body).Decode(&apiErr); err != nil {
		t.Fatal(err)
	}
	if apiErr.Error.Code != "upstream_error" {
		t.Fatalf("code = %q", apiErr.Error.Code)
	}

	st := deps.SearchStatus.Load().(SearchStatus)
	if st.Running || st.LastError == "" {
		t.Fatalf("status = %+v", st)
	}
	if deps.LastResult.Load() != nil {
		t.Fatal("failed fetch must not leave a result set behind")
	}
}

func TestSearchEndpoint_FetchErrorsDontPanic(t *testing.T) {
	deps := testDeps(func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
		return nil, errors.New("boom")
	})
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	res := postSearch(t, srv, `{"query": "x", "api_key": "k"}`)
	res.Body.Close()
	if res.StatusCode != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", res.StatusCode)
	}
}

func TestExportEndpoint(t *testing.T) {
	deps := testDeps(func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
		return []domain.JobRecord{
			{Source: "Seek", Title: "Design Engineer", Company: "Acme", ApplyLink: "https://www.seek.co.nz/job/1"},
		}, nil
	})
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	// no result set yet
	res, err := http.Get(srv.URL + "/export")
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409 before any fetch", res.StatusCode)
	}

	postSearch(t, srv, `{"query": "My Query!!", "api_key": "k", "client": "Jane Smith", "occupation": "Engineer"}`).Body.Close()

	res, err = http.Get(srv.URL + "/export")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	cd := res.Header.Get("Content-Disposition")
	// stem prefers the client over the query
	if !strings.Contains(cd, "Jane_Smith_") || !strings.Contains(cd, ".csv") {
		t.Fatalf("content disposition = %q", cd)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(body, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatal("export missing UTF-8 BOM")
	}
	text := string(body[3:])
	if !strings.HasPrefix(text, "Client,Occupation,Source,") {
		t.Fatalf("header wrong: %q", text[:60])
	}
	if !strings.Contains(text, "Jane Smith,Engineer,Seek,Design Engineer") {
		t.Fatalf("row missing: %q", text)
	}
}

func TestClientsEndpoint(t *testing.T) {
	deps := testDeps(nil)
	deps.ListClients = func(ctx context.Context, cfg config.Config) ([]domain.ClientRecord, error) {
		return []domain.ClientRecord{{Name: "Jane Smith", Profession: "Engineer"}}, nil
	}
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/clients")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var recs []domain.ClientRecord
	if err := json.NewDecoder(res.Body).Decode(&recs); err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Name != "Jane Smith" {
		t.Fatalf("got %+v", recs)
	}
}

func TestClientsEndpoint_EmptyDirectoryIsEmptyArray(t *testing.T) {
	deps := testDeps(nil)
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/clients")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("body = %q, want []", body)
	}
}

func TestSearchStatusEndpoint(t *testing.T) {
	deps := testDeps(func(ctx context.Context, cfg config.Config, q search.Query) ([]domain.JobRecord, error) {
		return nil, nil
	})
	srv := httptest.NewServer(Chain(NewMux(deps), RequestID, Recover))
	defer srv.Close()

	postSearch(t, srv, `{"query": "x", "api_key": "k"}`).Body.Close()

	res, err := http.Get(srv.URL + "/search/status")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var st SearchStatus
	if err := json.NewDecoder(res.Body).Decode(&st); err != nil {
		t.Fatal(err)
	}
	if st.Running || st.LastRunAt == "" || st.LastOkAt == "" {
		t.Fatalf("status = %+v", st)
	}
}
