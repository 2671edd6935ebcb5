package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestList_MissingConfigShortCircuits(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"records": []}`)
	}))
	defer srv.Close()

	for _, cfg := range []Config{
		{BaseURL: srv.URL},                                            // nothing set
		{BaseURL: srv.URL, APIKey: "k", BaseID: "app1"},               // no table
		{BaseURL: srv.URL, BaseID: "app1", Table: "Clients"},          // no key
		{BaseURL: srv.URL, APIKey: "k", Table: "Clients", View: "v1"}, // no base
	} {
		recs, err := New(cfg).List(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(recs) != 0 {
			t.Fatalf("got %d records, want 0", len(recs))
		}
	}
	if got := calls.Load(); got != 0 {
		t.Fatalf("issued %d requests, want 0", got)
	}
}

func TestList_PaginatesAndDedupesByName(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("auth header = %q", got)
		}
		if got := r.URL.Query().Get("view"); got != "Grid view" {
			t.Errorf("view = %q", got)
		}
		switch calls.Add(1) {
		case 1:
			if r.URL.Query().Get("offset") != "" {
				t.Error("first page carried an offset")
			}
			fmt.Fprint(w, `{
				"records": [
					{"id": "r1", "fields": {"Name": "Jane Smith", "Profession": "Mechanical Engineer"}},
					{"id": "r2", "fields": {"Profession": "No Name Here"}},
					{"id": "r3", "fields": {"Name": "  "}},
					{"id": "r4", "fields": {"Name": "Bob Brown"}}
				],
				"offset": "itr-2"
			}`)
		default:
			if got := r.URL.Query().Get("offset"); got != "itr-2" {
				t.Errorf("offset = %q, want itr-2", got)
			}
			fmt.Fprint(w, `{
				"records": [
					{"id": "r5", "fields": {"Name": "jane smith", "Profession": "Duplicate"}},
					{"id": "r6", "fields": {"Name": "Ana Lee", "Profession": ["Welder", "Fabricator"]}}
				]
			}`)
		}
	}))
	defer srv.Close()

	cli := New(Config{
		BaseURL: srv.URL, APIKey: "key-1", BaseID: "app1", Table: "Clients",
		View: "Grid view", NameField: "Name", ProfessionField: "Profession",
	})
	recs, err := cli.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("issued %d requests, want 2", got)
	}
	if len(recs) != 3 {
		t.Fatalf("got %d records, want 3: %+v", len(recs), recs)
	}
	if recs[0].Name != "Jane Smith" || recs[0].Profession != "Mechanical Engineer" {
		t.Fatalf("first record wrong: %+v", recs[0])
	}
	if recs[1].Name != "Bob Brown" {
		t.Fatalf("second record wrong: %+v", recs[1])
	}
	// lookup-style array field collapses to its first string
	if recs[2].Name != "Ana Lee" || recs[2].Profession != "Welder" {
		t.Fatalf("third record wrong: %+v", recs[2])
	}
}

func TestList_UpstreamStatusFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"type":"AUTHENTICATION_REQUIRED"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	cli := New(Config{BaseURL: srv.URL, APIKey: "bad", BaseID: "app1", Table: "Clients"})
	if _, err := cli.List(context.Background()); err == nil {
		t.Fatal("expected error, got nil")
	}
}
