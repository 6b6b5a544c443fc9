package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kitshelf/kitshelf/pkg/catalog"
	"github.com/kitshelf/kitshelf/pkg/enrich"
)

type fakeSource struct {
	cat       catalog.Catalog
	loading   bool
	last      *enrich.Result
	triggerOK bool
	triggers  int
}

func (f *fakeSource) Snapshot() (catalog.Catalog, bool) { return f.cat.Clone(), f.loading }

func (f *fakeSource) Last() (enrich.Result, bool) {
	if f.last == nil {
		return enrich.Result{}, false
	}
	return *f.last, true
}

func (f *fakeSource) Trigger() bool {
	f.triggers++
	return f.triggerOK
}

func newTestServer(t *testing.T, src *fakeSource) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(src, "", nil).Routes())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestListKits(t *testing.T) {
	ts := newTestServer(t, &fakeSource{cat: catalog.Default(), loading: true})

	tests := []struct {
		query     string
		wantTotal int
		wantLen   int
		wantFirst int
	}{
		{"", 12, 6, 1},
		{"?per_page=20", 12, 12, 1},
		{"?category=backend&sort=name", 4, 4, 7},
		{"?search=REACT&sort=forks", 4, 4, 1},
		{"?featured=true&sort=recent", 5, 5, 9},
		{"?page=2&per_page=5&sort=name", 12, 5, 10},
		{"?page=abc", 12, 6, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var got struct {
				catalog.Page
				Loading bool `json:"loading"`
			}
			getJSON(t, ts.URL+"/api/kits"+tt.query, http.StatusOK, &got)
			if got.Total != tt.wantTotal || len(got.Kits) != tt.wantLen {
				t.Errorf("total = %d, len = %d", got.Total, len(got.Kits))
			}
			if len(got.Kits) > 0 && got.Kits[0].ID != tt.wantFirst {
				t.Errorf("first id = %d, want %d", got.Kits[0].ID, tt.wantFirst)
			}
			if !got.Loading {
				t.Error("loading flag not forwarded")
			}
		})
	}
}

func TestListKitsBadSort(t *testing.T) {
	ts := newTestServer(t, &fakeSource{cat: catalog.Default()})

	var body errorBody
	getJSON(t, ts.URL+"/api/kits?sort=stars", http.StatusBadRequest, &body)
	if body.Error.Code != "INVALID_INPUT" {
		t.Errorf("code = %q", body.Error.Code)
	}
}

func TestGetKit(t *testing.T) {
	ts := newTestServer(t, &fakeSource{cat: catalog.Default()})

	var ok kitResponse
	getJSON(t, ts.URL+"/api/kits/8", http.StatusOK, &ok)
	if ok.Kit.Author != "vuejs" || ok.Kit.RepoURL != "https://github.com/vuejs/vue" {
		t.Errorf("kit = %+v", ok.Kit)
	}

	var missing errorBody
	getJSON(t, ts.URL+"/api/kits/99", http.StatusNotFound, &missing)
	if missing.Error.Code != "KIT_NOT_FOUND" || missing.Error.Message != "kit 99 not found" {
		t.Errorf("error = %+v", missing.Error)
	}

	var bad errorBody
	getJSON(t, ts.URL+"/api/kits/abc", http.StatusBadRequest, &bad)
}

func TestCategories(t *testing.T) {
	ts := newTestServer(t, &fakeSource{cat: catalog.Default()})

	var got map[string][]string
	getJSON(t, ts.URL+"/api/categories", http.StatusOK, &got)
	if len(got["categories"]) != 5 || got["categories"][0] != "backend" {
		t.Errorf("categories = %v", got)
	}
}

func TestStatus(t *testing.T) {
	src := &fakeSource{cat: catalog.Default()}
	ts := newTestServer(t, src)

	var before statusResponse
	getJSON(t, ts.URL+"/api/status", http.StatusOK, &before)
	if before.LastPass != nil || before.Kits != 12 {
		t.Errorf("status before first pass = %+v", before)
	}

	src.last = &enrich.Result{
		PassID:   "pass-1",
		Fetches:  3,
		Duration: 1500 * time.Millisecond,
		Outcomes: []enrich.Outcome{
			{ID: 1, State: enrich.StateFetched},
			{ID: 2, State: enrich.StateTransient},
			{ID: 3, State: enrich.StateSkipped},
			{ID: 4, State: enrich.StateCacheHit},
		},
		SaveErr: errors.New("disk full"),
	}

	var after statusResponse
	getJSON(t, ts.URL+"/api/status", http.StatusOK, &after)
	lp := after.LastPass
	if lp == nil || lp.PassID != "pass-1" || lp.Fetches != 3 || lp.Updated != 2 || lp.Failed != 1 {
		t.Fatalf("last pass = %+v", lp)
	}
	if lp.Duration != "1.5s" || lp.SaveErr != "disk full" {
		t.Errorf("duration = %q, saveError = %q", lp.Duration, lp.SaveErr)
	}
}

func TestRefresh(t *testing.T) {
	src := &fakeSource{cat: catalog.Default(), triggerOK: true}
	ts := newTestServer(t, src)

	resp, err := http.Post(ts.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted || src.triggers != 1 {
		t.Errorf("status = %d, triggers = %d", resp.StatusCode, src.triggers)
	}

	src.triggerOK = false
	resp, err = http.Post(ts.URL+"/api/refresh", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/refresh")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/refresh status = %d, want 405", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t, &fakeSource{})
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
