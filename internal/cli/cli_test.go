package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/kitshelf/kitshelf/pkg/cache"
	"github.com/kitshelf/kitshelf/pkg/catalog"
	"github.com/kitshelf/kitshelf/pkg/config"
	"github.com/kitshelf/kitshelf/pkg/enrich"
)

// fakeGitHub serves repository stats for any /repos/{owner}/{repo} path.
type fakeGitHub struct {
	*httptest.Server
	calls atomic.Int32
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.calls.Add(1)
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/repos/"), "/")
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"full_name":%q,"stargazers_count":%d,"forks_count":%d}`,
			parts[0]+"/"+parts[1], 100+len(parts[1]), 10)
	}))
	t.Cleanup(f.Close)
	return f
}

func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	t.Setenv(config.EnvGitHubToken, "")
	dir := t.TempDir()
	content := fmt.Sprintf(`
[github]
base_url = %q

[refresh]
pacing = "0s"

[cache]
dir = %q
`, baseURL, filepath.Join(dir, "cache"))
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestCLI(configPath string) (*CLI, context.Context) {
	c := New(io.Discard, LogInfo)
	c.configPath = configPath
	return c, withLogger(context.Background(), c.Logger)
}

func TestOpenRefreshPersists(t *testing.T) {
	gh := newFakeGitHub(t)
	c, ctx := newTestCLI(writeTestConfig(t, gh.URL))
	kits := len(catalog.Default())

	a, err := c.open(ctx)
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	res, err := a.enricher.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if got := res.Count(enrich.StateFetched); got != kits {
		t.Errorf("fetched = %d, want %d", got, kits)
	}
	if res.SaveErr != nil {
		t.Errorf("SaveErr = %v", res.SaveErr)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	// A second process reuses the persisted slot.
	calls := gh.calls.Load()
	b, err := c.open(ctx)
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	defer b.Close()

	m, err := b.store.Read(ctx)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(m) != kits {
		t.Errorf("cached entries = %d, want %d", len(m), kits)
	}
	if e, ok := m.Get("vercel/next.js"); !ok || e.Stars != 107 || e.Forks != 10 {
		t.Errorf("vercel/next.js = %+v, %v", e, ok)
	}

	res, err = b.enricher.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if res.Fetches != 0 || gh.calls.Load() != calls {
		t.Errorf("warm pass fetched %d times", res.Fetches)
	}
	if got := res.Count(enrich.StateCacheHit); got != kits {
		t.Errorf("cache hits = %d, want %d", got, kits)
	}
}

func TestOpenNoCacheKeepsNothing(t *testing.T) {
	gh := newFakeGitHub(t)
	c, ctx := newTestCLI(writeTestConfig(t, gh.URL))
	c.noCache = true

	a, err := c.open(ctx)
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	if _, err := a.enricher.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	a.Close()

	c.noCache = false
	b, err := c.open(ctx)
	if err != nil {
		t.Fatalf("open() error: %v", err)
	}
	defer b.Close()
	if m, _ := b.store.Read(ctx); len(m) != 0 {
		t.Errorf("file slot has %d entries after --no-cache run", len(m))
	}
}

func TestOpenInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[cache]\nbackend = \"tape\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, ctx := newTestCLI(path)
	if _, err := c.open(ctx); err == nil {
		t.Error("open() should reject an unknown backend")
	}
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		noCache bool
		want    string
	}{
		{"file", config.CacheConfig{Backend: config.BackendFile, Dir: dir}, false, "*cache.FileCache"},
		{"file scoped", config.CacheConfig{Backend: config.BackendFile, Dir: dir, Prefix: "staging:"}, false, "*cache.ScopedCache"},
		{"none", config.CacheConfig{Backend: config.BackendNone}, false, "*cache.NullCache"},
		{"no-cache flag wins", config.CacheConfig{Backend: config.BackendFile, Dir: dir}, true, "*cache.NullCache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := openBackend(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatalf("openBackend() error: %v", err)
			}
			defer c.Close()
			if got := fmt.Sprintf("%T", c); got != tt.want {
				t.Errorf("backend type = %s, want %s", got, tt.want)
			}
		})
	}

	if _, err := openBackend(ctx, config.CacheConfig{Backend: "tape"}, false); err == nil {
		t.Error("openBackend() should reject an unknown backend")
	}
	if _, err := openBackend(ctx, config.CacheConfig{Backend: config.BackendRedis}, false); err == nil {
		t.Error("openBackend() should fail without a redis address")
	}
}

func TestScopedBackendSharesDirectory(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	a, err := openBackend(ctx, config.CacheConfig{Backend: config.BackendFile, Dir: dir, Prefix: "a:"}, false)
	if err != nil {
		t.Fatal(err)
	}
	b, err := openBackend(ctx, config.CacheConfig{Backend: config.BackendFile, Dir: dir, Prefix: "b:"}, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := a.Set(ctx, "slot", []byte("from a"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := b.Get(ctx, "slot"); ok {
		t.Error("prefixed backends should not see each other's keys")
	}

	loc, err := slotLocation(config.CacheConfig{Backend: config.BackendFile, Dir: dir, Prefix: "a:", Slot: "slot"}, false)
	if err != nil {
		t.Fatal(err)
	}
	fc, _ := cache.NewFileCache(dir)
	if loc != fc.Path("a:slot") {
		t.Errorf("slotLocation() = %q, want %q", loc, fc.Path("a:slot"))
	}
	if _, err := os.Stat(loc); err != nil {
		t.Errorf("slot file missing at reported path: %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	cat, err := loadCatalog(config.CatalogConfig{})
	if err != nil {
		t.Fatalf("loadCatalog() error: %v", err)
	}
	if len(cat) != len(catalog.Default()) {
		t.Errorf("built-in catalog has %d kits", len(cat))
	}

	kits := catalog.Default()[:2]
	data, err := json.Marshal(kits)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "kits.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err = loadCatalog(config.CatalogConfig{Path: path})
	if err != nil {
		t.Fatalf("loadCatalog(%s) error: %v", path, err)
	}
	if len(cat) != 2 || cat[0].Name != kits[0].Name {
		t.Errorf("loaded catalog = %+v", cat)
	}
}

func TestRootCommand(t *testing.T) {
	gh := newFakeGitHub(t)
	configPath := writeTestConfig(t, gh.URL)

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"list", []string{"list", "--json"}, false},
		{"list bad sort", []string{"list", "--sort", "stars"}, true},
		{"list bad page", []string{"list", "--page", "0"}, true},
		{"cache path", []string{"cache", "path"}, false},
		{"cache show", []string{"cache", "show"}, false},
		{"cache show repo", []string{"cache", "show", "vercel/next.js"}, false},
		{"cache show bad ref", []string{"cache", "show", "next.js"}, true},
		{"unknown", []string{"frobnicate"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			root := c.RootCommand()
			root.SetOut(io.Discard)
			root.SetErr(io.Discard)
			root.SetArgs(append([]string{"--config", configPath}, tt.args...))

			err := root.ExecuteContext(context.Background())
			if (err != nil) != tt.wantErr {
				t.Errorf("Execute(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
		})
	}

	if calls := gh.calls.Load(); calls != 0 {
		t.Errorf("read-only commands made %d GitHub requests", calls)
	}
}

func TestRootCommandRefresh(t *testing.T) {
	gh := newFakeGitHub(t)
	configPath := writeTestConfig(t, gh.URL)

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs([]string{"--config", configPath, "refresh", "--json"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("refresh error: %v", err)
	}
	if gh.calls.Load() == 0 {
		t.Error("refresh made no GitHub requests")
	}

	c, ctx := newTestCLI(configPath)
	a, err := c.open(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Close()
	page := a.enricher.Cached(ctx).Query(catalog.Query{Search: "next.js"})
	if page.Total != 1 || page.Kits[0].Stars != 107 {
		t.Errorf("cached next.js kit = %+v", page.Kits)
	}
}
