package catalog

import (
	"slices"
	"testing"
	"time"

	"github.com/kitshelf/kitshelf/pkg/errors"
)

func TestDefault(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	c := DefaultAt(now)

	if len(c) != 12 {
		t.Fatalf("len(Default()) = %d, want 12", len(c))
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	for i, e := range c {
		if e.ID != i+1 {
			t.Errorf("entry %d has id %d", i, e.ID)
		}
		if e.RepoURL == "" {
			t.Errorf("entry %d has no repo URL", e.ID)
		}
	}
	if got := c[8].UpdatedAt; !got.Equal(now.Add(-3 * day)) {
		t.Errorf("svelte UpdatedAt = %v, want 3 days before %v", got, now)
	}

	// the seed is copied on every call
	c[0].Tags[0] = "mutated"
	if Default()[0].Tags[0] == "mutated" {
		t.Error("Default() shares tag slices between calls")
	}
}

func TestClone(t *testing.T) {
	c := Default()
	clone := c.Clone()
	clone[0].Stars = -1
	clone[0].Tags[0] = "changed"

	if c[0].Stars == -1 || c[0].Tags[0] == "changed" {
		t.Error("Clone() is not a deep copy")
	}
	if Catalog(nil).Clone() != nil {
		t.Error("Clone() of nil should be nil")
	}
}

func TestFind(t *testing.T) {
	c := Default()
	e, ok := c.Find(8)
	if !ok || e.Author != "vuejs" {
		t.Errorf("Find(8) = %+v, %v", e, ok)
	}
	if _, ok := c.Find(99); ok {
		t.Error("Find(99) should fail")
	}
}

func TestCategoriesAndFeatured(t *testing.T) {
	c := Default()
	want := []string{"backend", "desktop", "mobile", "tools", "web"}
	if got := c.Categories(); !slices.Equal(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}

	var ids []int
	for _, e := range c.Featured() {
		ids = append(ids, e.ID)
	}
	if !slices.Equal(ids, []int{1, 4, 6, 9, 11}) {
		t.Errorf("Featured() ids = %v", ids)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{"empty repo url allowed", Catalog{{ID: 1, Name: "a"}}, false},
		{"zero id", Catalog{{ID: 0, Name: "a"}}, true},
		{"duplicate id", Catalog{{ID: 1, Name: "a"}, {ID: 1, Name: "b"}}, true},
		{"blank name", Catalog{{ID: 1, Name: "  "}}, true},
		{"ssh repo url", Catalog{{ID: 1, Name: "a", RepoURL: "git@github.com:a/b.git"}}, false},
		{"scheme-less repo url", Catalog{{ID: 1, Name: "a", RepoURL: "github.com/a/b"}}, false},
		{"repo url left to resolver", Catalog{{ID: 1, Name: "a", RepoURL: "ftp://github.com/a/b"}}, false},
		{"bad demo scheme", Catalog{{ID: 1, Name: "a", DemoURL: "javascript:alert(1)"}}, true},
		{"negative stars", Catalog{{ID: 1, Name: "a", Stars: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidCatalog) {
				t.Errorf("code = %q, want INVALID_CATALOG", errors.GetCode(err))
			}
		})
	}
}

func TestPopularity(t *testing.T) {
	e := Entry{Stars: 100, Forks: 10}
	if got := e.Popularity(); got != 160 {
		t.Errorf("Popularity() = %v, want 160", got)
	}
}
