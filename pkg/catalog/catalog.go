package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/kitshelf/kitshelf/pkg/errors"
)

// Entry is one starter kit.
type Entry struct {
	ID          int       `json:"id" toml:"id"`
	Name        string    `json:"name" toml:"name"`
	Description string    `json:"description" toml:"description"`
	Category    string    `json:"category" toml:"category"`
	Tags        []string  `json:"tags" toml:"tags"`
	Stars       int       `json:"stars" toml:"stars"`
	Forks       int       `json:"forks" toml:"forks"`
	UpdatedAt   time.Time `json:"updatedAt" toml:"updated_at"`
	Author      string    `json:"author" toml:"author"`
	RepoURL     string    `json:"repoUrl" toml:"repo_url"`
	DemoURL     string    `json:"demoUrl,omitempty" toml:"demo_url"`
	Featured    bool      `json:"featured" toml:"featured"`
}

// Popularity is the score used by the "popular" sort mode.
func (e Entry) Popularity() float64 {
	return float64(e.Stars)*1.5 + float64(e.Forks)
}

// Catalog is an ordered list of entries.
type Catalog []Entry

// Clone returns a deep copy of c.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	for i, e := range c {
		e.Tags = slices.Clone(e.Tags)
		out[i] = e
	}
	return out
}

// Find returns the entry with the given ID.
func (c Catalog) Find(id int) (Entry, bool) {
	for _, e := range c {
		if e.ID == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Featured returns the featured entries in catalog order.
func (c Catalog) Featured() Catalog {
	var out Catalog
	for _, e := range c {
		if e.Featured {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the sorted distinct categories.
func (c Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range c {
		if e.Category != "" && !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	slices.Sort(out)
	return out
}

// Validate checks that IDs are positive and unique, names are usable and
// any DemoURL uses http or https. RepoURL is left to the resolver, which
// classifies each entry on its own during a pass.
func (c Catalog) Validate() error {
	seen := make(map[int]bool, len(c))
	for i, e := range c {
		if e.ID <= 0 {
			return errors.New(errors.ErrCodeInvalidCatalog, "kit #%d: id must be positive, got %d", i+1, e.ID)
		}
		if seen[e.ID] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate kit id %d", e.ID)
		}
		seen[e.ID] = true

		if err := errors.ValidateKitName(e.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "kit %d", e.ID)
		}
		if u := strings.TrimSpace(e.DemoURL); u != "" {
			if err := errors.ValidateURL(u); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidCatalog, err, "kit %d: %q", e.ID, e.DemoURL)
			}
		}
		if e.Stars < 0 || e.Forks < 0 {
			return errors.New(errors.ErrCodeInvalidCatalog, "kit %d: negative stars or forks", e.ID)
		}
	}
	return nil
}
