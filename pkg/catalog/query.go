package catalog

import (
	"cmp"
	"slices"
	"strings"

	"github.com/kitshelf/kitshelf/pkg/errors"
)

// SortMode orders query results.
type SortMode string

const (
	SortPopular  SortMode = "popular"
	SortForks    SortMode = "forks"
	SortRecent   SortMode = "recent"
	SortName     SortMode = "name"
	SortNameDesc SortMode = "name-desc"
)

// SortModes lists the accepted sort modes, default first.
var SortModes = []SortMode{SortPopular, SortForks, SortRecent, SortName, SortNameDesc}

// CategoryAll matches every category.
const CategoryAll = "all"

// DefaultPerPage is the page size used when Query.PerPage is unset.
const DefaultPerPage = 6

// ParseSortMode validates s. An empty string yields [SortPopular].
func ParseSortMode(s string) (SortMode, error) {
	if s == "" {
		return SortPopular, nil
	}
	m := SortMode(strings.ToLower(s))
	if !slices.Contains(SortModes, m) {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown sort mode %q", s)
	}
	return m, nil
}

// Query selects, orders and paginates entries.
type Query struct {
	Search       string   // case-insensitive match on name, description or any tag
	Category     string   // empty or "all" matches everything
	Sort         SortMode // empty or unknown means popular
	Page         int      // 1-based; values below 1 mean 1
	PerPage      int      // values below 1 mean DefaultPerPage
	FeaturedOnly bool
}

// Page is one page of query results.
type Page struct {
	Kits       Catalog `json:"kits"`
	Page       int     `json:"page"`
	PerPage    int     `json:"perPage"`
	Total      int     `json:"total"`
	TotalPages int     `json:"totalPages"`
}

// Query applies q to c. The catalog itself is not modified.
func (c Catalog) Query(q Query) Page {
	matched := c.Filter(q.Search, q.Category, q.FeaturedOnly)
	matched.Sort(q.Sort)

	perPage := q.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	page := max(q.Page, 1)

	total := len(matched)
	start := min((page-1)*perPage, total)
	end := min(start+perPage, total)

	return Page{
		Kits:       slices.Clip(matched[start:end]),
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
	}
}

// Filter returns a copy of the entries matching search and category.
func (c Catalog) Filter(search, category string, featuredOnly bool) Catalog {
	needle := strings.ToLower(strings.TrimSpace(search))
	out := Catalog{}
	for _, e := range c.Clone() {
		if featuredOnly && !e.Featured {
			continue
		}
		if category != "" && category != CategoryAll && e.Category != category {
			continue
		}
		if needle != "" && !e.matches(needle) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (e Entry) matches(needle string) bool {
	if strings.Contains(strings.ToLower(e.Name), needle) ||
		strings.Contains(strings.ToLower(e.Description), needle) {
		return true
	}
	return slices.ContainsFunc(e.Tags, func(tag string) bool {
		return strings.Contains(strings.ToLower(tag), needle)
	})
}

// Sort orders c in place. Ties keep their catalog order.
func (c Catalog) Sort(mode SortMode) {
	slices.SortStableFunc(c, compareFunc(mode))
}

func compareFunc(mode SortMode) func(a, b Entry) int {
	switch mode {
	case SortForks:
		return func(a, b Entry) int { return cmp.Compare(b.Forks, a.Forks) }
	case SortRecent:
		return func(a, b Entry) int { return b.UpdatedAt.Compare(a.UpdatedAt) }
	case SortName:
		return func(a, b Entry) int { return compareNames(a.Name, b.Name) }
	case SortNameDesc:
		return func(a, b Entry) int { return compareNames(b.Name, a.Name) }
	default:
		return func(a, b Entry) int { return cmp.Compare(b.Popularity(), a.Popularity()) }
	}
}

func compareNames(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
