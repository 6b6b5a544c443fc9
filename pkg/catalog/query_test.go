package catalog

import (
	"slices"
	"testing"
	"time"
)

func ids(c Catalog) []int {
	out := make([]int, len(c))
	for i, e := range c {
		out[i] = e.ID
	}
	return out
}

func TestQuerySearch(t *testing.T) {
	c := Default()

	tests := []struct {
		search string
		want   []int
	}{
		{"", []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
		{"REACT", []int{1, 2, 4, 11}},          // name, tags
		{"mongodb", []int{5}},                  // description and tag
		{"postgresql", []int{7, 10, 12}},       // tag
		{"pre-configured", []int{2, 8, 9, 11}}, // description only
		{"nothing-matches", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			got := c.Filter(tt.search, "", false)
			if !slices.Equal(ids(got), tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.search, ids(got), tt.want)
			}
		})
	}
}

func TestQueryCategory(t *testing.T) {
	c := Default()
	for _, all := range []string{"", CategoryAll} {
		if got := c.Filter("", all, false); len(got) != len(c) {
			t.Errorf("category %q matched %d, want %d", all, len(got), len(c))
		}
	}
	if got := ids(c.Filter("", "mobile", false)); !slices.Equal(got, []int{2, 6}) {
		t.Errorf("mobile = %v", got)
	}
	if got := ids(c.Filter("typescript", "web", true)); !slices.Equal(got, []int{1, 9, 11}) {
		t.Errorf("featured typescript web = %v", got)
	}
}

func TestQuerySort(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := Catalog{
		{ID: 1, Name: "beta", Stars: 100, Forks: 0, UpdatedAt: base},
		{ID: 2, Name: "Alpha", Stars: 10, Forks: 200, UpdatedAt: base.Add(time.Hour)},
		{ID: 3, Name: "gamma", Stars: 100, Forks: 50, UpdatedAt: base.Add(-time.Hour)},
	}

	tests := []struct {
		mode SortMode
		want []int
	}{
		{SortPopular, []int{2, 3, 1}}, // 215, 200, 150
		{"", []int{2, 3, 1}},
		{"bogus", []int{2, 3, 1}},
		{SortForks, []int{2, 3, 1}},
		{SortRecent, []int{2, 1, 3}},
		{SortName, []int{2, 1, 3}},
		{SortNameDesc, []int{3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			page := c.Query(Query{Sort: tt.mode, PerPage: 10})
			if got := ids(page.Kits); !slices.Equal(got, tt.want) {
				t.Errorf("sort %q = %v, want %v", tt.mode, got, tt.want)
			}
		})
	}

	if !slices.Equal(ids(c), []int{1, 2, 3}) {
		t.Error("Query() reordered the receiver")
	}
}

func TestQueryPagination(t *testing.T) {
	c := Default()

	p1 := c.Query(Query{Sort: SortName})
	if p1.PerPage != DefaultPerPage || p1.Page != 1 {
		t.Errorf("defaults: page=%d perPage=%d", p1.Page, p1.PerPage)
	}
	if p1.Total != 12 || p1.TotalPages != 2 || len(p1.Kits) != 6 {
		t.Errorf("page 1 = total %d, pages %d, len %d", p1.Total, p1.TotalPages, len(p1.Kits))
	}

	p2 := c.Query(Query{Sort: SortName, Page: 2, PerPage: 5})
	if p2.TotalPages != 3 || len(p2.Kits) != 5 {
		t.Errorf("page 2 = pages %d, len %d", p2.TotalPages, len(p2.Kits))
	}

	p3 := c.Query(Query{Sort: SortName, Page: 3, PerPage: 5})
	if len(p3.Kits) != 2 {
		t.Errorf("last page len = %d, want 2", len(p3.Kits))
	}

	beyond := c.Query(Query{Page: 9})
	if len(beyond.Kits) != 0 || beyond.Total != 12 {
		t.Errorf("page past end = %d kits, total %d", len(beyond.Kits), beyond.Total)
	}

	empty := c.Query(Query{Search: "zzz"})
	if empty.TotalPages != 0 || empty.Kits == nil {
		t.Errorf("empty result = %+v", empty)
	}

	negative := c.Query(Query{Page: -3})
	if negative.Page != 1 {
		t.Errorf("Page(-3) normalized to %d, want 1", negative.Page)
	}
}

func TestParseSortMode(t *testing.T) {
	for _, m := range SortModes {
		if got, err := ParseSortMode(string(m)); err != nil || got != m {
			t.Errorf("ParseSortMode(%q) = %q, %v", m, got, err)
		}
	}
	if got, _ := ParseSortMode(""); got != SortPopular {
		t.Errorf("ParseSortMode(\"\") = %q, want popular", got)
	}
	if got, _ := ParseSortMode("Name-Desc"); got != SortNameDesc {
		t.Errorf("ParseSortMode is case-sensitive, got %q", got)
	}
	if _, err := ParseSortMode("stars"); err == nil {
		t.Error("ParseSortMode(\"stars\") should fail")
	}
}
