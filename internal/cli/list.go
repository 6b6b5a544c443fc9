package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitshelf/kitshelf/pkg/catalog"
)

// listOptions holds the catalog query flags of the list command.
type listOptions struct {
	search   string
	category string
	sort     string
	page     int
	perPage  int
	featured bool
}

func (o *listOptions) register(cmd *cobra.Command) {
	modes := make([]string, len(catalog.SortModes))
	for i, m := range catalog.SortModes {
		modes[i] = string(m)
	}

	f := cmd.Flags()
	f.StringVarP(&o.search, "search", "s", "", "match name, description or tag")
	f.StringVarP(&o.category, "category", "c", catalog.CategoryAll, "category filter")
	f.StringVar(&o.sort, "sort", string(catalog.SortPopular), "sort order: "+strings.Join(modes, ", "))
	f.IntVar(&o.page, "page", 1, "page number")
	f.IntVar(&o.perPage, "per-page", catalog.DefaultPerPage, "kits per page")
	f.BoolVar(&o.featured, "featured", false, "only featured kits")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
}

// query converts the flags into a catalog query.
func (o *listOptions) query() (catalog.Query, error) {
	mode, err := catalog.ParseSortMode(o.sort)
	if err != nil {
		return catalog.Query{}, err
	}
	if o.page < 1 {
		return catalog.Query{}, fmt.Errorf("--page must be at least 1, got %d", o.page)
	}
	if o.perPage < 1 {
		return catalog.Query{}, fmt.Errorf("--per-page must be at least 1, got %d", o.perPage)
	}
	return catalog.Query{
		Search:       o.search,
		Category:     o.category,
		Sort:         mode,
		Page:         o.page,
		PerPage:      o.perPage,
		FeaturedOnly: o.featured,
	}, nil
}

// listCommand creates the list command.
func (c *CLI) listCommand() *cobra.Command {
	var (
		opts   listOptions
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List kits with their cached stats",
		Long: `List catalog entries using the stats already in the cache.

No GitHub requests are made; run "kitshelf refresh" to update the counters.`,
		Example: `  kitshelf list
  kitshelf list --category backend --sort name
  kitshelf list -s react --per-page 20 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.query()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			page := a.enricher.Cached(ctx).Query(q)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(page)
			}
			printPage(page)
			return nil
		},
	}

	opts.register(cmd)
	_ = cmd.RegisterFlagCompletionFunc("category", c.completeCategories)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the page as JSON")
	return cmd
}

func printPage(page catalog.Page) {
	if page.Total == 0 {
		printInfo("No kits match")
		return
	}
	fmt.Println(kitTable(page.Kits))
	printDetail("page %d of %d · %d kits", page.Page, page.TotalPages, page.Total)
	if page.Page < page.TotalPages {
		printNextStep("Next page", fmt.Sprintf("kitshelf list --page %d", page.Page+1))
	}
}
