package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kitshelf/kitshelf/pkg/catalog"
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		sort    string
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		Long: `Refresh the catalog's stats, then open an interactive list.

Use --offline to skip the refresh and browse the cached stats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := catalog.ParseSortMode(sort)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			var kits catalog.Catalog
			if offline {
				kits = a.enricher.Cached(ctx)
			} else {
				spinner := newSpinnerWithContext(ctx, "Refreshing kit stats...")
				spinner.Start()
				res, err := a.enricher.Refresh(ctx)
				spinner.Stop()
				if err != nil {
					return err
				}
				kits = res.Catalog
			}

			final, err := tea.NewProgram(NewKitListModel(kits, mode), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(KitListModel); ok && m.Selected != nil {
				printKit(*m.Selected)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sort, "sort", string(catalog.SortPopular), "initial sort order")
	cmd.Flags().BoolVar(&offline, "offline", false, "use cached stats without refreshing")
	return cmd
}

func printKit(k catalog.Entry) {
	fmt.Println(StyleTitle.Render(k.Name))
	if k.Description != "" {
		printDetail("%s", k.Description)
	}
	fmt.Println()
	printKeyValue("Category", k.Category)
	printKeyValue("Stars", StyleNumber.Render(fmt.Sprintf("%d", k.Stars)))
	printKeyValue("Forks", StyleNumber.Render(fmt.Sprintf("%d", k.Forks)))
	if k.Author != "" {
		printKeyValue("Author", k.Author)
	}
	if len(k.Tags) > 0 {
		printKeyValue("Tags", strings.Join(k.Tags, ", "))
	}
	if k.RepoURL != "" {
		printKeyValue("Repository", StyleLink.Render(k.RepoURL))
	}
	if k.DemoURL != "" {
		printKeyValue("Demo", StyleLink.Render(k.DemoURL))
	}
}
