package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kitshelf/kitshelf/pkg/catalog"
	"github.com/kitshelf/kitshelf/pkg/enrich"
	"github.com/kitshelf/kitshelf/pkg/errors"
)

// refreshCommand creates the refresh command.
func (c *CLI) refreshCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Refresh GitHub stats for every kit",
		Long: `Run one enrichment pass over the catalog.

Entries whose cached stats are younger than the refresh TTL are served from
the cache; everything else is fetched from the GitHub API. Results are
written back to the cache slot.`,
		Example: `  kitshelf refresh
  GITHUB_TOKEN=ghp_xxx kitshelf refresh -v
  kitshelf refresh --json | jq '.outcomes[] | select(.state == "not_found")'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			spinner := newSpinnerWithContext(ctx, "Refreshing kit stats...")
			if !asJSON {
				spinner.Start()
			}
			res, err := a.enricher.Refresh(ctx)
			spinner.Stop()
			if err != nil {
				return err
			}

			if asJSON {
				return writeResultJSON(res)
			}
			printResult(res)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func printResult(res enrich.Result) {
	fmt.Println(outcomeTable(res))
	printSuccess("Refreshed %d kits in %s", len(res.Outcomes), res.Duration.Round(time.Millisecond))
	printDetail("%s", passSummary(res))

	for _, o := range res.Outcomes {
		if o.State == enrich.StateTransient && errors.GetCode(o.Err) == errors.ErrCodeRateLimited {
			printWarning("GitHub rate limit reached")
			printNextStep("Set a token to raise the limit", "export GITHUB_TOKEN=...")
			break
		}
	}
	if res.SaveErr != nil {
		printWarning("Stats were not cached: %s", errors.UserMessage(res.SaveErr))
	}
}

type resultJSON struct {
	enrich.Result
	Kits catalog.Catalog `json:"kits"`
}

func writeResultJSON(res enrich.Result) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(resultJSON{Result: res, Kits: res.Catalog})
}
