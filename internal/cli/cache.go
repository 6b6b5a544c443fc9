package cli

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kitshelf/kitshelf/pkg/cache"
	"github.com/kitshelf/kitshelf/pkg/config"
	"github.com/kitshelf/kitshelf/pkg/integrations/github"
	"github.com/kitshelf/kitshelf/pkg/repostats"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the GitHub stats cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheShowCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all cached repository stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.store.Read(ctx)
			if err != nil {
				printWarning("Slot was unreadable, clearing anyway")
			}
			if err := a.store.Clear(ctx); err != nil {
				return err
			}
			printSuccess("Cleared %d cached repositories", len(m))
			printDetail("Slot: %s", a.store.Slot())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where the stats slot is stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			loc, err := slotLocation(cfg.Cache, c.noCache)
			if err != nil {
				return err
			}
			fmt.Println(loc)
			return nil
		},
	}
}

// slotLocation describes where the configured backend keeps the slot.
func slotLocation(cfg config.CacheConfig, noCache bool) (string, error) {
	key := cfg.Prefix + cfg.Slot
	switch backendName(cfg, noCache) {
	case config.BackendFile:
		dir := cfg.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return "", fmt.Errorf("get cache dir: %w", err)
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return "", err
		}
		return fc.Path(key), nil
	case config.BackendRedis:
		return fmt.Sprintf("redis://%s/%d %s", cfg.RedisAddr, cfg.RedisDB, key), nil
	case config.BackendMongo:
		db := cfg.MongoDatabase
		if db == "" {
			db = cache.DefaultMongoDatabase
		}
		return fmt.Sprintf("%s %s.%s _id=%s", cfg.MongoURI, db, cache.DefaultMongoCollection, key), nil
	}
	return "(memory only)", nil
}

// cacheShowCommand creates the "cache show" subcommand.
func (c *CLI) cacheShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [owner/repo]",
		Short: "Show cached repository stats",
		Example: `  kitshelf cache show
  kitshelf cache show vercel/next.js`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			m, err := a.store.Read(ctx)
			if err != nil {
				return err
			}
			now := time.Now()
			ttl := a.enricher.TTL()

			if len(args) == 1 {
				id, err := github.ParseRepoRef(args[0])
				if err != nil {
					return err
				}
				e, ok := m.Get(id.Key())
				if !ok {
					printInfo("%s is not cached", id)
					return nil
				}
				printKeyValue("Repository", StyleLink.Render(id.URL()))
				printKeyValue("Stars", fmt.Sprint(e.Stars))
				printKeyValue("Forks", fmt.Sprint(e.Forks))
				printKeyValue("Fetched", formatRelativeTime(e.FetchedAt(), now))
				printKeyValue("Fresh", fmt.Sprint(repostats.IsFresh(e, now, ttl)))
				return nil
			}

			if len(m) == 0 {
				printInfo("Cache is empty")
				return nil
			}
			fmt.Println(statsTable(m, now, ttl))
			printDetail("%d repositories · ttl %s · slot %s", len(m), ttl, a.store.Slot())
			return nil
		},
	}
}

// statsTable renders cached entries sorted by key.
func statsTable(m repostats.Map, now time.Time, ttl time.Duration) string {
	keys := slices.Sorted(maps.Keys(m))
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		e := m[k]
		fresh := StyleSuccess.Render("fresh")
		if !repostats.IsFresh(e, now, ttl) {
			fresh = StyleWarning.Render("stale")
		}
		rows = append(rows, []string{
			k,
			formatCount(e.Stars),
			formatCount(e.Forks),
			formatRelativeTime(e.FetchedAt(), now),
			fresh,
		})
	}
	return newTable("Repository", "Stars", "Forks", "Fetched", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == headerRow:
				return base.Inherit(styleHeader)
			case col == 1 || col == 2:
				return base.Foreground(colorCyan).Align(lipgloss.Right)
			case col == 3:
				return base.Foreground(colorGray)
			}
			return base
		}).
		Render()
}
