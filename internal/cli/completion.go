package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitshelf/kitshelf/pkg/catalog"
	"github.com/kitshelf/kitshelf/pkg/config"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kitshelf.

Bash:
  $ source <(kitshelf completion bash)

Zsh:
  $ kitshelf completion zsh > "${fpath[1]}/_kitshelf"

Fish:
  $ kitshelf completion fish > ~/.config/fish/completions/kitshelf.fish

PowerShell:
  PS> kitshelf completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}

// completeCategories suggests the categories of the configured catalog.
func (c *CLI) completeCategories(_ *cobra.Command, _ []string, prefix string) ([]string, cobra.ShellCompDirective) {
	cat := catalog.Default()
	if cfg, err := config.Load(c.configPath); err == nil {
		if loaded, err := loadCatalog(cfg.Catalog); err == nil {
			cat = loaded
		}
	}
	return matchPrefix(append([]string{catalog.CategoryAll}, cat.Categories()...), prefix), cobra.ShellCompDirectiveNoFileComp
}

func matchPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, s := range candidates {
		if strings.HasPrefix(s, prefix) {
			out = append(out, s)
		}
	}
	return out
}
