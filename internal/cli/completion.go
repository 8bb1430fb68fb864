package cli

import (
	"github.com/spf13/cobra"
)

// completionShells lists the shells completion scripts are generated for.
var completionShells = []string{"bash", "zsh", "fish"}

// completionCommand creates the completion command, which prints a shell
// completion script to stdout.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for hclayout.

  $ source <(hclayout completion bash)
  $ hclayout completion zsh > "${fpath[1]}/_hclayout"
  $ hclayout completion fish | source`,
		DisableFlagsInUseLine: true,
		ValidArgs:             completionShells,
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenBashCompletionV2(out, true)
			}
		},
	}
}
