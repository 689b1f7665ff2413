package cli

import (
	"github.com/spf13/cobra"
)

// completeScripts completes placement script arguments with script files.
func completeScripts(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"toml", "yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats completes the comma-separated --format flag.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return formatsCompletion, cobra.ShellCompDirectiveNoFileComp | cobra.ShellCompDirectiveNoSpace
}

var formatsCompletion = []string{
	"svg\ttile picture",
	"png\ttile picture (rsvg-convert)",
	"pdf\ttile picture (rsvg-convert)",
	"json\tbelt list",
	"dot\tfeed network, Graphviz source",
	"graph\tfeed network, drawn by Graphviz",
	"text\ttwo characters per cell",
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for beltgrid.

Bash:
  $ source <(beltgrid completion bash)

Zsh:
  $ beltgrid completion zsh > "${fpath[1]}/_beltgrid"

Fish:
  $ beltgrid completion fish > ~/.config/fish/completions/beltgrid.fish

PowerShell:
  PS> beltgrid completion powershell | Out-String | Invoke-Expression

Script arguments complete to .toml and .yaml files and --format to the known formats.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}
