package cli

import (
	"github.com/spf13/cobra"
)

// documentExts are the extensions offered when completing a plot document.
var documentExts = []string{"toml", "yaml", "yml", "json"}

// completeFiles returns a completion function offering files with exts.
func completeFiles(exts ...string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return exts, cobra.ShellCompDirectiveFilterFileExt
	}
}

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for tabplot. Document and CSV
arguments complete to matching files.

To load completions:

Bash:
  $ source <(tabplot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ tabplot completion bash > /etc/bash_completion.d/tabplot
  # macOS:
  $ tabplot completion bash > $(brew --prefix)/etc/bash_completion.d/tabplot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ tabplot completion zsh > "${fpath[1]}/_tabplot"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ tabplot completion fish | source

  # To load completions for each session, execute once:
  $ tabplot completion fish > ~/.config/fish/completions/tabplot.fish

PowerShell:
  PS> tabplot completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> tabplot completion powershell > tabplot.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(stdout, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
