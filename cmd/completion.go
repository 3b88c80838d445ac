package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/dataset"
)

// completionCmd generates shell completion scripts.
func completionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate completion scripts for your shell.

  # Bash (add to ~/.bashrc)
  eval "$(chainmap completion bash)"

  # Zsh (add to ~/.zshrc)
  eval "$(chainmap completion zsh)"

  # Fish
  chainmap completion fish | source

  # PowerShell
  chainmap completion powershell | Out-String | Invoke-Expression`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Run: func(cmd *cobra.Command, args []string) {
			switch args[0] {
			case "bash":
				_ = rootCmd.GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				_ = rootCmd.GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				_ = rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				_ = rootCmd.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}

	return cmd
}

// stepCompletionFunc completes step numbers with their titles.
func stepCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var completions []string
	for _, st := range loadDataset().Steps {
		n := strconv.Itoa(st.Number)
		if strings.HasPrefix(n, toComplete) {
			completions = append(completions, n+"\t"+st.Title)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

// sectorCompletionFunc completes sector ids with their themes.
func sectorCompletionFunc(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var completions []string
	for _, s := range dataset.Sectors() {
		completions = append(completions, string(s)+"\t"+s.Theme())
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}
