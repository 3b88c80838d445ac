package cmd

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/config"
	"github.com/msalah0e/chainmap/internal/ui"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration in effect: defaults, then the user file, then the
nearest .chainmap.toml found from the working directory upward.`,
		Run: func(cmd *cobra.Command, args []string) {
			c := loadConfig()

			fmt.Printf("  %s %s\n", ui.Subtle.Sprint("user:   "), config.Path())
			if wd, err := os.Getwd(); err == nil {
				if p := config.FindProjectFile(wd); p != "" {
					fmt.Printf("  %s %s\n", ui.Subtle.Sprint("project:"), p)
				}
			}
			fmt.Println()
			if err := toml.NewEncoder(os.Stdout).Encode(c); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.AddCommand(configInitCmd())
	return cmd
}

func configInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Run: func(cmd *cobra.Command, args []string) {
			if _, err := os.Stat(config.Path()); err == nil {
				fmt.Printf("  %s already exists\n", config.Path())
				return
			}
			if err := config.EnsureExists(); err != nil {
				ui.Bad.Printf("  Failed to write config: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s wrote %s\n", ui.StatusIcon(true), config.Path())
		},
	}
}
