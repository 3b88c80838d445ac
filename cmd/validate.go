package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/ui"
)

func validateCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "validate",
		Aliases: []string{"check", "doctor"},
		Short:   "Check the content for data faults",
		Long: `Load the content, lay out the mind map and report every problem found.

Faulty records are isolated: they are dropped or drawn with a fallback style and
never stop the rest of the map. validate exits 0 unless --strict is given.`,
		Run: func(cmd *cobra.Command, args []string) {
			d := loadDataset()
			g := loadGraph()

			ui.Banner("content check")
			fmt.Printf("  %s %d steps, %d sectors, %d countries, %d terms\n",
				ui.StatusIcon(true), len(d.Steps), len(d.Summaries), len(d.Countries), len(d.Terms))
			fmt.Printf("  %s %d nodes, %d links\n", ui.StatusIcon(true), g.Len(), len(g.Edges()))

			problems := 0
			for _, f := range d.Faults {
				fmt.Printf("  %s %v\n", ui.WarnIcon(), f)
				problems++
			}
			for _, err := range layoutErr {
				fmt.Printf("  %s layout: %v\n", ui.WarnIcon(), err)
				problems++
			}
			if err := g.Validate(); err != nil {
				for _, e := range unwrapAll(err) {
					fmt.Printf("  %s %v\n", ui.StatusIcon(false), e)
					problems++
				}
			}

			fmt.Println()
			if problems == 0 {
				ui.Good.Println("  No problems found.")
				return
			}
			fmt.Printf("  %d problem(s) found\n", problems)
			if strict {
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit 1 when any problem is found")
	return cmd
}

// unwrapAll flattens an errors.Join tree one level.
func unwrapAll(err error) []error {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
