package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/article"
	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/reveal"
	"github.com/msalah0e/chainmap/internal/tui"
	"github.com/msalah0e/chainmap/internal/ui"
)

func mapCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "map",
		Aliases: []string{"ui", "tui"},
		Short:   "Explore the mind map interactively",
		Long: `Open the interactive mind map in the terminal.

  tab / shift+tab   move between nodes
  arrows / hjkl     move toward a direction
  enter             open a node (sectors also fold and unfold)
  esc               close the detail panel
  mouse             hover and click nodes`,
		Run: func(cmd *cobra.Command, args []string) {
			m := tui.NewMap(loadDataset(), loadGraph(),
				tui.WithExitTransition(exitTransition()),
				tui.WithLogger(appLog()),
			)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			if _, err := p.Run(); err != nil {
				ui.Bad.Printf("  map: %v\n", err)
				os.Exit(1)
			}
		},
	}
}

func articleCmd() *cobra.Command {
	var plain bool
	var width int

	cmd := &cobra.Command{
		Use:     "article",
		Aliases: []string{"read"},
		Short:   "Read the supply chain story",
		Long: `Scroll through the article: counters, the three sectors, the production
timeline, key terms, the world map and the disruption scenario.

Sections appear as they scroll into view. With --plain, or when stdout is not
a terminal, the whole article is printed at once.`,
		Run: func(cmd *cobra.Command, args []string) {
			d := loadDataset()
			if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
				printArticle(cmd, width)
				return
			}
			m := tui.NewArticle(d, loadConfig().Reveal.Threshold)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				ui.Bad.Printf("  article: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print the whole article without the interactive reader")
	cmd.Flags().IntVar(&width, "width", 80, "Text width for --plain")
	return cmd
}

// printArticle renders the article without a viewport. Each section's reveal
// state comes from the immediate observer, which marks every section seen in
// registration order.
func printArticle(cmd *cobra.Command, width int) {
	writeArticle(cmd.OutOrStdout(), loadDataset(), reveal.Immediate, width)
}

func writeArticle(w io.Writer, d *dataset.Dataset, obs reveal.Observer, width int) {
	sections := article.Build(d)
	seen := make(map[string]bool, len(sections))
	for _, sec := range sections {
		obs.Observe(reveal.Element{ID: sec.ID}, func(id string) { seen[id] = true })
	}
	for _, sec := range sections {
		fmt.Fprintln(w, article.Render(sec, d, article.View{
			Width:    width,
			Revealed: seen[sec.ID],
			Elapsed:  article.CounterDuration,
		}))
		fmt.Fprintln(w)
	}
}
