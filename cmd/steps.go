package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/panel"
	"github.com/msalah0e/chainmap/internal/ui"
)

const panelWidth = 78

func stepsCmd() *cobra.Command {
	var sector string

	cmd := &cobra.Command{
		Use:     "steps",
		Aliases: []string{"ls", "list"},
		Short:   "List the supply chain steps",
		Run: func(cmd *cobra.Command, args []string) {
			if sector != "" && sector != dataset.AllSectors && !dataset.Sector(sector).Valid() {
				ui.Bad.Printf("  Unknown sector %q (want primary, secondary, tertiary or all)\n", sector)
				os.Exit(1)
			}
			d := loadDataset()
			steps := d.Search(dataset.Filter{Sector: sector})

			ui.Banner(fmt.Sprintf("%d steps", len(steps)))
			ui.Table([]string{"#", "STEP", "SECTOR", "LOCATION"}, stepRows(steps))
		},
	}

	cmd.Flags().StringVarP(&sector, "sector", "s", "", "Only list steps of this sector")
	_ = cmd.RegisterFlagCompletionFunc("sector", sectorCompletionFunc)
	return cmd
}

func stepRows(steps []dataset.Step) [][]string {
	rows := make([][]string, 0, len(steps))
	for _, st := range steps {
		rows = append(rows, []string{
			strconv.Itoa(st.Number),
			st.Title,
			st.Sector.Title(),
			strings.TrimSpace(ui.Flag(st.Flag) + " " + st.Location),
		})
	}
	return rows
}

func stepCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "step <number>",
		Short:             "Show the detail panel of one step",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: stepCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				ui.Bad.Printf("  %q is not a step number\n", args[0])
				os.Exit(1)
			}
			d := loadDataset()
			st := d.Step(n)
			if st == nil {
				ui.Bad.Printf("  No step %d (the chain has %d steps)\n", n, len(d.Steps))
				os.Exit(1)
			}

			// A step left out of the layout still has content to show.
			content := panel.Dispatch(loadGraph().Node(mindmap.StepID(n)), d)
			if content == nil {
				content = panel.ForStep(*st)
			}
			fmt.Println(panel.Render(content, panelWidth))
		},
	}
}

func sectorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sectors",
		Short: "Summarize the three sectors",
		Run: func(cmd *cobra.Command, args []string) {
			d := loadDataset()
			counts := d.CountBySector()

			ui.Banner("sectors")
			var rows [][]string
			for _, s := range dataset.Sectors() {
				label := s.Title()
				if sum := d.Summary(s); sum != nil {
					label = sum.Label
				}
				rows = append(rows, []string{
					string(s),
					label,
					s.Theme(),
					strconv.Itoa(counts[s]),
				})
			}
			ui.Table([]string{"ID", "SECTOR", "THEME", "STEPS"}, rows)
			fmt.Println()
			fmt.Println(ui.Subtle.Sprint("  `chainmap sector <id>` for the steps of one sector"))
		},
	}
}

func sectorCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "sector <id>",
		Short:             "Show the detail panel of one sector",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: sectorCompletionFunc,
		Run: func(cmd *cobra.Command, args []string) {
			id := strings.ToLower(args[0])
			if !dataset.Sector(id).Valid() {
				ui.Bad.Printf("  Unknown sector %q (want primary, secondary or tertiary)\n", args[0])
				os.Exit(1)
			}
			content := panel.Dispatch(loadGraph().Node(id), loadDataset())
			if content == nil {
				ui.Warn.Printf("  Sector %q has no summary to show\n", id)
				return
			}
			fmt.Println(panel.Render(content, panelWidth))
		},
	}
}

func impactCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "impact",
		Aliases: []string{"disruption", "what-if"},
		Short:   "Show the disruption scenario",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(panel.Render(panel.Dispatch(loadGraph().Node("impact"), loadDataset()), panelWidth))
		},
	}
}

func overviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the interdependence overview",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(panel.Render(panel.Dispatch(loadGraph().Center(), loadDataset()), panelWidth))
		},
	}
}
