package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/ui"
)

func searchCmd() *cobra.Command {
	var sector string

	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"find"},
		Short:   "Search steps by title, location, business or resource",
		Long: `Search the supply chain steps. Matching is case-insensitive over titles,
locations, descriptions, businesses and resource labels.

  chainmap search                     # List the places to try
  chainmap search lithium             # Steps mentioning lithium
  chainmap search china -s primary    # Primary-sector steps in China`,
		Args: cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			d := loadDataset()

			if len(args) == 0 && sector == "" {
				ui.Banner("search the supply chain")
				fmt.Println("  Try a place:")
				fmt.Printf("  %s\n\n", ui.Info.Sprint(strings.Join(d.Locations(), " · ")))
				fmt.Println(ui.Subtle.Sprint("  `chainmap search <query> [--sector primary|secondary|tertiary]`"))
				return
			}
			if sector != "" && sector != dataset.AllSectors && !dataset.Sector(sector).Valid() {
				ui.Bad.Printf("  Unknown sector %q (want primary, secondary, tertiary or all)\n", sector)
				os.Exit(1)
			}

			query := ""
			if len(args) > 0 {
				query = args[0]
			}
			results := d.Search(dataset.Filter{Query: query, Sector: sector})

			ui.Banner(fmt.Sprintf("search results for %q", query))
			if len(results) == 0 {
				fmt.Println("  No steps match your search.")
				return
			}
			ui.Table([]string{"#", "STEP", "SECTOR", "LOCATION"}, stepRows(results))
			fmt.Println()
			fmt.Printf("  %d result(s) · `chainmap step <n>` for details\n", len(results))
		},
	}

	cmd.Flags().StringVarP(&sector, "sector", "s", "", "Restrict results to one sector (or all)")
	_ = cmd.RegisterFlagCompletionFunc("sector", sectorCompletionFunc)
	return cmd
}

func worldCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "world",
		Aliases: []string{"countries"},
		Short:   "List the countries on the world map",
		Run: func(cmd *cobra.Command, args []string) {
			d := loadDataset()
			if len(d.Countries) == 0 {
				fmt.Println("  No countries in the content.")
				return
			}

			ui.Banner("a global web of dependence")
			var rows [][]string
			for _, c := range d.Countries {
				rows = append(rows, []string{
					strings.TrimSpace(ui.Flag(c.Flag) + " " + c.Name),
					c.Sector.Title(),
					c.Role,
				})
			}
			ui.Table([]string{"COUNTRY", "SECTOR", "ROLE"}, rows)

			if hub := d.Country(d.Hub); hub != nil {
				fmt.Println()
				fmt.Printf("  Every route ends at %s\n", ui.Brand.Sprint(hub.Name))
				if hub.Detail != "" {
					fmt.Printf("  %s\n", ui.Subtle.Sprint(hub.Detail))
				}
			}
		},
	}
}

func timelineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timeline",
		Short: "Show the production timeline",
		Run: func(cmd *cobra.Command, args []string) {
			d := loadDataset()
			ui.Banner("production timeline")
			for i, ev := range d.Timeline {
				connector := "├─"
				if i == len(d.Timeline)-1 {
					connector = "└─"
				}
				fmt.Printf("  %s %s  %s\n", ui.Subtle.Sprint(connector), ui.Info.Sprintf("%-12s", ev.Period), ui.Brand.Sprint(ev.Title))
				if ev.Description != "" {
					bar := "│ "
					if i == len(d.Timeline)-1 {
						bar = "  "
					}
					fmt.Printf("  %s %s\n", ui.Subtle.Sprint(bar), ev.Description)
				}
			}
		},
	}
}

func termsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "terms [term]",
		Aliases: []string{"term", "glossary"},
		Short:   "Explain the key terms",
		Args:    cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			d := loadDataset()
			if len(args) == 1 {
				t := d.Term(args[0])
				if t == nil {
					ui.Bad.Printf("  No key term %q\n", args[0])
					os.Exit(1)
				}
				fmt.Printf("  %s\n  %s\n", ui.Brand.Sprint(t.Term), t.Fact)
				return
			}

			ui.Banner("key terms")
			for _, t := range d.Terms {
				fmt.Printf("  %s\n    %s\n", ui.Brand.Sprint(t.Term), t.Fact)
			}
		},
	}
}
