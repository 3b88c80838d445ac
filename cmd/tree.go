package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/session"
	"github.com/msalah0e/chainmap/internal/ui"
)

func treeCmd() *cobra.Command {
	var collapse []string

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the mind map as a tree",
		Long: `Print the mind map hierarchy: the car at the root, its five branches and
the steps under each sector.

  chainmap tree
  chainmap tree --collapse primary,tertiary`,
		Run: func(cmd *cobra.Command, args []string) {
			g := loadGraph()
			s := session.New(g, session.WithLogger(appLog()))
			for _, id := range collapse {
				if !dataset.Sector(id).Valid() {
					ui.Bad.Printf("  Unknown sector %q\n", id)
					os.Exit(1)
				}
				if s.IsExpanded(id) {
					if _, err := s.Activate(id); err != nil {
						ui.Bad.Printf("  %v\n", err)
						os.Exit(1)
					}
				}
			}

			fmt.Println()
			fmt.Print(renderTree(g, s))
			fmt.Println()
		},
	}

	cmd.Flags().StringSliceVar(&collapse, "collapse", nil, "Fold these sectors")
	_ = cmd.RegisterFlagCompletionFunc("collapse", sectorCompletionFunc)
	return cmd
}

func renderTree(g *mindmap.Graph, s *session.Session) string {
	return mindmap.RenderTree(g, s.IsVisible,
		func(v string) string { return ui.Brand.Sprint(v) },
		func(v string) string { return ui.Subtle.Sprint(v) },
		func(v string) string { return ui.Info.Sprint(v) },
	)
}
