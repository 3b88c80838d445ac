package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/parallel"
	"github.com/msalah0e/chainmap/internal/scene"
	"github.com/msalah0e/chainmap/internal/ui"
)

func exportCmd() *cobra.Command {
	var (
		format string
		out    string
		all    bool
		dir    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the mind map as SVG, HTML, DOT, JSON or YAML",
		Long: `Export the laid-out mind map.

  chainmap export                          # SVG to stdout
  chainmap export -f html -o map.html      # self-contained page
  chainmap export -f dot | neato -n -Tpng  # Graphviz with pinned positions
  chainmap export --all --dir out/         # every format at once`,
		Run: func(cmd *cobra.Command, args []string) {
			g := loadGraph()

			if all {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
				ui.Banner(fmt.Sprintf("exporting %d formats", len(scene.Formats)))
				results := parallel.Run(cmd.Context(), exportTasks(g, dir), loadConfig().Parallel.Concurrency, os.Stdout)
				if failed := parallel.Failed(results); len(failed) > 0 {
					fmt.Println()
					ui.Bad.Printf("  %d of %d exports failed\n", len(failed), len(results))
					os.Exit(1)
				}
				return
			}

			if !slices.Contains(scene.Formats, format) {
				ui.Bad.Printf("  Unknown format %q (want one of %s)\n", format, strings.Join(scene.Formats, ", "))
				os.Exit(1)
			}
			if out == "" || out == "-" {
				if err := scene.Export(os.Stdout, format, g, nil); err != nil {
					ui.Bad.Printf("  %v\n", err)
					os.Exit(1)
				}
				return
			}
			if err := writeExport(out, format, g); err != nil {
				ui.Bad.Printf("  %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s wrote %s\n", ui.StatusIcon(true), out)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "svg", "Output format: "+strings.Join(scene.Formats, ", "))
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	cmd.Flags().BoolVar(&all, "all", false, "Write every format into --dir")
	cmd.Flags().StringVar(&dir, "dir", ".", "Directory for --all")
	cmd.MarkFlagsMutuallyExclusive("all", "out")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return scene.Formats, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// exportTasks returns one task per format, each writing chainmap.<format>
// into dir.
func exportTasks(g *mindmap.Graph, dir string) []parallel.Task {
	tasks := make([]parallel.Task, 0, len(scene.Formats))
	for _, f := range scene.Formats {
		path := filepath.Join(dir, "chainmap."+f)
		tasks = append(tasks, parallel.Task{
			Name: f,
			Fn: func(ctx context.Context) (string, error) {
				if err := ctx.Err(); err != nil {
					return "", err
				}
				return path, writeExport(path, f, g)
			},
		})
	}
	return tasks
}

func writeExport(path, format string, g *mindmap.Graph) error {
	var buf bytes.Buffer
	if err := scene.Export(&buf, format, g, nil); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
