package cmd

import (
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/msalah0e/chainmap/internal/config"
	"github.com/msalah0e/chainmap/internal/dataset"
	"github.com/msalah0e/chainmap/internal/logging"
	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/ui"
	"github.com/spf13/cobra"
)

var version = "0.4.0"

var (
	dataFS  fs.FS
	dataDir string
	verbose bool

	cfg       *config.Config
	logger    *slog.Logger
	ds        *dataset.Dataset
	graph     *mindmap.Graph
	layoutErr []error
)

// SetDataFS sets the filesystem holding the bundled TOML content.
func SetDataFS(fsys fs.FS) {
	dataFS = fsys
}

func loadConfig() *config.Config {
	if cfg == nil {
		cfg = config.Load()
	}
	return cfg
}

func appLog() *slog.Logger {
	if logger == nil {
		lc := loadConfig().Log
		if verbose {
			lc.Level = "debug"
		}
		logger = logging.New(lc, os.Stderr)
	}
	return logger
}

// loadDataset loads the content once. --data replaces the bundled files with
// a directory on disk. Isolated record faults are logged, not fatal.
func loadDataset() *dataset.Dataset {
	if ds != nil {
		return ds
	}
	fsys := dataFS
	if dataDir != "" {
		fsys = os.DirFS(dataDir)
	}
	if fsys == nil {
		ui.Bad.Println("chainmap: no content bundled")
		os.Exit(1)
	}
	d, err := dataset.LoadFromFS(fsys, ".")
	if err != nil {
		ui.Bad.Printf("chainmap: failed to load content: %v\n", err)
		os.Exit(1)
	}
	for _, f := range d.Faults {
		appLog().Warn("content fault", "record", f.Record, "field", f.Field, "reason", f.Reason, "dropped", f.Dropped)
	}
	ds = d
	return ds
}

// loadGraph lays out the mind map once, on the configured canvas.
func loadGraph() *mindmap.Graph {
	if graph != nil {
		return graph
	}
	geo := mindmap.DefaultGeometry()
	c := loadConfig().Canvas
	geo.Width, geo.Height = c.Width, c.Height

	g, errs := mindmap.Layout(loadDataset().Steps, mindmap.DefaultBranches(), geo)
	for _, err := range errs {
		appLog().Warn("layout", "err", err)
	}
	graph, layoutErr = g, errs
	return graph
}

func exitTransition() time.Duration {
	return time.Duration(loadConfig().Panel.ExitTransitionMS) * time.Millisecond
}

var rootCmd = &cobra.Command{
	Use:   "chainmap",
	Short: "chainmap — explore the Tesla Model X supply chain",
	Long: ui.Brand.Sprint(ui.Car+" chainmap") + " — an interactive mind map of one car's supply chain\n" +
		ui.Subtle.Sprint("From lithium mines to the delivery center, and what breaks when one link fails"),
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.Configure(loadConfig().UI)
	},
}

func init() {
	rootCmd.SetVersionTemplate("chainmap {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Load content TOML files from this directory instead of the bundled set")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug diagnostics to stderr")

	rootCmd.AddCommand(
		mapCmd(),
		articleCmd(),
		stepsCmd(),
		stepCmd(),
		sectorsCmd(),
		sectorCmd(),
		impactCmd(),
		overviewCmd(),
		searchCmd(),
		worldCmd(),
		timelineCmd(),
		termsCmd(),
		treeCmd(),
		exportCmd(),
		serveCmd(),
		validateCmd(),
		configCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
