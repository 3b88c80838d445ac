package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msalah0e/chainmap/data"
	"github.com/msalah0e/chainmap/internal/mindmap"
	"github.com/msalah0e/chainmap/internal/parallel"
	"github.com/msalah0e/chainmap/internal/reveal"
	"github.com/msalah0e/chainmap/internal/scene"
	"github.com/msalah0e/chainmap/internal/session"
)

// testGraph resets the cached content and loads the bundled set with an
// isolated config directory.
func testGraph(t *testing.T) *mindmap.Graph {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	SetDataFS(data.FS)
	cfg, logger, ds, graph, layoutErr = nil, nil, nil, nil, nil
	t.Cleanup(func() { cfg, logger, ds, graph, layoutErr = nil, nil, nil, nil, nil })

	g := loadGraph()
	if len(layoutErr) != 0 {
		t.Fatalf("layout errors: %v", layoutErr)
	}
	return g
}

func TestLoadGraph_Cached(t *testing.T) {
	g := testGraph(t)
	if g.Len() != 17 {
		t.Errorf("nodes = %d, want 17", g.Len())
	}
	if loadGraph() != g {
		t.Error("second load should return the cached graph")
	}
	if exitTransition().Milliseconds() != 350 {
		t.Errorf("exit transition = %v, want 350ms", exitTransition())
	}
}

func TestLoadDataset_DataDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	content := `[[steps]]
step = 1
title = "Lithium Mining"
location = "Atacama, Chile"
sector = "primary"

[[steps]]
step = 2
title = "Mystery Step"
location = "Nowhere"
sector = "quaternary"
`
	if err := os.WriteFile(filepath.Join(dir, "steps.toml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	dataDir = dir
	cfg, logger, ds, graph, layoutErr = nil, nil, nil, nil, nil
	t.Cleanup(func() {
		dataDir = ""
		cfg, logger, ds, graph, layoutErr = nil, nil, nil, nil, nil
	})

	d := loadDataset()
	if len(d.Steps) != 2 {
		t.Fatalf("steps = %d, want 2", len(d.Steps))
	}
	if len(d.Faults) == 0 {
		t.Error("expected a fault for the unknown sector")
	}
	g := loadGraph()
	if len(layoutErr) != 1 {
		t.Errorf("layout errors = %v, want one excluded step", layoutErr)
	}
	if g.Node("step-2") != nil {
		t.Error("step with unknown sector should be left out of the layout")
	}
}

func TestExportTasks(t *testing.T) {
	g := testGraph(t)
	dir := t.TempDir()

	results := parallel.Run(context.Background(), exportTasks(g, dir), 2, io.Discard)
	if failed := parallel.Failed(results); len(failed) > 0 {
		t.Fatalf("failed exports: %+v", failed)
	}
	if len(results) != len(scene.Formats) {
		t.Fatalf("results = %d, want %d", len(results), len(scene.Formats))
	}
	for i, f := range scene.Formats {
		path := filepath.Join(dir, "chainmap."+f)
		if results[i].Output != path {
			t.Errorf("result %d output = %q, want %q", i, results[i].Output, path)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("%s: %v", f, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}

	svg, _ := os.ReadFile(filepath.Join(dir, "chainmap.svg"))
	if !strings.HasPrefix(string(svg), "<svg") {
		t.Errorf("svg export starts with %q", string(svg[:min(20, len(svg))]))
	}
}

func TestExportTasks_Cancelled(t *testing.T) {
	g := testGraph(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := parallel.Run(ctx, exportTasks(g, t.TempDir()), 1, io.Discard)
	if len(parallel.Failed(results)) != len(results) {
		t.Error("no export should succeed after cancellation")
	}
}

func TestWriteExport_UnknownFormat(t *testing.T) {
	g := testGraph(t)
	path := filepath.Join(t.TempDir(), "map.png")
	if err := writeExport(path, "png", g); err == nil {
		t.Fatal("expected an error for an unknown format")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("nothing should be written for an unknown format")
	}
}

func TestRenderTree_Collapsed(t *testing.T) {
	g := testGraph(t)
	s := session.New(g)
	if _, err := s.Activate("primary"); err != nil {
		t.Fatal(err)
	}

	tree := renderTree(g, s)
	if !strings.Contains(tree, "(4 collapsed)") {
		t.Errorf("tree should fold primary:\n%s", tree)
	}
	if !strings.Contains(tree, "Battery Cell") {
		t.Errorf("secondary steps should stay visible:\n%s", tree)
	}
}

func TestStepRows(t *testing.T) {
	testGraph(t)
	rows := stepRows(loadDataset().Steps[:1])
	if len(rows) != 1 || rows[0][0] != "1" || rows[0][2] != "Primary" {
		t.Errorf("rows = %v", rows)
	}
}

func TestUnwrapAll(t *testing.T) {
	a, b := errors.New("a"), errors.New("b")
	if got := unwrapAll(errors.Join(a, b)); len(got) != 2 {
		t.Errorf("joined = %v, want 2 errors", got)
	}
	if got := unwrapAll(a); len(got) != 1 || got[0] != a {
		t.Errorf("single = %v", got)
	}
}

func TestWriteArticle_FollowsObserver(t *testing.T) {
	testGraph(t)
	d := loadDataset()

	var full, pending bytes.Buffer
	writeArticle(&full, d, reveal.Immediate, 80)
	writeArticle(&pending, d, reveal.NewTracker(reveal.DefaultThreshold), 80)

	if !strings.Contains(full.String(), "Months 1–3") {
		t.Error("immediate observer should print every section revealed")
	}
	if strings.Contains(pending.String(), "Months 1–3") {
		t.Error("a tracker that never scrolls should leave sections dim")
	}
	if a, b := strings.Count(full.String(), "\n"), strings.Count(pending.String(), "\n"); a != b {
		t.Errorf("dim output has %d lines, revealed has %d", b, a)
	}
}
