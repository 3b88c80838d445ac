package parallel

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/msalah0e/chainmap/internal/ui"
)

// Result holds the outcome of a parallel task.
type Result struct {
	Name    string
	OK      bool
	Err     error
	Output  string // what the task produced, e.g. a written path
	Elapsed time.Duration
}

// Task is a function that runs in parallel.
type Task struct {
	Name string
	Fn   func(ctx context.Context) (string, error)
}

// Run executes tasks with at most concurrency in flight and reports progress
// to w (nil for silence). Results come back in submission order. A failing
// task never stops the others; tasks not yet started when ctx is cancelled
// are recorded with ctx's error.
func Run(ctx context.Context, tasks []Task, concurrency int, w io.Writer) []Result {
	if concurrency < 1 {
		concurrency = 4
	}
	if w == nil {
		w = io.Discard
	}

	results := make([]Result, len(tasks))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, task := range tasks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = Result{Name: task.Name, Err: err}
				return nil
			}
			start := time.Now()
			output, err := task.Fn(gctx)
			elapsed := time.Since(start)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				results[i] = Result{Name: task.Name, Err: err, Output: output, Elapsed: elapsed}
				fmt.Fprintf(w, "  %s %s %s\n", ui.StatusIcon(false), task.Name, ui.Bad.Sprintf("(%v)", err))
				return nil
			}
			results[i] = Result{Name: task.Name, OK: true, Output: output, Elapsed: elapsed}
			fmt.Fprintf(w, "  %s %s %s\n", ui.StatusIcon(true), task.Name, ui.Subtle.Sprintf("%s %.2fs", output, elapsed.Seconds()))
			return nil // never fail the group; collect results instead
		})
	}

	_ = g.Wait()
	return results
}

// Failed returns the results that did not succeed.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.OK {
			out = append(out, r)
		}
	}
	return out
}
