package parallel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestRun_Success(t *testing.T) {
	tasks := []Task{
		{Name: "svg", Fn: func(context.Context) (string, error) { return "out/chainmap.svg", nil }},
		{Name: "dot", Fn: func(context.Context) (string, error) { return "out/chainmap.dot", nil }},
		{Name: "json", Fn: func(context.Context) (string, error) { return "out/chainmap.json", nil }},
	}

	var buf bytes.Buffer
	results := Run(context.Background(), tasks, 4, &buf)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, r := range results {
		if !r.OK || r.Err != nil {
			t.Errorf("task %s should be OK", r.Name)
		}
	}
	if results[1].Output != "out/chainmap.dot" {
		t.Errorf("results out of order: %+v", results)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("expected one progress line per task, got %q", buf.String())
	}
}

func TestRun_WithErrors(t *testing.T) {
	tasks := []Task{
		{Name: "ok-task", Fn: func(context.Context) (string, error) { return "", nil }},
		{Name: "fail-task", Fn: func(context.Context) (string, error) { return "partial", fmt.Errorf("simulated failure") }},
	}

	results := Run(context.Background(), tasks, 4, nil)
	if !results[0].OK {
		t.Error("first task should be OK")
	}
	if results[1].OK || results[1].Err == nil {
		t.Error("second task should have failed")
	}
	if results[1].Output != "partial" {
		t.Errorf("expected output %q, got %q", "partial", results[1].Output)
	}
	if failed := Failed(results); len(failed) != 1 || failed[0].Name != "fail-task" {
		t.Errorf("unexpected failures: %+v", failed)
	}
}

func TestRun_Concurrency(t *testing.T) {
	var maxConcurrent int64
	var current int64

	tasks := make([]Task, 10)
	for i := range tasks {
		tasks[i] = Task{
			Name: fmt.Sprintf("task-%d", i),
			Fn: func(context.Context) (string, error) {
				c := atomic.AddInt64(&current, 1)
				for {
					old := atomic.LoadInt64(&maxConcurrent)
					if c <= old || atomic.CompareAndSwapInt64(&maxConcurrent, old, c) {
						break
					}
				}
				time.Sleep(20 * time.Millisecond)
				atomic.AddInt64(&current, -1)
				return "", nil
			},
		}
	}

	results := Run(context.Background(), tasks, 2, nil)
	if len(results) != 10 {
		t.Fatalf("expected 10 results, got %d", len(results))
	}
	if maxConcurrent > 2 {
		t.Errorf("max concurrent should be <= 2, got %d", maxConcurrent)
	}
}

func TestRun_DefaultConcurrency(t *testing.T) {
	tasks := []Task{
		{Name: "test", Fn: func(context.Context) (string, error) { return "", nil }},
	}

	// Should not panic with 0 concurrency (defaults to 4)
	results := Run(context.Background(), tasks, 0, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	results := Run(ctx, []Task{{Name: "late", Fn: func(context.Context) (string, error) {
		ran = true
		return "", nil
	}}}, 1, nil)

	if ran {
		t.Error("task should not start after cancel")
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", results[0].Err)
	}
}

func TestRun_TimingTracked(t *testing.T) {
	tasks := []Task{
		{Name: "slow", Fn: func(context.Context) (string, error) {
			time.Sleep(50 * time.Millisecond)
			return "", nil
		}},
	}

	results := Run(context.Background(), tasks, 1, nil)
	if results[0].Elapsed < 50*time.Millisecond {
		t.Errorf("expected elapsed >= 50ms, got %v", results[0].Elapsed)
	}
}
