package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r.HTTPRequestsTotal == nil || r.ActivationsTotal == nil || r.SessionsActive == nil {
		t.Fatal("metrics not initialized")
	}
	if r.Prometheus() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestRecorders(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/healthz", "200", 3*time.Millisecond)
	r.RecordHTTPRequest("GET", "/healthz", "200", time.Millisecond)
	r.RecordActivation("step")
	r.RecordPanel("open")
	r.RecordExport("svg", nil)
	r.RecordExport("dot", errors.New("disk full"))
	r.SetContentHealth(2, 1)

	if got := testutil.ToFloat64(r.HTTPRequestsTotal.WithLabelValues("GET", "/healthz", "200")); got != 2 {
		t.Errorf("expected 2 requests, got %v", got)
	}
	if got := testutil.ToFloat64(r.ActivationsTotal.WithLabelValues("step")); got != 1 {
		t.Errorf("expected 1 activation, got %v", got)
	}
	if got := testutil.ToFloat64(r.ExportsTotal.WithLabelValues("dot", "error")); got != 1 {
		t.Errorf("expected 1 failed export, got %v", got)
	}
	if got := testutil.ToFloat64(r.DataFaults); got != 2 {
		t.Errorf("expected 2 faults, got %v", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordPanel("closing")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	if !strings.Contains(string(body), `chainmap_panel_transitions_total{state="closing"} 1`) {
		t.Errorf("metric missing from exposition:\n%s", body)
	}
}
