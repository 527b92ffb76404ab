package telemetry

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveCountsByOutcome(t *testing.T) {
	m := NewMetrics()
	m.Observe("verify", OutcomeOK, time.Now())
	m.Observe("verify", OutcomeOK, time.Now())
	m.Observe("verify", OutcomeMiss, time.Now())

	if got := testutil.ToFloat64(m.operations.WithLabelValues("verify", OutcomeOK)); got != 2 {
		t.Fatalf("verify ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.operations.WithLabelValues("verify", OutcomeMiss)); got != 1 {
		t.Fatalf("verify miss = %v, want 1", got)
	}
}

func TestHandlerExposesGauges(t *testing.T) {
	m := NewMetrics()
	m.SetSizes(12, 4)
	m.CacheLookup(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{"sarf_roots 12", "sarf_schemes 4", `sarf_identify_cache_lookups_total{result="hit"} 1`} {
		if !strings.Contains(string(body), want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.Observe("x", OutcomeOK, time.Now())
	m.SetSizes(1, 1)
	m.CacheLookup(false)
}
