// Package metrics provides a simple Prometheus-compatible metrics endpoint.
package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds runtime counters for the decode service
type Metrics struct {
	// Decode operations
	Decodes      atomic.Int64
	DecodeErrors atomic.Int64

	// Reliability tiers of successful decodes
	DecodesHigh   atomic.Int64
	DecodesMedium atomic.Int64
	DecodesLow    atomic.Int64

	// Expansion outcomes
	Expansions       atomic.Int64
	ExpansionFallbks atomic.Int64

	// Timing (last decode duration in ms)
	LastDecodeDurationMs atomic.Int64

	startTime time.Time
}

var (
	global     *Metrics
	globalOnce sync.Once
)

// Global returns the global metrics instance
func Global() *Metrics {
	globalOnce.Do(func() {
		global = &Metrics{
			startTime: time.Now(),
		}
	})
	return global
}

// RecordDecode records one decode attempt and its reliability tier.
func (m *Metrics) RecordDecode(reliability string, durationMs int64, err error) {
	m.Decodes.Add(1)
	m.LastDecodeDurationMs.Store(durationMs)
	if err != nil {
		m.DecodeErrors.Add(1)
		return
	}
	switch reliability {
	case "high":
		m.DecodesHigh.Add(1)
	case "medium":
		m.DecodesMedium.Add(1)
	case "low":
		m.DecodesLow.Add(1)
	}
}

// RecordExpansion records a compressed-section expansion attempt.
func (m *Metrics) RecordExpansion(expanded bool) {
	m.Expansions.Add(1)
	if !expanded {
		m.ExpansionFallbks.Add(1)
	}
}

// Handler returns an HTTP handler for /metrics endpoint
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")

		uptime := time.Since(m.startTime).Seconds()

		fmt.Fprintf(w, "# HELP repdec_uptime_seconds Time since the service started\n")
		fmt.Fprintf(w, "# TYPE repdec_uptime_seconds gauge\n")
		fmt.Fprintf(w, "repdec_uptime_seconds %.2f\n\n", uptime)

		fmt.Fprintf(w, "# HELP repdec_decodes_total Total decode attempts\n")
		fmt.Fprintf(w, "# TYPE repdec_decodes_total counter\n")
		fmt.Fprintf(w, "repdec_decodes_total %d\n\n", m.Decodes.Load())

		fmt.Fprintf(w, "# HELP repdec_decode_errors_total Total decode failures\n")
		fmt.Fprintf(w, "# TYPE repdec_decode_errors_total counter\n")
		fmt.Fprintf(w, "repdec_decode_errors_total %d\n\n", m.DecodeErrors.Load())

		fmt.Fprintf(w, "# HELP repdec_decodes_high_total Decodes graded high reliability\n")
		fmt.Fprintf(w, "# TYPE repdec_decodes_high_total counter\n")
		fmt.Fprintf(w, "repdec_decodes_high_total %d\n\n", m.DecodesHigh.Load())

		fmt.Fprintf(w, "# HELP repdec_decodes_medium_total Decodes graded medium reliability\n")
		fmt.Fprintf(w, "# TYPE repdec_decodes_medium_total counter\n")
		fmt.Fprintf(w, "repdec_decodes_medium_total %d\n\n", m.DecodesMedium.Load())

		fmt.Fprintf(w, "# HELP repdec_decodes_low_total Decodes graded low reliability\n")
		fmt.Fprintf(w, "# TYPE repdec_decodes_low_total counter\n")
		fmt.Fprintf(w, "repdec_decodes_low_total %d\n\n", m.DecodesLow.Load())

		fmt.Fprintf(w, "# HELP repdec_expansions_total Compressed sections detected\n")
		fmt.Fprintf(w, "# TYPE repdec_expansions_total counter\n")
		fmt.Fprintf(w, "repdec_expansions_total %d\n\n", m.Expansions.Load())

		fmt.Fprintf(w, "# HELP repdec_expansion_fallbacks_total Expansions that fell back to raw bytes\n")
		fmt.Fprintf(w, "# TYPE repdec_expansion_fallbacks_total counter\n")
		fmt.Fprintf(w, "repdec_expansion_fallbacks_total %d\n\n", m.ExpansionFallbks.Load())

		fmt.Fprintf(w, "# HELP repdec_last_decode_duration_ms Last decode duration\n")
		fmt.Fprintf(w, "# TYPE repdec_last_decode_duration_ms gauge\n")
		fmt.Fprintf(w, "repdec_last_decode_duration_ms %d\n", m.LastDecodeDurationMs.Load())
	}
}
