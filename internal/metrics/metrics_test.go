package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsGlobal(t *testing.T) {
	m1 := Global()
	m2 := Global()

	if m1 != m2 {
		t.Error("Global() should return same instance")
	}
}

func TestRecordDecode(t *testing.T) {
	m := &Metrics{startTime: time.Now()}

	m.RecordDecode("high", 12, nil)
	if m.Decodes.Load() != 1 {
		t.Errorf("expected 1 decode, got %d", m.Decodes.Load())
	}
	if m.DecodesHigh.Load() != 1 {
		t.Errorf("expected 1 high decode, got %d", m.DecodesHigh.Load())
	}
	if m.LastDecodeDurationMs.Load() != 12 {
		t.Errorf("expected duration 12, got %d", m.LastDecodeDurationMs.Load())
	}

	m.RecordDecode("", 5, errors.New("bad tag"))
	if m.Decodes.Load() != 2 {
		t.Errorf("expected 2 decodes, got %d", m.Decodes.Load())
	}
	if m.DecodeErrors.Load() != 1 {
		t.Errorf("expected 1 error, got %d", m.DecodeErrors.Load())
	}

	m.RecordDecode("low", 7, nil)
	if m.DecodesLow.Load() != 1 {
		t.Errorf("expected 1 low decode, got %d", m.DecodesLow.Load())
	}
	if m.DecodesMedium.Load() != 0 {
		t.Errorf("expected 0 medium decodes, got %d", m.DecodesMedium.Load())
	}
}

func TestRecordExpansion(t *testing.T) {
	m := &Metrics{startTime: time.Now()}

	m.RecordExpansion(true)
	m.RecordExpansion(false)

	if m.Expansions.Load() != 2 {
		t.Errorf("expected 2 expansions, got %d", m.Expansions.Load())
	}
	if m.ExpansionFallbks.Load() != 1 {
		t.Errorf("expected 1 fallback, got %d", m.ExpansionFallbks.Load())
	}
}

func TestHandlerOutput(t *testing.T) {
	m := &Metrics{startTime: time.Now()}
	m.RecordDecode("medium", 33, nil)
	m.RecordExpansion(false)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler()(rec, req)

	res := rec.Result()
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	text := string(body)

	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("expected text/plain content type, got %q", ct)
	}

	for _, want := range []string{
		"repdec_decodes_total 1",
		"repdec_decodes_medium_total 1",
		"repdec_expansion_fallbacks_total 1",
		"repdec_last_decode_duration_ms 33",
		"# TYPE repdec_uptime_seconds gauge",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
}
