package observability

import (
	"errors"
	"testing"

	otellog "go.opentelemetry.io/otel/log"

	"github.com/riskibarqy/fantasy-cricket/internal/platform/logging"
)

func TestSkipMirror(t *testing.T) {
	t.Parallel()

	if !skipMirror(logging.LevelInfo, "http request", []any{"method", "GET", "path", "/healthz"}) {
		t.Fatalf("expected health check log to be skipped")
	}
	if skipMirror(logging.LevelInfo, "http request", []any{"path", "/v1/contests/c-1"}) {
		t.Fatalf("did not expect contest request to be skipped")
	}
	if skipMirror(logging.LevelWarn, "contest joined", []any{"path", "/healthz"}) {
		t.Fatalf("did not expect non-access log to be skipped")
	}
	if !skipMirror(logging.LevelDebug, "scheduled job finished", []any{"job", "ensure_contests"}) {
		t.Fatalf("expected debug entries to stay local")
	}
}

func TestOTelLogAttributes(t *testing.T) {
	t.Parallel()

	attrs := otelLogAttributes([]any{"contest_id", "c-42", "filled_slots", 7, 3, "ignored-key", "dangling"})
	if len(attrs) != 4 {
		t.Fatalf("expected 4 attributes, got %d", len(attrs))
	}
	if attrs[0].Key != "contest_id" || attrs[0].Value.AsString() != "c-42" {
		t.Fatalf("unexpected contest_id attribute: %+v", attrs[0])
	}
	if attrs[1].Key != "filled_slots" || attrs[1].Value.AsInt64() != 7 {
		t.Fatalf("unexpected filled_slots attribute: %+v", attrs[1])
	}
	if attrs[2].Key != "arg_2" {
		t.Fatalf("non-string key should be positional: %q", attrs[2].Key)
	}
	if attrs[3].Key != "dangling" || attrs[3].Value.Kind() != otellog.KindEmpty {
		t.Fatalf("unexpected dangling attribute: %+v", attrs[3])
	}
}

func TestToOTelLogValue(t *testing.T) {
	t.Parallel()

	m := toOTelLogValue(map[string]any{"points": 54.5, "captain": true}, 0)
	if m.Kind() != otellog.KindMap || len(m.AsMap()) != 2 {
		t.Fatalf("unexpected map value: %v", m)
	}
	if got := toOTelLogValue(errors.New("capacity exceeded"), 0); got.AsString() != "capacity exceeded" {
		t.Fatalf("unexpected error value: %v", got)
	}
	if got := toOTelLogValue([]int64{1, 2, 3}, 0); got.Kind() != otellog.KindSlice || len(got.AsSlice()) != 3 {
		t.Fatalf("unexpected slice value: %v", got)
	}
	if got := toOTelLogValue(uint8(9), 0); got.AsInt64() != 9 {
		t.Fatalf("unexpected uint8 value: %v", got)
	}
}
