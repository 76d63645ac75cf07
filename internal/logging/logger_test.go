package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level string) *slog.Logger {
	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLevel(level))
	return slog.New(newConsoleHandler(buf, levelVar))
}

func TestConsoleHandlerLiftsComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewComponentLogger(newTestLogger(&buf, "info"), "workflow")

	logger.Info("stage advanced", String(FieldOrderID, "ord-1"), String(FieldStage, "qc"))

	line := buf.String()
	if !strings.Contains(line, "INFO workflow: stage advanced") {
		t.Fatalf("expected component prefix, got %q", line)
	}
	if !strings.Contains(line, "order_id=ord-1") || !strings.Contains(line, "stage=qc") {
		t.Fatalf("expected key=value attrs, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be lifted out of attrs, got %q", line)
	}
}

func TestConsoleHandlerQuotesValues(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "info")

	logger.Info("note", String("remark", "needs rework"))

	if !strings.Contains(buf.String(), `remark="needs rework"`) {
		t.Fatalf("expected quoted value, got %q", buf.String())
	}
}

func TestConsoleHandlerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "warn")

	logger.Info("ignored")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "ignored") {
		t.Fatalf("info line should be suppressed: %q", out)
	}
	if !strings.Contains(out, "WARN kept") {
		t.Fatalf("warn line missing: %q", out)
	}
}

func TestConsoleHandlerGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, "info").WithGroup("order")

	logger.Info("created", String("id", "ord-2"))

	if !strings.Contains(buf.String(), "order.id=ord-2") {
		t.Fatalf("expected group-prefixed key, got %q", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if parseLevel("nonsense") != slog.LevelInfo {
		t.Fatal("unknown level should fall back to info")
	}
	if parseLevel("") != slog.LevelInfo {
		t.Fatal("empty level should fall back to info")
	}
	if parseLevel("debug") != slog.LevelDebug {
		t.Fatal("debug should parse")
	}
}
