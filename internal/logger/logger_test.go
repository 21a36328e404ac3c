package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevel(t *testing.T) {
	var buf bytes.Buffer
	Init("warn", &buf)

	l := Named("ingest")
	l.Info().Msg("hidden")
	l.Warn().Str("file", "export.csv").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, `"file":"export.csv"`) {
		t.Errorf("warn message missing or not structured: %s", out)
	}
}

func TestInitUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init("chatty", &buf)

	l := Named("report")
	l.Debug().Msg("debug line")
	Info().Msg("info line")

	out := buf.String()
	if strings.Contains(out, "debug line") {
		t.Errorf("debug should be filtered at info level: %s", out)
	}
	if !strings.Contains(out, "info line") {
		t.Errorf("info line missing: %s", out)
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	Init("info", &buf)

	l := Named("ingest")
	l.Info().Msg("loaded")

	if !strings.Contains(buf.String(), `"component":"ingest"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestDebugUsesConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", &buf)

	l := Named("report")
	l.Debug().Msg("console")

	out := buf.String()
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("debug output should be console formatted, got JSON: %s", out)
	}
	if !strings.Contains(out, "console") {
		t.Errorf("debug line missing: %s", out)
	}
}
