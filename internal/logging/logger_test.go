package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLoggerWritesPlainTextToBuffers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Info().Str("pid", "42").Msg("child started")

	out := buf.String()
	if !strings.Contains(out, "child started") {
		t.Errorf("output %q does not contain message", out)
	}
	if !strings.Contains(out, "pid=42") {
		t.Errorf("output %q does not contain field", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output %q contains ANSI escapes for a non-terminal writer", out)
	}
}

func TestComponentAddsField(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf).Component("tray")

	l.Warn().Str("uid", "123").Msg("icon lost")

	out := buf.String()
	if !strings.Contains(out, "component=tray") {
		t.Errorf("output %q missing component field", out)
	}
	if !strings.Contains(out, "icon lost") || !strings.Contains(out, "uid=123") {
		t.Errorf("output %q missing message or field", out)
	}
}

func TestSetOutputRebinds(t *testing.T) {
	var first, second bytes.Buffer
	l := NewLogger(&first)
	l.SetOutput(&second)

	l.Info().Msg("after rebind")

	if first.Len() != 0 {
		t.Errorf("first writer received %q after rebind", first.String())
	}
	if !strings.Contains(second.String(), "after rebind") {
		t.Errorf("second writer = %q, want message", second.String())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error().Msg("discarded")
	l.Component("tray").Info().Msg("also discarded")
}

func TestDebugFilteredAtDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)

	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug event written at default level: %q", buf.String())
	}
}
