package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"":        zerolog.InfoLevel,
		"chatty":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNew_JSONIncludesServiceAndComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := Component(New(Options{Level: "info", Output: &buf}), "llm")
	l.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "tripgen" {
		t.Errorf("service = %v; want tripgen", line["service"])
	}
	if line["component"] != "llm" {
		t.Errorf("component = %v; want llm", line["component"])
	}
	if line["message"] != "hello" {
		t.Errorf("message = %v; want hello", line["message"])
	}
}

func TestNew_LevelFiltersDebug(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{Level: "warn", Output: &buf})
	l.Debug().Msg("hidden")
	l.Info().Msg("hidden too")

	if buf.Len() != 0 {
		t.Errorf("expected no output below warn, got %q", buf.String())
	}
}

func TestNew_ConsoleFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(Options{Format: "console", Output: &buf})
	l.Info().Msg("readable")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("expected console output, got JSON: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "readable") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}
