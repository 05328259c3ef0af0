package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   DebugLevel,
		"INFO":    InfoLevel,
		"warn":    WarnLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"bogus":   InfoLevel,
		"":        InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	Initialize(Config{Level: WarnLevel, Component: "test"})
	var buf bytes.Buffer
	SetOutput(&buf)

	Debug("hidden")
	Info("hidden too")
	Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("output contains filtered messages: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Errorf("output missing warn message: %q", out)
	}
}

func TestPrettyFieldsSorted(t *testing.T) {
	Initialize(Config{Level: DebugLevel, Component: "test"})
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("scan", String("zeta", "z"), Int("alpha", 1), Bool("mid", true))

	out := buf.String()
	if !strings.Contains(out, "{alpha=1, mid=true, zeta=z}") {
		t.Errorf("fields not sorted deterministically: %q", out)
	}
}

func TestJSONOutput(t *testing.T) {
	Initialize(Config{Level: InfoLevel, JSON: true, Component: "test"})
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("report written", String("path", "out.txt"))

	var entry Entry
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v (%q)", err, buf.String())
	}
	if entry.Message != "report written" || entry.Level != "INFO" {
		t.Errorf("unexpected entry: %+v", entry)
	}
	if entry.Fields["path"] != "out.txt" {
		t.Errorf("missing field, got %+v", entry.Fields)
	}
}
