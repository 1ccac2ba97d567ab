package logger

import (
	"bytes"
	"encoding/json"
	stdlog "log"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNew_JSONWithService(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		stdlog.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	l := New(Options{Level: "info", Output: &buf, Service: "provincial-portal"})

	l.Debug().Msg("hidden")
	l.Info().Str("slug", "bongao").Msg("municipality created")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one entry, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if entry["service"] != "provincial-portal" || entry["slug"] != "bongao" || entry["level"] != "info" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNew_RedirectsStandardLog(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
		stdlog.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	New(Options{Level: "debug", Output: &buf})
	stdlog.Print("driver says hi")

	if !strings.Contains(buf.String(), `"source":"stdlog"`) || !strings.Contains(buf.String(), "driver says hi") {
		t.Fatalf("standard log output not captured: %q", buf.String())
	}
}
