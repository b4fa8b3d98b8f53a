package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" WARN ", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"chatty", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetup_WritesFile(t *testing.T) {
	orig := log.Logger
	defer func() { log.Logger = orig }()

	path := filepath.Join(t.TempDir(), "state", "zenfin.log")
	closer, err := Setup(Options{Level: "info", File: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	log.Info().Str("component", "test").Msg("hello")
	log.Debug().Msg("hidden")
	_ = closer.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"message":"hello"`) || !strings.Contains(out, `"component":"test"`) {
		t.Errorf("log = %q, want hello entry with component", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at info level")
	}
}

func TestSetup_VerboseConsole(t *testing.T) {
	orig := log.Logger
	defer func() { log.Logger = orig }()

	var buf bytes.Buffer
	closer, err := Setup(Options{Level: "warn", Verbose: true, Stderr: &buf})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer func() { _ = closer.Close() }()

	log.Debug().Msg("details")
	if !strings.Contains(buf.String(), "details") {
		t.Errorf("console = %q, want debug output in verbose mode", buf.String())
	}
}
