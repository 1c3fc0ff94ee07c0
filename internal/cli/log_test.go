package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reflow/pkg/observability"
)

func TestNewLoggerVerbosity(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantDebug bool
	}{
		{"default", LogInfo, false},
		{"verbose", LogDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			logger.Debug("recompute", "generation", 1)
			logger.Info("loaded")

			out := buf.String()
			if !strings.Contains(out, "loaded") {
				t.Errorf("info line missing: %q", out)
			}
			if got := strings.Contains(out, "generation=1"); got != tt.wantDebug {
				t.Errorf("debug line present = %v, want %v: %q", got, tt.wantDebug, out)
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if out := buf.String(); strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output after SetLogLevel: %q", out)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Laid out window.toml")

	// 14:32:01.45 INFO Laid out window.toml (0s)
	out := buf.String()
	if !regexp.MustCompile(`^\d\d:\d\d:\d\d\.\d\d `).MatchString(out) {
		t.Errorf("missing timestamp: %q", out)
	}
	if !regexp.MustCompile(`Laid out window\.toml \(\d+(\.\d+)?m?s\)`).MatchString(out) {
		t.Errorf("missing message with duration: %q", out)
	}
}

func TestInstallHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	New(&buf, LogDebug).InstallHooks()
	ctx := context.Background()
	observability.Cache().OnCacheHit(ctx, "run")
	observability.Cache().OnCacheSet(ctx, "artifact", 42)

	out := buf.String()
	for _, want := range []string{"cache hit", "type=run", "cache set", "bytes=42"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %q", want, out)
		}
	}
}
