package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/riskreg/riskreg/pkg/shared/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		env      string
		cfgLevel string
		want     hclog.Level
	}{
		{name: "default", want: hclog.Info},
		{name: "config", cfgLevel: "debug", want: hclog.Debug},
		{name: "env wins", env: "error", cfgLevel: "debug", want: hclog.Error},
		{name: "unknown falls back to info", cfgLevel: "verbose", want: hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("RISKREG_LOG_LEVEL", tt.env)
			cfg := &config.Config{Logger: config.Logger{Level: tt.cfgLevel}}
			if got := determineLogLevel(cfg); got != tt.want {
				t.Errorf("determineLogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	t.Setenv("RISKREG_LOG_LEVEL", "")
	jsonFormat := true
	cfg := &config.Config{Logger: config.Logger{JSONFormat: &jsonFormat}}

	var buf bytes.Buffer
	l := newLogger(cfg, "riskreg-test", &buf)
	l.Info("record stamped", "level", "High")

	out := buf.String()
	if !strings.HasPrefix(out, "{") {
		t.Fatalf("expected JSON output, got %q", out)
	}
	if !strings.Contains(out, `"@module":"riskreg-test"`) || !strings.Contains(out, `"level":"High"`) {
		t.Errorf("unexpected log line %q", out)
	}
}

func TestNewLoggerNilConfig(t *testing.T) {
	t.Setenv("RISKREG_LOG_LEVEL", "")
	if l := NewLogger(nil, "nil-config"); !l.IsInfo() {
		t.Errorf("expected INFO level for nil config")
	}
}
