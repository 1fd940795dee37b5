package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamkr/orderpipe/pkg/config"
)

func testConfig(t *testing.T, level, format string) *config.Config {
	t.Helper()
	t.Setenv("LOG_LEVEL", level)
	t.Setenv("LOG_FORMAT", format)

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestNew(t *testing.T) {
	cfg := testConfig(t, "debug", "json")

	log := New(cfg)
	require.NotNil(t, log)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNew_ConsoleFormat(t *testing.T) {
	cfg := testConfig(t, "info", "console")

	log := New(cfg)
	require.NotNil(t, log)

	// Must not panic.
	log.Info("console output")
	log.WithField("year", 2015).Debug("field attach")
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"bogus", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.input))
		})
	}
}

func TestWithHelpers(t *testing.T) {
	cfg := testConfig(t, "info", "json")
	log := New(cfg)

	withFields := log.WithFields(map[string]interface{}{
		"stage": "clean",
		"year":  2020,
	})
	require.NotNil(t, withFields)

	withErr := log.WithError(assert.AnError)
	require.NotNil(t, withErr)

	// The original logger is unchanged by derivation.
	assert.NotSame(t, log, withFields)
}
