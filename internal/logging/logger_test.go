package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdscan/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		level    string
		expected log.Level
	}{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive", " DEBUG ", log.DebugLevel},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, logging.ParseLevel(testCase.level))
			assert.Equal(t, testCase.expected, logging.New(testCase.level).GetLevel())
		})
	}
}

func TestIsValidLevel(t *testing.T) {
	t.Parallel()

	assert.True(t, logging.IsValidLevel("Warn"))
	assert.True(t, logging.IsValidLevel(""))
	assert.False(t, logging.IsValidLevel("verbose"))
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.Debug("scanned", logging.FieldTokens, 3)

	assert.Contains(t, buf.String(), "scanned")
	assert.Contains(t, buf.String(), "tokens=3")
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}

func TestSetDefaultAndLevel(t *testing.T) {
	// Not parallel: modifies the process-wide logger.
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	fresh := logging.New("info")
	logging.SetDefault(fresh)
	require.Same(t, fresh, logging.Default())

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())
}
