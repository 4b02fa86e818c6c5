package logger_test

import (
	"bytes"
	"errors"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/trellis/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	fpRegexp       = regexp.MustCompile(`\w+/logger_test\.go:\d+`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		input    string
		expected logger.LogLevel
	}{
		{"DEBUG", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"WARN", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"debug", logger.LogLevelUnk},
		{"", logger.LogLevelUnk},
	} {
		t.Run(tc.input, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.input))
		})
	}
}

func TestTrellisLoggerLevels(t *testing.T) {
	color.NoColor = true

	for _, tc := range []struct {
		name     string
		level    logger.LogLevel
		log      func(l logger.Logger)
		expected string
	}{
		{"Debug-Emitted", logger.LogLevelDebug, func(l logger.Logger) { l.Debug("hi", nil) }, "[DEBUG]"},
		{"Debug-Filtered", logger.LogLevelInfo, func(l logger.Logger) { l.Debug("hi", nil) }, ""},
		{"Info-Emitted", logger.LogLevelInfo, func(l logger.Logger) { l.Info("hi", nil) }, "[INFO]"},
		{"Info-Filtered", logger.LogLevelWarn, func(l logger.Logger) { l.Info("hi", nil) }, ""},
		{"Warn-Emitted", logger.LogLevelWarn, func(l logger.Logger) { l.Warn("hi", nil) }, "[WARN]"},
		{"Error-Emitted", logger.LogLevelWarn, func(l logger.Logger) { l.Error("hi", nil) }, "[ERROR]"},
		{"Error-Filtered", logger.LogLevelFatal, func(l logger.Logger) { l.Error("hi", nil) }, ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			b := new(bytes.Buffer)
			l := logger.NewTrellisLogger(logger.WithLogger(newTestLogger(b)), logger.WithLevel(tc.level))

			// Act
			tc.log(l)

			// Assert
			require.Equal(t, tc.expected, logLevelRegexp.FindString(b.String()))
		})
	}
}

func TestTrellisLoggerFormat(t *testing.T) {
	// Arrange
	color.NoColor = true
	b := new(bytes.Buffer)
	l := logger.NewTrellisLogger(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Error("something broke", &logger.LogContext{Error: errors.New("boom")})

	// Assert
	out := b.String()
	require.Equal(t, "[ERROR]", logLevelRegexp.FindString(out))
	require.Regexp(t, fpRegexp, out)
	require.Equal(t, "something broke", msgRegexp.FindStringSubmatch(out)[1])
	require.Contains(t, out, `log_context: {"error":"boom"}`)
}

func TestTrellisLoggerCaller(t *testing.T) {
	// Arrange
	color.NoColor = true
	b := new(bytes.Buffer)
	l := logger.NewTrellisLogger(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Info("from elsewhere", &logger.LogContext{Caller: "somewhere.go:1"})

	// Assert
	require.Contains(t, b.String(), "[INFO] somewhere.go:1 'from elsewhere'")
}

func TestTrellisLoggerAddSkip(t *testing.T) {
	// Arrange
	l := logger.NewTrellisLogger()

	// Act
	skipped := l.AddSkip(3)

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Equal(t, 3, skipped.Skip())
}
