// Package logging builds the CLI's logr logger on top of zap.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	crzap "sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Levels lists the accepted --log-level values.
var Levels = []string{"debug", "info", "warn", "error"}

// New returns a logger writing to stderr at the given level.
func New(level string) (logr.Logger, error) {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter returns a logger writing to w at the given level.
// debug switches to zap's development encoder.
func NewWithWriter(level string, w io.Writer) (logr.Logger, error) {
	zapLevel, dev, err := parseLevel(level)
	if err != nil {
		return logr.Logger{}, err
	}

	atomic := zap.NewAtomicLevelAt(zapLevel)
	opts := crzap.Options{
		Development: dev,
		Level:       &atomic,
		DestWriter:  w,
	}
	return crzap.New(crzap.UseFlagOptions(&opts)), nil
}

func parseLevel(level string) (zapcore.Level, bool, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel, true, nil
	case "info", "":
		return zapcore.InfoLevel, false, nil
	case "warn", "warning":
		return zapcore.WarnLevel, false, nil
	case "error":
		return zapcore.ErrorLevel, false, nil
	default:
		return 0, false, fmt.Errorf("unknown log level %q (expected %s)", level, strings.Join(Levels, ", "))
	}
}
