package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		dev     bool
		wantErr bool
	}{
		{in: "debug", want: zapcore.DebugLevel, dev: true},
		{in: "DEBUG", want: zapcore.DebugLevel, dev: true},
		{in: "", want: zapcore.InfoLevel},
		{in: "info", want: zapcore.InfoLevel},
		{in: "warning", want: zapcore.WarnLevel},
		{in: " warn ", want: zapcore.WarnLevel},
		{in: "error", want: zapcore.ErrorLevel},
		{in: "trace", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, dev, err := parseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "expected debug, info, warn, error")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.dev, dev)
		})
	}
}

func TestNewWithWriter_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("warn", &buf)
	require.NoError(t, err)

	log.Info("synthesized", "stacks", 5)
	assert.Empty(t, buf.String())

	log.Error(nil, "upload failed", "key", "manifest.json")
	assert.Contains(t, buf.String(), "upload failed")
	assert.Contains(t, buf.String(), "manifest.json")
}

func TestNewWithWriter_Debug(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter("debug", &buf)
	require.NoError(t, err)

	log.V(1).Info("resolved stage", "id", "GammaUsEast1")
	assert.Contains(t, buf.String(), "GammaUsEast1")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("verbose")
	assert.Error(t, err)
}
