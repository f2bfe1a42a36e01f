package handlers

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cplee/ecsdeploy/internal/config"
)

// captureOutput returns everything f writes to stdout.
func captureOutput(t *testing.T, f func()) string {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	defer func() { os.Stdout = old }()
	f()
	require.NoError(t, w.Close())
	return <-done
}

// saveAndRestoreCommonFactories saves and restores the shared factory functions.
func saveAndRestoreCommonFactories(t *testing.T) {
	origFind := findConfigFile
	origLoad := loadConfigFile
	origTTY := isInteractiveTTY

	t.Cleanup(func() {
		findConfigFile = origFind
		loadConfigFile = origLoad
		isInteractiveTTY = origTTY
	})

	isInteractiveTTY = func() bool { return false }
}

// writeTestConfig saves cfg (or the default config) into a temp dir and returns its path.
func writeTestConfig(t *testing.T, cfg *config.Config) string {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	path := filepath.Join(t.TempDir(), config.DefaultConfigFilename)
	require.NoError(t, config.Save(cfg, path))
	return path
}

func TestResolveConfigPath(t *testing.T) {
	saveAndRestoreCommonFactories(t)

	t.Run("explicit path wins", func(t *testing.T) {
		findConfigFile = func() (string, error) {
			t.Fatal("should not search")
			return "", nil
		}
		path, err := resolveConfigPath("custom.yaml")
		require.NoError(t, err)
		assert.Equal(t, "custom.yaml", path)
	})

	t.Run("auto-detect", func(t *testing.T) {
		findConfigFile = func() (string, error) { return "/repo/ecsdeploy.yaml", nil }
		path, err := resolveConfigPath("")
		require.NoError(t, err)
		assert.Equal(t, "/repo/ecsdeploy.yaml", path)
	})

	t.Run("not found", func(t *testing.T) {
		findConfigFile = func() (string, error) { return "", errors.New("config file ecsdeploy.yaml not found") }
		_, err := resolveConfigPath("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no config file found")
	})
}

func TestLoadConfig(t *testing.T) {
	saveAndRestoreCommonFactories(t)

	path := writeTestConfig(t, nil)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "nest-recipes-app", cfg.Name)

	bad := config.Default()
	bad.Service.ContainerPort = 0
	bad.Pipeline.Account = "nope"
	_, err = loadConfig(writeTestConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		require.NoError(t, printJSON(map[string]int{"stacks": 5}))
	})
	assert.JSONEq(t, `{"stacks": 5}`, out)
}
