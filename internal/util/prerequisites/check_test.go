package prerequisites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubLookPath(t *testing.T, present map[string]string) {
	t.Helper()
	origLook := lookPath
	origVersion := toolVersion
	t.Cleanup(func() {
		lookPath = origLook
		toolVersion = origVersion
	})

	lookPath = func(name string) (string, error) {
		if p, ok := present[name]; ok {
			return p, nil
		}
		return "", errors.New("executable file not found in $PATH")
	}
	toolVersion = func(_ context.Context, name string) string {
		return name + " v1.0.0"
	}
}

func TestCheck_AllPresent(t *testing.T) {
	stubLookPath(t, map[string]string{
		"node": "/usr/bin/node",
		"npx":  "/usr/bin/npx",
	})

	results := Check(context.Background(), DefaultTools())

	require.Len(t, results.Results, 2)
	assert.Empty(t, results.Missing)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
	assert.Equal(t, "/usr/bin/node", results.Results[0].Path)
	assert.Equal(t, "node v1.0.0", results.Results[0].Version)
}

func TestCheck_MissingRequired(t *testing.T) {
	stubLookPath(t, map[string]string{"node": "/usr/bin/node"})

	results := Check(context.Background(), ForSynth(true, false))

	assert.True(t, results.HasErrors())
	err := results.Error()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npx")
	assert.Contains(t, err.Error(), "docker")
	assert.NotContains(t, err.Error(), "node (")
}

func TestCheck_MissingOptionalIsNotAnError(t *testing.T) {
	stubLookPath(t, map[string]string{
		"node": "/usr/bin/node",
		"npx":  "/usr/bin/npx",
	})

	results := Check(context.Background(), ForSynth(false, true))

	assert.Len(t, results.Missing, 2)
	assert.False(t, results.HasErrors())
	assert.NoError(t, results.Error())
}

func TestForSynth(t *testing.T) {
	names := func(tools []Tool) []string {
		out := make([]string, 0, len(tools))
		for _, tool := range tools {
			out = append(out, tool.Name)
		}
		return out
	}

	assert.Equal(t, []string{"node", "npx"}, names(ForSynth(false, false)))
	assert.Equal(t, []string{"node", "npx", "docker"}, names(ForSynth(true, false)))
	assert.Equal(t, []string{"node", "npx", "docker", "git", "aws"}, names(ForSynth(true, true)))
}

func TestGetToolVersion_UnknownBinary(t *testing.T) {
	assert.Empty(t, getToolVersion(context.Background(), "nonexistent-tool-xyz123"))
}
