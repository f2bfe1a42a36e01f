package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Topology(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Len(t, cfg.Pipeline.Waves, 2)

	gamma := cfg.Pipeline.Waves[0]
	assert.Equal(t, "Gamma", gamma.Name)
	require.Len(t, gamma.Pre, 4)
	assert.Equal(t, []string{"SAST-Scan", "SCA-Scan", "SBOM-Generate", "Secrets-Scan"},
		[]string{gamma.Pre[0].Name, gamma.Pre[1].Name, gamma.Pre[2].Name, gamma.Pre[3].Name})
	require.Len(t, gamma.Stages, 2)
	assert.Equal(t, "GammaUsEast1", gamma.Stages[0].Name)
	assert.Equal(t, "GammaUsWest2", gamma.Stages[1].Name)
	for _, s := range gamma.Stages {
		require.Len(t, s.Post, 1)
		assert.Equal(t, "E2E-Tests", s.Post[0].Name)
		assert.Equal(t, OutputLoadBalancerURL, s.Post[0].EnvFromOutputs["URL"])
	}

	prod := cfg.Pipeline.Waves[1]
	assert.Equal(t, "Production", prod.Name)
	assert.Empty(t, prod.Pre)
	require.Len(t, prod.Stages, 2)
	assert.Equal(t, "ProdUsEast2", prod.Stages[0].Name)
	assert.Equal(t, "us-east-2", prod.Stages[0].Region)
	assert.Equal(t, "ProdEuWest1", prod.Stages[1].Name)
	assert.Equal(t, "eu-west-1", prod.Stages[1].Region)
}

func TestDefault_Service(t *testing.T) {
	t.Parallel()

	svc := Default().Service
	assert.Equal(t, 2, svc.MaxAZs)
	assert.Equal(t, 256, svc.CPU)
	assert.Equal(t, 512, svc.MemoryMiB)
	assert.Equal(t, 1, svc.DesiredCount)
	assert.Equal(t, 3000, svc.ContainerPort)
	assert.Equal(t, "/api/health", svc.HealthCheck.Path)
	assert.True(t, svc.Image.IsAsset())
	assert.InDelta(t, 0.25, svc.VCPU(), 1e-9)
	assert.InDelta(t, 0.5, svc.MemoryGB(), 1e-9)
}

func TestDefault_ReturnsFreshCopies(t *testing.T) {
	t.Parallel()

	a := Default()
	a.Pipeline.Waves[0].Stages[0].Post[0].EnvFromOutputs["URL"] = "changed"

	b := Default()
	assert.Equal(t, OutputLoadBalancerURL, b.Pipeline.Waves[0].Stages[0].Post[0].EnvFromOutputs["URL"])
}

func TestStage_Resolved(t *testing.T) {
	t.Parallel()

	s := Stage{Region: "ap-southeast-2"}
	assert.Equal(t, "GammaApSoutheast2", s.ResolvedName("Gamma"))
	assert.Equal(t, "111111111111", s.ResolvedAccount("111111111111"))

	s = Stage{Name: "Canary", Account: "222222222222", Region: "us-east-1"}
	assert.Equal(t, "Canary", s.ResolvedName("Gamma"))
	assert.Equal(t, "222222222222", s.ResolvedAccount("111111111111"))
}

func TestImage_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "built from .", Image{Asset: "."}.String())
	assert.Equal(t, "nginx:latest", Image{Registry: "nginx:latest"}.String())
}
