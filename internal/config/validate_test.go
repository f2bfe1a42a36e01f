package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cplee/ecsdeploy/internal/util/ptr"
)

func TestDefault_IsValid(t *testing.T) {
	t.Parallel()
	require.NoError(t, Default().Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:    "missing name",
			mutate:  func(c *Config) { c.Name = "" },
			wantErr: "name is required",
		},
		{
			name:    "name not a DNS label",
			mutate:  func(c *Config) { c.Name = "Nest_Recipes" },
			wantErr: `name "Nest_Recipes" is invalid`,
		},
		{
			name:    "too many AZs",
			mutate:  func(c *Config) { c.Service.MaxAZs = 7 },
			wantErr: "service.max_azs must be 1-6",
		},
		{
			name:    "unsupported cpu",
			mutate:  func(c *Config) { c.Service.CPU = 300 },
			wantErr: "service.cpu must be one of",
		},
		{
			name:    "memory does not pair with cpu",
			mutate:  func(c *Config) { c.Service.MemoryMiB = 4096 },
			wantErr: "service.memory_mib 4096 is not valid for cpu 256",
		},
		{
			name:    "negative desired count",
			mutate:  func(c *Config) { c.Service.DesiredCount = -1 },
			wantErr: "service.desired_count must be at least 1",
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Service.ContainerPort = 70000 },
			wantErr: "service.container_port must be 1-65535",
		},
		{
			name:    "both image sources",
			mutate:  func(c *Config) { c.Service.Image.Registry = "nginx:latest" },
			wantErr: "set only one of asset and registry",
		},
		{
			name:    "no image source",
			mutate:  func(c *Config) { c.Service.Image = Image{} },
			wantErr: "one of asset or registry is required",
		},
		{
			name:    "relative health path",
			mutate:  func(c *Config) { c.Service.HealthCheck.Path = "api/health" },
			wantErr: "must start with '/'",
		},
		{
			name:    "bad healthy codes",
			mutate:  func(c *Config) { c.Service.HealthCheck.HealthyHTTPCodes = "2xx" },
			wantErr: "healthy_http_codes",
		},
		{
			name:    "interval too short",
			mutate:  func(c *Config) { c.Service.HealthCheck.IntervalSeconds = 2 },
			wantErr: "interval_seconds must be 5-300",
		},
		{
			name:    "bad container env name",
			mutate:  func(c *Config) { c.Service.Environment = map[string]string{"1BAD": "x"} },
			wantErr: `invalid variable name "1BAD"`,
		},
		{
			name:    "short account",
			mutate:  func(c *Config) { c.Pipeline.Account = "12345" },
			wantErr: "pipeline.account must be a 12-digit",
		},
		{
			name:    "bad pipeline region",
			mutate:  func(c *Config) { c.Pipeline.Region = "useast1" },
			wantErr: `pipeline.region "useast1" is not a valid AWS region`,
		},
		{
			name:    "repository without owner",
			mutate:  func(c *Config) { c.Pipeline.Source.Repository = "riv-dop337" },
			wantErr: "must be owner/repo",
		},
		{
			name:    "not a connection arn",
			mutate:  func(c *Config) { c.Pipeline.Source.ConnectionARN = "arn:aws:s3:::bucket" },
			wantErr: "is not a CodeConnections connection ARN",
		},
		{
			name:    "no synth commands",
			mutate:  func(c *Config) { c.Pipeline.Synth.Commands = nil },
			wantErr: "pipeline.synth.commands requires at least one command",
		},
		{
			name:    "no waves",
			mutate:  func(c *Config) { c.Pipeline.Waves = nil },
			wantErr: "pipeline.waves requires at least one wave",
		},
		{
			name: "duplicate wave",
			mutate: func(c *Config) {
				c.Pipeline.Waves[1].Name = "Gamma"
				c.Pipeline.Waves[1].Stages[0].Name = "Other1"
				c.Pipeline.Waves[1].Stages[1].Name = "Other2"
			},
			wantErr: "wave Gamma: duplicate wave name",
		},
		{
			name:    "empty wave",
			mutate:  func(c *Config) { c.Pipeline.Waves[1].Stages = nil },
			wantErr: "wave Production: at least one stage is required",
		},
		{
			name:    "duplicate stage name",
			mutate:  func(c *Config) { c.Pipeline.Waves[1].Stages[0].Name = "GammaUsEast1" },
			wantErr: "stage GammaUsEast1: duplicate stage name",
		},
		{
			name:    "stage named like the pipeline construct",
			mutate:  func(c *Config) { c.Pipeline.Waves[1].Stages[0].Name = PipelineConstructID },
			wantErr: `stage Pipeline: name "Pipeline" is reserved for the pipeline construct`,
		},
		{
			name:    "same target twice",
			mutate:  func(c *Config) { c.Pipeline.Waves[1].Stages[0].Region = "us-east-1" },
			wantErr: "region us-east-1 is already deployed by another stage",
		},
		{
			name:    "bad stage account",
			mutate:  func(c *Config) { c.Pipeline.Waves[1].Stages[0].Account = "abc" },
			wantErr: "account must be a 12-digit AWS account id",
		},
		{
			name:    "invalid stage region",
			mutate:  func(c *Config) { c.Pipeline.Waves[1].Stages[0].Region = "mars-1" },
			wantErr: `region "mars-1" is not a valid AWS region`,
		},
		{
			name: "cross account without keys",
			mutate: func(c *Config) {
				c.Pipeline.CrossAccountKeys = ptr.Bool(false)
				c.Pipeline.Waves[1].Stages[0].Account = "111111111111"
			},
			wantErr: "cross_account_keys cannot be false",
		},
		{
			name: "step without commands",
			mutate: func(c *Config) {
				c.Pipeline.Waves[0].Pre[0].Commands = nil
			},
			wantErr: "step SAST-Scan: one of commands or approval is required",
		},
		{
			name: "step with commands and approval",
			mutate: func(c *Config) {
				c.Pipeline.Waves[0].Pre[0].Approval = "ok?"
			},
			wantErr: "set only one of commands and approval",
		},
		{
			name: "duplicate step",
			mutate: func(c *Config) {
				c.Pipeline.Waves[0].Pre[1].Name = "SAST-Scan"
			},
			wantErr: "step SAST-Scan: duplicate step name",
		},
		{
			name: "outputs on wave pre step",
			mutate: func(c *Config) {
				c.Pipeline.Waves[0].Pre[0].EnvFromOutputs = map[string]string{"URL": OutputLoadBalancerURL}
			},
			wantErr: "env_from_outputs is only allowed on stage post steps",
		},
		{
			name: "outputs on stage pre step",
			mutate: func(c *Config) {
				c.Pipeline.Waves[0].Stages[0].Pre = []Step{E2ETestStep()}
			},
			wantErr: "env_from_outputs is only allowed on stage post steps",
		},
		{
			name: "unknown output",
			mutate: func(c *Config) {
				c.Pipeline.Waves[0].Stages[0].Post[0].EnvFromOutputs = map[string]string{"URL": "ApiEndpoint"}
			},
			wantErr: `unknown stage output "ApiEndpoint"`,
		},
		{
			name: "approval with env",
			mutate: func(c *Config) {
				c.Pipeline.Waves[1].Pre = []Step{{Name: "Approve", Approval: "go?", Env: map[string]string{"A": "b"}}}
			},
			wantErr: "approval steps take no environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_AccumulatesErrors(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Name = ""
	cfg.Service.ContainerPort = -1
	cfg.Pipeline.Account = "x"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "container_port")
	assert.Contains(t, err.Error(), "pipeline.account")
}

func TestValidate_CrossAccountWithKeys(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Pipeline.Waves[1].Stages[0].Account = "111111111111"

	assert.NoError(t, cfg.Validate())
}

func TestValidate_ManualApprovalGate(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Pipeline.Waves[1].Pre = []Step{{Name: "PromoteToProduction", Approval: "Promote?"}}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_RegistryImage(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Service.Image = Image{Registry: "public.ecr.aws/nginx/nginx:latest"}
	cfg.Service.HealthCheck = HealthCheck{Path: "/", HealthyHTTPCodes: "200-299", IntervalSeconds: 30}

	assert.NoError(t, cfg.Validate())
}
