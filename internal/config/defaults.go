package config

import (
	"github.com/cplee/ecsdeploy/internal/util/naming"
	"github.com/cplee/ecsdeploy/internal/util/ptr"
)

// Service defaults.
const (
	DefaultMaxAZs          = 2
	DefaultCPU             = 256
	DefaultMemoryMiB       = 512
	DefaultDesiredCount    = 1
	DefaultContainerPort   = 3000
	DefaultImageAsset      = "."
	DefaultHealthCheckPath = "/api/health"
)

// Pipeline defaults.
const (
	DefaultPipelineName = "EcsServicePipeline"
	DefaultBranch       = "main"
	DefaultRegion       = "us-east-1"
)

// Default returns the reference deployment: a two-AZ service behind a public
// ALB, promoted by a pipeline through a scanned Gamma wave with E2E tests in
// us-east-1 and us-west-2, then a Production wave in us-east-2 and eu-west-1.
func Default() *Config {
	cfg := &Config{
		Name: "nest-recipes-app",
		Pipeline: Pipeline{
			Account: "464380571579",
			Region:  DefaultRegion,
			Source: Source{
				Repository:    "cplee/riv-dop337",
				ConnectionARN: "arn:aws:codeconnections:us-east-1:464380571579:connection/b02de033-3e86-4ce0-bfd9-1b46e14431e7",
			},
			Synth: Synth{
				InstallCommands: []string{"npm install -g aws-cdk"},
				Commands: []string{
					"go mod download",
					"go vet ./...",
					"go test ./...",
					"cdk synth",
				},
			},
			Waves: []Wave{
				{
					Name: "Gamma",
					Pre:  SecurityScanSteps(),
					Stages: []Stage{
						{Region: "us-east-1", Post: []Step{E2ETestStep()}},
						{Region: "us-west-2", Post: []Step{E2ETestStep()}},
					},
				},
				{
					Name: "Production",
					Stages: []Stage{
						{Name: "ProdUsEast2", Region: "us-east-2"},
						{Name: "ProdEuWest1", Region: "eu-west-1"},
					},
				},
			},
		},
	}

	cfg.ApplyDefaults()

	for w := range cfg.Pipeline.Waves {
		wave := &cfg.Pipeline.Waves[w]
		for s := range wave.Stages {
			wave.Stages[s].Name = wave.Stages[s].ResolvedName(wave.Name)
		}
	}

	return cfg
}

// SecurityScanSteps returns the scans that gate a wave: static analysis,
// dependency vulnerabilities, SBOM generation and committed secrets.
func SecurityScanSteps() []Step {
	return []Step{
		{
			Name: "SAST-Scan",
			Commands: []string{
				"pip install semgrep",
				"semgrep scan --config auto",
			},
		},
		{
			Name: "SCA-Scan",
			Commands: []string{
				"curl -sSfL https://raw.githubusercontent.com/anchore/grype/main/install.sh | sh -s -- -b /usr/local/bin",
				"grype .",
			},
		},
		{
			Name: "SBOM-Generate",
			Commands: []string{
				"curl -sSfL https://raw.githubusercontent.com/anchore/syft/main/install.sh | sh -s -- -b /usr/local/bin",
				"syft . -o json > sbom.json",
			},
		},
		{
			Name: "Secrets-Scan",
			Commands: []string{
				"curl -sSfL https://github.com/gitleaks/gitleaks/releases/download/v8.21.2/gitleaks_8.21.2_linux_x64.tar.gz | tar -xvzf - -C /usr/local/bin gitleaks",
				"gitleaks detect --source . --no-git -v",
			},
		},
	}
}

// E2ETestStep returns the end-to-end test step run against a freshly deployed stage.
// The stage URL is exported to the step as $URL.
func E2ETestStep() Step {
	return Step{
		Name: "E2E-Tests",
		EnvFromOutputs: map[string]string{
			"URL": OutputLoadBalancerURL,
		},
		Commands: []string{
			"yarn install",
			"npx playwright install --with-deps",
			"npx playwright test",
		},
	}
}

// ApplyDefaults fills zero-valued fields. Stage names and accounts are
// resolved lazily through [Stage.ResolvedName] and [Stage.ResolvedAccount].
func (c *Config) ApplyDefaults() {
	s := &c.Service
	if s.MaxAZs == 0 {
		s.MaxAZs = DefaultMaxAZs
	}
	if s.CPU == 0 {
		s.CPU = DefaultCPU
	}
	if s.MemoryMiB == 0 {
		s.MemoryMiB = DefaultMemoryMiB
	}
	if s.DesiredCount == 0 {
		s.DesiredCount = DefaultDesiredCount
	}
	if s.ContainerPort == 0 {
		s.ContainerPort = DefaultContainerPort
	}
	if s.Image.Asset == "" && s.Image.Registry == "" {
		s.Image.Asset = DefaultImageAsset
	}
	if s.PublicLoadBalancer == nil {
		s.PublicLoadBalancer = ptr.Bool(true)
	}
	if s.HealthCheck.Path == "" {
		s.HealthCheck.Path = DefaultHealthCheckPath
	}

	p := &c.Pipeline
	if p.Name == "" {
		p.Name = DefaultPipelineName
	}
	if p.Region == "" {
		p.Region = DefaultRegion
	}
	if p.CrossAccountKeys == nil {
		p.CrossAccountKeys = ptr.Bool(true)
	}
	if p.Source.Branch == "" {
		p.Source.Branch = DefaultBranch
	}
	if p.Source.TriggerOnPush == nil {
		p.Source.TriggerOnPush = ptr.Bool(true)
	}
}

// ResolvedName returns the stage's construct id, deriving {Wave}{Region} when unset.
func (s Stage) ResolvedName(wave string) string {
	if s.Name != "" {
		return s.Name
	}
	return naming.StageID(wave, s.Region)
}

// ResolvedAccount returns the stage account, falling back to the pipeline account.
func (s Stage) ResolvedAccount(pipelineAccount string) string {
	if s.Account != "" {
		return s.Account
	}
	return pipelineAccount
}
