package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation"

	"github.com/cplee/ecsdeploy/internal/util/ptr"
)

var (
	accountRegex     = regexp.MustCompile(`^\d{12}$`)
	repositoryRegex  = regexp.MustCompile(`^[A-Za-z0-9_.-]+/[A-Za-z0-9_.-]+$`)
	connectionRegex  = regexp.MustCompile(`^arn:aws(-[a-z]+)*:(codeconnections|codestar-connections):[a-z0-9-]+:\d{12}:connection/[0-9a-f-]+$`)
	constructIDRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]*$`)
	actionNameRegex  = regexp.MustCompile(`^[A-Za-z0-9.@_-]{1,100}$`)
	httpCodesRegex   = regexp.MustCompile(`^\d{3}([-,]\d{3})*$`)
	envNameRegex     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Validate checks the configuration and returns every problem found, joined.
// Call ApplyDefaults first; Load does both.
func (c *Config) Validate() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("name is required"))
	} else if msgs := validation.IsDNS1123Label(c.Name); len(msgs) > 0 {
		errs = append(errs, fmt.Errorf("name %q is invalid: %s", c.Name, strings.Join(msgs, "; ")))
	}

	errs = append(errs, c.Service.validate()...)
	errs = append(errs, c.Pipeline.validate()...)

	return errors.Join(errs...)
}

func (s *Service) validate() []error {
	var errs []error

	if s.MaxAZs < 1 || s.MaxAZs > 6 {
		errs = append(errs, fmt.Errorf("service.max_azs must be 1-6, got %d", s.MaxAZs))
	}

	if ValidMemoryForCPU(s.CPU) == nil {
		errs = append(errs, fmt.Errorf("service.cpu must be one of %v, got %d", ValidCPUs(), s.CPU))
	} else if !IsValidFargateSize(s.CPU, s.MemoryMiB) {
		errs = append(errs, fmt.Errorf("service.memory_mib %d is not valid for cpu %d (allowed: %v)",
			s.MemoryMiB, s.CPU, ValidMemoryForCPU(s.CPU)))
	}

	if s.DesiredCount < 1 {
		errs = append(errs, fmt.Errorf("service.desired_count must be at least 1, got %d", s.DesiredCount))
	}
	if s.ContainerPort < 1 || s.ContainerPort > 65535 {
		errs = append(errs, fmt.Errorf("service.container_port must be 1-65535, got %d", s.ContainerPort))
	}

	switch {
	case s.Image.Asset != "" && s.Image.Registry != "":
		errs = append(errs, errors.New("service.image: set only one of asset and registry"))
	case s.Image.Asset == "" && s.Image.Registry == "":
		errs = append(errs, errors.New("service.image: one of asset or registry is required"))
	}

	hc := s.HealthCheck
	if !strings.HasPrefix(hc.Path, "/") {
		errs = append(errs, fmt.Errorf("service.health_check.path must start with '/', got %q", hc.Path))
	}
	if hc.HealthyHTTPCodes != "" && !httpCodesRegex.MatchString(hc.HealthyHTTPCodes) {
		errs = append(errs, fmt.Errorf("service.health_check.healthy_http_codes %q must look like 200, 200,302 or 200-299", hc.HealthyHTTPCodes))
	}
	if hc.IntervalSeconds != 0 && (hc.IntervalSeconds < 5 || hc.IntervalSeconds > 300) {
		errs = append(errs, fmt.Errorf("service.health_check.interval_seconds must be 5-300, got %d", hc.IntervalSeconds))
	}

	for name := range s.Environment {
		if !envNameRegex.MatchString(name) {
			errs = append(errs, fmt.Errorf("service.environment: invalid variable name %q", name))
		}
	}

	return errs
}

func (p *Pipeline) validate() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, errors.New("pipeline.name is required"))
	} else if !actionNameRegex.MatchString(p.Name) {
		errs = append(errs, fmt.Errorf("pipeline.name %q may only contain letters, digits and . @ _ -", p.Name))
	}
	if !accountRegex.MatchString(p.Account) {
		errs = append(errs, fmt.Errorf("pipeline.account must be a 12-digit AWS account id, got %q", p.Account))
	}
	if !IsValidRegion(p.Region) {
		errs = append(errs, fmt.Errorf("pipeline.region %q is not a valid AWS region", p.Region))
	}

	if !repositoryRegex.MatchString(p.Source.Repository) {
		errs = append(errs, fmt.Errorf("pipeline.source.repository must be owner/repo, got %q", p.Source.Repository))
	}
	if p.Source.Branch == "" {
		errs = append(errs, errors.New("pipeline.source.branch is required"))
	}
	if !connectionRegex.MatchString(p.Source.ConnectionARN) {
		errs = append(errs, fmt.Errorf("pipeline.source.connection_arn %q is not a CodeConnections connection ARN", p.Source.ConnectionARN))
	}

	if len(p.Synth.Commands) == 0 {
		errs = append(errs, errors.New("pipeline.synth.commands requires at least one command"))
	}

	if len(p.Waves) == 0 {
		errs = append(errs, errors.New("pipeline.waves requires at least one wave"))
	}

	waveNames := sets.New[string]()
	stageNames := sets.New[string]()
	targets := sets.New[string]()
	crossAccount := false

	for i, wave := range p.Waves {
		where := fmt.Sprintf("pipeline.waves[%d]", i)
		if wave.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", where))
		} else {
			where = fmt.Sprintf("wave %s", wave.Name)
			if !constructIDRegex.MatchString(wave.Name) {
				errs = append(errs, fmt.Errorf("%s: name must start with a letter and contain only letters, digits and '-'", where))
			}
			if waveNames.Has(wave.Name) {
				errs = append(errs, fmt.Errorf("%s: duplicate wave name", where))
			}
			waveNames.Insert(wave.Name)
		}

		errs = append(errs, validateSteps(where+" pre", wave.Pre, false)...)
		errs = append(errs, validateSteps(where+" post", wave.Post, false)...)

		if len(wave.Stages) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one stage is required", where))
		}

		for j, stage := range wave.Stages {
			name := stage.ResolvedName(wave.Name)
			stageWhere := fmt.Sprintf("%s stage[%d]", where, j)
			if stage.Region != "" || stage.Name != "" {
				stageWhere = fmt.Sprintf("stage %s", name)
			}

			if !IsValidRegion(stage.Region) {
				errs = append(errs, fmt.Errorf("%s: region %q is not a valid AWS region", stageWhere, stage.Region))
			}
			if stage.Account != "" && !accountRegex.MatchString(stage.Account) {
				errs = append(errs, fmt.Errorf("%s: account must be a 12-digit AWS account id, got %q", stageWhere, stage.Account))
			}
			if !constructIDRegex.MatchString(name) {
				errs = append(errs, fmt.Errorf("%s: name must start with a letter and contain only letters, digits and '-'", stageWhere))
			}
			if name == PipelineConstructID {
				errs = append(errs, fmt.Errorf("%s: name %q is reserved for the pipeline construct", stageWhere, name))
			}
			if stageNames.Has(name) {
				errs = append(errs, fmt.Errorf("%s: duplicate stage name", stageWhere))
			}
			stageNames.Insert(name)

			account := stage.ResolvedAccount(p.Account)
			target := account + "/" + stage.Region
			if targets.Has(target) {
				errs = append(errs, fmt.Errorf("%s: account %s region %s is already deployed by another stage", stageWhere, account, stage.Region))
			}
			targets.Insert(target)

			if account != p.Account {
				crossAccount = true
			}

			errs = append(errs, validateSteps(stageWhere+" pre", stage.Pre, false)...)
			errs = append(errs, validateSteps(stageWhere+" post", stage.Post, true)...)
		}
	}

	if crossAccount && !ptr.BoolOr(p.CrossAccountKeys, true) {
		errs = append(errs, errors.New("pipeline.cross_account_keys cannot be false when stages deploy to other accounts"))
	}

	return errs
}

// validateSteps checks one step list. Outputs can only be imported after the
// stage that produces them has deployed, so allowOutputs is true only for stage post steps.
func validateSteps(where string, steps []Step, allowOutputs bool) []error {
	var errs []error
	names := sets.New[string]()

	for i, step := range steps {
		stepWhere := fmt.Sprintf("%s step[%d]", where, i)
		if step.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is required", stepWhere))
		} else {
			stepWhere = fmt.Sprintf("%s step %s", where, step.Name)
			if !actionNameRegex.MatchString(step.Name) {
				errs = append(errs, fmt.Errorf("%s: name may only contain letters, digits and . @ _ -", stepWhere))
			}
			if names.Has(step.Name) {
				errs = append(errs, fmt.Errorf("%s: duplicate step name", stepWhere))
			}
			names.Insert(step.Name)
		}

		switch {
		case step.IsApproval() && len(step.Commands) > 0:
			errs = append(errs, fmt.Errorf("%s: set only one of commands and approval", stepWhere))
		case !step.IsApproval() && len(step.Commands) == 0:
			errs = append(errs, fmt.Errorf("%s: one of commands or approval is required", stepWhere))
		}

		if step.IsApproval() && (len(step.Env) > 0 || len(step.EnvFromOutputs) > 0) {
			errs = append(errs, fmt.Errorf("%s: approval steps take no environment", stepWhere))
		}

		for name := range step.Env {
			if !envNameRegex.MatchString(name) {
				errs = append(errs, fmt.Errorf("%s: invalid variable name %q", stepWhere, name))
			}
		}

		if len(step.EnvFromOutputs) > 0 && !allowOutputs {
			errs = append(errs, fmt.Errorf("%s: env_from_outputs is only allowed on stage post steps", stepWhere))
			continue
		}
		for name, output := range step.EnvFromOutputs {
			if !envNameRegex.MatchString(name) {
				errs = append(errs, fmt.Errorf("%s: invalid variable name %q", stepWhere, name))
			}
			if output != OutputLoadBalancerURL {
				errs = append(errs, fmt.Errorf("%s: unknown stage output %q (available: %s)", stepWhere, output, OutputLoadBalancerURL))
			}
		}
	}

	return errs
}
