package topology

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/util/naming"
)

// AdministratorAccessPolicy is the execution policy granted to CloudFormation
// in target accounts bootstrapped for cross-account deployment.
const AdministratorAccessPolicy = "arn:aws:iam::aws:policy/AdministratorAccess"

// StepKind distinguishes shell steps from manual approvals.
type StepKind string

const (
	StepShell    StepKind = "shell"
	StepApproval StepKind = "approval"
)

// Step is a resolved pre or post step.
type Step struct {
	Name     string            `json:"name"`
	Kind     StepKind          `json:"kind"`
	Commands []string          `json:"commands,omitempty"`
	Env      map[string]string `json:"env,omitempty"`

	// EnvFromOutputs maps environment variables to outputs of the owning stage.
	EnvFromOutputs map[string]string `json:"envFromOutputs,omitempty"`

	// Comment is the approval prompt.
	Comment string `json:"comment,omitempty"`
}

// Stage is a resolved deployment target.
type Stage struct {
	ID      string `json:"id"`
	Wave    string `json:"wave"`
	Account string `json:"account"`
	Region  string `json:"region"`
	Pre     []Step `json:"pre,omitempty"`
	Post    []Step `json:"post,omitempty"`
}

// Environment returns the CDK environment string aws://account/region.
func (s Stage) Environment() string {
	return naming.Environment(s.Account, s.Region)
}

// Wave is a group of stages deployed in parallel.
type Wave struct {
	Name   string  `json:"name"`
	Pre    []Step  `json:"pre,omitempty"`
	Post   []Step  `json:"post,omitempty"`
	Stages []Stage `json:"stages"`
}

// Target is a unique (account, region) pair.
type Target struct {
	Account string `json:"account"`
	Region  string `json:"region"`
}

// String returns the CDK environment string for the target.
func (t Target) String() string {
	return naming.Environment(t.Account, t.Region)
}

// Gates counts the checks a change must pass on its way to the last wave.
type Gates struct {
	// Security counts wave pre shell steps.
	Security int `json:"security"`
	// EndToEnd counts stage post shell steps that consume stage outputs.
	EndToEnd int `json:"endToEnd"`
	// Approvals counts manual approval steps anywhere in the pipeline.
	Approvals int `json:"approvals"`
	// Other counts the remaining shell steps.
	Other int `json:"other"`
}

// Plan is the resolved, ordered deployment topology.
type Plan struct {
	App          string `json:"app"`
	PipelineName string `json:"pipelineName"`
	Account      string `json:"account"`
	Region       string `json:"region"`
	Repository   string `json:"repository"`
	Branch       string `json:"branch"`
	Waves        []Wave `json:"waves"`
}

// Build resolves cfg into a plan. The configuration must already have
// defaults applied; Build rejects plans with no waves or unnamed stages.
func Build(cfg *config.Config) (*Plan, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	p := cfg.Pipeline
	if len(p.Waves) == 0 {
		return nil, errors.New("pipeline has no waves")
	}

	plan := &Plan{
		App:          cfg.Name,
		PipelineName: p.Name,
		Account:      p.Account,
		Region:       p.Region,
		Repository:   p.Source.Repository,
		Branch:       p.Source.Branch,
		Waves:        make([]Wave, 0, len(p.Waves)),
	}

	for _, w := range p.Waves {
		wave := Wave{
			Name:   w.Name,
			Pre:    resolveSteps(w.Pre),
			Post:   resolveSteps(w.Post),
			Stages: make([]Stage, 0, len(w.Stages)),
		}
		for _, s := range w.Stages {
			id := s.ResolvedName(w.Name)
			if id == "" {
				return nil, fmt.Errorf("wave %s: stage has neither name nor region", w.Name)
			}
			wave.Stages = append(wave.Stages, Stage{
				ID:      id,
				Wave:    w.Name,
				Account: s.ResolvedAccount(p.Account),
				Region:  s.Region,
				Pre:     resolveSteps(s.Pre),
				Post:    resolveSteps(s.Post),
			})
		}
		plan.Waves = append(plan.Waves, wave)
	}

	return plan, nil
}

func resolveSteps(steps []config.Step) []Step {
	if len(steps) == 0 {
		return nil
	}
	out := make([]Step, 0, len(steps))
	for _, s := range steps {
		if s.IsApproval() {
			out = append(out, Step{Name: s.Name, Kind: StepApproval, Comment: s.Approval})
			continue
		}
		out = append(out, Step{
			Name:           s.Name,
			Kind:           StepShell,
			Commands:       slices.Clone(s.Commands),
			Env:            maps.Clone(s.Env),
			EnvFromOutputs: maps.Clone(s.EnvFromOutputs),
		})
	}
	return out
}

// Stages returns every stage in execution order.
func (p *Plan) Stages() []Stage {
	var stages []Stage
	for _, w := range p.Waves {
		stages = append(stages, w.Stages...)
	}
	return stages
}

// Targets returns the unique deployment targets in order of first appearance.
func (p *Plan) Targets() []Target {
	var targets []Target
	for _, s := range p.Stages() {
		t := Target{Account: s.Account, Region: s.Region}
		if !slices.Contains(targets, t) {
			targets = append(targets, t)
		}
	}
	return targets
}

// PipelineTarget returns the environment hosting the pipeline.
func (p *Plan) PipelineTarget() Target {
	return Target{Account: p.Account, Region: p.Region}
}

// Accounts returns the distinct accounts involved, pipeline account first.
func (p *Plan) Accounts() []string {
	accounts := []string{p.Account}
	for _, t := range p.Targets() {
		if !slices.Contains(accounts, t.Account) {
			accounts = append(accounts, t.Account)
		}
	}
	return accounts
}

// IsCrossAccount reports whether any stage deploys outside the pipeline account.
func (p *Plan) IsCrossAccount() bool {
	return len(p.Accounts()) > 1
}

// Gates counts the plan's security, end-to-end and approval gates.
func (p *Plan) Gates() Gates {
	var g Gates
	count := func(steps []Step, security bool) {
		for _, s := range steps {
			switch {
			case s.Kind == StepApproval:
				g.Approvals++
			case security:
				g.Security++
			case len(s.EnvFromOutputs) > 0:
				g.EndToEnd++
			default:
				g.Other++
			}
		}
	}

	for _, w := range p.Waves {
		count(w.Pre, true)
		count(w.Post, false)
		for _, s := range w.Stages {
			count(s.Pre, false)
			count(s.Post, false)
		}
	}
	return g
}

// BootstrapCommands returns the cdk bootstrap invocation for every
// environment the pipeline touches. The pipeline environment comes first.
// Every other target trusts the pipeline account and lets CloudFormation
// deploy with AdministratorAccess.
func (p *Plan) BootstrapCommands() []string {
	home := p.PipelineTarget()
	cmds := []string{"cdk bootstrap " + home.String()}

	for _, t := range p.Targets() {
		if t == home {
			continue
		}
		cmds = append(cmds, fmt.Sprintf(
			"cdk bootstrap %s --trust %s --cloudformation-execution-policies %s",
			t, p.Account, AdministratorAccessPolicy,
		))
	}
	return cmds
}
