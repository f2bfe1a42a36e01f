package infra

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/pipelines"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/topology"
	"github.com/cplee/ecsdeploy/internal/util/ptr"
)

// PipelineConstructID is the id of the CodePipeline construct.
const PipelineConstructID = config.PipelineConstructID

// PipelineStackProps configures a [PipelineStack].
type PipelineStackProps struct {
	awscdk.StackProps

	Config *config.Config
	Plan   *topology.Plan
}

// PipelineStack hosts the CodePipeline and every application stage it deploys.
type PipelineStack struct {
	awscdk.Stack

	Pipeline pipelines.CodePipeline
	Waves    []pipelines.Wave

	// Stages is keyed by stage id.
	Stages map[string]*ApplicationStage
}

// NewPipelineStack declares the pipeline: a connection source feeding the
// synth step, then one wave per plan wave with one stage per plan stage.
func NewPipelineStack(scope constructs.Construct, id string, props *PipelineStackProps) (*PipelineStack, error) {
	if props == nil || props.Config == nil || props.Plan == nil {
		return nil, fmt.Errorf("pipeline stack %s: config and plan are required", id)
	}
	cfg := props.Config
	p := cfg.Pipeline

	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)

	source := pipelines.CodePipelineSource_Connection(
		jsii.String(p.Source.Repository),
		jsii.String(p.Source.Branch),
		&pipelines.ConnectionSourceOptions{
			ConnectionArn: jsii.String(p.Source.ConnectionARN),
			TriggerOnPush: jsii.Bool(ptr.BoolOr(p.Source.TriggerOnPush, true)),
		},
	)

	synthProps := &pipelines.ShellStepProps{
		Input:    source,
		Commands: jsii.Strings(p.Synth.Commands...),
	}
	if len(p.Synth.InstallCommands) > 0 {
		synthProps.InstallCommands = jsii.Strings(p.Synth.InstallCommands...)
	}
	if p.Synth.PrimaryOutputDirectory != "" {
		synthProps.PrimaryOutputDirectory = jsii.String(p.Synth.PrimaryOutputDirectory)
	}

	pipeline := pipelines.NewCodePipeline(stack, jsii.String(PipelineConstructID), &pipelines.CodePipelineProps{
		PipelineName:     jsii.String(p.Name),
		Synth:            pipelines.NewShellStep(jsii.String("Synth"), synthProps),
		CrossAccountKeys: jsii.Bool(ptr.BoolOr(p.CrossAccountKeys, true)),
	})

	ps := &PipelineStack{
		Stack:    stack,
		Pipeline: pipeline,
		Stages:   make(map[string]*ApplicationStage),
	}

	for _, w := range props.Plan.Waves {
		wave, err := ps.addWave(cfg, w)
		if err != nil {
			return nil, err
		}
		ps.Waves = append(ps.Waves, wave)
	}

	return ps, nil
}

func (ps *PipelineStack) addWave(cfg *config.Config, w topology.Wave) (pipelines.Wave, error) {
	pre, err := newSteps(w.Pre, nil)
	if err != nil {
		return nil, fmt.Errorf("wave %s: %w", w.Name, err)
	}
	post, err := newSteps(w.Post, nil)
	if err != nil {
		return nil, fmt.Errorf("wave %s: %w", w.Name, err)
	}

	wave := ps.Pipeline.AddWave(jsii.String(w.Name), &pipelines.WaveOptions{
		Pre:  pre,
		Post: post,
	})

	for _, s := range w.Stages {
		stage := NewApplicationStage(ps.Stack, s.ID, &ApplicationStageProps{
			StageProps: awscdk.StageProps{
				Env: &awscdk.Environment{
					Account: jsii.String(s.Account),
					Region:  jsii.String(s.Region),
				},
			},
			AppName: cfg.Name,
			Service: cfg.Service,
		})

		stagePre, err := newSteps(s.Pre, nil)
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.ID, err)
		}
		stagePost, err := newSteps(s.Post, stage.Outputs())
		if err != nil {
			return nil, fmt.Errorf("stage %s: %w", s.ID, err)
		}

		// jsii needs the embedded Stage, not the Go wrapper.
		wave.AddStage(stage.Stage, &pipelines.AddStageOpts{
			Pre:  stagePre,
			Post: stagePost,
		})
		ps.Stages[s.ID] = stage
	}

	return wave, nil
}
