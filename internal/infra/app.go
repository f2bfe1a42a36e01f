package infra

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"

	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/topology"
	"github.com/cplee/ecsdeploy/internal/util/naming"
)

// Options tunes what [Build] declares.
type Options struct {
	// ServiceOnly declares a single standalone service stack in the pipeline
	// environment instead of the pipeline, for direct cdk deploy.
	ServiceOnly bool
}

// NewApp creates the CDK app. An empty outdir leaves the choice to the CDK,
// which honors CDK_OUTDIR when the CDK CLI drives the app.
func NewApp(outdir string) awscdk.App {
	props := &awscdk.AppProps{}
	if outdir != "" {
		props.Outdir = jsii.String(outdir)
	}
	return awscdk.NewApp(props)
}

// Build declares the construct tree for cfg under app and returns the top-level stack.
func Build(app awscdk.App, cfg *config.Config, opts Options) (awscdk.Stack, error) {
	if app == nil {
		return nil, errors.New("app is nil")
	}
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	if img := cfg.Service.Image; img.IsAsset() {
		if _, err := os.Stat(filepath.Join(img.Asset, "Dockerfile")); err != nil {
			return nil, fmt.Errorf("image asset %s has no Dockerfile (add one or set service.image.registry)", img.Asset)
		}
	}

	env := &awscdk.Environment{
		Account: jsii.String(cfg.Pipeline.Account),
		Region:  jsii.String(cfg.Pipeline.Region),
	}

	if opts.ServiceOnly {
		stack := NewServiceStack(app, naming.ServiceStack(cfg.Name), &ServiceStackProps{
			StackProps: awscdk.StackProps{
				Env:         env,
				Description: jsii.String(fmt.Sprintf("%s service (standalone)", cfg.Name)),
			},
			AppName: cfg.Name,
			Service: cfg.Service,
		})
		return stack.Stack, nil
	}

	plan, err := topology.Build(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve topology: %w", err)
	}

	stack, err := NewPipelineStack(app, naming.PipelineStack(cfg.Name), &PipelineStackProps{
		StackProps: awscdk.StackProps{
			Env:         env,
			Description: jsii.String(fmt.Sprintf("%s delivery pipeline", cfg.Name)),
		},
		Config: cfg,
		Plan:   plan,
	})
	if err != nil {
		return nil, err
	}
	return stack.Stack, nil
}

// Synth synthesizes app and returns the cloud assembly directory.
func Synth(app awscdk.App) string {
	return *app.Synth(nil).Directory()
}
