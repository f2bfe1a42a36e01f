package infra

import (
	"fmt"
	"slices"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/pipelines"
	"github.com/aws/jsii-runtime-go"

	"github.com/cplee/ecsdeploy/internal/topology"
)

// newSteps turns resolved steps into pipeline steps. outputs holds the
// CfnOutputs shell steps may bind to environment variables; pass nil where
// outputs are not in scope. A nil result means no steps.
func newSteps(steps []topology.Step, outputs map[string]awscdk.CfnOutput) (*[]pipelines.Step, error) {
	if len(steps) == 0 {
		return nil, nil
	}

	out := make([]pipelines.Step, 0, len(steps))
	for _, s := range steps {
		step, err := newStep(s, outputs)
		if err != nil {
			return nil, err
		}
		out = append(out, step)
	}
	return &out, nil
}

func newStep(s topology.Step, outputs map[string]awscdk.CfnOutput) (pipelines.Step, error) {
	if s.Kind == topology.StepApproval {
		return pipelines.NewManualApprovalStep(jsii.String(s.Name), &pipelines.ManualApprovalStepProps{
			Comment: jsii.String(s.Comment),
		}), nil
	}

	props := &pipelines.ShellStepProps{
		Commands: jsii.Strings(s.Commands...),
		Env:      stringMap(s.Env),
	}

	if len(s.EnvFromOutputs) > 0 {
		bound := make(map[string]awscdk.CfnOutput, len(s.EnvFromOutputs))
		for _, name := range sortedKeys(s.EnvFromOutputs) {
			output, ok := outputs[s.EnvFromOutputs[name]]
			if !ok {
				return nil, fmt.Errorf("step %s: output %q is not available here", s.Name, s.EnvFromOutputs[name])
			}
			bound[name] = output
		}
		props.EnvFromCfnOutputs = &bound
	}

	return pipelines.NewShellStep(jsii.String(s.Name), props), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
