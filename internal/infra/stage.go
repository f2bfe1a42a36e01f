package infra

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/cplee/ecsdeploy/internal/config"
)

// ServiceStackID is the id of the service stack inside every application stage.
const ServiceStackID = "EcsService"

// ApplicationStageProps configures an [ApplicationStage].
type ApplicationStageProps struct {
	awscdk.StageProps

	AppName string
	Service config.Service
}

// ApplicationStage is one deployable copy of the service in a single environment.
type ApplicationStage struct {
	awscdk.Stage

	ServiceStack    *ServiceStack
	LoadBalancerURL awscdk.CfnOutput
}

// NewApplicationStage declares a stage holding one service stack.
func NewApplicationStage(scope constructs.Construct, id string, props *ApplicationStageProps) *ApplicationStage {
	stage := awscdk.NewStage(scope, jsii.String(id), &props.StageProps)

	service := NewServiceStack(stage, ServiceStackID, &ServiceStackProps{
		AppName: props.AppName,
		Service: props.Service,
	})

	return &ApplicationStage{
		Stage:           stage,
		ServiceStack:    service,
		LoadBalancerURL: service.LoadBalancerURL,
	}
}

// Outputs returns the stage outputs that post steps may import, by name.
func (s *ApplicationStage) Outputs() map[string]awscdk.CfnOutput {
	return map[string]awscdk.CfnOutput{
		config.OutputLoadBalancerURL: s.LoadBalancerURL,
	}
}
