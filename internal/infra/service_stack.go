package infra

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecs"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsecspatterns"
	"github.com/aws/aws-cdk-go/awscdk/v2/awselasticloadbalancingv2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"

	"github.com/cplee/ecsdeploy/internal/config"
	"github.com/cplee/ecsdeploy/internal/util/naming"
	"github.com/cplee/ecsdeploy/internal/util/ptr"
)

// ServiceStackProps configures a [ServiceStack].
type ServiceStackProps struct {
	awscdk.StackProps

	// AppName prefixes the VPC, cluster and service construct ids.
	AppName string
	Service config.Service
}

// ServiceStack is a VPC, an ECS cluster and an ALB-fronted Fargate service.
type ServiceStack struct {
	awscdk.Stack

	Service         awsecspatterns.ApplicationLoadBalancedFargateService
	LoadBalancerURL awscdk.CfnOutput
}

// NewServiceStack declares the service stack.
func NewServiceStack(scope constructs.Construct, id string, props *ServiceStackProps) *ServiceStack {
	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)

	svc := props.Service

	vpc := awsec2.NewVpc(stack, jsii.String(naming.Vpc(props.AppName)), &awsec2.VpcProps{
		MaxAzs: jsii.Number(float64(svc.MaxAZs)),
	})

	cluster := awsecs.NewCluster(stack, jsii.String(naming.Cluster(props.AppName)), &awsecs.ClusterProps{
		Vpc: vpc,
	})

	service := awsecspatterns.NewApplicationLoadBalancedFargateService(stack, jsii.String(naming.FargateService(props.AppName)),
		&awsecspatterns.ApplicationLoadBalancedFargateServiceProps{
			Cluster:            cluster,
			Cpu:                jsii.Number(float64(svc.CPU)),
			MemoryLimitMiB:     jsii.Number(float64(svc.MemoryMiB)),
			DesiredCount:       jsii.Number(float64(svc.DesiredCount)),
			PublicLoadBalancer: jsii.Bool(ptr.BoolOr(svc.PublicLoadBalancer, true)),
			TaskImageOptions: &awsecspatterns.ApplicationLoadBalancedTaskImageOptions{
				Image:         containerImage(svc.Image),
				ContainerPort: jsii.Number(float64(svc.ContainerPort)),
				Environment:   stringMap(svc.Environment),
			},
		})

	service.TargetGroup().ConfigureHealthCheck(healthCheck(svc.HealthCheck))

	url := awscdk.NewCfnOutput(stack, jsii.String(config.OutputLoadBalancerURL), &awscdk.CfnOutputProps{
		Value:       jsii.String(fmt.Sprintf("http://%s", *service.LoadBalancer().LoadBalancerDnsName())),
		Description: jsii.String("Public URL of the application load balancer"),
	})

	return &ServiceStack{
		Stack:           stack,
		Service:         service,
		LoadBalancerURL: url,
	}
}

func containerImage(img config.Image) awsecs.ContainerImage {
	if img.IsAsset() {
		return awsecs.ContainerImage_FromAsset(jsii.String(img.Asset), nil)
	}
	return awsecs.ContainerImage_FromRegistry(jsii.String(img.Registry), nil)
}

func healthCheck(hc config.HealthCheck) *awselasticloadbalancingv2.HealthCheck {
	check := &awselasticloadbalancingv2.HealthCheck{
		Path: jsii.String(hc.Path),
	}
	if hc.HealthyHTTPCodes != "" {
		check.HealthyHttpCodes = jsii.String(hc.HealthyHTTPCodes)
	}
	if hc.IntervalSeconds > 0 {
		check.Interval = awscdk.Duration_Seconds(jsii.Number(float64(hc.IntervalSeconds)))
	}
	return check
}

// stringMap converts a Go map to the pointer form jsii expects; nil stays nil.
func stringMap(m map[string]string) *map[string]*string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]*string, len(m))
	for k, v := range m {
		out[k] = jsii.String(v)
	}
	return &out
}
