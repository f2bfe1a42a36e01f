package config

import "fmt"

// OutputLoadBalancerURL is the stage output exposing the service URL.
// It is the only output that post-deployment steps may import.
const OutputLoadBalancerURL = "LoadBalancerURL"

// PipelineConstructID is the construct id of the CodePipeline. Stages are
// declared in the same scope, so no stage may take it.
const PipelineConstructID = "Pipeline"

// Config is the complete description of one service and its delivery pipeline.
type Config struct {
	// Name is the application name, used as construct id prefix.
	// Must be a DNS-1123 label.
	Name string `yaml:"name"`

	// Service describes the network, cluster and load-balanced Fargate service.
	Service Service `yaml:"service"`

	// Pipeline describes the CodePipeline that deploys the service.
	Pipeline Pipeline `yaml:"pipeline"`
}

// Service holds the sizing and wiring of the container service.
type Service struct {
	// MaxAZs is the number of availability zones the VPC spans.
	MaxAZs int `yaml:"max_azs"`

	// CPU is the Fargate task size in CPU units (1024 = 1 vCPU).
	CPU int `yaml:"cpu"`

	// MemoryMiB is the Fargate task memory. Must pair with CPU.
	MemoryMiB int `yaml:"memory_mib"`

	// DesiredCount is the number of running tasks.
	DesiredCount int `yaml:"desired_count"`

	// ContainerPort is the port the container listens on.
	ContainerPort int `yaml:"container_port"`

	Image Image `yaml:"image"`

	// PublicLoadBalancer makes the ALB internet-facing. Defaults to true.
	PublicLoadBalancer *bool `yaml:"public_load_balancer,omitempty"`

	HealthCheck HealthCheck `yaml:"health_check"`

	// Environment is passed to the container as plain environment variables.
	Environment map[string]string `yaml:"environment,omitempty"`
}

// VCPU returns the task size in vCPUs.
func (s Service) VCPU() float64 {
	return float64(s.CPU) / 1024
}

// MemoryGB returns the task memory in GiB.
func (s Service) MemoryGB() float64 {
	return float64(s.MemoryMiB) / 1024
}

// Image selects where the container image comes from.
// Exactly one of Asset and Registry must be set.
type Image struct {
	// Asset is a directory containing a Dockerfile, built during asset publishing.
	Asset string `yaml:"asset,omitempty"`

	// Registry is a pullable image reference.
	Registry string `yaml:"registry,omitempty"`
}

// IsAsset reports whether the image is built from a local directory.
func (i Image) IsAsset() bool {
	return i.Asset != ""
}

// String returns a short description of the image source.
func (i Image) String() string {
	if i.IsAsset() {
		return fmt.Sprintf("built from %s", i.Asset)
	}
	return i.Registry
}

// HealthCheck configures the target group health check.
type HealthCheck struct {
	Path string `yaml:"path"`

	// HealthyHTTPCodes is a code list or range such as "200" or "200-299".
	HealthyHTTPCodes string `yaml:"healthy_http_codes,omitempty"`

	// IntervalSeconds between checks; zero keeps the load balancer default.
	IntervalSeconds int `yaml:"interval_seconds,omitempty"`
}

// Pipeline describes the self-mutating CDK pipeline.
type Pipeline struct {
	Name string `yaml:"name"`

	// Account hosts the pipeline and is the default account for stages.
	Account string `yaml:"account"`

	// Region hosts the pipeline.
	Region string `yaml:"region"`

	// CrossAccountKeys creates KMS keys for artifact buckets so other
	// accounts can read them. Defaults to true.
	CrossAccountKeys *bool `yaml:"cross_account_keys,omitempty"`

	Source Source `yaml:"source"`
	Synth  Synth  `yaml:"synth"`

	// Waves deploy sequentially; stages within a wave deploy in parallel.
	Waves []Wave `yaml:"waves"`
}

// Source is a repository reached through a CodeConnections connection.
type Source struct {
	// Repository is "owner/repo".
	Repository string `yaml:"repository"`

	Branch string `yaml:"branch"`

	ConnectionARN string `yaml:"connection_arn"`

	// TriggerOnPush starts the pipeline on every push. Defaults to true.
	TriggerOnPush *bool `yaml:"trigger_on_push,omitempty"`
}

// Synth is the build step that produces the cloud assembly.
type Synth struct {
	InstallCommands []string `yaml:"install_commands,omitempty"`
	Commands        []string `yaml:"commands"`

	// PrimaryOutputDirectory defaults to cdk.out.
	PrimaryOutputDirectory string `yaml:"primary_output_directory,omitempty"`
}

// Wave is a set of stages deployed in parallel.
type Wave struct {
	Name string `yaml:"name"`

	// Pre steps gate the whole wave, typically security scans.
	Pre []Step `yaml:"pre,omitempty"`

	// Post steps run after every stage of the wave has deployed.
	Post []Step `yaml:"post,omitempty"`

	Stages []Stage `yaml:"stages"`
}

// Stage is one deployment target.
type Stage struct {
	// Name is the construct id. Defaults to {Wave}{Region}, e.g. GammaUsEast1.
	Name string `yaml:"name,omitempty"`

	// Account defaults to the pipeline account.
	Account string `yaml:"account,omitempty"`

	Region string `yaml:"region"`

	Pre  []Step `yaml:"pre,omitempty"`
	Post []Step `yaml:"post,omitempty"`
}

// Step is either a shell step (Commands) or a manual approval (Approval).
type Step struct {
	Name string `yaml:"name"`

	Commands []string `yaml:"commands,omitempty"`

	// Env sets static environment variables for a shell step.
	Env map[string]string `yaml:"env,omitempty"`

	// EnvFromOutputs maps an environment variable to a stage output name.
	// Only valid on stage post steps.
	EnvFromOutputs map[string]string `yaml:"env_from_outputs,omitempty"`

	// Approval is the comment shown on a manual approval step.
	Approval string `yaml:"approval,omitempty"`
}

// IsApproval reports whether the step is a manual approval.
func (s Step) IsApproval() bool {
	return s.Approval != ""
}
