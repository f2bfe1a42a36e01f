package config

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"k8s.io/apimachinery/pkg/util/validation"
)

// Sizing is a CPU/memory preset offered by the wizard.
type Sizing struct {
	CPU       int
	MemoryMiB int
}

// String returns the label shown in the wizard.
func (s Sizing) String() string {
	return fmt.Sprintf("%g vCPU / %d MiB", float64(s.CPU)/1024, s.MemoryMiB)
}

// sizingPresets are the smallest sane memory for each common CPU size.
var sizingPresets = []Sizing{
	{CPU: 256, MemoryMiB: 512},
	{CPU: 512, MemoryMiB: 1024},
	{CPU: 1024, MemoryMiB: 2048},
	{CPU: 2048, MemoryMiB: 4096},
	{CPU: 4096, MemoryMiB: 8192},
}

// WizardResult holds the user's choices from the init wizard.
type WizardResult struct {
	Name            string
	Sizing          Sizing
	DesiredCount    int
	ContainerPort   string
	HealthCheckPath string
	Registry        string

	Account       string
	Region        string
	Repository    string
	Branch        string
	ConnectionARN string

	GammaRegions      []string
	ProductionRegions []string
	ApproveProduction bool
}

// RunWizard runs the interactive configuration wizard, pre-filled with [Default].
func RunWizard(ctx context.Context) (*WizardResult, error) {
	def := Default()
	result := &WizardResult{
		Name:              def.Name,
		Sizing:            sizingPresets[0],
		DesiredCount:      def.Service.DesiredCount,
		ContainerPort:     strconv.Itoa(def.Service.ContainerPort),
		HealthCheckPath:   def.Service.HealthCheck.Path,
		Region:            def.Pipeline.Region,
		Branch:            def.Pipeline.Source.Branch,
		GammaRegions:      []string{"us-east-1", "us-west-2"},
		ProductionRegions: []string{"us-east-2", "eu-west-1"},
	}

	sizingOptions := make([]huh.Option[Sizing], 0, len(sizingPresets))
	for _, s := range sizingPresets {
		sizingOptions = append(sizingOptions, huh.NewOption(s.String(), s))
	}

	form := huh.NewForm(
		// Service
		huh.NewGroup(
			huh.NewInput().
				Title("Application name").
				Description("DNS-safe, lowercase; prefixes every construct id").
				Value(&result.Name).
				Validate(validateAppName),
			huh.NewSelect[Sizing]().
				Title("Task size").
				Options(sizingOptions...).
				Value(&result.Sizing),
			huh.NewSelect[int]().
				Title("Desired task count").
				Options(
					huh.NewOption("1 task", 1),
					huh.NewOption("2 tasks", 2),
					huh.NewOption("3 tasks", 3),
					huh.NewOption("4 tasks", 4),
				).
				Value(&result.DesiredCount),
			huh.NewInput().
				Title("Container port").
				Value(&result.ContainerPort).
				Validate(validatePort),
			huh.NewInput().
				Title("Health check path").
				Value(&result.HealthCheckPath).
				Validate(validateHealthPath),
			huh.NewInput().
				Title("Container image (optional)").
				Description("Leave empty to build ./Dockerfile during asset publishing").
				Placeholder("public.ecr.aws/nginx/nginx:latest").
				Value(&result.Registry),
		),

		// Pipeline
		huh.NewGroup(
			huh.NewInput().
				Title("Pipeline account").
				Description("12-digit AWS account hosting the pipeline").
				Value(&result.Account).
				Validate(validateAccount),
			huh.NewSelect[string]().
				Title("Pipeline region").
				Options(huh.NewOptions(KnownRegions()...)...).
				Value(&result.Region),
			huh.NewInput().
				Title("Source repository").
				Placeholder("owner/repo").
				Value(&result.Repository).
				Validate(validateRepository),
			huh.NewInput().
				Title("Branch").
				Value(&result.Branch).
				Validate(requireNonEmpty("branch")),
			huh.NewInput().
				Title("CodeConnections connection ARN").
				Value(&result.ConnectionARN).
				Validate(validateConnectionARN),
		),

		// Topology
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Gamma regions").
				Description("Scanned and E2E-tested before promotion").
				Options(huh.NewOptions(KnownRegions()...)...).
				Value(&result.GammaRegions).
				Validate(requireRegions),
			huh.NewMultiSelect[string]().
				Title("Production regions").
				Options(huh.NewOptions(KnownRegions()...)...).
				Value(&result.ProductionRegions).
				Validate(requireRegions),
			huh.NewConfirm().
				Title("Require manual approval before Production?").
				Value(&result.ApproveProduction),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, fmt.Errorf("wizard canceled: %w", err)
	}

	return result, nil
}

// ToConfig converts the wizard result into a full configuration.
// Everything the wizard does not ask about keeps its [Default] value.
func (r *WizardResult) ToConfig() *Config {
	cfg := Default()

	cfg.Name = r.Name
	cfg.Service.CPU = r.Sizing.CPU
	cfg.Service.MemoryMiB = r.Sizing.MemoryMiB
	cfg.Service.DesiredCount = r.DesiredCount
	if port, err := strconv.Atoi(strings.TrimSpace(r.ContainerPort)); err == nil {
		cfg.Service.ContainerPort = port
	}
	cfg.Service.HealthCheck.Path = r.HealthCheckPath
	if r.Registry != "" {
		cfg.Service.Image = Image{Registry: r.Registry}
	}

	cfg.Pipeline.Account = r.Account
	cfg.Pipeline.Region = r.Region
	cfg.Pipeline.Source.Repository = r.Repository
	cfg.Pipeline.Source.Branch = r.Branch
	cfg.Pipeline.Source.ConnectionARN = r.ConnectionARN

	gamma := Wave{Name: "Gamma", Pre: SecurityScanSteps()}
	for _, region := range r.GammaRegions {
		gamma.Stages = append(gamma.Stages, Stage{
			Name:   (Stage{Region: region}).ResolvedName(gamma.Name),
			Region: region,
			Post:   []Step{E2ETestStep()},
		})
	}

	prod := Wave{Name: "Production"}
	if r.ApproveProduction {
		prod.Pre = []Step{{Name: "PromoteToProduction", Approval: "Gamma passed scans and E2E tests. Promote to production?"}}
	}
	for _, region := range r.ProductionRegions {
		prod.Stages = append(prod.Stages, Stage{
			Name:   (Stage{Region: region}).ResolvedName("Prod"),
			Region: region,
		})
	}

	cfg.Pipeline.Waves = []Wave{gamma, prod}
	return cfg
}

func validateAppName(s string) error {
	if s == "" {
		return errors.New("application name is required")
	}
	if msgs := validation.IsDNS1123Label(s); len(msgs) > 0 {
		return errors.New(msgs[0])
	}
	return nil
}

func validatePort(s string) error {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return errors.New("port must be a number between 1 and 65535")
	}
	return nil
}

func validateHealthPath(s string) error {
	if !strings.HasPrefix(s, "/") {
		return errors.New("path must start with '/'")
	}
	return nil
}

func validateAccount(s string) error {
	if !accountRegex.MatchString(s) {
		return errors.New("account must be 12 digits")
	}
	return nil
}

func validateRepository(s string) error {
	if !repositoryRegex.MatchString(s) {
		return errors.New("repository must be owner/repo")
	}
	return nil
}

func validateConnectionARN(s string) error {
	if !connectionRegex.MatchString(s) {
		return errors.New("expected arn:aws:codeconnections:<region>:<account>:connection/<id>")
	}
	return nil
}

func requireNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func requireRegions(regions []string) error {
	if len(regions) == 0 {
		return errors.New("select at least one region")
	}
	return nil
}

// WriteYAML writes the config to a YAML file.
func WriteYAML(cfg *Config, path string) error {
	return Save(cfg, path)
}
