package assembly

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/cxapi"
	"github.com/aws/jsii-runtime-go"
)

// ManifestFile is the cloud assembly manifest at the root of every assembly.
const ManifestFile = "manifest.json"

// Stack is a CloudFormation stack artifact.
type Stack struct {
	// ID is the artifact id, unique within the whole assembly.
	ID string `json:"id"`

	// DisplayName is the construct path, e.g. NestRecipesAppPipelineStack/GammaUsEast1/EcsService.
	DisplayName string `json:"displayName"`

	StackName string `json:"stackName"`
	Account   string `json:"account"`
	Region    string `json:"region"`

	// TemplateFile is the absolute path of the synthesized template.
	TemplateFile string `json:"templateFile"`
}

// Nested reports whether the stack belongs to a stage assembly.
func (s Stack) Nested() bool {
	return strings.Contains(s.DisplayName, "/")
}

// Assembly is a loaded cloud assembly.
type Assembly struct {
	Dir     string  `json:"dir"`
	Version string  `json:"version"`
	Stacks  []Stack `json:"stacks"`
}

// Load reads the assembly in dir, including every nested stage assembly.
// Stacks are returned in manifest order, top-level stacks first.
func Load(dir string) (asm *Assembly, err error) {
	if _, statErr := os.Stat(filepath.Join(dir, ManifestFile)); statErr != nil {
		return nil, fmt.Errorf("no cloud assembly in %s (run 'ecsdeploy synth' first): %w", dir, statErr)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	// jsii reports JavaScript exceptions as panics.
	defer func() {
		if r := recover(); r != nil {
			asm = nil
			err = fmt.Errorf("failed to load cloud assembly %s: %v", abs, r)
		}
	}()

	ca := cxapi.NewCloudAssembly(jsii.String(abs), nil)

	asm = &Assembly{
		Dir:     abs,
		Version: deref(ca.Version()),
	}
	for _, artifact := range *ca.StacksRecursively() {
		s := Stack{
			ID:           deref(artifact.Id()),
			DisplayName:  deref(artifact.DisplayName()),
			StackName:    deref(artifact.StackName()),
			TemplateFile: deref(artifact.TemplateFullPath()),
		}
		if env := artifact.Environment(); env != nil {
			s.Account = deref(env.Account)
			s.Region = deref(env.Region)
		}
		asm.Stacks = append(asm.Stacks, s)
	}

	return asm, nil
}

// ErrStackNotFound is returned by [Assembly.Stack] for an unknown name.
var ErrStackNotFound = errors.New("stack not found")

// Stack finds a stack by artifact id, display name or stack name.
func (a *Assembly) Stack(name string) (*Stack, error) {
	for i := range a.Stacks {
		s := &a.Stacks[i]
		if s.ID == name || s.DisplayName == name || s.StackName == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s (available: %s)", ErrStackNotFound, name, strings.Join(a.names(), ", "))
}

func (a *Assembly) names() []string {
	names := make([]string, 0, len(a.Stacks))
	for _, s := range a.Stacks {
		names = append(names, s.DisplayName)
	}
	return names
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
