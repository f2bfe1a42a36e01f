// Package prerequisites checks the client tools needed around synthesis.
//
// The Go program builds the construct tree, but the jsii runtime needs
// Node.js, the CDK CLI is invoked through npx, and container images built
// from a local directory need Docker at asset-publishing time.
package prerequisites

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// versionTimeout bounds each "--version" probe.
const versionTimeout = 5 * time.Second

var (
	lookPath = exec.LookPath

	toolVersion = getToolVersion
)

// Tool represents a client tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string `json:"name"`

	// Required indicates if this tool is mandatory.
	Required bool `json:"required"`

	// Description explains what the tool is used for.
	Description string `json:"description"`

	// InstallURL provides a URL for installation instructions.
	InstallURL string `json:"installUrl"`
}

// DefaultTools returns the tools every synth needs.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "node",
			Required:    true,
			Description: "Runs the jsii kernel behind the CDK Go bindings",
			InstallURL:  "https://nodejs.org/en/download",
		},
		{
			Name:        "npx",
			Required:    true,
			Description: "Runs the AWS CDK CLI (npx cdk synth / deploy / bootstrap)",
			InstallURL:  "https://docs.npmjs.com/cli/commands/npx",
		},
	}
}

// AssetBuildTools returns tools needed when the container image is built from a local directory.
func AssetBuildTools() []Tool {
	return []Tool{
		{
			Name:        "docker",
			Required:    true,
			Description: "Builds the container image asset",
			InstallURL:  "https://docs.docker.com/get-docker/",
		},
	}
}

// OptionalTools returns tools that are useful but not required.
func OptionalTools() []Tool {
	return []Tool{
		{
			Name:        "git",
			Required:    false,
			Description: "Pushes to the pipeline's source connection",
			InstallURL:  "https://git-scm.com/downloads",
		},
		{
			Name:        "aws",
			Required:    false,
			Description: "Useful for inspecting deployed stacks and pipeline executions",
			InstallURL:  "https://docs.aws.amazon.com/cli/latest/userguide/getting-started-install.html",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool    Tool   `json:"tool"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult `json:"results"`
	Missing []Tool        `json:"missing,omitempty"`
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, fmt.Sprintf("%s (%s)", tool.Name, tool.InstallURL))
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// Check verifies that the specified tools are available.
func Check(ctx context.Context, tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
			result.Version = toolVersion(ctx, tool.Name)
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// ForSynth returns the tool set for a synth, adding Docker when an image asset must be built.
func ForSynth(assetImage, includeOptional bool) []Tool {
	tools := DefaultTools()
	if assetImage {
		tools = append(tools, AssetBuildTools()...)
	}
	if includeOptional {
		tools = append(tools, OptionalTools()...)
	}
	return tools
}

// getToolVersion returns the first line of "<tool> --version", or "" on failure.
func getToolVersion(ctx context.Context, name string) string {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()

	// #nosec G204 - name comes from trusted Tool definitions, not user input
	output, err := exec.CommandContext(ctx, name, "--version").Output()
	if err != nil {
		return ""
	}
	first, _, _ := strings.Cut(string(output), "\n")
	return strings.TrimSpace(first)
}
