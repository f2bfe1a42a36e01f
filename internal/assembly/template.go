package assembly

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"slices"

	"sigs.k8s.io/yaml"
)

// Resource is one CloudFormation resource.
type Resource struct {
	Type       string         `json:"Type"`
	Properties map[string]any `json:"Properties,omitempty"`
}

// Template is a synthesized CloudFormation template.
type Template struct {
	Description string              `json:"Description,omitempty"`
	Resources   map[string]Resource `json:"Resources"`
	Outputs     map[string]any      `json:"Outputs,omitempty"`
	Parameters  map[string]any      `json:"Parameters,omitempty"`

	raw []byte
}

// ReadTemplate reads a template file.
func ReadTemplate(path string) (*Template, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return ParseTemplate(data)
}

// ParseTemplate parses template JSON.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	t.raw = data
	return &t, nil
}

// ResourceCounts returns the number of resources per CloudFormation type.
func (t *Template) ResourceCounts() map[string]int {
	counts := make(map[string]int)
	for _, r := range t.Resources {
		counts[r.Type]++
	}
	return counts
}

// ResourceTypes returns the distinct resource types, sorted.
func (t *Template) ResourceTypes() []string {
	return slices.Sorted(maps.Keys(t.ResourceCounts()))
}

// OutputNames returns the template output logical ids, sorted.
func (t *Template) OutputNames() []string {
	return slices.Sorted(maps.Keys(t.Outputs))
}

// YAML renders the template as YAML.
func (t *Template) YAML() ([]byte, error) {
	out, err := yaml.JSONToYAML(t.raw)
	if err != nil {
		return nil, fmt.Errorf("failed to convert template to YAML: %w", err)
	}
	return out, nil
}

// JSON returns the template indented.
func (t *Template) JSON() ([]byte, error) {
	var v any
	if err := json.Unmarshal(t.raw, &v); err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}
	return json.MarshalIndent(v, "", "  ")
}
