package assembly

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTemplate = `{
  "Description": "sample",
  "Resources": {
    "Vpc8378EB38": {"Type": "AWS::EC2::VPC", "Properties": {"CidrBlock": "10.0.0.0/16"}},
    "SubnetA": {"Type": "AWS::EC2::Subnet"},
    "SubnetB": {"Type": "AWS::EC2::Subnet"},
    "Cluster": {"Type": "AWS::ECS::Cluster"}
  },
  "Outputs": {
    "LoadBalancerURL": {"Value": "http://example"}
  }
}`

func TestParseTemplate(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte(sampleTemplate))
	require.NoError(t, err)

	assert.Equal(t, "sample", tmpl.Description)
	assert.Equal(t, map[string]int{
		"AWS::EC2::VPC":     1,
		"AWS::EC2::Subnet":  2,
		"AWS::ECS::Cluster": 1,
	}, tmpl.ResourceCounts())
	assert.Equal(t, []string{"AWS::EC2::Subnet", "AWS::EC2::VPC", "AWS::ECS::Cluster"}, tmpl.ResourceTypes())
	assert.Equal(t, []string{"LoadBalancerURL"}, tmpl.OutputNames())
	assert.Equal(t, "10.0.0.0/16", tmpl.Resources["Vpc8378EB38"].Properties["CidrBlock"])
}

func TestParseTemplate_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplate([]byte("{not json"))
	assert.ErrorContains(t, err, "failed to parse template")
}

func TestTemplate_YAML(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte(sampleTemplate))
	require.NoError(t, err)

	out, err := tmpl.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Type: AWS::EC2::VPC")
	assert.Contains(t, string(out), "CidrBlock: 10.0.0.0/16")
}

func TestTemplate_JSON(t *testing.T) {
	t.Parallel()

	tmpl, err := ParseTemplate([]byte(`{"Resources":{"A":{"Type":"AWS::SNS::Topic"}}}`))
	require.NoError(t, err)

	out, err := tmpl.JSON()
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n  \"Resources\": {")
}

func TestReadTemplate(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "Stack.template.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleTemplate), 0o644))

	tmpl, err := ReadTemplate(path)
	require.NoError(t, err)
	assert.Len(t, tmpl.Resources, 4)

	_, err = ReadTemplate(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read template")
}
