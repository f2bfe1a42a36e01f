package pricing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEstimate() *Estimate {
	return &Estimate{
		App:          "nest-recipes-app",
		Currency:     "USD",
		DesiredCount: 1,
		VCPU:         0.25,
		MemoryGB:     0.5,
		Stages: []StageEstimate{
			{Stage: "GammaUsEast1", Wave: "Gamma", Region: "us-east-1", Total: 100.5,
				Items: []LineItem{{Description: "NAT gateways", Quantity: 1460, Unit: "h", UnitPrice: 0.045, Total: 65.7}}},
			{Stage: "ProdMeCentral1", Wave: "Prod", Region: "me-central-1", Total: 100.5, Fallback: true},
		},
		Pipeline: 1,
		Total:    202,
	}
}

func TestFormatter_Format(t *testing.T) {
	t.Parallel()

	out := NewFormatter().Format(testEstimate())

	for _, want := range []string{
		"nest-recipes-app",
		"1 task(s) x 0.25 vCPU / 0.5 GB",
		"GammaUsEast1",
		"me-central-1 *",
		"Pipeline",
		"202.00/mo",
		"Total (USD)",
		"Annual estimate: 2424.00",
		"priced as us-east-1",
	} {
		assert.Contains(t, out, want)
	}
}

func TestFormatter_FormatStage(t *testing.T) {
	t.Parallel()

	out := NewFormatter().FormatStage(testEstimate().Stages[0])
	assert.Contains(t, out, "GammaUsEast1 (us-east-1)")
	assert.Contains(t, out, "NAT gateways")
	assert.Contains(t, out, "65.70/mo")
}

func TestFormatter_FormatCompact(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "nest-recipes-app (2 stages): 202.00 USD/mo (2424.00/yr)", NewFormatter().FormatCompact(testEstimate()))
}

func TestFormatter_FormatJSON(t *testing.T) {
	t.Parallel()

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(NewFormatter().FormatJSON(testEstimate())), &got))

	assert.Equal(t, "nest-recipes-app", got["app"])
	assert.InDelta(t, 2424.0, got["annual"], 1e-9)
	assert.Len(t, got["stages"], 2)
}

func TestBoxLine_Truncates(t *testing.T) {
	t.Parallel()

	line := boxLine("ééééééééééééééé", 10)
	assert.Equal(t, "│ éééééé │\n", line)
}
