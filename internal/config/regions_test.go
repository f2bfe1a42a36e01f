package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidRegion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		region string
		want   bool
	}{
		{"us-east-1", true},
		{"eu-central-2", true},
		{"ap-southeast-5", true},
		{"us-gov-west-1", true},
		{"us-isob-east-1", true},
		{"US-EAST-1", false},
		{"us-east", false},
		{"useast1", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.region, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsValidRegion(tt.region))
		})
	}
}

func TestKnownRegions(t *testing.T) {
	t.Parallel()

	regions := KnownRegions()
	assert.Contains(t, regions, "us-east-1")
	assert.True(t, IsKnownRegion("eu-west-1"))
	assert.False(t, IsKnownRegion("ap-southeast-5"))

	regions[0] = "mutated"
	assert.Equal(t, "us-east-1", KnownRegions()[0])
}
