package config

import (
	"regexp"
	"slices"
)

// regionRegex matches AWS region codes such as us-east-1, eu-central-2 or us-gov-west-1.
var regionRegex = regexp.MustCompile(`^[a-z]{2}(-gov|-iso[a-z]?)?-[a-z]+-\d{1,2}$`)

// knownRegions lists commercial regions offered by the init wizard and priced by cost.
var knownRegions = []string{
	"us-east-1",
	"us-east-2",
	"us-west-1",
	"us-west-2",
	"ca-central-1",
	"eu-west-1",
	"eu-west-2",
	"eu-west-3",
	"eu-central-1",
	"eu-north-1",
	"ap-northeast-1",
	"ap-southeast-1",
	"ap-southeast-2",
	"ap-south-1",
	"sa-east-1",
}

// KnownRegions returns the commercial regions the tooling knows by name.
func KnownRegions() []string {
	return slices.Clone(knownRegions)
}

// IsValidRegion reports whether region is shaped like an AWS region code.
// Unknown but well-formed regions are accepted so new regions need no release.
func IsValidRegion(region string) bool {
	return regionRegex.MatchString(region)
}

// IsKnownRegion reports whether region is in [KnownRegions].
func IsKnownRegion(region string) bool {
	return slices.Contains(knownRegions, region)
}
