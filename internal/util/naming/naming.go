package naming

import (
	"fmt"
	"strings"
	"unicode"
)

// Naming functions for CDK constructs and published artifacts.
// Ids are stable across synth runs so CloudFormation logical ids never drift.

// Pascal converts a dash, underscore, dot or space separated name into PascalCase.
// Digits are kept as-is: "us-east-1" becomes "UsEast1".
func Pascal(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == '/' || unicode.IsSpace(r)
	})

	var b strings.Builder
	for _, p := range parts {
		runes := []rune(p)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

func StageID(wave, region string) string {
	return Pascal(wave) + Pascal(region)
}

func PipelineStack(app string) string {
	return fmt.Sprintf("%sPipelineStack", Pascal(app))
}

func ServiceStack(app string) string {
	return fmt.Sprintf("%sService", Pascal(app))
}

func Vpc(app string) string {
	return fmt.Sprintf("%sVpc", Pascal(app))
}

func Cluster(app string) string {
	return fmt.Sprintf("%sCluster", Pascal(app))
}

func FargateService(app string) string {
	return fmt.Sprintf("%sService", Pascal(app))
}

// Environment returns the CDK environment string for an account and region.
func Environment(account, region string) string {
	return fmt.Sprintf("aws://%s/%s", account, region)
}

// PublishPrefix returns the object key prefix for a published cloud assembly.
func PublishPrefix(prefix, app, stamp string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return fmt.Sprintf("%s/%s", app, stamp)
	}
	return fmt.Sprintf("%s/%s/%s", prefix, app, stamp)
}

// LatestPointer returns the key of the object that records the most recent publish.
func LatestPointer(prefix, app string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return fmt.Sprintf("%s/latest", app)
	}
	return fmt.Sprintf("%s/%s/latest", prefix, app)
}
