// Package main is the entry point for the ecsdeploy CLI.
//
// ecsdeploy describes a load-balanced Fargate service and the CDK pipeline
// that promotes it through security-scanned, E2E-tested waves of regions.
// The same binary is the CDK app: cdk.json runs "ecsdeploy synth".
//
// Commands: init, validate, describe, synth, template, cost, doctor, publish.
//
// For detailed usage information, run:
//
//	ecsdeploy --help
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cplee/ecsdeploy/cmd/ecsdeploy/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		cancel()
		os.Exit(1)
	}
}
