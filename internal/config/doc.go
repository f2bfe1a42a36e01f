// Package config defines the ecsdeploy.yaml schema.
//
// A [Config] describes one containerized application: the load-balanced
// Fargate service that runs it and the CDK pipeline that promotes it through
// ordered waves of (account, region) stages. [Load] parses the file, fills in
// defaults that reproduce the reference deployment, and validates every field
// before anything is synthesized.
package config
