// Package infra declares the AWS CDK construct tree: the load-balanced
// Fargate service stack, the application stage that wraps it, and the
// self-mutating CodePipeline that promotes stages wave by wave.
//
// Construct ids are derived from the application name and the resolved
// topology so that CloudFormation logical ids stay stable across synths.
package infra
