// Package topology resolves a pipeline configuration into the ordered
// deployment plan: waves run one after another, stages inside a wave run in
// parallel, and every step is classified as a shell step or a manual approval.
//
// The plan is the single source of truth for construct ids, deployment
// targets and bootstrap requirements. The CDK builder, describe, cost and
// metrics all read it instead of walking the raw configuration.
package topology
