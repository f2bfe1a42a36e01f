// Package pricing estimates the monthly on-demand cost of a deployment:
// Fargate tasks, the load balancer and NAT gateways in every stage, plus the
// pipeline itself.
package pricing
