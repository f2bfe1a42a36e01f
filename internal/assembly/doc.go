// Package assembly reads a synthesized cloud assembly (cdk.out): the stacks
// it declares, their CloudFormation templates, and the files that make it up.
package assembly
