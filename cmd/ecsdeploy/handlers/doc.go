// Package handlers implements the ecsdeploy commands independently of cobra.
//
// Every handler takes a context carrying the logger, loads the configuration
// when it needs one, and writes user-facing output to stdout. Collaborators
// that touch the outside world are package variables so tests can replace them.
package handlers
