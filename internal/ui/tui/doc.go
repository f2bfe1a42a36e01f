// Package tui provides a Bubble Tea progress display for publishing a cloud
// assembly. Non-interactive runs skip it and rely on structured logs.
package tui
