// Package controller provides output adapters for displaying parse and
// generation results.
package controller

import (
	m "github.com/jamjar/jamjar-editor/internal/model"
)

// UI defines the interface for reporting command results.
// Implementations can use different output methods (plain tables, styled text).
type UI interface {
	// DisplaySpecs lists every property of the parsed component specs.
	DisplaySpecs(specs []m.ComponentSpec, err error) error
	// DisplayWrite reports a regenerated scene. In dry-run mode the new
	// source is printed instead of a summary.
	DisplayWrite(path m.Path, source []byte, dryRun bool, err error) error
	// DisplayCreated reports a newly templated scene.
	DisplayCreated(path m.Path, err error) error
}
