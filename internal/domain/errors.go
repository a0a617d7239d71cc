package domain

import "errors"

// Failure taxonomy of parsing and scene generation. Callers match with errors.Is.
var (
	ErrSyntax              = errors.New("source contains syntax errors")
	ErrNoExportedClass     = errors.New("no default-exported class")
	ErrNotComponent        = errors.New("class does not extend the base component type")
	ErrUnresolvedType      = errors.New("unresolved parameter type")
	ErrConstructorNotFound = errors.New("constructor not found")
	ErrResolutionCycle     = errors.New("resolution cycle")
	ErrSceneNotFound       = errors.New("scene file must export exactly one scene class as default")
	ErrMissingSpec         = errors.New("component references an unknown spec")
	ErrModuleNotFound      = errors.New("module not found")
	ErrImportConflict      = errors.New("different modules need the same import name")
)
