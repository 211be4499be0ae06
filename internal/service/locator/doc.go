// Package locator determines the filesystem path of an existing
// installation.
//
// ShellLookup resolves the binary through the user's shell profiles and
// FixedDefault pins the deterministic fallback path; Chain composes them
// into the try/fallback sequence the orchestrator uses.
package locator
