// Package release contains the core domain types for version reconciliation.
//
// It defines Version (a totally ordered semantic version) and the JSON
// payload shape shared by the remote version endpoint and the local
// build_info.json metadata file.
package release
