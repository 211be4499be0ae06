// Package resolver fetches the latest published version from the remote
// endpoint and reads the version of a locally installed copy.
package resolver
