// Package installer extracts a downloaded release archive into the install
// path and creates the convenience symlink for fresh installs.
//
// Extraction delegates to the system tar with --strip-components=1, so the
// archive's single top-level directory is discarded.
package installer
