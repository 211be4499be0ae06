// Package updater sequences the update pipeline: locate an installation,
// resolve latest and current versions, compare, download and extract the
// release archive when the remote is newer, and create the convenience
// symlink for fresh installs.
//
// There are no retries anywhere in the pipeline: every external failure is
// surfaced immediately and aborts the run. The system is meant to be
// re-run by the user or cron, not to self-heal.
package updater
