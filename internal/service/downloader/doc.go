// Package downloader streams a remote archive to a local temporary file
// while reporting byte-level progress to a sink.
package downloader
