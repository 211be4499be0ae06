// Package config defines updater settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the version endpoint, the archive base URL and
// network timeouts; omitted fields fall back to the public Discord defaults.
package config
