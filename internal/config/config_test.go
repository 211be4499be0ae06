package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestLoad_EmptyPath verifies that an empty path yields the defaults.
func TestLoad_EmptyPath(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultVersionURL, cfg.VersionURL)
	require.Equal(t, DefaultDownloadURL, cfg.DownloadURL)
	require.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	require.Equal(t, DefaultDownloadTimeout, cfg.DownloadTimeout)
}

// TestValidate checks URL validation and default filling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Empty config gets defaults.
	cfg := new(Config)
	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultVersionURL, cfg.VersionURL)
	require.Positive(t, cfg.DownloadTimeout)

	// Bad URL.
	cfg = &Config{VersionURL: "not a url"}
	require.Error(t, Validate(cfg))

	cfg = &Config{DownloadURL: "::broken"}
	require.Error(t, Validate(cfg))
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg := &Config{
		VersionURL:      "https://updates.local/stable",
		DownloadURL:     "https://updates.local/apps/",
		RequestTimeout:  5 * time.Second,
		DownloadTimeout: time.Minute,
	}

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.VersionURL, loaded.VersionURL)
	require.Equal(t, cfg.DownloadURL, loaded.DownloadURL)
	require.Equal(t, cfg.RequestTimeout, loaded.RequestTimeout)
	require.Equal(t, cfg.DownloadTimeout, loaded.DownloadTimeout)
}

// TestArchiveURL checks the release tarball URL template.
func TestArchiveURL(t *testing.T) {
	t.Parallel()

	cfg := &Config{DownloadURL: "https://updates.local/apps/"}
	require.Equal(t,
		"https://updates.local/apps/0.0.27/discord-0.0.27.tar.gz",
		cfg.ArchiveURL("0.0.27"))
}

// TestHomeDir covers the set and unset HOME cases.
func TestHomeDir(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	home, err := HomeDir()
	require.NoError(t, err)
	require.Equal(t, "/home/tester", home)

	t.Setenv("HOME", "")

	_, err = HomeDir()
	require.Error(t, err)
}
