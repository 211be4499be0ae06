package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the remote endpoints and timeouts used by the updater.
type Config struct {
	// VersionURL is the endpoint returning the latest published version.
	VersionURL string `yaml:"version_url"`
	// DownloadURL is the base URL hosting versioned release archives.
	DownloadURL string `yaml:"download_url"`
	// RequestTimeout bounds the latest-version probe.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// DownloadTimeout bounds the archive download.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
}

const (
	// DefaultConfigFilename is the default filename for updater settings.
	DefaultConfigFilename = "discord-updater-settings.yaml"

	// DefaultVersionURL is the stable-channel version endpoint.
	DefaultVersionURL = "https://discord.com/api/updates/stable?platform=linux"

	// DefaultDownloadURL is the base URL for release tarballs.
	DefaultDownloadURL = "https://dl.discordapp.net/apps/linux"

	// DefaultRequestTimeout is the default duration for the version probe.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultDownloadTimeout is the default duration for the archive download.
	DefaultDownloadTimeout = 10 * time.Minute

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errHomeNotSet is returned when the HOME environment variable is empty.
	errHomeNotSet = errors.New("HOME environment variable is not set")
)

// Default returns a configuration pointing at the public Discord endpoints.
func Default() *Config {
	return &Config{
		VersionURL:      DefaultVersionURL,
		DownloadURL:     DefaultDownloadURL,
		RequestTimeout:  DefaultRequestTimeout,
		DownloadTimeout: DefaultDownloadTimeout,
	}
}

// Load reads configuration from the provided path and validates it.
// An empty path yields the defaults without touching the filesystem.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks endpoint URLs and fills in defaults for omitted fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.VersionURL == "" {
		cfg.VersionURL = DefaultVersionURL
	}

	if cfg.DownloadURL == "" {
		cfg.DownloadURL = DefaultDownloadURL
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = DefaultDownloadTimeout
	}

	if _, err := url.ParseRequestURI(cfg.VersionURL); err != nil {
		return fmt.Errorf("invalid version URL: %w", err)
	}

	if _, err := url.ParseRequestURI(cfg.DownloadURL); err != nil {
		return fmt.Errorf("invalid download URL: %w", err)
	}

	return nil
}

// ArchiveURL returns the download URL of the release tarball for a version.
func (c *Config) ArchiveURL(version string) string {
	base := strings.TrimRight(c.DownloadURL, "/")

	return fmt.Sprintf("%s/%s/discord-%s.tar.gz", base, version, version)
}

// HomeDir resolves the user's home directory from the environment.
// It is read once at startup and passed explicitly to the components
// that need it instead of being re-read ad hoc.
func HomeDir() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", errHomeNotSet
	}

	return home, nil
}
