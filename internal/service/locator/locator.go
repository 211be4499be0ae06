package locator

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/oshokin/discord-updater/internal/logger"
)

const (
	// DefaultRelPath is the install location used when no existing
	// installation is found, relative to the user's home directory.
	DefaultRelPath = "bin/discord_bin/Discord/Discord"

	// defaultBinaryName is the command resolved through the user's shell.
	defaultBinaryName = "discord"

	// shellPath is the shell used to source profiles for the lookup.
	shellPath = "/bin/bash"
)

// ErrNotFound indicates no existing installation could be located.
// It is a recoverable condition: callers fall back to the default path.
var ErrNotFound = errors.New("no existing installation found")

// Locator resolves the directory containing (or destined to contain) the
// installed application's resource tree.
type Locator interface {
	Locate(ctx context.Context) (string, error)
}

// ShellLookup locates an installation by resolving the binary through the
// user's shell profiles, the same way an interactive shell would.
type ShellLookup struct {
	// binary is the command name passed to `which`.
	binary string
}

// NewShellLookup creates a lookup for the given command name.
// An empty name falls back to the default binary.
func NewShellLookup(binary string) *ShellLookup {
	if binary == "" {
		binary = defaultBinaryName
	}

	return &ShellLookup{binary: binary}
}

// Locate spawns a shell that sources the usual profiles and runs `which`,
// then canonicalizes the resolved binary and returns its parent directory.
// Failure here is expected when nothing is installed yet.
func (s *ShellLookup) Locate(ctx context.Context) (string, error) {
	script := fmt.Sprintf(
		"source ~/.profile ~/.bashrc ~/.zshrc 2>/dev/null; which %s",
		s.binary,
	)

	output, err := exec.CommandContext(ctx, shellPath, "-c", script).Output()
	if err != nil {
		return "", fmt.Errorf("%w: shell lookup of %q failed: %v", ErrNotFound, s.binary, err)
	}

	binaryPath := strings.TrimSpace(string(output))
	if binaryPath == "" {
		return "", fmt.Errorf("%w: shell lookup of %q returned nothing", ErrNotFound, s.binary)
	}

	return parentOfCanonical(binaryPath)
}

// parentOfCanonical resolves symlinks in the binary path and returns the
// directory that contains the real binary.
func parentOfCanonical(binaryPath string) (string, error) {
	resolved, err := filepath.EvalSymlinks(binaryPath)
	if err != nil {
		return "", fmt.Errorf("canonicalize %s: %w", binaryPath, err)
	}

	return filepath.Dir(resolved), nil
}

// FixedDefault always yields the deterministic default install path under
// the provided home directory. It never fails.
type FixedDefault struct {
	// home is the user's home directory, passed in explicitly.
	home string
}

// NewFixedDefault creates a locator pinned to the default path under home.
func NewFixedDefault(home string) *FixedDefault {
	return &FixedDefault{home: home}
}

// Locate returns the default install path.
func (f *FixedDefault) Locate(_ context.Context) (string, error) {
	return filepath.Join(f.home, DefaultRelPath), nil
}

// Chain tries each locator in order and returns the first success.
// Absorbed failures are logged, never surfaced, as long as a later
// locator succeeds.
type Chain struct {
	locators []Locator
}

// NewChain composes locators into a try/fallback sequence.
func NewChain(locators ...Locator) *Chain {
	return &Chain{locators: locators}
}

// Locate walks the chain. Only when every locator fails is the last
// error returned.
func (c *Chain) Locate(ctx context.Context) (string, error) {
	var lastErr error

	for _, l := range c.locators {
		path, err := l.Locate(ctx)
		if err == nil {
			return path, nil
		}

		logger.WarnKV(ctx, "Install lookup failed, falling back", "error", err)

		lastErr = err
	}

	if lastErr == nil {
		lastErr = ErrNotFound
	}

	return "", lastErr
}
