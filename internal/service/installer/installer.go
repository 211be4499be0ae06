package installer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// SymlinkName is the convenience link created under <home>/bin for
	// fresh installs.
	SymlinkName = "discord"

	// installDirMode is the permission for created install directories.
	installDirMode = 0o755

	// tarExecutable is the external archive tool.
	tarExecutable = "tar"
)

// Service extracts release archives into the install path.
type Service struct{}

// New creates an installer.
func New() *Service {
	return &Service{}
}

// Install ensures installPath exists and extracts the archive into it.
// The archive's single top-level directory entry is stripped so contents
// land directly under installPath. A non-zero tar exit surfaces as an
// error carrying the tool's captured stderr. Extraction is not
// transactional: a failure can leave a partially extracted tree, and the
// documented recovery is re-running the updater.
func (s *Service) Install(ctx context.Context, archivePath, installPath string) error {
	if err := os.MkdirAll(installPath, installDirMode); err != nil {
		return fmt.Errorf("create install path: %w", err)
	}

	cmd := exec.CommandContext(ctx, tarExecutable,
		"-xf", archivePath,
		"-C", installPath,
		"--strip-components=1",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("extract archive: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return nil
}

// CreateSymlink creates <home>/bin/discord pointing at target, creating
// the bin directory if absent. Only invoked for fresh installs; an
// existing link is an error, never overwritten.
func (s *Service) CreateSymlink(home, target string) error {
	binDir := filepath.Join(home, "bin")
	if err := os.MkdirAll(binDir, installDirMode); err != nil {
		return fmt.Errorf("create bin directory: %w", err)
	}

	link := filepath.Join(binDir, SymlinkName)
	if err := os.Symlink(target, link); err != nil {
		return fmt.Errorf("create symlink %s: %w", link, err)
	}

	return nil
}
