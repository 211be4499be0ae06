package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/discord-updater/internal/config"
	"github.com/oshokin/discord-updater/internal/domain/release"
	"github.com/oshokin/discord-updater/internal/logger"
	"github.com/oshokin/discord-updater/internal/progress"
	"github.com/oshokin/discord-updater/internal/repository/buildinfo"
	"github.com/oshokin/discord-updater/internal/service/downloader"
	"github.com/oshokin/discord-updater/internal/service/installer"
	"github.com/oshokin/discord-updater/internal/service/locator"
	"github.com/oshokin/discord-updater/internal/service/resolver"
)

const (
	// tempDirPattern names the scoped temporary directory holding the
	// downloaded archive for the duration of one run.
	tempDirPattern = "discord-updater-"

	// archiveNameFormat is the local filename of the downloaded tarball.
	archiveNameFormat = "discord-%s.tar.gz"
)

// Options are inputs accepted by the updater entry point.
type Options struct {
	// ConfigPath is the optional path to the settings YAML file.
	ConfigPath string
	// InstallPath overrides install location lookup when non-empty.
	InstallPath string
	// Terminate stops running Discord processes before installing.
	Terminate bool
	// Quiet disables progress rendering.
	Quiet bool
}

// versionSource resolves "latest" and "current" version state.
type versionSource interface {
	FetchLatest(ctx context.Context) (release.Version, error)
	ReadInstalled(ctx context.Context, installPath string) (release.Version, error)
}

// archiveDownloader streams a remote archive to a local file.
type archiveDownloader interface {
	Download(ctx context.Context, url, destPath string, sink progress.Sink) error
}

// archiveInstaller extracts archives and creates the convenience symlink.
type archiveInstaller interface {
	Install(ctx context.Context, archivePath, installPath string) error
	CreateSymlink(home, target string) error
}

// runner holds the mutable state for a single update execution.
// It is intentionally unexported—call Run(ctx, Options) from callers.
type runner struct {
	cfg       *config.Config // Endpoints and timeouts.
	home      string         // User's home directory, resolved once.
	sink      progress.Sink  // Progress consumer, cosmetic only.
	terminate bool           // Stop running app processes before install.

	locate   locator.Locator   // Install path lookup chain.
	versions versionSource     // Latest/current version resolution.
	download archiveDownloader // Archive streaming.
	install  archiveInstaller  // Extraction and symlinking.

	installPath  string // Resolved once per run, never mutated after.
	installFresh bool   // Set when no prior installation exists on disk.
	tempDir      string // Scoped download directory, removed by cleanup.
}

// Run executes the update pipeline and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "discord-updater")

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	defer r.cleanup(ctx)

	if err = r.run(ctx); err != nil {
		logger.ErrorKV(ctx, "Update run failed", "error", err)
		return err
	}

	logger.Info(ctx, "Updater completed")

	return nil
}

// newRunner loads configuration, resolves the home directory and wires the
// concrete services together.
func newRunner(opts *Options) (*runner, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	home, err := config.HomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	var sink progress.Sink = progress.Discard
	if !opts.Quiet {
		sink = progress.NewConsole(os.Stdout)
	}

	var locate locator.Locator
	if opts.InstallPath != "" {
		locate = fixedPath(opts.InstallPath)
	} else {
		locate = locator.NewChain(
			locator.NewShellLookup(""),
			locator.NewFixedDefault(home),
		)
	}

	return &runner{
		cfg:       cfg,
		home:      home,
		sink:      sink,
		terminate: opts.Terminate,
		locate:    locate,
		versions:  resolver.New(cfg, buildinfo.NewFileRepository()),
		download:  downloader.New(cfg.DownloadTimeout),
		install:   installer.New(),
	}, nil
}

// run walks the pipeline: locate, resolve versions, compare, update if
// needed, and finalize the fresh-install symlink.
func (r *runner) run(ctx context.Context) error {
	installPath, err := r.locate.Locate(ctx)
	if err != nil {
		// Locate failure is the only recoverable error in the pipeline,
		// and the chain already fell back to the default path. Reaching
		// this means even the fallback failed.
		return fmt.Errorf("locate install path: %w", err)
	}

	r.installPath = installPath
	logger.InfoKV(ctx, "Using install path", "path", installPath)

	latest, err := r.versions.FetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("fetch latest version: %w", err)
	}

	current, err := r.currentVersion(ctx)
	if err != nil {
		return fmt.Errorf("read installed version: %w", err)
	}

	logger.InfoKV(ctx, "Resolved versions",
		"latest", latest.String(), "current", current.String())

	if !latest.GreaterThan(current) {
		logger.Info(ctx, "No update available")
		return nil
	}

	logger.InfoKV(ctx, "Update available", "version", latest.String())

	if r.terminate {
		if err = r.terminateRunning(ctx); err != nil {
			return fmt.Errorf("terminate running processes: %w", err)
		}
	}

	if err = r.update(ctx, latest); err != nil {
		return err
	}

	if r.installFresh {
		if err = r.createFreshSymlink(ctx); err != nil {
			return err
		}
	}

	return nil
}

// currentVersion reads the installed version, or returns the 0.0.0
// sentinel and marks the run as a fresh install when the resolved install
// path does not exist on disk.
func (r *runner) currentVersion(ctx context.Context) (release.Version, error) {
	if _, err := os.Stat(r.installPath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.installFresh = true

			logger.Info(ctx, "No existing installation found, performing a fresh install")

			return release.Zero(), nil
		}

		return release.Version{}, fmt.Errorf("stat install path: %w", err)
	}

	return r.versions.ReadInstalled(ctx, r.installPath)
}

// update downloads the versioned archive into a scoped temporary directory
// and extracts it over the install path. Any failure is fatal to the run;
// partial downloads never leave the temp scope.
func (r *runner) update(ctx context.Context, v release.Version) error {
	tempDir, err := os.MkdirTemp("", tempDirPattern)
	if err != nil {
		return fmt.Errorf("create temporary directory: %w", err)
	}

	r.tempDir = tempDir

	archiveURL := r.cfg.ArchiveURL(v.String())
	archivePath := filepath.Join(tempDir, fmt.Sprintf(archiveNameFormat, v))

	logger.InfoKV(ctx, "Downloading release archive", "url", archiveURL)

	if err = r.download.Download(ctx, archiveURL, archivePath, r.sink); err != nil {
		return fmt.Errorf("download release archive: %w", err)
	}

	logger.InfoKV(ctx, "Extracting archive", "path", r.installPath)

	r.sink.Publish(progress.Event{
		Phase:   progress.PhaseExtract,
		Message: fmt.Sprintf("extracting to %s", r.installPath),
	})

	if err = r.install.Install(ctx, archivePath, r.installPath); err != nil {
		return fmt.Errorf("install release: %w", err)
	}

	r.sink.Finish()

	logger.Info(ctx, "Archive extracted")

	return nil
}

// createFreshSymlink creates the convenience link pointing at the default
// install path. Only runs for fresh installs; failure is fatal.
func (r *runner) createFreshSymlink(ctx context.Context) error {
	target := filepath.Join(r.home, locator.DefaultRelPath)

	if err := r.install.CreateSymlink(r.home, target); err != nil {
		return fmt.Errorf("create convenience symlink: %w", err)
	}

	logger.InfoKV(ctx, "Created convenience symlink", "target", target)

	return nil
}

// cleanup finalizes the progress sink and removes the scoped temporary
// directory. It runs on every exit path, success or failure.
func (r *runner) cleanup(ctx context.Context) {
	r.sink.Finish()

	if r.tempDir == "" {
		return
	}

	if _, err := os.Stat(r.tempDir); err == nil {
		if err = os.RemoveAll(r.tempDir); err != nil {
			logger.WarnKV(ctx, "Unable to remove temporary directory",
				"path", r.tempDir, "error", err)
		}
	}
}

// fixedPath is a Locator pinned to an explicit path override.
type fixedPath string

// Locate returns the override verbatim.
func (f fixedPath) Locate(_ context.Context) (string, error) {
	return string(f), nil
}
