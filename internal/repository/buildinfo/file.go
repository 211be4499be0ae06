package buildinfo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/discord-updater/internal/domain/release"
)

// MetadataRelPath is the metadata file location relative to the install path.
const MetadataRelPath = "resources/build_info.json"

// ErrNotFound is returned when the metadata file does not exist.
var ErrNotFound = errors.New("build info not found")

// Repository defines read access to installed-version metadata.
type Repository interface {
	InstalledVersion(ctx context.Context, installPath string) (release.Version, error)
}

// FileRepository reads build metadata from the resource tree on disk.
// The payload shape is identical to the remote version endpoint, so it
// is parsed by the same domain routine.
type FileRepository struct{}

// NewFileRepository creates a repository reading build_info.json under install paths.
func NewFileRepository() *FileRepository {
	return &FileRepository{}
}

// InstalledVersion reads and parses the metadata file under the install path.
func (r *FileRepository) InstalledVersion(_ context.Context, installPath string) (release.Version, error) {
	path := filepath.Join(installPath, MetadataRelPath)

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return release.Version{}, fmt.Errorf("%s: %w", path, ErrNotFound)
		}

		return release.Version{}, fmt.Errorf("read build info: %w", err)
	}

	v, err := release.ParsePayload(contents)
	if err != nil {
		return release.Version{}, fmt.Errorf("parse build info: %w", err)
	}

	return v, nil
}
