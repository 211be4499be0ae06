package buildinfo

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestInstalledVersion_NotFound verifies the sentinel error for a missing metadata file.
func TestInstalledVersion_NotFound(t *testing.T) {
	t.Parallel()

	repo := NewFileRepository()

	_, err := repo.InstalledVersion(context.Background(), t.TempDir())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestInstalledVersion_ReadsPayload ensures the metadata file is parsed like
// the remote payload, including the "name" fallback key.
func TestInstalledVersion_ReadsPayload(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`{"version": "0.0.27"}`: "0.0.27",
		`{"name": "1.4.0"}`:     "1.4.0",
	}

	repo := NewFileRepository()

	for body, want := range cases {
		installPath := t.TempDir()
		metaPath := filepath.Join(installPath, MetadataRelPath)

		require.NoError(t, os.MkdirAll(filepath.Dir(metaPath), 0o755))
		require.NoError(t, os.WriteFile(metaPath, []byte(body), 0o644))

		got, err := repo.InstalledVersion(context.Background(), installPath)
		require.NoError(t, err)
		require.Equal(t, want, got.String())
	}
}

// TestInstalledVersion_Malformed ensures a corrupt metadata file surfaces a parse error.
func TestInstalledVersion_Malformed(t *testing.T) {
	t.Parallel()

	installPath := t.TempDir()
	metaPath := filepath.Join(installPath, MetadataRelPath)

	require.NoError(t, os.MkdirAll(filepath.Dir(metaPath), 0o755))
	require.NoError(t, os.WriteFile(metaPath, []byte("{oops"), 0o644))

	repo := NewFileRepository()

	_, err := repo.InstalledVersion(context.Background(), installPath)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
}
