package installer

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeArchive builds a gzip-compressed tarball whose entries all live
// under a single top-level directory, like a release tarball.
func writeArchive(t *testing.T, path, topDir string, files map[string]string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)

	for name, body := range files {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name: topDir + "/" + name,
			Mode: 0o644,
			Size: int64(len(body)),
		}))

		_, err = tw.Write([]byte(body))
		require.NoError(t, err)
	}

	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

// TestInstall_StripsTopLevelDirectory extracts an archive with a single
// top-level entry and expects files directly under the install path.
func TestInstall_StripsTopLevelDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := filepath.Join(dir, "app.tar.gz")
	writeArchive(t, archive, "app-v1.0.0", map[string]string{
		"Discord":                   "binary-bytes",
		"resources/build_info.json": `{"version": "1.0.0"}`,
	})

	installPath := filepath.Join(dir, "install")

	require.NoError(t, New().Install(context.Background(), archive, installPath))

	// No app-v1.0.0 directory survives.
	_, err := os.Stat(filepath.Join(installPath, "app-v1.0.0"))
	require.ErrorIs(t, err, os.ErrNotExist)

	body, err := os.ReadFile(filepath.Join(installPath, "Discord"))
	require.NoError(t, err)
	require.Equal(t, "binary-bytes", string(body))

	body, err = os.ReadFile(filepath.Join(installPath, "resources", "build_info.json"))
	require.NoError(t, err)
	require.JSONEq(t, `{"version": "1.0.0"}`, string(body))
}

// TestInstall_CreatesInstallPath ensures missing parent directories are created.
func TestInstall_CreatesInstallPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := filepath.Join(dir, "app.tar.gz")
	writeArchive(t, archive, "Discord", map[string]string{"Discord": "x"})

	installPath := filepath.Join(dir, "deeply", "nested", "install")

	require.NoError(t, New().Install(context.Background(), archive, installPath))

	_, err := os.Stat(filepath.Join(installPath, "Discord"))
	require.NoError(t, err)
}

// TestInstall_ExtractionError surfaces tar diagnostics for a corrupt archive.
func TestInstall_ExtractionError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := filepath.Join(dir, "corrupt.tar.gz")
	require.NoError(t, os.WriteFile(archive, []byte("this is not a tarball"), 0o644))

	err := New().Install(context.Background(), archive, filepath.Join(dir, "install"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "extract archive")
}

// TestCreateSymlink covers creation and the no-overwrite rule.
func TestCreateSymlink(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	target := filepath.Join(home, "bin", "discord_bin", "Discord", "Discord")

	svc := New()
	require.NoError(t, svc.CreateSymlink(home, target))

	link := filepath.Join(home, "bin", SymlinkName)

	got, err := os.Readlink(link)
	require.NoError(t, err)
	require.Equal(t, target, got)

	// A second create fails instead of overwriting.
	require.Error(t, svc.CreateSymlink(home, target))
}
