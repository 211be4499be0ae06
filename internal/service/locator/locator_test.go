package locator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// failingLocator always errors, for chain tests.
type failingLocator struct {
	err error
}

func (f *failingLocator) Locate(_ context.Context) (string, error) {
	return "", f.err
}

// TestFixedDefault verifies the deterministic default path.
func TestFixedDefault(t *testing.T) {
	t.Parallel()

	path, err := NewFixedDefault("/home/tester").Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/home/tester/bin/discord_bin/Discord/Discord", path)
}

// TestShellLookup_NotFound ensures a missing binary is a recoverable NotFound.
func TestShellLookup_NotFound(t *testing.T) {
	t.Parallel()

	_, err := NewShellLookup("definitely-not-an-installed-binary-0a1b2c").Locate(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

// TestParentOfCanonical checks symlink resolution and parent extraction.
func TestParentOfCanonical(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	realDir := filepath.Join(dir, "opt", "app")
	require.NoError(t, os.MkdirAll(realDir, 0o755))

	realBinary := filepath.Join(realDir, "discord")
	require.NoError(t, os.WriteFile(realBinary, []byte("#!/bin/true\n"), 0o755))

	link := filepath.Join(dir, "discord")
	require.NoError(t, os.Symlink(realBinary, link))

	parent, err := parentOfCanonical(link)
	require.NoError(t, err)
	require.Equal(t, realDir, parent)

	_, err = parentOfCanonical(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

// TestChain_FallsBack ensures the chain absorbs failures and returns the
// first success.
func TestChain_FallsBack(t *testing.T) {
	t.Parallel()

	failure := &failingLocator{err: ErrNotFound}
	fallback := NewFixedDefault("/home/tester")

	path, err := NewChain(failure, fallback).Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/home/tester/bin/discord_bin/Discord/Discord", path)
}

// TestChain_AllFail ensures the last error surfaces when nothing succeeds.
func TestChain_AllFail(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	_, err := NewChain(&failingLocator{err: ErrNotFound}, &failingLocator{err: boom}).
		Locate(context.Background())
	require.ErrorIs(t, err, boom)
}
