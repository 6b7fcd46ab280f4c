// Package testutil provides helpers for testing bunenv in isolation.
package testutil

import (
	"testing"
)

// SetupTestEnv isolates a test from the host environment and returns a
// temporary working directory the test runs in. It ensures tests never
// pick up:
//   - the developer's GITHUB_TOKEN or release keyring
//   - an active Python virtualenv or conda environment
//   - config files in the real working directory or home
//     (./tox.ini, ./setup.cfg, .bun-version)
//
// Cleanup is handled by t.TempDir and t.Setenv automatically.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("BUNENV_RELEASE_KEYRING", "")
	t.Setenv("VIRTUAL_ENV", "")
	t.Setenv("CONDA_PREFIX", "")
	t.Setenv("HOME", tmpDir)

	return tmpDir
}
