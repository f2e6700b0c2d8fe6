// Package testutil provides utilities for testing vsts-cli in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv creates an isolated cache root for each test and clears
// the ArtifactTool override environment variables. This ensures tests
// never interfere with:
// - The shared cache under the system temp directory
// - Overrides set in the developer's shell
//
// The cleanup is handled by t.TempDir() and t.Setenv(), so callers
// don't need to restore anything. Returns the cache root to pass as
// Config.Root.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "ArtifactTool")

	// Clear any overrides inherited from the environment
	t.Setenv("VSTS_CLI_ARTIFACTTOOL_OVERRIDE_PATH", "")
	t.Setenv("VSTS_CLI_ARTIFACTTOOL_OVERRIDE_URL", "")
	t.Setenv("VSTS_CLI_ARTIFACTTOOL_OVERRIDE_VERSION", "")

	if err := os.MkdirAll(root, 0o750); err != nil {
		t.Fatalf("failed to create test cache root %s: %v", root, err)
	}

	return root
}
