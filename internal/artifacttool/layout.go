package artifacttool

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/enterstudio/vsts-cli/internal/clienttool"
)

// DefaultRoot returns the default cache root under the system temp
// directory: <tmp>/ArtifactTool.
func DefaultRoot() string {
	return filepath.Join(os.TempDir(), ToolName)
}

// computeReleaseID derives the stable cache key for a release. Identical
// (name, rid, version) tuples always map to the same cache directory.
func computeReleaseID(release *clienttool.Release) string {
	return fmt.Sprintf("%s_%s_%s", release.Name, release.Rid, release.Version)
}

// releasesRoot is the directory holding finalized release directories.
func (u *Updater) releasesRoot() string {
	return filepath.Join(u.root, "releases")
}

// tempRoot is the directory holding in-flight extraction scratch space.
func (u *Updater) tempRoot() string {
	return filepath.Join(u.root, "temp")
}

// releaseDir computes the final directory for a release id, creating the
// releases root if absent. A concurrently-created root is fine; any other
// filesystem error propagates.
func (u *Updater) releaseDir(releaseID string) (string, error) {
	if err := mkdirIfNotExist(u.releasesRoot()); err != nil {
		return "", fmt.Errorf("create releases root: %w", err)
	}
	return filepath.Join(u.releasesRoot(), releaseID), nil
}

// newScratchDirPath allocates a fresh, uniquely-named scratch path under
// the temp root. The directory itself is created by extraction.
func (u *Updater) newScratchDirPath() (string, error) {
	if err := mkdirIfNotExist(u.tempRoot()); err != nil {
		return "", fmt.Errorf("create temp root: %w", err)
	}
	return filepath.Join(u.tempRoot(), uuid.NewString()), nil
}

// mkdirIfNotExist creates a directory tree, treating "already exists"
// (including a concurrent create) as success.
func mkdirIfNotExist(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		// MkdirAll reports nothing for existing directories, so any
		// error here is a real filesystem failure unless a racing
		// process just created the path.
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil
		}
		return err
	}
	return nil
}

// dirExists reports whether path exists and is a directory.
func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
