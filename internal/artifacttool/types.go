package artifacttool

import (
	"os"

	"github.com/enterstudio/vsts-cli/internal/clienttool"
	"github.com/enterstudio/vsts-cli/internal/platform"
)

const (
	// ToolName is the client tool this updater fetches
	ToolName = "ArtifactTool"

	// OverridePathEnvKey points at a local tool directory; bypasses
	// lookup, cache, and download entirely
	OverridePathEnvKey = "VSTS_CLI_ARTIFACTTOOL_OVERRIDE_PATH"
	// OverrideURLEnvKey replaces the release lookup with a direct
	// download URL; the result is never cached across invocations
	OverrideURLEnvKey = "VSTS_CLI_ARTIFACTTOOL_OVERRIDE_URL"
	// OverrideVersionEnvKey pins the version requested from the lookup
	OverrideVersionEnvKey = "VSTS_CLI_ARTIFACTTOOL_OVERRIDE_VERSION"
)

// Overrides preempts parts of the normal resolution and caching logic.
// Precedence: ToolPath beats DownloadURL beats Version.
type Overrides struct {
	// ToolPath is returned verbatim as the tool location.
	ToolPath string
	// DownloadURL is used as the release URI with a fresh release id
	// per call, so the cache check always misses.
	DownloadURL string
	// Version pins the release version requested from the lookup.
	Version string
	// SignatureURL locates a detached GPG signature for the archive.
	// Only honored for DownloadURL downloads, together with KeyringPath.
	SignatureURL string
	// KeyringPath is the GPG keyring used to verify the signature.
	KeyringPath string
}

// OverridesFromEnv reads the override environment variables.
// An empty value is treated as unset.
func OverridesFromEnv() Overrides {
	return Overrides{
		ToolPath:    os.Getenv(OverridePathEnvKey),
		DownloadURL: os.Getenv(OverrideURLEnvKey),
		Version:     os.Getenv(OverrideVersionEnvKey),
	}
}

// Config holds configuration for the updater.
type Config struct {
	// Root is the cache root directory. Defaults to
	// <system temp dir>/ArtifactTool.
	Root string
	// Overrides preempts resolution and caching; see Overrides.
	Overrides Overrides
	// Client performs release lookups. Required unless an override
	// bypasses the lookup.
	Client clienttool.Client
	// Detector provides platform information for lookups. Defaults to
	// platform.NewDetector().
	Detector platform.Detector
	// Reporter receives download progress. Defaults to a no-op.
	Reporter ProgressReporter
}

// ReleaseDescriptor identifies a resolved release: where to download it
// from and the stable identifier naming its cache directory.
type ReleaseDescriptor struct {
	URI string
	ID  string
}
