// Package artifacttool fetches the ArtifactTool helper executable that
// vsts-cli shells out to for package upload and download operations.
//
// ArtifactTool is versioned independently of the CLI. Before every
// invocation the CLI asks this package for the current release; the
// package resolves which release to use, checks the local cache, and only
// downloads when the release is not already on disk.
//
// # Workflow
//
// Resolution → Cache check → (miss) Acquisition:
//
//  1. Resolution decides the release URI and identifier. An override URL
//     yields a fresh identifier per call so it is always downloaded;
//     otherwise the client-tool service reports the release for the
//     current platform, optionally pinned to an override version.
//  2. The cache key is the release identifier; a directory existing under
//     releases/ is the sole proof of a finalized release.
//  3. Acquisition streams the archive into memory with progress
//     reporting, extracts into a scratch directory under temp/, and
//     atomically renames it into releases/. The rename is the only
//     publication point, so a release directory is either absent or
//     complete.
//
// # Cache layout
//
//	<tmp>/ArtifactTool/
//	  releases/<releaseId>/   finalized, extracted tool directories
//	  temp/<randomId>/        in-flight extraction scratch space
//
// Scratch directories orphaned by failed acquisitions are not cleaned up
// here; the root lives under the system temp directory and is left to
// external housekeeping.
//
// # Concurrency
//
// Nothing locks the cache-check-then-download sequence. Two processes
// racing on the same release both download and extract independently, and
// the loser's rename fails because the destination exists. That failure
// propagates; rerunning hits the cache.
//
// # Overrides
//
// Three environment variables (or their settings-file equivalents)
// preempt normal operation, in precedence order:
//
//	VSTS_CLI_ARTIFACTTOOL_OVERRIDE_PATH     use this tool path verbatim
//	VSTS_CLI_ARTIFACTTOOL_OVERRIDE_URL      download from this URL, always fresh
//	VSTS_CLI_ARTIFACTTOOL_OVERRIDE_VERSION  pin the looked-up version
//
// Override-URL downloads can additionally be verified against a detached
// GPG signature when a signature URL and keyring are configured.
package artifacttool
