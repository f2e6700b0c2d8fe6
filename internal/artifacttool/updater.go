package artifacttool

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/enterstudio/vsts-cli/internal/clienttool"
	"github.com/enterstudio/vsts-cli/internal/platform"
)

// Updater resolves, caches, and fetches ArtifactTool releases. Each call
// is independent; the only state shared between invocations is the
// on-disk cache under Root.
type Updater struct {
	root       string
	overrides  Overrides
	client     clienttool.Client
	detector   platform.Detector
	reporter   ProgressReporter
	downloader *Downloader
	extractor  *Extractor
}

// NewUpdater creates a new updater.
func NewUpdater(cfg Config) *Updater {
	root := cfg.Root
	if root == "" {
		root = DefaultRoot()
	}

	detector := cfg.Detector
	if detector == nil {
		detector = platform.NewDetector()
	}

	reporter := cfg.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	return &Updater{
		root:       root,
		overrides:  cfg.Overrides,
		client:     cfg.Client,
		detector:   detector,
		reporter:   reporter,
		downloader: NewDownloader(),
		extractor:  NewExtractor(),
	}
}

// GetLatestTool returns the local path of the current ArtifactTool
// release, downloading and extracting it first if it is not cached.
//
// With a path override set, that path is returned verbatim with no
// filesystem or network activity. Otherwise the release is resolved
// (override URL or service lookup), the cache is consulted, and on a miss
// the archive is downloaded, extracted into scratch space, and atomically
// renamed into the cache. Every failure is terminal; nothing is retried.
func (u *Updater) GetLatestTool(ctx context.Context) (string, error) {
	if u.overrides.ToolPath != "" {
		return u.overrides.ToolPath, nil
	}

	desc, err := u.resolveRelease(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to find %s release: %w", ToolName, err)
	}

	releaseDir, err := u.releaseDir(desc.ID)
	if err != nil {
		return "", err
	}

	// The directory existing is the sole proof of a finalized release;
	// contents are never revalidated.
	if dirExists(releaseDir) {
		return releaseDir, nil
	}

	if err := u.acquire(ctx, desc, releaseDir); err != nil {
		return "", err
	}

	return releaseDir, nil
}

// resolveRelease decides which URI and release id to use. An override URL
// is taken verbatim with a release id that is unique per invocation, so
// such downloads are always fresh. Otherwise the release service is asked
// for the current platform's build, optionally pinned to an override
// version.
func (u *Updater) resolveRelease(ctx context.Context) (*ReleaseDescriptor, error) {
	if u.overrides.DownloadURL != "" {
		return &ReleaseDescriptor{
			URI: u.overrides.DownloadURL,
			ID:  fmt.Sprintf("custom_%s", uuid.NewString()),
		}, nil
	}

	if u.client == nil {
		return nil, fmt.Errorf("release lookup client is required")
	}

	info, err := u.detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect platform: %w", err)
	}

	release, err := u.client.GetRelease(ctx, ToolName, info.OSName, info.Machine, u.overrides.Version)
	if err != nil {
		return nil, err
	}

	return &ReleaseDescriptor{
		URI: release.URI,
		ID:  computeReleaseID(release),
	}, nil
}

// acquire downloads, optionally verifies, extracts, and publishes a
// release. Extraction happens in a scratch directory; the rename into
// releaseDir is the sole linearization point, so readers never observe a
// partially extracted release. The scratch directory is orphaned on
// failure (external housekeeping cleans the temp root).
func (u *Updater) acquire(ctx context.Context, desc *ReleaseDescriptor, releaseDir string) error {
	u.reporter.Start(fmt.Sprintf("Downloading %s (%s)", ToolName, desc.ID))
	defer u.reporter.Done()

	archive, err := u.downloader.FetchArchive(ctx, desc.URI, u.reporter.Step)
	if err != nil {
		return fmt.Errorf("download release %s: %w", desc.ID, err)
	}

	// Verification only applies to override-URL payloads; a release
	// resolved through the service lookup is trusted as-is, even if
	// signature settings are configured.
	if u.overrides.DownloadURL != "" && u.overrides.SignatureURL != "" && u.overrides.KeyringPath != "" {
		if err := u.verifyArchive(ctx, archive); err != nil {
			return fmt.Errorf("verify release %s: %w", desc.ID, err)
		}
	}

	scratchDir, err := u.newScratchDirPath()
	if err != nil {
		return err
	}

	if err := u.extractor.Extract(archive, scratchDir); err != nil {
		return fmt.Errorf("extract release %s: %w", desc.ID, err)
	}

	// Two racing invocations both reach this rename with distinct
	// scratch directories. On Linux and macOS the loser fails with
	// ENOTEMPTY/EEXIST because the destination now exists; that error
	// propagates and the next call hits the cache.
	if err := os.Rename(scratchDir, releaseDir); err != nil {
		return fmt.Errorf("publish release %s: %w", desc.ID, err)
	}

	return nil
}

// verifyArchive fetches the detached signature and checks it over the
// downloaded payload.
func (u *Updater) verifyArchive(ctx context.Context, archive []byte) error {
	signature, err := u.downloader.FetchFile(ctx, u.overrides.SignatureURL)
	if err != nil {
		return fmt.Errorf("download signature: %w", err)
	}

	verifier := NewVerifier(u.overrides.KeyringPath)
	return verifier.VerifyDetached(archive, signature)
}
