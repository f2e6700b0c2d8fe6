package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host inspection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect returns the platform information used for release lookups.
// OS and OSName come from runtime.GOOS; Machine comes from the kernel
// architecture reported by gopsutil (the `uname -m` value).
//
// If host inspection fails or reports an empty kernel architecture, the
// machine string is derived from runtime.GOARCH instead (graceful
// fallback). A cancelled context is a hard failure.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	osName, err := mapOSName(runtime.GOOS)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}

	info := &Info{
		OS:     runtime.GOOS,
		OSName: osName,
		Arch:   runtime.GOARCH,
	}

	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		// Host inspection failed; fall back to the GOARCH mapping
		info.Machine = machineFromGoarch(runtime.GOARCH)
		return info, nil
	}

	if hostInfo.KernelArch != "" {
		info.Machine = normalizeMachine(hostInfo.KernelArch)
	} else {
		info.Machine = machineFromGoarch(runtime.GOARCH)
	}

	return info, nil
}
