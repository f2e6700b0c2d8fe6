// Package platform detects the operating system and machine architecture
// in the naming scheme the client-tool release service expects: an OS name
// like "Linux", "Darwin" or "Windows" and a machine string like "x86_64"
// or "aarch64". It uses gopsutil for host inspection and falls back to a
// GOARCH-derived mapping when inspection fails.
package platform

import "context"

// Info contains platform detection information.
type Info struct {
	OS      string // GOOS value: "linux", "darwin", "windows"
	OSName  string // service naming: "Linux", "Darwin", "Windows"
	Arch    string // GOARCH value: "amd64", "arm64", ...
	Machine string // uname -m style: "x86_64", "aarch64", ...
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
