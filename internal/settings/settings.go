// Package settings loads the optional vsts-cli Lua settings file.
//
// The settings file is declarative: it is executed in a sandboxed Lua VM
// with no filesystem, process, or module-loading access, and must define a
// global "vsts" table. All fields are optional; environment variables take
// precedence over anything declared here.
//
// Example:
//
//	vsts = {
//	    instance = "https://fabrikam.visualstudio.com",
//	    artifacttool = {
//	        version = "1.2.3",
//	        url = "https://internal/ArtifactTool.zip",
//	        signature_url = "https://internal/ArtifactTool.zip.asc",
//	        keyring = "/etc/vsts-cli/artifacttool.gpg",
//	    },
//	}
package settings

import (
	"fmt"
	"os"
)

// Settings contains the parsed settings file contents.
type Settings struct {
	// Instance is the service instance URL used for release lookups.
	Instance string
	// Tool holds the ArtifactTool override settings.
	Tool ToolSettings
}

// ToolSettings overrides parts of the ArtifactTool fetch workflow.
type ToolSettings struct {
	// Path points at a local tool directory; bypasses all fetching.
	Path string
	// URL replaces the release lookup with a direct download location.
	URL string
	// Version pins the release version requested from the lookup.
	Version string
	// SignatureURL locates a detached GPG signature for URL downloads.
	SignatureURL string
	// Keyring is the path to the GPG keyring used for verification.
	Keyring string
}

// Load reads and parses a settings file. A missing file is not an error
// and yields empty settings; a present but malformed file is an error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	parsed, err := ParseString(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return parsed, nil
}
