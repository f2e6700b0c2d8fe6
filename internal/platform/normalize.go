package platform

import (
	"fmt"
	"strings"
)

// goarchMachineMap maps GOARCH values to their uname -m equivalents.
// Used when gopsutil cannot report the kernel architecture.
var goarchMachineMap = map[string]string{
	"amd64": "x86_64",
	"arm64": "aarch64",
	"386":   "i686",
	"arm":   "armv7l",
}

// mapOSName converts a GOOS value to the capitalized OS name the release
// service expects, matching Python's platform.system() output.
func mapOSName(goos string) (string, error) {
	switch goos {
	case "linux":
		return "Linux", nil
	case "darwin":
		return "Darwin", nil
	case "windows":
		return "Windows", nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", goos)
	}
}

// machineFromGoarch derives a uname -m style machine string from GOARCH.
// Unknown architectures are passed through unchanged; the release service
// decides whether it has a matching build.
func machineFromGoarch(goarch string) string {
	if machine, ok := goarchMachineMap[goarch]; ok {
		return machine
	}
	return goarch
}

// normalizeMachine trims whitespace from a reported kernel architecture.
// Windows reports values like "x86_64" via wmi already; no case folding is
// applied because the service matches machine strings verbatim.
func normalizeMachine(machine string) string {
	return strings.TrimSpace(machine)
}
