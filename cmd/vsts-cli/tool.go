package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/enterstudio/vsts-cli/internal/artifacttool"
	"github.com/enterstudio/vsts-cli/internal/clienttool"
	"github.com/enterstudio/vsts-cli/internal/settings"
)

// runToolFetch handles the `vsts-cli tool fetch` subcommand
func runToolFetch(args []string) error {
	// Parse flags
	showHelp := false
	instance := ""
	settingsPath := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			showHelp = true
		case "--instance":
			if i+1 >= len(args) {
				return fmt.Errorf("--instance requires a URL")
			}
			i++
			instance = args[i]
		case "--settings":
			if i+1 >= len(args) {
				return fmt.Errorf("--settings requires a file path")
			}
			i++
			settingsPath = args[i]
		default:
			return fmt.Errorf("unknown flag: %s", args[i])
		}
	}

	if showHelp {
		printToolFetchHelp()
		return nil
	}

	if settingsPath == "" {
		settingsPath = defaultSettingsPath()
	}

	loaded, err := settings.Load(settingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	cfg, err := buildToolConfig(loaded, instance)
	if err != nil {
		return err
	}
	cfg.Reporter = artifacttool.NewSpinnerReporter(os.Stderr)

	// Download timeout is handled by the downloader; this bounds the
	// whole fetch including lookup and extraction
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	path, err := artifacttool.NewUpdater(cfg).GetLatestTool(ctx)
	if err != nil {
		return err
	}

	fmt.Println(path)
	return nil
}

// buildToolConfig merges the settings file and the environment into an
// updater configuration. Environment overrides beat settings file values;
// the --instance flag beats the settings file instance.
func buildToolConfig(loaded *settings.Settings, instanceFlag string) (artifacttool.Config, error) {
	overrides := artifacttool.OverridesFromEnv()
	if overrides.ToolPath == "" {
		overrides.ToolPath = loaded.Tool.Path
	}
	if overrides.DownloadURL == "" {
		overrides.DownloadURL = loaded.Tool.URL
	}
	if overrides.Version == "" {
		overrides.Version = loaded.Tool.Version
	}
	// Signature settings only apply to URL-override downloads; don't
	// carry them onto the service-lookup path
	if overrides.DownloadURL != "" {
		overrides.SignatureURL = loaded.Tool.SignatureURL
		overrides.KeyringPath = loaded.Tool.Keyring
	}

	instance := instanceFlag
	if instance == "" {
		instance = loaded.Instance
	}

	cfg := artifacttool.Config{Overrides: overrides}

	// Without a path or URL override a release lookup happens, which
	// needs a service instance
	if overrides.ToolPath == "" && overrides.DownloadURL == "" {
		if instance == "" {
			return cfg, fmt.Errorf("service instance is required; pass --instance or set it in the settings file")
		}
		cfg.Client = clienttool.NewRESTClient(instance)
	}

	return cfg, nil
}

// defaultSettingsPath returns ~/.vsts-cli/vsts.lua, or an empty string
// when the home directory cannot be determined (settings.Load treats a
// missing file as empty settings).
func defaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vsts-cli", "vsts.lua")
}

func printToolFetchHelp() {
	fmt.Println("Usage: vsts-cli tool fetch [options]")
	fmt.Println()
	fmt.Println("Fetch the ArtifactTool binary for the current platform, downloading")
	fmt.Println("and caching it if necessary, and print its local path.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --instance URL    Service instance to query for releases")
	fmt.Println("  --settings FILE   Settings file (default: ~/.vsts-cli/vsts.lua)")
	fmt.Println("  --help, -h        Show this help")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  VSTS_CLI_ARTIFACTTOOL_OVERRIDE_PATH      Use a local tool directory")
	fmt.Println("  VSTS_CLI_ARTIFACTTOOL_OVERRIDE_URL       Download from a fixed URL")
	fmt.Println("  VSTS_CLI_ARTIFACTTOOL_OVERRIDE_VERSION   Pin the release version")
}
