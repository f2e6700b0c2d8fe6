package main

import (
	"strings"
	"testing"

	"github.com/enterstudio/vsts-cli/internal/settings"
	"github.com/enterstudio/vsts-cli/internal/testutil"
)

func TestBuildToolConfigEnvBeatsSettings(t *testing.T) {
	testutil.SetupTestEnv(t)
	t.Setenv("VSTS_CLI_ARTIFACTTOOL_OVERRIDE_VERSION", "2.0.0")

	loaded := &settings.Settings{
		Instance: "https://fabrikam.visualstudio.com",
		Tool:     settings.ToolSettings{Version: "1.0.0"},
	}

	cfg, err := buildToolConfig(loaded, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Overrides.Version != "2.0.0" {
		t.Errorf("Version = %q, want the environment value", cfg.Overrides.Version)
	}
	if cfg.Client == nil {
		t.Error("lookup client was not created")
	}
}

func TestBuildToolConfigSettingsFillGaps(t *testing.T) {
	testutil.SetupTestEnv(t)

	loaded := &settings.Settings{
		Instance: "https://fabrikam.visualstudio.com",
		Tool: settings.ToolSettings{
			URL:          "https://internal/ArtifactTool.zip",
			SignatureURL: "https://internal/ArtifactTool.zip.asc",
			Keyring:      "/etc/vsts-cli/artifacttool.gpg",
		},
	}

	cfg, err := buildToolConfig(loaded, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Overrides.DownloadURL != "https://internal/ArtifactTool.zip" {
		t.Errorf("DownloadURL = %q", cfg.Overrides.DownloadURL)
	}
	if cfg.Overrides.SignatureURL != "https://internal/ArtifactTool.zip.asc" {
		t.Errorf("SignatureURL = %q", cfg.Overrides.SignatureURL)
	}
	if cfg.Overrides.KeyringPath != "/etc/vsts-cli/artifacttool.gpg" {
		t.Errorf("KeyringPath = %q", cfg.Overrides.KeyringPath)
	}

	// A URL override needs no lookup client
	if cfg.Client != nil {
		t.Error("lookup client created despite URL override")
	}
}

func TestBuildToolConfigSignatureSettingsNeedURLOverride(t *testing.T) {
	testutil.SetupTestEnv(t)

	// Signature settings without a URL override must not reach the
	// updater: service-resolved releases are never verified
	loaded := &settings.Settings{
		Instance: "https://fabrikam.visualstudio.com",
		Tool: settings.ToolSettings{
			SignatureURL: "https://internal/ArtifactTool.zip.asc",
			Keyring:      "/etc/vsts-cli/artifacttool.gpg",
		},
	}

	cfg, err := buildToolConfig(loaded, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Overrides.SignatureURL != "" {
		t.Errorf("SignatureURL = %q, want empty on the lookup path", cfg.Overrides.SignatureURL)
	}
	if cfg.Overrides.KeyringPath != "" {
		t.Errorf("KeyringPath = %q, want empty on the lookup path", cfg.Overrides.KeyringPath)
	}
	if cfg.Client == nil {
		t.Error("lookup client was not created")
	}
}

func TestBuildToolConfigPathOverrideNeedsNoInstance(t *testing.T) {
	testutil.SetupTestEnv(t)
	t.Setenv("VSTS_CLI_ARTIFACTTOOL_OVERRIDE_PATH", "/opt/artifacttool")

	cfg, err := buildToolConfig(&settings.Settings{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Overrides.ToolPath != "/opt/artifacttool" {
		t.Errorf("ToolPath = %q", cfg.Overrides.ToolPath)
	}
	if cfg.Client != nil {
		t.Error("lookup client created despite path override")
	}
}

func TestBuildToolConfigRequiresInstance(t *testing.T) {
	testutil.SetupTestEnv(t)

	_, err := buildToolConfig(&settings.Settings{}, "")
	if err == nil {
		t.Fatal("expected error without a service instance")
	}
	if !strings.Contains(err.Error(), "--instance") {
		t.Errorf("error %q does not mention --instance", err.Error())
	}
}

func TestBuildToolConfigInstanceFlagBeatsSettings(t *testing.T) {
	testutil.SetupTestEnv(t)

	loaded := &settings.Settings{Instance: "https://settings.example.com"}

	cfg, err := buildToolConfig(loaded, "https://flag.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Client == nil {
		t.Fatal("lookup client was not created")
	}
}
