package main

import (
	"os"
	"testing"

	"github.com/bunenv/bunenv/internal/testutil"
)

func TestResolveSettingsDefaults(t *testing.T) {
	testutil.SetupTestEnv(t)

	settings, err := resolveSettings(rootCmd)
	if err != nil {
		t.Fatalf("resolveSettings() error = %v", err)
	}

	if settings.Version != "latest" {
		t.Errorf("Version = %q, want latest", settings.Version)
	}
	if !settings.Prebuilt {
		t.Error("Prebuilt = false, want the built-in default true")
	}
	if settings.GithubToken != "" {
		t.Errorf("GithubToken = %q, want empty in an isolated environment", settings.GithubToken)
	}
}

func TestResolveSettingsFromSearchPath(t *testing.T) {
	testutil.SetupTestEnv(t)

	ini := "[bunenv]\nbun = 1.2.0\nmirror = https://mirror.example.com/bun\n"
	if err := os.WriteFile("tox.ini", []byte(ini), 0o644); err != nil {
		t.Fatal(err)
	}
	// The version file loses to any config file.
	if err := os.WriteFile(".bun-version", []byte("1.1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := resolveSettings(rootCmd)
	if err != nil {
		t.Fatalf("resolveSettings() error = %v", err)
	}

	if settings.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0 from tox.ini", settings.Version)
	}
	if settings.Mirror != "https://mirror.example.com/bun" {
		t.Errorf("Mirror = %q", settings.Mirror)
	}
}

func TestResolveSettingsEmptyConfigFileSkipsFiles(t *testing.T) {
	testutil.SetupTestEnv(t)

	ini := "[bunenv]\nbun = 1.0.0\nmirror = https://mirror.example.com/bun\n"
	if err := os.WriteFile("tox.ini", []byte(ini), 0o644); err != nil {
		t.Fatal(err)
	}

	// --config-file= (set but empty) disables all file configuration.
	flag := rootCmd.Flags().Lookup("config-file")
	flag.Changed = true
	t.Cleanup(func() { flag.Changed = false })

	settings, err := resolveSettings(rootCmd)
	if err != nil {
		t.Fatalf("resolveSettings() error = %v", err)
	}

	if settings.Version != "latest" {
		t.Errorf("Version = %q, want the built-in default latest", settings.Version)
	}
	if settings.Mirror != "" {
		t.Errorf("Mirror = %q, want no file-derived keys at all", settings.Mirror)
	}
}

func TestResolveSettingsVersionFile(t *testing.T) {
	testutil.SetupTestEnv(t)

	if err := os.WriteFile(".bun-version", []byte("bun-v1.3.3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := resolveSettings(rootCmd)
	if err != nil {
		t.Fatalf("resolveSettings() error = %v", err)
	}

	if settings.Version != "1.3.3" {
		t.Errorf("Version = %q, want 1.3.3 from .bun-version", settings.Version)
	}
}
