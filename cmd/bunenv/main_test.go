package main

import (
	"fmt"
	"testing"

	"github.com/bunenv/bunenv/internal/config"
	"github.com/bunenv/bunenv/internal/env"
	"github.com/bunenv/bunenv/internal/version"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"usage error", &usageError{msg: "missing DEST_DIR"}, 2},
		{"already exists", &env.AlreadyExistsError{Dir: "/envs/demo"}, 2},
		{"no active virtualenv", &env.NoActiveVirtualenvError{}, 2},
		{"invalid version", &version.InvalidError{Input: "not-a-version"}, 2},
		{"bad config value", &config.ValueError{File: "tox.ini", Key: "force", Value: "maybe"}, 2},
		{"missing explicit config", &config.FileNotFoundError{Path: "/etc/bunenv.ini"}, 2},
		{"wrapped already exists", fmt.Errorf("create: %w", &env.AlreadyExistsError{Dir: "/envs/demo"}), 2},
		{"download failure", &env.DownloadError{URL: "https://example.com", Attempts: 3}, 1},
		{"generic error", fmt.Errorf("disk full"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDestinationDir(t *testing.T) {
	dir, err := destinationDir([]string{"env"}, config.Settings{})
	if err != nil {
		t.Fatalf("destinationDir() error = %v", err)
	}
	if dir != "env" {
		t.Errorf("destinationDir() = %q", dir)
	}
}

func TestDestinationDirMissing(t *testing.T) {
	_, err := destinationDir(nil, config.Settings{})
	if err == nil {
		t.Fatal("destinationDir() error = nil, want usage error")
	}
	if exitCode(err) != 2 {
		t.Errorf("exitCode = %d, want 2 for a missing DEST_DIR", exitCode(err))
	}
}

func TestDestinationDirPythonVirtualenv(t *testing.T) {
	t.Setenv("VIRTUAL_ENV", "/home/user/.venv")

	dir, err := destinationDir(nil, config.Settings{PythonVirtualenv: true})
	if err != nil {
		t.Fatalf("destinationDir() error = %v", err)
	}
	if dir != "/home/user/.venv" {
		t.Errorf("destinationDir() = %q", dir)
	}
}

func TestFlagToKeyCoversSettingsFlags(t *testing.T) {
	// Every settings-bearing flag must map to a config key; steering
	// flags must not.
	for _, steering := range []string{"verbose", "quiet", "list", "config-file"} {
		if _, ok := flagToKey[steering]; ok {
			t.Errorf("steering flag %q must not enter the settings fold", steering)
		}
	}
	for flag, key := range flagToKey {
		if rootCmd.Flags().Lookup(flag) == nil {
			t.Errorf("flagToKey names unknown flag %q", flag)
		}
		if key == "" {
			t.Errorf("flag %q maps to an empty key", flag)
		}
	}
}
