// Package config resolves the effective bunenv configuration from CLI
// flags, INI configuration files, and built-in defaults.
//
// Resolution is a fold with fixed precedence, highest first: CLI
// arguments, an explicit --config-file, ./tox.ini, ./setup.cfg,
// ~/.bunenvrc, defaults. Each source only fills keys not already set by
// a higher-priority source (first writer wins). Only the [bunenv]
// section of each file is read; unknown keys are ignored.
package config

import "os"

// SectionName is the single INI section recognized in config files.
const SectionName = "bunenv"

// VersionFileName is the per-project version file read from the working
// directory when no explicit version was given.
const VersionFileName = ".bun-version"

// Settings is the effective configuration for one invocation.
// It is immutable once resolved.
type Settings struct {
	// Version is the requested Bun version token: "latest", "system",
	// or an explicit version string.
	Version string
	// Variant is the build flavor: "", "baseline", "profile", or "musl".
	// Empty means auto-detected from the host platform.
	Variant string
	// VariantSet records whether the variant was set explicitly; an
	// explicit variant always wins over platform auto-detection,
	// including an explicit empty one.
	VariantSet bool
	// GithubToken authenticates GitHub API requests to avoid rate limits.
	GithubToken string
	// Mirror replaces the default release download base URL.
	Mirror string
	// IgnoreSSLCerts disables TLS certificate verification for downloads.
	IgnoreSSLCerts bool
	// Prebuilt is accepted for interface compatibility; Bun only ships
	// prebuilt binaries, so it is always effectively true.
	Prebuilt bool
	// Prompt overrides the activation prompt prefix.
	Prompt string
	// Requirements is the path to a package requirements file.
	Requirements string
	// CleanSrc removes the src/ directory after a successful install.
	CleanSrc bool
	// Force allows installation into a pre-existing directory.
	Force bool
	// Update skips binary installation and only installs packages.
	Update bool
	// PythonVirtualenv targets the active Python virtualenv as the
	// destination directory.
	PythonVirtualenv bool
}

// Defaults returns the built-in defaults, the lowest-priority source.
func Defaults() Settings {
	return Settings{
		Version:  "latest",
		Prebuilt: true,
	}
}

// DefaultSearchPaths returns the config files consulted, in precedence
// order, when no --config-file was given. Missing files in this list
// are silently skipped.
func DefaultSearchPaths() []string {
	return []string{"./tox.ini", "./setup.cfg", "~/.bunenvrc"}
}

// TokenFromEnv returns the GitHub token from the environment, used when
// no higher-priority source supplied one.
func TokenFromEnv() string {
	return os.Getenv("GITHUB_TOKEN")
}
