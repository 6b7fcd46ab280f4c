package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// Resolver folds configuration sources into one Settings value.
// Sources are applied in precedence order, highest first; a key already
// written by an earlier source is never overwritten.
type Resolver struct {
	settings Settings
	assigned map[string]bool
}

// NewResolver creates an empty resolver. Apply sources highest-priority
// first, then call Resolve.
func NewResolver() *Resolver {
	return &Resolver{assigned: make(map[string]bool)}
}

// Set records a value from the CLI layer. key is the snake_case long
// flag name; boolean flags pass "true"/"false".
func (r *Resolver) Set(key, value string) error {
	return r.apply("", key, value)
}

// LoadFile merges the [bunenv] section of an INI file. Keys already set
// by a higher-priority source are left untouched. A missing file is an
// error only when the path was named explicitly.
func (r *Resolver) LoadFile(path string, explicit bool) error {
	path = expandUser(path)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return &FileNotFoundError{Path: path}
			}
			return nil
		}
		return fmt.Errorf("stat config file: %w", err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return &ParseError{File: path, Err: err}
	}

	section, err := file.GetSection(SectionName)
	if err != nil {
		// No [bunenv] section; nothing to merge.
		return nil
	}

	for _, key := range section.Keys() {
		if err := r.apply(path, key.Name(), key.Value()); err != nil {
			return err
		}
	}

	return nil
}

// LoadVersionFile reads a .bun-version file from dir if the version has
// not been set by a higher-priority source. The file holds a single
// line; "v" and "bun-v" prefixes are tolerated.
func (r *Resolver) LoadVersionFile(dir string) error {
	if r.assigned["bun"] {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(dir, VersionFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read version file: %w", err)
	}

	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimSpace(line)
	line = strings.TrimPrefix(line, "bun-v")
	line = strings.TrimPrefix(line, "v")
	if line == "" {
		return nil
	}

	return r.apply(VersionFileName, "bun", line)
}

// Resolve fills remaining keys from the built-in defaults and the
// environment and returns the effective, read-only settings.
func (r *Resolver) Resolve() Settings {
	defaults := Defaults()

	if !r.assigned["bun"] {
		r.settings.Version = defaults.Version
	}
	if !r.assigned["prebuilt"] {
		r.settings.Prebuilt = defaults.Prebuilt
	}
	if !r.assigned["github_token"] {
		r.settings.GithubToken = TokenFromEnv()
	}

	return r.settings
}

// apply writes one key unless a higher-priority source already did.
// Unknown keys are ignored so that shared files like setup.cfg can
// carry keys for other tools.
func (r *Resolver) apply(file, key, value string) error {
	if r.assigned[key] {
		return nil
	}

	switch key {
	case "bun":
		r.settings.Version = value
	case "variant":
		r.settings.Variant = value
		r.settings.VariantSet = true
	case "github_token":
		r.settings.GithubToken = value
	case "mirror":
		r.settings.Mirror = value
	case "prompt":
		r.settings.Prompt = value
	case "requirements":
		r.settings.Requirements = value
	case "ignore_ssl_certs", "prebuilt", "clean_src", "force", "update", "python_virtualenv":
		b, ok := parseBool(value)
		if !ok {
			return &ValueError{File: file, Key: key, Value: value}
		}
		switch key {
		case "ignore_ssl_certs":
			r.settings.IgnoreSSLCerts = b
		case "prebuilt":
			r.settings.Prebuilt = b
		case "clean_src":
			r.settings.CleanSrc = b
		case "force":
			r.settings.Force = b
		case "update":
			r.settings.Update = b
		case "python_virtualenv":
			r.settings.PythonVirtualenv = b
		}
	default:
		return nil
	}

	r.assigned[key] = true
	return nil
}

// parseBool accepts the INI boolean spellings case-insensitively.
func parseBool(value string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// expandUser resolves a leading ~/ against the home directory.
func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(strings.TrimPrefix(path, "~"), "/"))
	}
	return path
}
