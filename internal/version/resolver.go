// Package version parses Bun version strings and resolves user-supplied
// version tokens ("latest", "system", or explicit) against a release
// catalog.
package version

import (
	"os/exec"
	"runtime"
	"sort"
	"strings"
)

// Reserved version tokens.
const (
	Latest = "latest"
	System = "system"
)

// IsSystem reports whether the token requests the host-installed binary.
func IsSystem(token string) bool {
	return strings.EqualFold(token, System)
}

// Resolve turns a user-supplied version token into a concrete Token.
//
// "latest" selects the newest entry of the catalog; the catalog is sorted
// here rather than trusting fetch order. An explicit version must parse
// and, when a catalog is supplied, must be present in it. A nil or empty
// catalog skips the membership check so that explicit versions do not
// require a network fetch.
//
// "system" is not handled here; see ResolveSystem.
func Resolve(token string, catalog []string) (Token, error) {
	if strings.EqualFold(token, Latest) || token == "" {
		tokens := parseAll(catalog)
		if len(tokens) == 0 {
			return Token{}, &NotFoundError{}
		}
		sort.Slice(tokens, func(i, j int) bool {
			return tokens[i].Compare(tokens[j]) > 0
		})
		return tokens[0], nil
	}

	t, ok := Parse(token)
	if !ok {
		return Token{}, &InvalidError{Input: token}
	}

	if len(catalog) > 0 && !contains(catalog, t) {
		return Token{}, &NotFoundError{Requested: t.String()}
	}

	return t, nil
}

// ResolveSystem locates the host-installed bun binary for system mode.
// It returns the absolute binary path and its reported version.
// System mode is disallowed unconditionally on Windows.
func ResolveSystem() (string, Token, error) {
	return resolveSystem(runtime.GOOS, exec.LookPath, systemVersion)
}

// resolveSystem is the testable core of ResolveSystem.
func resolveSystem(goos string, lookPath func(string) (string, error), report func(string) string) (string, Token, error) {
	if goos == "windows" {
		return "", Token{}, &SystemUnsupportedError{}
	}

	path, err := lookPath("bun")
	if err != nil {
		return "", Token{}, &SystemNotFoundError{}
	}

	t, _ := Parse(report(path))
	return path, t, nil
}

// systemVersion runs `bun --version` and returns its trimmed output.
// Errors collapse to an empty string; the caller treats the version as
// informational only.
func systemVersion(binPath string) string {
	out, err := exec.Command(binPath, "--version").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func parseAll(catalog []string) []Token {
	tokens := make([]Token, 0, len(catalog))
	for _, entry := range catalog {
		if t, ok := Parse(entry); ok {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

func contains(catalog []string, t Token) bool {
	for _, entry := range catalog {
		if parsed, ok := Parse(entry); ok && parsed == t {
			return true
		}
	}
	return false
}
