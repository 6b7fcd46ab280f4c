package platform

import "strings"

// archMap maps host architecture reports to Bun's artifact naming.
// Both Go-style and uname-style spellings are accepted; Bun's scheme
// uses "x64" and "aarch64" exclusively.
var archMap = map[string]string{
	"amd64":   "x64",
	"x86_64":  "x64",
	"arm64":   "aarch64",
	"aarch64": "aarch64",
}

// osMap maps host OS reports to Bun's artifact naming.
var osMap = map[string]string{
	"darwin":  "darwin",
	"linux":   "linux",
	"windows": "windows",
}

// normalizeArch converts a host architecture string to Bun's naming.
func normalizeArch(arch string) (string, bool) {
	normalized, ok := archMap[strings.ToLower(strings.TrimSpace(arch))]
	return normalized, ok
}

// normalizeOS converts a host OS string to Bun's naming.
func normalizeOS(goos string) (string, bool) {
	normalized, ok := osMap[strings.ToLower(strings.TrimSpace(goos))]
	return normalized, ok
}
