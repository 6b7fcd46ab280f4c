package platform

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// HostDetector implements Detector using real host introspection.
type HostDetector struct {
	goos   string
	goarch string
	// rootFS prefixes filesystem probes so tests can fake a root.
	rootFS string
}

// NewDetector creates a detector for the running host.
func NewDetector() Detector {
	return &HostDetector{
		goos:   runtime.GOOS,
		goarch: runtime.GOARCH,
		rootFS: "/",
	}
}

// Detect returns the host descriptor in Bun's artifact naming.
//
// On Linux it additionally probes for musl: gopsutil distribution
// detection first (Alpine and friends), then the dynamic-linker check.
// If gopsutil fails, detection degrades gracefully to the linker probe
// alone; only an unknown OS/arch combination is a hard failure.
func (d *HostDetector) Detect(ctx context.Context) (*Descriptor, error) {
	osName, osOK := normalizeOS(d.goos)
	arch, archOK := normalizeArch(d.goarch)
	if !osOK || !archOK {
		return nil, &UnsupportedError{OS: d.goos, Arch: d.goarch}
	}

	desc := &Descriptor{
		OS:   osName,
		Arch: arch,
		Libc: LibcNone,
	}

	if osName == "linux" {
		desc.Libc = d.detectLibc(ctx)
	}

	return desc, nil
}

// detectLibc classifies the Linux C library.
func (d *HostDetector) detectLibc(ctx context.Context) Libc {
	platformName, family, _, err := host.PlatformInformationWithContext(ctx)
	if err == nil && isMuslDistro(platformName, family) {
		return LibcMusl
	}

	if d.hasMuslLinker() {
		return LibcMusl
	}

	return LibcGlibc
}

// hasMuslLinker checks for a musl dynamic linker (e.g. /lib/ld-musl-x86_64.so.1).
func (d *HostDetector) hasMuslLinker() bool {
	matches, err := filepath.Glob(filepath.Join(d.rootFS, "lib", "ld-musl-*"))
	return err == nil && len(matches) > 0
}

// muslDistros lists distribution identifiers that ship musl as the
// system libc.
var muslDistros = map[string]struct{}{
	"alpine":       {},
	"postmarketos": {},
	"void-musl":    {},
}

func isMuslDistro(platformName, family string) bool {
	for _, name := range []string{platformName, family} {
		if _, ok := muslDistros[strings.ToLower(strings.TrimSpace(name))]; ok {
			return true
		}
	}
	return false
}
