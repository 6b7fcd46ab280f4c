// Package platform detects the host operating system, CPU architecture,
// and C library flavor, normalized to the naming scheme Bun uses for its
// release artifacts.
//
// It uses runtime.GOOS/GOARCH for OS and architecture and gopsutil for
// Linux distribution details, with a dynamic-linker probe as a fallback
// for musl detection. Detection is fail-fast: an OS/arch combination
// with no known Bun artifact mapping is rejected before any network
// call is attempted.
package platform

import "context"

// Libc identifies the C library flavor on Linux hosts.
type Libc string

const (
	// LibcNone is reported on non-Linux hosts.
	LibcNone Libc = ""
	// LibcGlibc is the default on Linux.
	LibcGlibc Libc = "glibc"
	// LibcMusl is reported on musl-based distributions (e.g. Alpine).
	LibcMusl Libc = "musl"
)

// Variant names accepted by the Bun release naming scheme.
const (
	VariantStandard = ""
	VariantBaseline = "baseline"
	VariantProfile  = "profile"
	VariantMusl     = "musl"
)

// Descriptor describes the host in Bun's artifact naming scheme.
// It is derived once per invocation and never mutated.
type Descriptor struct {
	OS   string // "darwin", "linux", "windows"
	Arch string // "x64", "aarch64" (Bun does not use "arm64")
	Libc Libc   // Linux only; LibcNone elsewhere
}

// DefaultVariant returns the variant auto-selected for this host: "musl"
// on musl-libc Linux, the standard variant everywhere else. An explicit
// --variant always wins over this value.
func (d *Descriptor) DefaultVariant() string {
	if d.Libc == LibcMusl {
		return VariantMusl
	}
	return VariantStandard
}

// IsWindows reports whether the host uses the Windows-style layout
// (Scripts/ instead of bin/, .exe binary suffix).
func (d *Descriptor) IsWindows() bool {
	return d.OS == "windows"
}

// Detector is the interface for host platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Descriptor, error)
}
