package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// MockDetector is a test implementation of Detector.
type MockDetector struct {
	desc *Descriptor
	err  error
}

// NewMockDetector creates a mock detector with fixed return values.
func NewMockDetector(desc *Descriptor, err error) Detector {
	return &MockDetector{desc: desc, err: err}
}

// Detect returns the pre-configured descriptor and error.
func (m *MockDetector) Detect(ctx context.Context) (*Descriptor, error) {
	return m.desc, m.err
}

func TestNormalizeArch(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"amd64", "x64", true},
		{"x86_64", "x64", true},
		{"arm64", "aarch64", true},
		{"aarch64", "aarch64", true},
		{"ARM64", "aarch64", true},
		{"386", "", false},
		{"riscv64", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := normalizeArch(tt.input)
			if ok != tt.ok {
				t.Fatalf("normalizeArch(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("normalizeArch(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDetectNormalizesARM64(t *testing.T) {
	// A host reporting "arm64" must produce "aarch64" - Bun's naming
	// scheme never uses "arm64".
	detector := &HostDetector{goos: "darwin", goarch: "arm64", rootFS: t.TempDir()}

	desc, err := detector.Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if desc.Arch != "aarch64" {
		t.Errorf("Arch = %q, want %q", desc.Arch, "aarch64")
	}
	if desc.Libc != LibcNone {
		t.Errorf("Libc = %q on darwin, want none", desc.Libc)
	}
}

func TestDetectUnsupportedPlatform(t *testing.T) {
	tests := []struct {
		name   string
		goos   string
		goarch string
	}{
		{"unknown arch", "linux", "riscv64"},
		{"unknown os", "plan9", "amd64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detector := &HostDetector{goos: tt.goos, goarch: tt.goarch, rootFS: t.TempDir()}

			_, err := detector.Detect(context.Background())
			var unsupported *UnsupportedError
			if !errors.As(err, &unsupported) {
				t.Fatalf("Detect() error = %v, want UnsupportedError", err)
			}
		})
	}
}

func TestHasMuslLinker(t *testing.T) {
	root := t.TempDir()
	detector := &HostDetector{goos: "linux", goarch: "amd64", rootFS: root}

	if detector.hasMuslLinker() {
		t.Fatal("hasMuslLinker() = true on empty root")
	}

	libDir := filepath.Join(root, "lib")
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(libDir, "ld-musl-x86_64.so.1"), nil, 0o755); err != nil {
		t.Fatal(err)
	}

	if !detector.hasMuslLinker() {
		t.Error("hasMuslLinker() = false with musl linker present")
	}
}

func TestIsMuslDistro(t *testing.T) {
	if !isMuslDistro("alpine", "alpine") {
		t.Error("isMuslDistro(alpine) = false")
	}
	if isMuslDistro("ubuntu", "debian") {
		t.Error("isMuslDistro(ubuntu) = true")
	}
}

func TestDefaultVariant(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want string
	}{
		{"musl host", Descriptor{OS: "linux", Arch: "x64", Libc: LibcMusl}, "musl"},
		{"glibc host", Descriptor{OS: "linux", Arch: "x64", Libc: LibcGlibc}, ""},
		{"darwin host", Descriptor{OS: "darwin", Arch: "aarch64", Libc: LibcNone}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.DefaultVariant(); got != tt.want {
				t.Errorf("DefaultVariant() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRealDetectorOnHost(t *testing.T) {
	if runtime.GOARCH != "amd64" && runtime.GOARCH != "arm64" {
		t.Skip("host architecture has no Bun mapping")
	}

	desc, err := NewDetector().Detect(context.Background())
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if desc.Arch != "x64" && desc.Arch != "aarch64" {
		t.Errorf("Arch = %q, want x64 or aarch64", desc.Arch)
	}
	if runtime.GOOS != "linux" && desc.Libc != LibcNone {
		t.Errorf("Libc = %q on non-Linux, want none", desc.Libc)
	}
	if runtime.GOOS == "linux" && desc.Libc == LibcNone {
		t.Error("Libc should be detected on Linux")
	}
}
