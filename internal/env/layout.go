package env

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout is the set of paths that make up an environment directory.
// It is created once by the installer and never mutated afterwards
// except by an explicit --force recreation.
type Layout struct {
	// Root is the absolute environment directory.
	Root string
	// BinDir holds the runtime binary and activation scripts:
	// Root/bin, or Root/Scripts on the Windows layout.
	BinDir string
	// InstallDir and CacheDir back Bun's own package cache.
	InstallDir string
	CacheDir   string
	// SrcDir holds extracted download artifacts (removable with
	// --clean-src).
	SrcDir string
	// BinaryName is "bun", or "bun.exe" on Windows.
	BinaryName string
}

// NewLayout computes the layout for a destination directory.
func NewLayout(root string, windows bool) Layout {
	binName := "bin"
	binaryName := "bun"
	if windows {
		binName = "Scripts"
		binaryName = "bun.exe"
	}
	return Layout{
		Root:       root,
		BinDir:     filepath.Join(root, binName),
		InstallDir: filepath.Join(root, "install"),
		CacheDir:   filepath.Join(root, "install", "cache"),
		SrcDir:     filepath.Join(root, "src"),
		BinaryName: filepath.Base(binaryName),
	}
}

// BinaryPath returns the environment-local runtime binary path.
func (l Layout) BinaryPath() string {
	return filepath.Join(l.BinDir, l.BinaryName)
}

// BinDirName returns the base name of the bin directory ("bin" or
// "Scripts"), used as a script substitution value.
func (l Layout) BinDirName() string {
	return filepath.Base(l.BinDir)
}

// Create makes the directory tree. src/ is skipped in system mode,
// which downloads nothing.
func (l Layout) Create(includeSrc bool) error {
	dirs := []string{l.BinDir, l.CacheDir}
	if includeSrc {
		dirs = append(dirs, l.SrcDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}
