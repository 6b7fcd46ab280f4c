package env

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ExtractZip extracts a Bun release archive into destDir. A file that
// is not a well-formed zip yields an ArchiveError.
func ExtractZip(archivePath, destDir string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return &ArchiveError{Path: archivePath, Err: err}
	}
	defer reader.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	cleanDest := filepath.Clean(destDir) + string(os.PathSeparator)

	for _, file := range reader.File {
		target := filepath.Join(destDir, file.Name)

		// Prevent path traversal out of destDir.
		if !strings.HasPrefix(target, cleanDest) {
			return &ArchiveError{Path: archivePath, Err: fmt.Errorf("illegal file path: %s", file.Name)}
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			continue
		}

		if err := extractFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create parent dir for %s: %w", target, err)
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", file.Name, err)
	}
	defer src.Close()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("create file %s: %w", target, err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write file %s: %w", target, err)
	}

	return out.Close()
}

// FindExtractedBinary locates the runtime executable inside an
// extracted archive. Bun archives hold a single top-level directory
// named after the archive (e.g. bun-linux-x64/); that directory is
// preferred so a stale extraction from an earlier --force run with a
// different variant cannot shadow the fresh one. The glob fallback
// covers archives whose top-level directory is named differently.
func FindExtractedBinary(srcDir, archiveDir, binaryName string) (string, error) {
	preferred := filepath.Join(srcDir, archiveDir, binaryName)
	if _, err := os.Stat(preferred); err == nil {
		return preferred, nil
	}

	matches, err := filepath.Glob(filepath.Join(srcDir, "bun-*"))
	if err != nil {
		return "", fmt.Errorf("scan extracted archive: %w", err)
	}
	if len(matches) == 0 {
		return "", &ArchiveError{Path: srcDir, Err: fmt.Errorf("no extracted bun-* directory found")}
	}

	binaryPath := filepath.Join(matches[0], binaryName)
	if _, err := os.Stat(binaryPath); err != nil {
		return "", &ArchiveError{Path: srcDir, Err: fmt.Errorf("binary %s not found in archive", binaryName)}
	}
	return binaryPath, nil
}

// CopyBinary copies the runtime executable into the environment's bin
// directory and marks it executable.
func CopyBinary(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open binary: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create bin dir: %w", err)
	}

	out, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return fmt.Errorf("create binary: %w", err)
	}

	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("copy binary: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close binary: %w", err)
	}

	return SetExecutable(destPath)
}

// SetExecutable sets 0755 permissions on a file.
func SetExecutable(path string) error {
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
