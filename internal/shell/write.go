package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// WriteScript writes one rendered script into binDir and marks it
// executable. A file whose current content already contains the new
// content is left untouched; Append adds to the end instead of
// replacing.
func WriteScript(binDir string, script Script) error {
	path := filepath.Join(binDir, script.Name)
	content := []byte(script.Content)

	existing, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if err := os.WriteFile(path, content, 0o755); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("read %s: %w", path, err)
	}

	if bytes.Contains(existing, content) {
		// Content already in place.
		return nil
	}

	if script.Append {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o755)
		if err != nil {
			return fmt.Errorf("open %s for append: %w", path, err)
		}
		defer f.Close()
		if _, err := f.Write(content); err != nil {
			return fmt.Errorf("append to %s: %w", path, err)
		}
		return nil
	}

	if err := os.WriteFile(path, content, 0o755); err != nil {
		return fmt.Errorf("overwrite %s: %w", path, err)
	}
	return nil
}
