package platform

import "fmt"

// UnsupportedError indicates an OS/arch combination with no known Bun
// release artifact.
type UnsupportedError struct {
	OS   string
	Arch string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("unsupported platform: %s/%s (Bun provides binaries for darwin, linux, and windows on x64 and aarch64)", e.OS, e.Arch)
}
