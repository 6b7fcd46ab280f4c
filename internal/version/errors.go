package version

import "fmt"

// InvalidError indicates a version string that could not be parsed.
type InvalidError struct {
	Input string
}

func (e *InvalidError) Error() string {
	return fmt.Sprintf("invalid version: %q", e.Input)
}

// NotFoundError indicates a version that is not present in the release
// catalog (or an empty catalog when resolving "latest").
type NotFoundError struct {
	Requested string
}

func (e *NotFoundError) Error() string {
	if e.Requested == "" {
		return "no versions available in release catalog"
	}
	return fmt.Sprintf("version %s not found in release catalog", e.Requested)
}

// SystemUnsupportedError indicates that system mode was requested on a
// platform where it is never supported (Windows).
type SystemUnsupportedError struct{}

func (e *SystemUnsupportedError) Error() string {
	return "installing system bun on Windows is not supported"
}

// SystemNotFoundError indicates that system mode was requested but no
// bun executable could be located on PATH.
type SystemNotFoundError struct{}

func (e *SystemNotFoundError) Error() string {
	return "did not find bun system executable on PATH"
}
