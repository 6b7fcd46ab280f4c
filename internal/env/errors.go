package env

import "fmt"

// AlreadyExistsError indicates a pre-existing destination directory
// without --force. The user's recovery path is re-running with --force.
type AlreadyExistsError struct {
	Dir string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("environment already exists: %s (use --force to overwrite)", e.Dir)
}

// NoActiveVirtualenvError indicates --python-virtualenv mode without an
// active Python virtualenv.
type NoActiveVirtualenvError struct{}

func (e *NoActiveVirtualenvError) Error() string {
	return "no python virtualenv is available"
}

// DownloadError indicates a download that failed after exhausting all
// retry attempts; it carries the last underlying error.
type DownloadError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s failed after %d attempts: %v", e.URL, e.Attempts, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ArchiveError indicates a corrupt or unexpected release archive.
type ArchiveError struct {
	Path string
	Err  error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("bad archive %s: %v", e.Path, e.Err)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// PackageInstallError indicates a failed package installation; the
// failing package is always attributable by name.
type PackageInstallError struct {
	Package  string
	ExitCode int
	Output   string
}

func (e *PackageInstallError) Error() string {
	return fmt.Sprintf("install package %q failed with exit code %d", e.Package, e.ExitCode)
}
