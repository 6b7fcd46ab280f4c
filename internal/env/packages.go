package env

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// ParseRequirements reads a requirements document line by line,
// skipping blank lines and lines beginning with '#'.
func ParseRequirements(r io.Reader) ([]string, error) {
	var packages []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		packages = append(packages, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read requirements: %w", err)
	}

	return packages, nil
}

// ReadRequirementsFile parses the requirements file at path.
func ReadRequirementsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open requirements file: %w", err)
	}
	defer f.Close()
	return ParseRequirements(f)
}

// CommandRunner executes the runtime's package manager. It exists so
// tests can substitute the real subprocess invocation.
type CommandRunner interface {
	Run(ctx context.Context, bin string, args ...string) ([]byte, error)
}

// execRunner runs commands via os/exec with combined output capture.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, bin, args...).CombinedOutput()
}

// InstallPackages installs each package with `bun add -g`, one
// invocation per package so that a failure is attributable to its
// package name.
func InstallPackages(ctx context.Context, runner CommandRunner, bunBin string, packages []string) error {
	for _, pkg := range packages {
		out, err := runner.Run(ctx, bunBin, "add", "-g", pkg)
		if err != nil {
			exitCode := -1
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				exitCode = exitErr.ExitCode()
			}
			return &PackageInstallError{
				Package:  pkg,
				ExitCode: exitCode,
				Output:   strings.TrimSpace(string(out)),
			}
		}
	}
	return nil
}
