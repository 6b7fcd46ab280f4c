package env

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestParseRequirements(t *testing.T) {
	input := "express\n# comment\n\ntypescript\n"

	packages, err := ParseRequirements(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseRequirements() error = %v", err)
	}

	want := []string{"express", "typescript"}
	if len(packages) != len(want) {
		t.Fatalf("ParseRequirements() = %v, want %v", packages, want)
	}
	for i := range want {
		if packages[i] != want[i] {
			t.Errorf("packages[%d] = %q, want %q", i, packages[i], want[i])
		}
	}
}

func TestParseRequirementsWhitespace(t *testing.T) {
	packages, err := ParseRequirements(strings.NewReader("  lodash  \n\t\n   # indented comment\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(packages) != 1 || packages[0] != "lodash" {
		t.Errorf("ParseRequirements() = %v, want [lodash]", packages)
	}
}

// fakeRunner records invocations and fails on request.
type fakeRunner struct {
	calls  [][]string
	failOn string
}

func (f *fakeRunner) Run(ctx context.Context, bin string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, append([]string{bin}, args...))
	if len(args) > 0 && args[len(args)-1] == f.failOn {
		return []byte("registry unavailable"), fmt.Errorf("exit status 1")
	}
	return []byte("installed"), nil
}

func TestInstallPackages(t *testing.T) {
	runner := &fakeRunner{}

	err := InstallPackages(context.Background(), runner, "/env/bin/bun", []string{"express", "typescript"})
	if err != nil {
		t.Fatalf("InstallPackages() error = %v", err)
	}

	if len(runner.calls) != 2 {
		t.Fatalf("got %d invocations, want one per package", len(runner.calls))
	}
	wantFirst := []string{"/env/bin/bun", "add", "-g", "express"}
	for i, arg := range wantFirst {
		if runner.calls[0][i] != arg {
			t.Errorf("call[0][%d] = %q, want %q", i, runner.calls[0][i], arg)
		}
	}
}

func TestInstallPackagesFailureNamesPackage(t *testing.T) {
	runner := &fakeRunner{failOn: "left-pad"}

	err := InstallPackages(context.Background(), runner, "bun", []string{"express", "left-pad", "typescript"})

	var pkgErr *PackageInstallError
	if !errors.As(err, &pkgErr) {
		t.Fatalf("InstallPackages() error = %v, want PackageInstallError", err)
	}
	if pkgErr.Package != "left-pad" {
		t.Errorf("PackageInstallError.Package = %q, want left-pad", pkgErr.Package)
	}
	if pkgErr.Output != "registry unavailable" {
		t.Errorf("PackageInstallError.Output = %q", pkgErr.Output)
	}
}
