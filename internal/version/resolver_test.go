package version

import (
	"errors"
	"testing"
)

func TestResolveLatest(t *testing.T) {
	// Catalog order must not matter: the resolver sorts before selecting.
	catalogs := [][]string{
		{"1.3.3", "1.3.2", "1.0.0"},
		{"1.0.0", "1.3.3", "1.3.2"},
		{"1.3.2", "1.0.0", "1.3.3"},
	}

	for _, catalog := range catalogs {
		got, err := Resolve("latest", catalog)
		if err != nil {
			t.Fatalf("Resolve(latest, %v) error = %v", catalog, err)
		}
		if got != (Token{1, 3, 3}) {
			t.Errorf("Resolve(latest, %v) = %v, want 1.3.3", catalog, got)
		}
	}
}

func TestResolveLatestSkipsUnparseable(t *testing.T) {
	got, err := Resolve("latest", []string{"not-a-version", "1.2.0", "canary"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != (Token{1, 2, 0}) {
		t.Errorf("Resolve() = %v, want 1.2.0", got)
	}
}

func TestResolveLatestEmptyCatalog(t *testing.T) {
	_, err := Resolve("latest", nil)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve(latest, nil) error = %v, want NotFoundError", err)
	}
}

func TestResolveExplicit(t *testing.T) {
	catalog := []string{"1.3.3", "1.3.2", "1.0.0"}

	got, err := Resolve("v1.3.2", catalog)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != (Token{1, 3, 2}) {
		t.Errorf("Resolve() = %v, want 1.3.2", got)
	}

	// Without a catalog the membership check is skipped.
	got, err = Resolve("9.9.9", nil)
	if err != nil {
		t.Fatalf("Resolve() without catalog error = %v", err)
	}
	if got != (Token{9, 9, 9}) {
		t.Errorf("Resolve() = %v, want 9.9.9", got)
	}
}

func TestResolveExplicitNotInCatalog(t *testing.T) {
	_, err := Resolve("2.0.0", []string{"1.3.3", "1.3.2"})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Resolve() error = %v, want NotFoundError", err)
	}
}

func TestResolveInvalid(t *testing.T) {
	_, err := Resolve("not-a-version", []string{"1.3.3"})
	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("Resolve() error = %v, want InvalidError", err)
	}
	if invalid.Input != "not-a-version" {
		t.Errorf("InvalidError.Input = %q, want %q", invalid.Input, "not-a-version")
	}
}

func TestResolveSystemWindows(t *testing.T) {
	_, _, err := resolveSystem("windows", nil, nil)
	var unsupported *SystemUnsupportedError
	if !errors.As(err, &unsupported) {
		t.Fatalf("resolveSystem(windows) error = %v, want SystemUnsupportedError", err)
	}
}

func TestResolveSystemNotOnPath(t *testing.T) {
	lookPath := func(string) (string, error) { return "", errors.New("not found") }

	_, _, err := resolveSystem("linux", lookPath, nil)
	var notFound *SystemNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("resolveSystem() error = %v, want SystemNotFoundError", err)
	}
}

func TestResolveSystemFound(t *testing.T) {
	lookPath := func(string) (string, error) { return "/usr/local/bin/bun", nil }
	report := func(string) string { return "1.2.3" }

	path, tok, err := resolveSystem("darwin", lookPath, report)
	if err != nil {
		t.Fatalf("resolveSystem() error = %v", err)
	}
	if path != "/usr/local/bin/bun" {
		t.Errorf("path = %q, want /usr/local/bin/bun", path)
	}
	if tok != (Token{1, 2, 3}) {
		t.Errorf("token = %v, want 1.2.3", tok)
	}
}
