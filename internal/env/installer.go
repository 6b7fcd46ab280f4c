// Package env creates isolated Bun runtime environments: it lays out
// the destination directory, downloads and installs the runtime binary,
// writes shell activation scripts, and optionally installs packages.
//
// The creation flow is a strict linear sequence of blocking network and
// filesystem steps with no rollback; a failed run leaves a partial
// directory that a subsequent --force run overwrites cleanly.
package env

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bunenv/bunenv/internal/config"
	"github.com/bunenv/bunenv/internal/platform"
	"github.com/bunenv/bunenv/internal/release"
	"github.com/bunenv/bunenv/internal/shell"
	"github.com/bunenv/bunenv/internal/version"
)

// Installer orchestrates environment creation for one resolved
// configuration.
type Installer struct {
	settings   config.Settings
	logger     *log.Logger
	detector   platform.Detector
	releases   *release.Client
	downloader *Downloader
	runner     CommandRunner
}

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the progress logger.
func WithLogger(logger *log.Logger) Option {
	return func(in *Installer) { in.logger = logger }
}

// WithDetector replaces host platform detection (tests).
func WithDetector(d platform.Detector) Option {
	return func(in *Installer) { in.detector = d }
}

// WithReleaseClient replaces the release catalog client (tests).
func WithReleaseClient(c *release.Client) Option {
	return func(in *Installer) { in.releases = c }
}

// WithRunner replaces the package-manager subprocess runner (tests).
func WithRunner(r CommandRunner) Option {
	return func(in *Installer) { in.runner = r }
}

// NewInstaller creates an installer. All network behavior (token,
// TLS verification, mirror) derives from the resolved settings.
func NewInstaller(settings config.Settings, opts ...Option) *Installer {
	in := &Installer{
		settings: settings,
		logger:   log.Default(),
		detector: platform.NewDetector(),
		releases: release.NewClient(
			release.WithToken(settings.GithubToken),
			release.WithInsecureTLS(settings.IgnoreSSLCerts),
		),
		downloader: NewDownloader(settings.GithubToken, settings.IgnoreSSLCerts),
		runner:     execRunner{},
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Create builds a new Bun environment in destDir.
//
// The steps run in fixed order: preflight, layout creation, version and
// platform resolution, binary acquisition, activation scripts, optional
// package install, optional src cleanup. The preflight performs no
// filesystem writes.
func (in *Installer) Create(ctx context.Context, destDir string) error {
	destDir, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("preflight: %w", err)
	}

	systemMode := version.IsSystem(in.settings.Version)

	// Step 1: preflight, purely observational.
	if !in.settings.PythonVirtualenv {
		if _, err := os.Stat(destDir); err == nil {
			if !in.settings.Force {
				return &AlreadyExistsError{Dir: destDir}
			}
			in.logger.Debug("environment already exists, overwriting", "dir", destDir)
		}
	}

	// Platform detection is local and fails fast, ahead of any
	// network call.
	desc, err := in.detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}
	if systemMode && desc.IsWindows() {
		return &version.SystemUnsupportedError{}
	}

	variant := in.settings.Variant
	if !in.settings.VariantSet {
		variant = desc.DefaultVariant()
	}

	layout := NewLayout(destDir, desc.IsWindows())

	// Step 2: layout creation.
	in.logger.Debug("creating environment layout", "dir", destDir)
	if err := layout.Create(!systemMode); err != nil {
		return fmt.Errorf("create layout: %w", err)
	}

	// Steps 3+4: resolve and acquire the runtime binary. The shim
	// defaults to the environment's own binary; system mode points it at
	// the host bun instead.
	shimTarget := layout.BinaryPath()
	if systemMode {
		shimTarget, err = in.resolveSystemBinary()
		if err != nil {
			return fmt.Errorf("locate system bun: %w", err)
		}
	} else {
		resolved, err := in.resolveVersion(ctx)
		if err != nil {
			return fmt.Errorf("resolve version: %w", err)
		}
		in.logger.Info("installing Bun", "version", resolved, "platform", desc.OS+"-"+desc.Arch, "variant", variant)
		if err := in.installBinary(ctx, layout, desc, resolved, variant); err != nil {
			return fmt.Errorf("install binary: %w", err)
		}
	}

	// Step 5: activation scripts.
	in.logger.Debug("writing activation scripts", "bin", layout.BinDir)
	if err := in.writeActivation(layout, desc, systemMode, shimTarget); err != nil {
		return fmt.Errorf("write activation scripts: %w", err)
	}

	// Step 6: optional package install.
	if in.settings.Requirements != "" {
		if err := in.installRequirements(ctx, layout); err != nil {
			return fmt.Errorf("install packages: %w", err)
		}
	}

	// Step 7: cleanup, after success only, so a failed run stays
	// inspectable.
	if in.settings.CleanSrc && !systemMode {
		in.logger.Debug("removing src directory", "dir", layout.SrcDir)
		if err := os.RemoveAll(layout.SrcDir); err != nil {
			return fmt.Errorf("clean src: %w", err)
		}
	}

	in.logger.Info("environment created", "dir", destDir)
	return nil
}

// Update installs packages into an existing environment without
// touching the runtime binary (--update).
func (in *Installer) Update(ctx context.Context, destDir string) error {
	destDir, err := filepath.Abs(destDir)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	desc, err := in.detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}

	layout := NewLayout(destDir, desc.IsWindows())
	if in.settings.Requirements == "" {
		in.logger.Info("no requirements file configured, nothing to update")
		return nil
	}

	return in.installRequirements(ctx, layout)
}

// resolveVersion turns the configured version token into a concrete
// version string. The catalog is only fetched for "latest"; explicit
// versions resolve without a network round trip.
func (in *Installer) resolveVersion(ctx context.Context) (string, error) {
	var catalog []string
	if strings.EqualFold(in.settings.Version, version.Latest) || in.settings.Version == "" {
		var err error
		catalog, err = in.releases.FetchVersions(ctx)
		if err != nil {
			return "", err
		}
	}

	tok, err := version.Resolve(in.settings.Version, catalog)
	if err != nil {
		return "", err
	}
	return tok.String(), nil
}

// resolveSystemBinary locates the host bun for system mode.
func (in *Installer) resolveSystemBinary() (string, error) {
	path, tok, err := version.ResolveSystem()
	if err != nil {
		return "", err
	}
	in.logger.Info("using system bun", "path", path, "version", tok)
	return path, nil
}

// installBinary downloads, verifies, extracts, and places the runtime
// executable.
func (in *Installer) installBinary(ctx context.Context, layout Layout, desc *platform.Descriptor, versionStr, variant string) error {
	url := release.BinaryURL(versionStr, desc, variant, in.settings.Mirror)
	archivePath := filepath.Join(layout.SrcDir, release.ArchiveName(desc, variant))

	in.logger.Debug("downloading", "url", url)
	if err := in.downloader.DownloadToFile(ctx, url, archivePath); err != nil {
		return err
	}

	if err := in.verifyArchive(ctx, archivePath, versionStr, desc, variant); err != nil {
		return err
	}

	in.logger.Debug("extracting archive", "path", archivePath)
	if err := ExtractZip(archivePath, layout.SrcDir); err != nil {
		return err
	}

	archiveDir := strings.TrimSuffix(release.ArchiveName(desc, variant), ".zip")
	srcBinary, err := FindExtractedBinary(layout.SrcDir, archiveDir, layout.BinaryName)
	if err != nil {
		return err
	}

	in.logger.Debug("installing binary", "path", layout.BinaryPath())
	return CopyBinary(srcBinary, layout.BinaryPath())
}

// verifyArchive checks the download against the release checksum file
// when one is published, and verifies the checksum file's PGP
// signature when a keyring is configured. A release without checksums
// is accepted as-is.
func (in *Installer) verifyArchive(ctx context.Context, archivePath, versionStr string, desc *platform.Descriptor, variant string) error {
	checksums, found, err := in.downloader.FetchOptional(ctx, release.ChecksumURL(versionStr, in.settings.Mirror))
	if err != nil || !found {
		if err != nil {
			in.logger.Debug("checksum file unavailable, skipping verification", "err", err)
		}
		return nil
	}

	if keyring := os.Getenv(KeyringEnvVar); keyring != "" {
		signature, sigFound, err := in.downloader.FetchOptional(ctx, release.SignatureURL(versionStr, in.settings.Mirror))
		if err != nil {
			return err
		}
		if !sigFound {
			return fmt.Errorf("keyring configured but release has no checksum signature")
		}
		if err := VerifySignature(checksums, signature, keyring); err != nil {
			return err
		}
		in.logger.Debug("checksum signature verified")
	}

	verified, err := VerifyChecksum(archivePath, checksums, release.ArchiveName(desc, variant))
	if err != nil {
		return err
	}
	if verified {
		in.logger.Debug("archive checksum verified")
	}
	return nil
}

// writeActivation renders and installs the activation script set.
func (in *Installer) writeActivation(layout Layout, desc *platform.Descriptor, systemMode bool, shimTarget string) error {
	scripts := shell.Render(shell.TemplateData{
		EnvDir:           layout.Root,
		Prompt:           in.settings.Prompt,
		BinDirName:       layout.BinDirName(),
		ShimTarget:       shimTarget,
		Windows:          desc.IsWindows(),
		System:           systemMode,
		PythonVirtualenv: in.settings.PythonVirtualenv,
	})

	for _, script := range scripts {
		if err := shell.WriteScript(layout.BinDir, script); err != nil {
			return err
		}
	}

	if in.settings.PythonVirtualenv && !desc.IsWindows() {
		if err := shell.WriteScript(layout.BinDir, shell.Predeactivate()); err != nil {
			return err
		}
	}

	return nil
}

// installRequirements installs every package named in the requirements
// file via the environment's bun binary.
func (in *Installer) installRequirements(ctx context.Context, layout Layout) error {
	packages, err := ReadRequirementsFile(in.settings.Requirements)
	if err != nil {
		return err
	}

	in.logger.Info("installing packages", "count", len(packages))
	return InstallPackages(ctx, in.runner, layout.BinaryPath(), packages)
}

// VirtualenvDir returns the active Python virtualenv root for
// --python-virtualenv mode.
func VirtualenvDir() (string, error) {
	if dir := os.Getenv("VIRTUAL_ENV"); dir != "" {
		return dir, nil
	}
	if dir := os.Getenv("CONDA_PREFIX"); dir != "" {
		return dir, nil
	}
	return "", &NoActiveVirtualenvError{}
}
