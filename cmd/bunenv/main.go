// Command bunenv creates isolated Bun runtime environments, modelled
// after Python's virtualenv: a self-contained directory with its own
// Bun binary, package cache, and shell activation scripts.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bunenv/bunenv/internal/config"
	"github.com/bunenv/bunenv/internal/env"
	"github.com/bunenv/bunenv/internal/version"
)

// Version will be set at build time via -ldflags.
var Version = "dev"

var (
	flagBun            string
	flagVariant        string
	flagGithubToken    string
	flagMirror         string
	flagIgnoreSSLCerts bool
	flagRequirements   string
	flagCleanSrc       bool
	flagForce          bool
	flagPrebuilt       bool
	flagUpdate         bool
	flagPythonVenv     bool
	flagPrompt         string
	flagConfigFile     string
	flagVerbose        bool
	flagQuiet          bool
	flagList           bool
)

// flagToKey maps changed CLI flags to their configuration keys. Flags
// absent here (verbosity, --list, --config-file) steer the CLI itself
// and never enter the settings fold.
var flagToKey = map[string]string{
	"bun":               "bun",
	"variant":           "variant",
	"github-token":      "github_token",
	"mirror":            "mirror",
	"ignore_ssl_certs":  "ignore_ssl_certs",
	"requirements":      "requirements",
	"clean-src":         "clean_src",
	"force":             "force",
	"prebuilt":          "prebuilt",
	"update":            "update",
	"python-virtualenv": "python_virtualenv",
	"prompt":            "prompt",
}

var validVariants = map[string]bool{
	"":         true,
	"baseline": true,
	"profile":  true,
	"musl":     true,
}

// usageError marks errors caused by how the tool was invoked rather
// than by the environment it ran in.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

var rootCmd = &cobra.Command{
	Use:   "bunenv [flags] DEST_DIR",
	Short: "Create isolated Bun runtime environments",
	Long: `bunenv creates a virtual environment holding its own Bun runtime,
package cache, and shell activation scripts.

Examples:
  bunenv env                      # Latest Bun release into ./env
  bunenv --bun=1.3.3 env          # A specific version
  bunenv --bun=system env         # Reuse the host bun via a shim
  bunenv -p                       # Into the active Python virtualenv
  bunenv --list                   # Show available versions`,
	RunE:              run,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	DisableAutoGenTag: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagBun, "bun", "b", "", "Bun version to install: an explicit version, \"latest\", or \"system\"")
	flags.StringVar(&flagVariant, "variant", "", "build variant (baseline|profile|musl)")
	flags.StringVar(&flagGithubToken, "github-token", "", "GitHub API token for release queries")
	flags.StringVar(&flagMirror, "mirror", "", "alternative release download base URL")
	flags.BoolVar(&flagIgnoreSSLCerts, "ignore_ssl_certs", false, "skip TLS certificate verification")
	flags.StringVarP(&flagRequirements, "requirements", "r", "", "install packages listed in the given file")
	flags.BoolVarP(&flagCleanSrc, "clean-src", "c", false, "remove src/ after a successful install")
	flags.BoolVar(&flagForce, "force", false, "install into an existing directory")
	flags.BoolVar(&flagPrebuilt, "prebuilt", true, "use prebuilt binaries (always the case for Bun; accepted for compatibility)")
	flags.BoolVar(&flagUpdate, "update", false, "only install packages into an existing environment")
	flags.BoolVarP(&flagPythonVenv, "python-virtualenv", "p", false, "install into the active Python virtualenv")
	flags.StringVar(&flagPrompt, "prompt", "", "custom activation prompt prefix")
	flags.StringVarP(&flagConfigFile, "config-file", "C", "", "config file to read instead of the default search paths; empty disables file config")
	flags.BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&flagQuiet, "quiet", "q", false, "errors only")
	flags.BoolVarP(&flagList, "list", "l", false, "list available Bun versions and exit")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
	rootCmd.Version = Version

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	if flagList {
		return runList(cmd, settings)
	}

	destDir, err := destinationDir(args, settings)
	if err != nil {
		return err
	}

	installer := env.NewInstaller(settings, env.WithLogger(logger))
	if settings.Update {
		return installer.Update(cmd.Context(), destDir)
	}
	return installer.Create(cmd.Context(), destDir)
}

// resolveSettings folds CLI flags, config files, the version file, and
// defaults into the effective settings, highest priority first.
func resolveSettings(cmd *cobra.Command) (config.Settings, error) {
	resolver := config.NewResolver()

	var flagErr error
	cmd.Flags().Visit(func(f *pflag.Flag) {
		key, ok := flagToKey[f.Name]
		if !ok || flagErr != nil {
			return
		}
		if f.Name == "variant" && !validVariants[f.Value.String()] {
			flagErr = &usageError{msg: fmt.Sprintf("invalid variant %q (expected baseline, profile, or musl)", f.Value.String())}
			return
		}
		if err := resolver.Set(key, f.Value.String()); err != nil {
			flagErr = err
		}
	})
	if flagErr != nil {
		return config.Settings{}, flagErr
	}

	if cmd.Flags().Changed("config-file") {
		// An explicit empty path disables file configuration entirely.
		if flagConfigFile != "" {
			if err := resolver.LoadFile(flagConfigFile, true); err != nil {
				return config.Settings{}, err
			}
		}
	} else {
		for _, path := range config.DefaultSearchPaths() {
			if err := resolver.LoadFile(path, false); err != nil {
				return config.Settings{}, err
			}
		}
	}

	if err := resolver.LoadVersionFile("."); err != nil {
		return config.Settings{}, err
	}

	return resolver.Resolve(), nil
}

// destinationDir picks the environment directory from the positional
// argument, or from the active Python virtualenv in -p mode.
func destinationDir(args []string, settings config.Settings) (string, error) {
	if settings.PythonVirtualenv {
		return env.VirtualenvDir()
	}
	if len(args) == 0 {
		return "", &usageError{msg: "missing DEST_DIR argument (or use --python-virtualenv)"}
	}
	return args[0], nil
}

func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	switch {
	case flagVerbose:
		logger.SetLevel(log.DebugLevel)
	case flagQuiet:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	log.SetDefault(logger)
	return logger
}

// exitCode classifies an error: 2 for invocation mistakes and failed
// preconditions (existing environment without --force, no active
// virtualenv for -p), 1 for everything else.
func exitCode(err error) int {
	var (
		usage       *usageError
		exists      *env.AlreadyExistsError
		noVenv      *env.NoActiveVirtualenvError
		invalid     *version.InvalidError
		badValue    *config.ValueError
		missingFile *config.FileNotFoundError
	)
	switch {
	case errors.As(err, &usage),
		errors.As(err, &exists),
		errors.As(err, &noVenv),
		errors.As(err, &invalid),
		errors.As(err, &badValue),
		errors.As(err, &missingFile):
		return 2
	default:
		return 1
	}
}
