package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/bunenv/bunenv/internal/config"
	"github.com/bunenv/bunenv/internal/release"
)

// versionsPerRow is how many versions a --list row holds.
const versionsPerRow = 8

// runList prints the available Bun release versions, newest first.
func runList(cmd *cobra.Command, settings config.Settings) error {
	client := release.NewClient(
		release.WithToken(settings.GithubToken),
		release.WithInsecureTLS(settings.IgnoreSSLCerts),
	)

	versions, err := client.FetchVersions(cmd.Context())
	if err != nil {
		return fmt.Errorf("list versions: %w", err)
	}

	printVersionList(cmd.OutOrStdout(), versions, flagQuiet)
	return nil
}

// printVersionList writes the version table. Quiet mode suppresses it
// like any other non-error output.
func printVersionList(w io.Writer, versions []string, quiet bool) {
	if quiet {
		return
	}
	header := color.New(color.Bold)
	header.Fprintln(w, "Available Bun versions:")
	fmt.Fprint(w, formatVersionColumns(versions, versionsPerRow))
}

// formatVersionColumns lays versions out in rows of perRow columns,
// each padded to the longest version's width.
func formatVersionColumns(versions []string, perRow int) string {
	if len(versions) == 0 {
		return ""
	}

	width := 0
	for _, v := range versions {
		if len(v) > width {
			width = len(v)
		}
	}

	var b strings.Builder
	for i, v := range versions {
		if i%perRow == perRow-1 || i == len(versions)-1 {
			b.WriteString(v)
			b.WriteByte('\n')
			continue
		}
		b.WriteString(v)
		b.WriteString(strings.Repeat(" ", width-len(v)+2))
	}
	return b.String()
}
