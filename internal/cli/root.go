// Package cli implements the changeset command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/version"
)

// Command group IDs for help output.
const (
	GroupCore = "core"
	GroupInfo = "info"
)

var (
	configPathFlag string
	changesDirFlag string
	plainFlag      bool
	verboseFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "changeset",
	Short: "Aggregate change fragments into a versioned changelog document",
	Long: `changeset collects small, independently authored change fragment files
and batches them into a single versioned changelog document: fragments are
grouped into kind sections with issue/PR links, and contributors are credited
in a footer that excludes the configured core team.`,
	Example: `  changeset batch 1.5.0            # Write .changeset/1.5.0.md from unreleased fragments
  changeset batch 1.5.0 --dry-run  # Print the document instead of writing it
  changeset preview                # Render unreleased fragments in the terminal
  changeset preview --watch        # Re-render whenever fragment files change
  changeset kinds                  # List configured change kinds`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupInfo, Title: "Info Commands:"},
	)

	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to project config (default .changeset/config.yml)")
	rootCmd.PersistentFlags().StringVar(&changesDirFlag, "changes-dir", "", "Directory holding fragment files (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&plainFlag, "plain", false, "Plain text output (no colors)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
}

// Execute runs the root command and prints structured errors to stderr.
// The returned error carries the process exit code via ExitCode.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if _, isExit := err.(*ExitError); isExit {
		// Diagnostics were already printed by the command.
		return err
	}

	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		if plainFlag {
			fmt.Fprint(os.Stderr, apperrors.FormatErrorPlain(cliErr))
		} else {
			fmt.Fprint(os.Stderr, apperrors.FormatError(cliErr))
		}
		return err
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	return err
}
