package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	apperrors "github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/store"
)

var (
	batchOutFlag    string
	batchDateFlag   string
	batchDryRunFlag bool
)

var batchCmd = &cobra.Command{
	Use:   "batch <version>",
	Short: "Batch unreleased fragments into a versioned changelog document",
	Long: `Batch all unreleased change fragments into a single versioned changelog
document: a version header, kind sections in configured order, and a
contributor footer excluding the core team.

By default the document is written to <changes-dir>/<version>.md. Use
--dry-run to print it to stdout instead, or --out to choose the output path.

All fragments are validated before anything is rendered; an unknown kind or
a missing required field aborts the batch without partial output.

Examples:
  changeset batch 1.5.0
  changeset batch 1.5.0 --date 2023-04-27
  changeset batch 1.5.0 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, args[0])
	},
}

func init() {
	batchCmd.GroupID = GroupCore
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchOutFlag, "out", "", "Output path (default <changes-dir>/<version>.md)")
	batchCmd.Flags().StringVar(&batchDateFlag, "date", "", "Release date as YYYY-MM-DD (default today)")
	batchCmd.Flags().BoolVar(&batchDryRunFlag, "dry-run", false, "Print the document instead of writing it")
}

func runBatch(cmd *cobra.Command, ver string) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	date, err := resolveReleaseDate(batchDateFlag)
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	frags, err := store.New(cfg.ChangesDir).Unreleased(cmd.Context())
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "loading fragments",
			"Check the fragment files under "+cfg.ChangesDir+"/"+store.UnreleasedDirName)
	}

	doc, err := pipeline.Generate(frags, ver, date)
	if err != nil {
		if msg, ok := fragmentErrorMessage(err); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return NewExitError(ExitValidationFailed)
		}
		return err
	}

	if batchDryRunFlag {
		fmt.Fprint(cmd.OutOrStdout(), doc)
		return nil
	}

	out := batchOutFlag
	if out == "" {
		out = filepath.Join(cfg.ChangesDir, ver+".md")
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s (%d fragments)\n", out, len(frags))
	return nil
}

// resolveReleaseDate parses the --date flag, defaulting to today. The flag
// exists so the output is reproducible in CI.
func resolveReleaseDate(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now(), nil
	}
	date, err := time.Parse("2006-01-02", flag)
	if err != nil {
		return time.Time{}, apperrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("invalid --date value %q", flag),
			"changeset batch <version> --date YYYY-MM-DD")
	}
	return date, nil
}
