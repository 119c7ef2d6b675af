package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/raveheart1/changeset/internal/changelog"
	apperrors "github.com/raveheart1/changeset/internal/errors"
	"github.com/raveheart1/changeset/internal/store"
)

// previewVersionLabel is the placeholder version shown for unbatched fragments.
const previewVersionLabel = "Unreleased"

var previewWatchFlag bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render unreleased fragments in the terminal",
	Long: `Render the unreleased fragments as they would appear in the next batched
document, with terminal styling. Use --plain for the exact document text.

With --watch, the preview re-renders whenever fragment files under the
unreleased directory change. Press Ctrl+C to stop watching.

Examples:
  changeset preview
  changeset preview --plain
  changeset preview --watch`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreview(cmd)
	},
}

func init() {
	previewCmd.GroupID = GroupCore
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().BoolVar(&previewWatchFlag, "watch", false, "Re-render when fragment files change")
}

func runPreview(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return err
	}

	st := store.New(cfg.ChangesDir)

	if !previewWatchFlag {
		return renderPreview(cmd, st, pipeline)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := renderPreview(cmd, st, pipeline); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "\nWatching %s for changes (Ctrl+C to stop)\n", st.UnreleasedDir())

	return st.Watch(ctx, store.DefaultDebounce, func() {
		fmt.Fprintln(cmd.OutOrStdout())
		// A render failure mid-watch is reported but does not stop the
		// watch; the next edit may fix the offending fragment.
		if err := renderPreview(cmd, st, pipeline); err != nil {
			var exitErr *ExitError
			if !errors.As(err, &exitErr) {
				fmt.Fprintf(cmd.ErrOrStderr(), "preview: %v\n", err)
			}
		}
	})
}

func renderPreview(cmd *cobra.Command, st *store.Store, pipeline *changelog.Pipeline) error {
	frags, err := st.Unreleased(cmd.Context())
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "loading fragments")
	}

	rel, err := pipeline.Assemble(frags, previewVersionLabel, time.Now())
	if err != nil {
		if msg, ok := fragmentErrorMessage(err); ok {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
			return NewExitError(ExitValidationFailed)
		}
		return err
	}

	return changelog.FormatTerminal(rel, pipeline.Contributors(frags), cmd.OutOrStdout(), changelog.FormatOptions{
		Plain: plainFlag,
	})
}
