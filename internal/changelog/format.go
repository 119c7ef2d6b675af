package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and separators
	MaxWidth int  // Maximum separator width (0 = auto-detect)
}

var (
	headerStyle  = color.New(color.FgGreen, color.Bold).SprintFunc()
	sectionStyle = color.New(color.FgCyan, color.Bold).SprintFunc()
	handleStyle  = color.New(color.FgYellow).SprintFunc()
	dimStyle     = color.New(color.Faint).SprintFunc()
)

// FormatTerminal writes a release and its contributors to the writer with
// terminal styling: colored version header and section labels, and a dim
// separator sized to the terminal width. With Plain set it degrades to the
// exact composed document text.
func FormatTerminal(rel *Release, contributors []Contributor, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := io.WriteString(w, Composer{}.Compose(rel, contributors))
		return err
	}

	width := resolveWidth(opts.MaxWidth)

	if _, err := fmt.Fprintf(w, "%s\n%s\n", headerStyle(rel.Header), dimStyle(strings.Repeat("─", width))); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, section := range rel.Sections {
		if _, err := fmt.Fprintf(w, "\n%s\n", sectionStyle("### "+section.Label)); err != nil {
			return fmt.Errorf("writing section %s: %w", section.Label, err)
		}
		for _, line := range section.Lines {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	if len(contributors) == 0 {
		return nil
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", sectionStyle("### Contributors")); err != nil {
		return fmt.Errorf("writing contributors heading: %w", err)
	}
	for _, contrib := range contributors {
		line := fmt.Sprintf("- %s (%s)", handleStyle("@"+contrib.Handle), strings.Join(contrib.Links, ", "))
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	return nil
}

// resolveWidth returns the separator width: the explicit maximum when set,
// otherwise the terminal width capped at 100, with 80 as the fallback.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		if width > 100 {
			return 100
		}
		return width
	}
	return 80
}
