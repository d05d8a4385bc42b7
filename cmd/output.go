package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/lipgloss"
	syncpkg "github.com/okrause/tmplsync/pkg/sync"
	"github.com/urfave/cli/v3"
)

var (
	styleUpToDate = lipgloss.NewStyle().Faint(true)
	styleUpdated  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleWould    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleMissing  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	styleFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

func isVerbose(cmd *cli.Command) bool {
	if cmd == nil {
		return false
	}
	if cmd.Bool("verbose") {
		return true
	}
	root := cmd.Root()
	return root != nil && root.Bool("verbose")
}

// newLogger returns a debug logger on stderr when --verbose is set, and a
// discarding logger otherwise.
func newLogger(cmd *cli.Command) *slog.Logger {
	if !isVerbose(cmd) {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func renderReport(w io.Writer, report syncpkg.Report) {
	for _, res := range report.Results {
		switch res.Outcome {
		case syncpkg.OutcomeUpToDate:
			fmt.Fprintln(w, styleUpToDate.Render("  = "+res.Entry.String()+" (up to date)"))
		case syncpkg.OutcomeUpdated:
			fmt.Fprintln(w, styleUpdated.Render("  + "+res.Entry.String()+" (updated)"))
		case syncpkg.OutcomeWouldUpdate:
			fmt.Fprintln(w, styleWould.Render("  ~ "+res.Entry.String()+" (would update)"))
		case syncpkg.OutcomeSourceMissing:
			fmt.Fprintln(w, styleMissing.Render("  ? "+res.Entry.String()+" (missing in template)"))
		case syncpkg.OutcomeFailed:
			fmt.Fprintln(w, styleFailed.Render("  ! "+res.Entry.String()+" ("+res.Err.Error()+")"))
		}
	}

	if report.DryRun {
		fmt.Fprintf(w, "%d item(s) would be updated (dry run)\n", report.Updated)
		return
	}
	fmt.Fprintf(w, "%d item(s) updated\n", report.Updated)
}
