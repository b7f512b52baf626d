package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/robinvdvleuten/hledger-fmt/output"
	"github.com/robinvdvleuten/hledger-fmt/telemetry"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = ""

	// CommitSHA contains the SHA of the commit that this application was built
	// against. It's set via ldflags when building.
	CommitSHA = ""
)

// Globals defines global flags available to all commands.
type Globals struct {
	Telemetry bool `help:"Show timing telemetry for operations."`
	NoColor   bool `help:"Disable colored output. Also disabled when NO_COLOR is set."`
}

type Commands struct {
	Globals

	Format FormatCmd `cmd:"" default:"withargs" help:"Format hledger journal files (default command)."`
	Watch  WatchCmd  `cmd:"" help:"Watch journal files and format them whenever they change."`
	Doctor DoctorCmd `cmd:"" help:"Doctor utilities for debugging journal files."`
}

func (g *Globals) colorDisabled() bool {
	return g.NoColor || os.Getenv("NO_COLOR") != ""
}

// applyColor switches the status helpers to plain text when colors are
// disabled.
func (g *Globals) applyColor() {
	if g.colorDisabled() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// styles returns the styles for w, honoring the color settings.
func (g *Globals) styles(w io.Writer) *output.Styles {
	if g.colorDisabled() {
		return output.NewPlainStyles(w)
	}
	return output.NewStyles(w)
}

// startTelemetry attaches a timing collector to ctx when telemetry is
// enabled. The returned function ends the root timer and prints the report.
func (g *Globals) startTelemetry(ctx context.Context, w io.Writer, name string) (context.Context, func()) {
	if !g.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector(telemetry.WithStyles(g.styles(w)))
	ctx = telemetry.WithCollector(ctx, collector)
	ctx, timer := telemetry.StartTimer(ctx, name)

	return ctx, func() {
		timer.End()
		_, _ = fmt.Fprintln(w)
		collector.Report(w)
	}
}
