package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/alecthomas/kong"

	journalerrors "github.com/robinvdvleuten/hledger-fmt/errors"
	"github.com/robinvdvleuten/hledger-fmt/formatter"
	"github.com/robinvdvleuten/hledger-fmt/loader"
	"github.com/robinvdvleuten/hledger-fmt/output"
	"github.com/robinvdvleuten/hledger-fmt/parser"
	"github.com/robinvdvleuten/hledger-fmt/width"
)

const (
	// ExitFailure is returned when a file could not be read, parsed or
	// written.
	ExitFailure = 1
	// ExitChanges is returned when files are not formatted and --fix was not
	// given.
	ExitChanges = 2
)

type FormatCmd struct {
	Paths             []string `arg:"" optional:"" help:"Journal files or directories to format. Use '-' for stdin. Defaults to the current directory, searched for .journal, .hledger and .j files."`
	Fix               bool     `help:"Write formatted journals back to their files instead of printing a diff."`
	NoDiff            bool     `help:"Print the formatted journal instead of a diff."`
	Interactive       bool     `short:"i" help:"Show the diff of each file and ask before writing it."`
	ExitZeroOnChanges bool     `help:"Exit with code 0 even when files would be reformatted."`
	EntrySpacing      int      `default:"2" help:"Spaces between posting columns (minimum 2)."`
	DisplayWidth      bool     `help:"Align columns by terminal display width instead of character count."`
	FollowIncludes    bool     `help:"Also format files named by include directives."`
	Jobs              int      `short:"j" default:"0" help:"Number of files parsed concurrently (0 uses all CPUs)."`
	ErrorFormat       string   `enum:"text,json" default:"text" help:"How to report files that cannot be parsed (text or json)."`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	globals.applyColor()

	runCtx, report := globals.startTelemetry(context.Background(), ctx.Stderr, "format")
	defer report()

	return cmd.execute(runCtx, globals, os.Stdin, ctx.Stdout, ctx.Stderr)
}

// formatSummary counts the outcome of a format run.
type formatSummary struct {
	files   int
	changed int
	failed  int
}

func (s formatSummary) err(exitZeroOnChanges bool) error {
	switch {
	case s.failed > 0:
		return NewCommandError(ExitFailure)
	case s.changed > 0 && !exitZeroOnChanges:
		return NewCommandError(ExitChanges)
	}
	return nil
}

func (cmd *FormatCmd) loader(stdin io.Reader) *loader.Loader {
	jobs := cmd.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	opts := []loader.Option{loader.WithJobs(jobs), loader.WithStdin(stdin)}
	if cmd.FollowIncludes {
		opts = append(opts, loader.WithFollowIncludes())
	}
	if cmd.DisplayWidth {
		opts = append(opts, loader.WithParserOptions(parser.WithWidthFunc(width.Display)))
	}
	return loader.New(opts...)
}

// execute formats every journal named by cmd.Paths. Formatted stdin goes to
// stdout, everything else is reported on stderr.
func (cmd *FormatCmd) execute(ctx context.Context, globals *Globals, stdin io.Reader, stdout, stderr io.Writer) error {
	files, err := cmd.loader(stdin).LoadAll(ctx, cmd.Paths)
	if err != nil {
		for _, msg := range strings.Split(err.Error(), "\n") {
			printError(stderr, msg)
		}
		return NewCommandError(ExitFailure)
	}

	run := &formatRun{
		cmd:    cmd,
		styles: globals.styles(stderr),
		stdout: stdout,
		stderr: stderr,
		multi:  len(files) > 1,
	}
	for _, f := range files {
		run.file(ctx, f)
	}

	if len(run.errs) > 0 {
		_, _ = fmt.Fprintln(stderr, journalerrors.NewJSONFormatter().FormatAll(run.errs))
	}

	return run.summary.err(cmd.ExitZeroOnChanges || cmd.Fix)
}

// formatRun holds the state shared by the files of one execution.
type formatRun struct {
	cmd     *FormatCmd
	styles  *output.Styles
	stdout  io.Writer
	stderr  io.Writer
	multi   bool
	printed bool
	summary formatSummary

	// errs collects parse failures reported as JSON after the run.
	errs []error
}

func (r *formatRun) file(ctx context.Context, f *loader.File) {
	r.summary.files++

	if f.Err != nil {
		r.summary.failed++
		if r.cmd.ErrorFormat == "json" {
			r.errs = append(r.errs, f.Err)
			return
		}
		r.separate()
		var syntaxErr *parser.SyntaxError
		if errors.As(f.Err, &syntaxErr) {
			_, _ = fmt.Fprintln(r.stderr, NewErrorRenderer(f.Source).Render(f.Err))
		} else {
			printError(r.stderr, f.Err.Error())
		}
		return
	}

	formatted := formatter.New(
		formatter.WithEntrySpacing(r.cmd.EntrySpacing),
		formatter.WithEstimatedLength(len(f.Source)),
	).FormatBytes(ctx, f.Document)

	if f.IsStdin() {
		_, _ = r.stdout.Write(formatted)
		return
	}

	if bytes.Equal(formatted, f.Source) {
		return
	}
	r.summary.changed++

	switch {
	case r.cmd.Interactive:
		r.separate()
		r.header(f.Path)
		printDiff(r.stderr, r.styles, unifiedDiff(f.Path, f.Source, formatted))
		ok, err := promptYesNo(fmt.Sprintf("Write changes to %s?", f.Path))
		if err != nil {
			r.summary.failed++
			printError(r.stderr, err.Error())
			return
		}
		if ok {
			r.write(f, formatted)
		}

	case r.cmd.Fix:
		r.write(f, formatted)

	case r.cmd.NoDiff:
		r.separate()
		r.header(f.Path)
		_, _ = r.stdout.Write(formatted)

	default:
		r.separate()
		r.header(f.Path)
		printDiff(r.stderr, r.styles, unifiedDiff(f.Path, f.Source, formatted))
	}
}

func (r *formatRun) write(f *loader.File, formatted []byte) {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(f.Path); err == nil {
		mode = info.Mode().Perm()
	}

	if err := os.WriteFile(f.Path, formatted, mode); err != nil {
		r.summary.failed++
		printError(r.stderr, fmt.Sprintf("Error writing file %s: %v", f.Path, err))
		return
	}
	printSuccess(r.stderr, "Formatted "+pathStyle.Render(f.Path))
}

// header names the file about to be printed when more than one file is
// processed.
func (r *formatRun) header(path string) {
	if !r.multi {
		return
	}
	rule := strings.Repeat("=", len(path))
	_, _ = fmt.Fprintf(r.stderr, "%s\n%s\n%s\n", rule, r.styles.FilePath(path), rule)
}

// separate prints a blank line between consecutive reports.
func (r *formatRun) separate() {
	if r.printed {
		_, _ = fmt.Fprintln(r.stderr)
	}
	r.printed = true
}
