// Package loader turns command line paths into parsed journals.
//
// Paths may name journal files, directories (walked recursively for files
// with a journal extension) or "-" for standard input. When include
// following is enabled, files named by include directives are loaded too,
// each one once.
//
// Example usage:
//
//	ldr := loader.New(loader.WithFollowIncludes())
//	files, err := ldr.LoadAll(ctx, []string{"main.journal"})
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/robinvdvleuten/hledger-fmt/ast"
	"github.com/robinvdvleuten/hledger-fmt/parser"
	"github.com/robinvdvleuten/hledger-fmt/telemetry"
	"golang.org/x/sync/errgroup"
)

// StdinPath is the path that reads a journal from standard input.
const StdinPath = "-"

// DefaultExtensions are the file extensions treated as journals when walking
// directories.
var DefaultExtensions = []string{".journal", ".hledger", ".j"}

// ErrNoJournals is returned when discovery finds nothing to format.
var ErrNoJournals = errors.New("no hledger journal files found, ensure they have extensions '.hledger', '.journal' or '.j'")

// ErrStdinWithFiles is returned when "-" is mixed with other paths.
var ErrStdinWithFiles = errors.New("cannot read from stdin and pass files at the same time")

// Loader discovers, reads and parses journal files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithFollowIncludes(), WithJobs(4))
type Loader struct {
	// FollowIncludes determines whether files named by include directives
	// are loaded as well.
	FollowIncludes bool

	// Extensions are matched against file names found while walking
	// directories. Files named explicitly are loaded regardless.
	Extensions []string

	// Jobs bounds the number of files read and parsed at once. Zero or less
	// means no limit.
	Jobs int

	stdin         io.Reader
	parserOptions []parser.Option
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithFollowIncludes configures the loader to load files named by include
// directives. Relative include paths are resolved from the directory of the
// including file and may contain glob patterns.
func WithFollowIncludes() Option {
	return func(l *Loader) {
		l.FollowIncludes = true
	}
}

// WithExtensions replaces the journal extensions matched while walking
// directories.
func WithExtensions(extensions ...string) Option {
	return func(l *Loader) {
		l.Extensions = extensions
	}
}

// WithJobs bounds how many files are loaded concurrently.
func WithJobs(jobs int) Option {
	return func(l *Loader) {
		l.Jobs = jobs
	}
}

// WithStdin sets the reader used for the "-" path.
func WithStdin(r io.Reader) Option {
	return func(l *Loader) {
		l.stdin = r
	}
}

// WithParserOptions sets options passed to the parser for every file.
func WithParserOptions(opts ...parser.Option) Option {
	return func(l *Loader) {
		l.parserOptions = opts
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Extensions: DefaultExtensions,
		stdin:      os.Stdin,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// File is a loaded journal.
//
// Source is set whenever the file could be read, so a syntax error in Err
// can be rendered with context. Document is nil when Err is set.
type File struct {
	Path     string
	Source   []byte
	Document *ast.Document
	Err      error
}

// IsStdin reports whether the file was read from standard input.
func (f *File) IsStdin() bool {
	return f.Path == StdinPath
}

// Discover expands paths into the journal files they name, in the order
// given and without duplicates. With no paths the current directory is
// walked.
func (l *Loader) Discover(ctx context.Context, paths []string) ([]string, error) {
	_, timer := telemetry.StartTimer(ctx, "loader.discover")
	defer timer.End()

	if len(paths) == 0 {
		paths = []string{"."}
	}

	if slices.Contains(paths, StdinPath) {
		if len(paths) > 1 {
			return nil, ErrStdinWithFiles
		}
		return []string{StdinPath}, nil
	}

	var (
		found []string
		seen  = make(map[string]bool)
		errs  []error
	)
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			found = append(found, path)
		}
	}

	for _, path := range paths {
		info, err := os.Lstat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			errs = append(errs, fmt.Errorf("path %q does not exist", path))
		case err != nil:
			errs = append(errs, err)
		case info.Mode()&fs.ModeSymlink != 0:
			errs = append(errs, fmt.Errorf("path %q is a symlink, symbolic links are not supported", path))
		case info.IsDir():
			if err := l.walk(ctx, path, add); err != nil {
				errs = append(errs, err)
			}
		default:
			add(path)
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if len(found) == 0 {
		return nil, ErrNoJournals
	}
	return found, nil
}

func (l *Loader) walk(ctx context.Context, root string, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("failed to walk %s: %w", path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.Type().IsRegular() && l.isJournal(path) {
			add(path)
		}
		return nil
	})
}

func (l *Loader) isJournal(path string) bool {
	return slices.Contains(l.Extensions, filepath.Ext(path))
}

// Load reads and parses a single journal. Read failures are returned as an
// error; syntax errors are reported in File.Err.
func (l *Loader) Load(ctx context.Context, path string) (*File, error) {
	ctx, timer := telemetry.StartTimer(ctx, "loader.load "+path)
	defer timer.End()

	data, err := l.read(path)
	if err != nil {
		return nil, err
	}

	opts := append(slices.Clone(l.parserOptions), parser.WithFilename(path))
	doc, err := parser.New(opts...).Parse(ctx, data)

	return &File{Path: path, Source: data, Document: doc, Err: err}, nil
}

func (l *Loader) read(path string) ([]byte, error) {
	if path == StdinPath {
		data, err := io.ReadAll(l.stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// LoadAll discovers paths and loads every journal concurrently. Files are
// returned in discovery order, followed by included files in the order they
// were first referenced. A file that failed to load carries the failure in
// File.Err; only discovery failures are returned as an error.
func (l *Loader) LoadAll(ctx context.Context, paths []string) ([]*File, error) {
	pending, err := l.Discover(ctx, paths)
	if err != nil {
		return nil, err
	}

	visited := make(map[string]bool)
	for _, path := range pending {
		visited[absolute(path)] = true
	}

	var files []*File
	for len(pending) > 0 {
		batch, err := l.loadBatch(ctx, pending)
		if err != nil {
			return nil, err
		}
		files = append(files, batch...)

		pending = nil
		if !l.FollowIncludes {
			break
		}
		for _, f := range batch {
			for _, path := range Includes(f) {
				if abs := absolute(path); !visited[abs] {
					visited[abs] = true
					pending = append(pending, path)
				}
			}
		}
	}

	return files, nil
}

func (l *Loader) loadBatch(ctx context.Context, paths []string) ([]*File, error) {
	files := make([]*File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if l.Jobs > 0 {
		g.SetLimit(l.Jobs)
	}

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := l.Load(ctx, path)
			if err != nil {
				f = &File{Path: path, Err: err}
			}
			files[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// Includes returns the paths named by the include directives of a parsed
// file, resolved against the file's directory with glob patterns expanded.
// Patterns that match nothing are returned as is so loading them reports the
// missing file.
func Includes(f *File) []string {
	if f.Document == nil || f.IsStdin() {
		return nil
	}

	base := filepath.Dir(f.Path)
	var paths []string
	for _, node := range f.Document.Nodes {
		group, ok := node.(*ast.DirectivesGroup)
		if !ok {
			continue
		}
		for _, n := range group.Nodes {
			d, ok := n.(*ast.Directive)
			if !ok || f.Document.Text(d.Name) != "include" {
				continue
			}
			paths = append(paths, expandInclude(base, f.Document.Text(d.Content))...)
		}
	}
	return paths
}

func expandInclude(base, target string) []string {
	target, ok := journalTarget(target)
	if !ok {
		return nil
	}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(target, "~/") {
		target = filepath.Join(home, target[2:])
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(base, target)
	}

	matches, err := filepath.Glob(target)
	if err != nil || len(matches) == 0 {
		return []string{target}
	}
	return slices.DeleteFunc(matches, func(m string) bool {
		return slices.Contains(foreignExtensions, filepath.Ext(m))
	})
}

// foreignExtensions name files hledger reads with a non-journal reader.
var foreignExtensions = []string{".csv", ".ssv", ".tsv", ".timeclock", ".timedot", ".rules"}

// journalTarget strips a "journal:" style reader prefix from an include
// target. It reports false for targets read with another reader.
func journalTarget(target string) (string, bool) {
	if reader, rest, ok := strings.Cut(target, ":"); ok && len(reader) > 1 && !strings.ContainsAny(reader, `/\.`) {
		if reader != "journal" && reader != "hledger" {
			return "", false
		}
		target = rest
	}
	if target == "" || slices.Contains(foreignExtensions, filepath.Ext(target)) {
		return "", false
	}
	return target, true
}

func absolute(path string) string {
	if path == StdinPath {
		return path
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
