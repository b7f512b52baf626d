package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/hledger-fmt/loader"
)

type WatchCmd struct {
	Format   FormatCmd     `embed:""`
	Debounce time.Duration `default:"100ms" help:"Time to wait for writes to settle before formatting."`
}

func (cmd *WatchCmd) Run(ctx *kong.Context, globals *Globals) error {
	globals.applyColor()

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cmd.watch(runCtx, globals, ctx.Stdout, ctx.Stderr, nil)
}

// watchTargets returns the directories to register with the watcher and
// the explicitly named files to react to. Directories are walked since
// fsnotify does not watch recursively.
func watchTargets(paths []string) (dirs []string, files map[string]bool, err error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	if slices.Contains(paths, loader.StdinPath) {
		return nil, nil, errors.New("cannot watch stdin")
	}

	files = make(map[string]bool)
	seen := make(map[string]bool)
	addDir := func(dir string) {
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			files[filepath.Clean(path)] = true
			addDir(filepath.Dir(path))
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				addDir(p)
			}
			return nil
		})
		if err != nil {
			return nil, nil, err
		}
	}

	return dirs, files, nil
}

// relevant reports whether an event on path should trigger formatting.
func relevant(path string, files map[string]bool) bool {
	if files[filepath.Clean(path)] {
		return true
	}
	return slices.Contains(loader.DefaultExtensions, filepath.Ext(path))
}

// watch formats the configured paths once, then again for every batch of
// changes until ctx is done. Each completed batch is signalled on done when
// it is not nil.
func (cmd *WatchCmd) watch(ctx context.Context, globals *Globals, stdout, stderr io.Writer, done chan<- struct{}) error {
	dirs, files, err := watchTargets(cmd.Format.Paths)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			printError(stderr, fmt.Sprintf("failed to watch %s: %v", dir, err))
		}
	}

	cmd.run(ctx, globals, cmd.Format.Paths, stdout, stderr)
	printInfof(stderr, "Watching %d director%s for changes", len(dirs), plural(len(dirs), "y", "ies"))
	notify(done)

	pending := make(map[string]bool)
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
					continue
				}
			}

			// Atomic saves show up as a Create of the target.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !relevant(event.Name, files) {
				continue
			}

			pending[filepath.Clean(event.Name)] = true
			fire = time.After(cmd.Debounce)

		case <-fire:
			fire = nil

			var changed []string
			for path := range pending {
				if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
					changed = append(changed, path)
				}
			}
			clear(pending)
			slices.Sort(changed)

			if len(changed) > 0 {
				cmd.run(ctx, globals, changed, stdout, stderr)
			}
			notify(done)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(stderr, fmt.Sprintf("file watcher error: %v", err))
		}
	}
}

// run formats paths, reporting failures without stopping the watch.
func (cmd *WatchCmd) run(ctx context.Context, globals *Globals, paths []string, stdout, stderr io.Writer) {
	format := cmd.Format
	format.Paths = paths
	format.Interactive = false

	runCtx, report := globals.startTelemetry(ctx, stderr, "watch")
	defer report()

	var cmdErr *CommandError
	if err := format.execute(runCtx, globals, nil, stdout, stderr); err != nil && !errors.As(err, &cmdErr) {
		printError(stderr, err.Error())
	}
}

func notify(done chan<- struct{}) {
	select {
	case done <- struct{}{}:
	default:
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
