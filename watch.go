package main

import (
	"context"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

const quietPeriod = 125 * time.Millisecond

// fileWatcher re-runs a file once it has stopped changing. Only files named
// on the command line are re-run; other files in their directories are
// ignored, which also covers editor swap and backup files.
type fileWatcher struct {
	opts     *options
	w        io.Writer
	interval time.Duration
	// watched maps absolute paths to the names the files were given as.
	watched map[string]string
	// pending holds one timer per watched name. Timers only report on
	// fired; the loop goroutine does all the work.
	pending map[string]*time.Timer
	fired   chan string
}

func newFileWatcher(opts *options, names []string, w io.Writer) (*fileWatcher, error) {
	fw := &fileWatcher{
		opts:     opts,
		w:        w,
		interval: quietPeriod,
		watched:  make(map[string]string, len(names)),
		pending:  map[string]*time.Timer{},
		fired:    make(chan string),
	}
	for _, name := range names {
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %s", name)
		}
		fw.watched[abs] = name
	}
	return fw, nil
}

// dirs are watched instead of the files so editors that save by rename are
// still seen.
func (fw *fileWatcher) dirs() []string {
	seen := map[string]bool{}
	var dirs []string
	for abs := range fw.watched {
		dir := filepath.Dir(abs)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	sort.Strings(dirs)
	return dirs
}

// watch re-runs the named files whenever one of them is written, until ctx
// is done.
func watch(ctx context.Context, opts *options, names []string, w io.Writer) error {
	fw, err := newFileWatcher(opts, names, w)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating fsnotify watcher")
	}
	defer watcher.Close()

	for _, dir := range fw.dirs() {
		if err := watcher.Add(dir); err != nil {
			return errors.Wrapf(err, "watching %s", dir)
		}
		opts.log.WithField("dir", dir).Debug("watching")
	}

	fw.loop(ctx, watcher.Events, watcher.Errors)
	return nil
}

// loop returns when ctx is done or either channel is closed.
func (fw *fileWatcher) loop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) {
	defer fw.stop()
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errs:
			if !ok {
				return
			}
			fw.opts.log.WithError(err).Warn("file watch error")
		case ev, ok := <-events:
			if !ok {
				return
			}
			fw.schedule(ctx, ev)
		case name := <-fw.fired:
			delete(fw.pending, name)
			fw.rerun(ctx, name)
		}
	}
}

// schedule starts or pushes back the timer of the file ev is about.
func (fw *fileWatcher) schedule(ctx context.Context, ev fsnotify.Event) {
	name, ok := fw.watched[ev.Name]
	if !ok || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
		return
	}
	if t, ok := fw.pending[name]; ok {
		t.Reset(fw.interval)
		return
	}
	fw.pending[name] = time.AfterFunc(fw.interval, func() {
		select {
		case fw.fired <- name:
		case <-ctx.Done():
		}
	})
}

func (fw *fileWatcher) rerun(ctx context.Context, name string) {
	fw.opts.log.WithField("file", name).Info("change detected, re-running")
	if err := run(ctx, fw.opts, []string{name}, fw.w); err != nil {
		fw.opts.log.WithError(err).Error("re-run failed")
	}
}

func (fw *fileWatcher) stop() {
	for name, t := range fw.pending {
		t.Stop()
		delete(fw.pending, name)
	}
}
