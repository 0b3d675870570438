package sync

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	gosync "sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/teranos/uf90/errors"
	"github.com/teranos/uf90/logger"
)

// DefaultDebounce groups bursts of editor writes into one pass.
const DefaultDebounce = 500 * time.Millisecond

// PassFunc receives the outcome of every pass a Watcher runs.
type PassFunc func(Result, error)

// Watcher reruns Project whenever a matching source below root changes.
type Watcher struct {
	root     string
	opts     Options
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onPass   PassFunc

	mu    gosync.Mutex
	timer *time.Timer

	trigger chan struct{}
}

// NewWatcher watches every directory under root. Only writing passes make
// sense here, so DryRun and Check are cleared.
func NewWatcher(root string, opts Options, onPass PassFunc) (*Watcher, error) {
	opts.DryRun = false
	opts.Check = false
	opts = opts.withDefaults()

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		root:     root,
		opts:     opts,
		watcher:  fw,
		debounce: DefaultDebounce,
		onPass:   onPass,
		trigger:  make(chan struct{}, 1),
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

// SetDebounce overrides DefaultDebounce. Call before Run.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Run performs an initial pass, then one pass per debounced burst of
// events until ctx is cancelled. Passes never overlap.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	w.pass(ctx)

	done := make(chan struct{})
	defer close(done)
	go w.watchLoop(done)

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil
		case <-w.trigger:
			w.pass(ctx)
		}
	}
}

func (w *Watcher) pass(ctx context.Context) {
	res, err := Project(ctx, w.root, w.opts)
	if ctx.Err() != nil {
		return
	}
	if w.onPass != nil {
		w.onPass(res, err)
	}
}

func (w *Watcher) watchLoop(done <-chan struct{}) {
	log := w.opts.Logger
	for {
		select {
		case <-done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				// New directories must be watched explicitly.
				if err := w.addTree(event.Name); err != nil {
					log.Debugw("Could not watch new path",
						logger.FieldPath, event.Name,
						logger.FieldError, err.Error())
				}
			}
			if !w.relevant(event) {
				continue
			}

			log.Debugw("Source change detected",
				logger.FieldFile, event.Name,
				logger.FieldOperation, event.Op.String())
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Warnw("File watcher error",
				logger.FieldError, err.Error())
		}
	}
}

// relevant reports whether event touches a selected source file. Removals
// count so that the next pass prunes the manifest.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	ext := strings.ToLower(filepath.Ext(event.Name))
	for _, e := range w.opts.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// schedule restarts the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.trigger <- struct{}{}:
		default:
			// A pass is already queued.
		}
	})
}

// addTree adds path and every directory below it. Non-directories are
// ignored.
func (w *Watcher) addTree(path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return errors.Wrapf(err, "failed to watch %s", p)
		}
		return nil
	})
}
