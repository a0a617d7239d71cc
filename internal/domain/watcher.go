package domain

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	m "github.com/jamjar/jamjar-editor/internal/model"
)

const defaultDebounce = 100 * time.Millisecond

// WatchOptions configures a Watcher.
type WatchOptions struct {
	// ModelPath is the JSON scene model to reload on change.
	ModelPath m.Path
	// ScenePath overrides the scene source path recorded in the model.
	ScenePath m.Path
	// Components are the component sources to re-import on change.
	Components []m.Path
	Debounce   time.Duration
	// OnSave is called after every regeneration attempt.
	OnSave func(SaveResult)
}

// SaveResult reports one regeneration.
type SaveResult struct {
	Path   m.Path
	Source []byte
	Err    error
}

// Watcher regenerates a scene whenever its model or one of its component
// sources changes. Regenerations run one at a time on the Run goroutine.
type Watcher struct {
	session *Session
	opts    WatchOptions
	logger  *zap.Logger
	tracked map[string]bool
}

// NewWatcher creates a Watcher over session.
func NewWatcher(session *Session, opts WatchOptions, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}

	return &Watcher{
		session: session,
		opts:    opts,
		logger:  logger,
		tracked: map[string]bool{},
	}
}

// Run regenerates the scene once, then again after every burst of changes,
// until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start file watcher: %w", err)
	}
	defer fsw.Close()

	// Directories are watched instead of files so editors that replace a
	// file by rename keep being observed.
	dirs := map[string]bool{}
	for _, path := range append([]m.Path{w.opts.ModelPath}, w.opts.Components...) {
		abs, err := filepath.Abs(string(path))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", path, err)
		}

		w.tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w.regenerate(ctx)

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			timer.Reset(w.opts.Debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}

			w.logger.Warn("file watcher error", zap.Error(err))
		case <-timer.C:
			w.regenerate(ctx)
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return w.tracked[abs]
}

func (w *Watcher) regenerate(ctx context.Context) {
	result := SaveResult{}
	result.Source, result.Err = w.save(ctx)
	result.Path = w.session.State().GetScene().Path

	if result.Err != nil {
		w.logger.Error("failed to regenerate scene", zap.Error(result.Err))
	}

	if w.opts.OnSave != nil {
		w.opts.OnSave(result)
	}
}

func (w *Watcher) save(ctx context.Context) ([]byte, error) {
	scene, err := w.session.OpenScene(w.opts.ModelPath)
	if err != nil {
		return nil, err
	}

	if w.opts.ScenePath != "" {
		scene.Path = w.opts.ScenePath
		w.session.State().SetScene(scene)
	}

	if _, err := w.session.ImportComponents(ctx, w.opts.Components...); err != nil {
		return nil, err
	}

	return w.session.SaveScene(ctx)
}
