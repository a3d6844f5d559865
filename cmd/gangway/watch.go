package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/utrack/gangway/manifest"
)

// watch reruns whole generations when the manifest or any input changes.
// A failed pass is logged and the loop keeps going; each pass builds its
// own registry, so no state leaks between runs.
func watch(log *zap.SugaredLogger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating watcher")
	}
	defer w.Close()

	m, err := manifest.Load(flagManifest)
	if err != nil {
		return err
	}
	paths, err := watchPaths(m)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			return errors.Wrapf(err, "watching '%v'", p)
		}
	}

	if err := generate(m, log); err != nil {
		log.Errorf("initial generation: %v", err)
	}

	// Editors fire bursts of events per save; coalesce them.
	var debounce *time.Timer
	runs := make(chan struct{}, 1)
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(ev.Name) == filepath.Clean(m.Out) {
				continue
			}
			log.Debugw("input changed", "path", ev.Name)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watcher: %v", err)
		case <-runs:
			m, err = manifest.Load(flagManifest)
			if err != nil {
				log.Errorf("reloading manifest: %v", err)
				continue
			}
			if err := generate(m, log); err != nil {
				log.Errorf("regeneration: %v", err)
			}
		}
	}
}

// watchPaths lists everything a run reads. fsnotify watches are not
// recursive, so the Go source tree is walked and every subdirectory added.
func watchPaths(m *manifest.Manifest) ([]string, error) {
	paths := []string{flagManifest}
	if m.Go != nil {
		dir := m.Go.Dir
		if dir == "" {
			dir = "."
		}
		err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			name := d.Name()
			if p != dir && (strings.HasPrefix(name, ".") || name == "vendor" || name == "node_modules") {
				return fs.SkipDir
			}
			paths = append(paths, p)
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walking '%v'", dir)
		}
	}
	if m.OpenAPI != nil {
		paths = append(paths, m.OpenAPI.File)
	}
	return paths, nil
}
