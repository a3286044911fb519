package config

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/calegray/siteshell/internal/debounce"
)

// watchDebounce coalesces the bursts of write events editors produce when
// saving a file.
const watchDebounce = 250 * time.Millisecond

// Watcher reloads the configuration when its file changes on disk. A reload
// that fails to parse or validate is discarded and the previous configuration
// stays in effect.
type Watcher struct {
	path      string
	fs        *fsnotify.Watcher
	debouncer *debounce.Debouncer[string]
	done      chan struct{}
}

// Watch starts watching path and calls onReload with each valid new
// configuration. The callback runs on the watcher's goroutine.
func Watch(path string, onReload func(*Config)) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating config watcher: %w", err)
	}

	// Watch the directory, not the file: editors replace files on save and
	// the watch would die with the old inode.
	dir := filepath.Dir(path)
	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	w := &Watcher{path: path, fs: fs, done: make(chan struct{})}
	w.debouncer = debounce.New(watchDebounce, func(string) {
		cfg, err := Load(path)
		if err != nil {
			log.Printf("siteshell: config reload failed, keeping previous: %v", err)
			return
		}
		if err := cfg.Validate(); err != nil {
			log.Printf("siteshell: config reload invalid, keeping previous: %v", err)
			return
		}
		onReload(cfg)
	})

	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	base := filepath.Base(w.path)
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.debouncer.Schedule(ev.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			log.Printf("siteshell: config watcher: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and drops any pending reload.
func (w *Watcher) Close() error {
	close(w.done)
	w.debouncer.Cancel()
	return w.fs.Close()
}
