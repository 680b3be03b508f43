package main

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

type Watcher struct {
	mu sync.Mutex

	watchingDirs  map[string]struct{}
	watchingFiles map[string]string

	watcher *fsnotify.Watcher
}

func NewWatcher() (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		watchingDirs:  make(map[string]struct{}),
		watchingFiles: make(map[string]string),
		watcher:       watcher,
	}
	go w.eventLoop()

	return w, nil
}

// WatchFile starts watching path. Directories are watched instead of files
// so editors that replace the file on save are still picked up.
func (w *Watcher) WatchFile(path string) error {
	fullPath, _ := filepath.Abs(path)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.watchingFiles[fullPath] = path

	dir := filepath.Dir(fullPath)
	if _, ok := w.watchingDirs[dir]; ok {
		return nil
	}

	err := w.watcher.Add(dir)
	if err != nil {
		return err
	}

	w.watchingDirs[dir] = struct{}{}

	return nil
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			fname, _ := filepath.Abs(event.Name)

			w.mu.Lock()
			path, ok := w.watchingFiles[fname]
			w.mu.Unlock()

			if !ok {
				continue
			}

			w.fileModified(path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log().Errorf("watcher: %s", err)
		}
	}
}

func (w *Watcher) fileModified(path string) {
	log().Infof("file %q modified, recompiling...", filepath.Base(path))

	if _, err := generateFile(path); err != nil {
		log().Errorf("failed to generate file %q: %s", path, err)
	}
}
