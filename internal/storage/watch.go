package storage

import (
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// ProjectWatcher emits a project ID every time its file is created,
// written or removed, so callers can react without polling. Projects can be edited by another process sharing the
// same store directory, e.g. a desktop shell writing alongside the server.
type ProjectWatcher struct {
	watcher *fsnotify.Watcher
	Changed chan string
}

// NewProjectWatcher starts watching dir for .json creates/writes/removes.
func NewProjectWatcher(dir string) (*ProjectWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}

	pw := &ProjectWatcher{watcher: w, Changed: make(chan string, 16)}
	go pw.loop()
	return pw, nil
}

func (pw *ProjectWatcher) loop() {
	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				close(pw.Changed)
				return
			}
			if filepath.Ext(event.Name) != ".json" {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
				continue
			}
			id := strings.TrimSuffix(filepath.Base(event.Name), ".json")
			select {
			case pw.Changed <- id:
			default:
				logrus.WithField("project_id", id).Warn("project watcher channel full, dropping change notification")
			}
		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("project watcher error")
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (pw *ProjectWatcher) Close() error {
	return pw.watcher.Close()
}
