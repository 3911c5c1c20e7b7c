// Copyright 2016 Michael Carlberg & contributors (polybar)

package barctl

import (
	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches the bar's config file and calls onChange (from its
// own goroutine) whenever it is written to, structurally grounded on
// internal/modules/fswatch's own goroutine+channel watch (§4.6 "Config
// watch", scenario E5: a config edit schedules a terminate+reload exactly
// like SIGUSR1 does).
//
// Editors commonly save by writing a temp file and renaming it over the
// original, which replaces the watched inode and leaves inotify's watch
// invalid (IN_IGNORED); ConfigWatcher re-attaches to path when that happens
// instead of silently going dark.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// WatchConfig arms a watch on path.
func WatchConfig(path string, onChange func()) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	cw := &ConfigWatcher{watcher: watcher, done: make(chan struct{})}
	go cw.loop(path, onChange)
	return cw, nil
}

func (cw *ConfigWatcher) loop(path string, onChange func()) {
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				if err := cw.watcher.Add(path); err != nil {
					return
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				onChange()
			}
		case _, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
		case <-cw.done:
			return
		}
	}
}

// Close stops the watch goroutine.
func (cw *ConfigWatcher) Close() {
	close(cw.done)
	cw.watcher.Close()
}
