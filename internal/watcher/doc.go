// Package watcher reports changes other programs make to watched files.
//
// A FileWatcher collects change notifications and, once things have been
// quiet for the debounce delay, reports the changed paths in one call.
// Watch feeds it from fsnotify. The server directory is watched rather
// than the file itself because saves replace the file by renaming a
// temporary one over it.
//
//	w := watcher.NewWatcher(500*time.Millisecond, func(paths []string) {
//	    broker.Publish(events.Event{Type: events.FileChangedEvent, ...})
//	}, "server.properties")
//	go w.Watch(ctx, serverDir)
package watcher
