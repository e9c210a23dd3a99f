package livereload

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"
)

// Watch polls the given paths for changes and calls hub.Reload when any
// file is added, removed, or modified. Paths may be files or
// directories; directories are walked recursively. Polling keeps the
// watcher portable across filesystems that do not deliver events.
//
// Watch blocks until ctx is cancelled, then returns nil. An interval of
// zero defaults to one second.
func Watch(ctx context.Context, hub *Hub, paths []string, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Second
	}

	previous := snapshot(paths)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			current := snapshot(paths)
			if changed(previous, current) {
				hub.log.Info().Int("files", len(current)).Msg("source change detected")
				hub.Reload()
			}
			previous = current
		}
	}
}

// snapshot records the modification time of every file under the paths.
// Unreadable entries are skipped; files vanish mid-walk during saves.
func snapshot(paths []string) map[string]time.Time {
	times := make(map[string]time.Time)

	for _, root := range paths {
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if info, err := d.Info(); err == nil {
				times[path] = info.ModTime()
			}
			return nil
		})
	}

	return times
}

// changed reports whether any file was added, removed, or modified
// between two snapshots.
func changed(previous, current map[string]time.Time) bool {
	if len(previous) != len(current) {
		return true
	}

	for path, mtime := range current {
		was, ok := previous[path]
		if !ok || !was.Equal(mtime) {
			return true
		}
	}

	return false
}
