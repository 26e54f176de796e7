package source

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the identifier of every record file that is
// created, rewritten or removed in the store directory. It blocks until ctx is
// done, then returns nil.
//
// Combined with Cached.Invalidate it keeps a cache in step with an external
// producer:
//
//	cached := source.NewCached(files, time.Hour)
//	go files.Watch(ctx, cached.Invalidate)
func (f *JSONFile) Watch(ctx context.Context, onChange func(identifier string)) error {
	if err := ensureDir(f.dir); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(f.dir); err != nil {
		return errors.Wrapf(err, "watch %s", f.dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if identifier, ok := identifierFromPath(event.Name); ok {
				onChange(identifier)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errors.Wrap(err, "watch store directory")
		}
	}
}

// identifierFromPath maps <dir>/<identifier>.json back to identifier. Temporary
// files of in-flight writes are ignored.
func identifierFromPath(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, ".json") {
		return "", false
	}
	identifier := strings.TrimSuffix(base, ".json")
	return identifier, identifier != ""
}
