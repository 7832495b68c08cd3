package texture

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/logger"
)

// watchDebounce coalesces the burst of events an editor produces on save.
const watchDebounce = 250 * time.Millisecond

// Watch reloads a slot whenever its resolved asset file changes on disk, until ctx
// is done. URL sources and sources that do not resolve are not watched.
func (l *Loader) Watch(ctx context.Context, src Sources) error {
	paths := make(map[string]Slot)
	for s := Slot(0); s < SlotCount; s++ {
		name := src.get(s)
		if name == "" || isURL(name) {
			continue
		}
		p, err := l.assets.Resolve(name)
		if err != nil {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		paths[p] = s
	}
	if len(paths) == 0 {
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating texture watcher: %w", err)
	}
	watched := make(map[string]bool)
	for p := range paths {
		dir := filepath.Dir(p)
		if watched[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		watched[dir] = true
	}

	go l.watchLoop(ctx, w, paths)
	return nil
}

func (l *Loader) watchLoop(ctx context.Context, w *fsnotify.Watcher, paths map[string]Slot) {
	defer w.Close()
	log := logger.Named("texture")

	pending := make(map[Slot]string)
	timer := time.NewTimer(watchDebounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			name := ev.Name
			if abs, err := filepath.Abs(name); err == nil {
				name = abs
			}
			slot, ok := paths[name]
			if !ok {
				continue
			}
			pending[slot] = name
			timer.Reset(watchDebounce)

		case <-timer.C:
			for slot, p := range pending {
				log.Info("texture changed on disk", zap.Stringer("slot", slot), zap.String("path", p))
				l.Reload(ctx, slot, p)
			}
			clear(pending)

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warn("texture watcher error", zap.Error(err))
		}
	}
}
