package ui

import (
	"errors"
	"sync"

	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/skyrig/internal/engine/texture"
	"github.com/Faultbox/skyrig/internal/logger"
)

// DialogResult is a file picked for a texture slot.
type DialogResult struct {
	Slot texture.Slot
	Path string
}

// DialogQueue runs native file dialogs off the render thread and hands the
// results back on the next Drain.
type DialogQueue struct {
	mu      sync.Mutex
	results []DialogResult
	open    bool

	// pick is replaced in tests.
	pick func(slot texture.Slot) (string, error)
}

// NewDialogQueue creates a queue backed by the native file dialog.
func NewDialogQueue() *DialogQueue {
	return &DialogQueue{pick: pickImage}
}

// Open shows a file dialog for slot unless one is already showing.
func (q *DialogQueue) Open(slot texture.Slot) {
	q.mu.Lock()
	if q.open {
		q.mu.Unlock()
		return
	}
	q.open = true
	q.mu.Unlock()

	go func() {
		path, err := q.pick(slot)

		q.mu.Lock()
		defer q.mu.Unlock()
		q.open = false
		if err != nil {
			if !errors.Is(err, dialog.ErrCancelled) {
				logger.Named("ui").Warn("file dialog failed", zap.Error(err))
			}
			return
		}
		q.results = append(q.results, DialogResult{Slot: slot, Path: path})
	}()
}

// Busy reports whether a dialog is showing.
func (q *DialogQueue) Busy() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.open
}

// Drain returns and clears the finished results.
func (q *DialogQueue) Drain() []DialogResult {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.results
	q.results = nil
	return out
}

func pickImage(slot texture.Slot) (string, error) {
	return dialog.File().
		Filter("Images", "png", "jpg", "jpeg", "bmp", "tga").
		Filter("All Files", "*").
		Title("Load " + slot.String() + " texture").
		Load()
}
