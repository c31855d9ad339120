// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/jeranaias/studysync-tui/internal/model"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 150 * time.Millisecond

// ChangedMsg is sent to the TUI after another process changed the session.
type ChangedMsg struct {
	Identity model.Identity
}

// Watcher reloads a Store when its storage file changes on disk, so a
// `studysync login` in another terminal shows up in a running TUI.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	target   string
	debounce time.Duration
	logger   *slog.Logger

	changes chan model.Identity
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	once    sync.Once
}

// NewWatcher creates a watcher for the storage file at path. Call Start to
// begin watching and Close to stop.
func NewWatcher(store *Store, path string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	store.mustProvide()
	if path == "" {
		return nil, errors.New("session: watcher needs an on-disk storage path")
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("session: create watcher: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		store:    store,
		watcher:  fw,
		target:   filepath.Clean(path),
		debounce: debounce,
		logger:   logger.With("component", "session-watcher"),
		changes:  make(chan model.Identity, 1),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// Start watches the directory holding the storage file. The directory is
// watched rather than the file because writes replace the file by rename.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(filepath.Dir(w.target)); err != nil {
		return fmt.Errorf("session: watch %s: %w", filepath.Dir(w.target), err)
	}
	w.wg.Add(1)
	go w.run()
	return nil
}

// Changes delivers the new identity after each reload that changed it.
// Only the latest pending change is kept.
func (w *Watcher) Changes() <-chan model.Identity {
	return w.changes
}

// WaitForChange returns a command that blocks until the next change.
// Re-issue it after each ChangedMsg.
func (w *Watcher) WaitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case id := <-w.changes:
			return ChangedMsg{Identity: id}
		case <-w.ctx.Done():
			return nil
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		w.cancel()
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

// relevant reports whether name belongs to the storage file, including
// SQLite sidecars such as session.db-wal.
func (w *Watcher) relevant(name string) bool {
	name = filepath.Clean(name)
	if name == w.target {
		return true
	}
	return filepath.Dir(name) == filepath.Dir(w.target) &&
		strings.HasPrefix(filepath.Base(name), filepath.Base(w.target))
}

func (w *Watcher) run() {
	defer w.wg.Done()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	changed, err := w.store.Reload()
	if err != nil {
		w.logger.Warn("reload failed", "error", err)
		return
	}
	if !changed {
		return
	}

	id := w.store.Snapshot()
	// Drop a stale pending value so the receiver always sees the latest.
	select {
	case <-w.changes:
	default:
	}
	select {
	case w.changes <- id:
	default:
	}
}
