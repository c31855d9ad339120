// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jeranaias/studysync-tui/internal/model"
	"github.com/jeranaias/studysync-tui/internal/storage"
)

func TestWatcher_ReloadsOnExternalWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "session.json")
	mine, err := storage.NewFileStore(path)
	require.NoError(t, err)
	s := newStore(t, mine, nil, nil)

	w, err := NewWatcher(s, path, 20*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Close()

	// Another process logs in.
	other, err := storage.NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, other.Set(KeyAuthToken, "T9"))
	require.NoError(t, other.Set(KeyUsername, "carol"))

	select {
	case id := <-w.Changes():
		if id != (model.Identity{Username: "carol", Token: "T9"}) {
			t.Errorf("changed identity = %+v", id)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the external login")
	}

	if name, _ := s.Username(); name != "carol" {
		t.Errorf("store username = %q, want carol", name)
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "session.json")
	s := newStore(t, storage.NewMemoryStore(), nil, nil)

	w, err := NewWatcher(s, path, 10*time.Millisecond, nil)
	require.NoError(t, err)

	if !w.relevant(path) || !w.relevant(filepath.Join(dir, "session.json-wal")) {
		t.Error("storage file and sidecars should be relevant")
	}
	if w.relevant(filepath.Join(dir, "config.toml")) {
		t.Error("unrelated file should be ignored")
	}
	require.NoError(t, w.Close())
}

func TestWatcher_CloseStopsWaitForChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "session.json")
	s := newStore(t, storage.NewMemoryStore(), nil, nil)
	w, err := NewWatcher(s, path, 0, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())

	done := make(chan any, 1)
	go func() { done <- w.WaitForChange()() }()

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	select {
	case msg := <-done:
		if msg != nil {
			t.Errorf("WaitForChange after Close = %v, want nil", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("WaitForChange did not return after Close")
	}
}
