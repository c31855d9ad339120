// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage provides durable key-value persistence for studysync.
//
// It plays the role browser local storage plays for a web client: a small
// set of string keys that survive restarts and are shared by every
// studysync process of the same user.
//
// # Key Types
//
//   - Store: the key-value contract
//   - FileStore: a single JSON document written atomically (default)
//   - SQLiteStore: a one-table SQLite database (modernc, pure Go)
//   - MemoryStore: process-local store for tests and --ephemeral runs
//
// # Usage
//
//	st, err := storage.Open(cfg.Storage.Backend, path)
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	if err := st.Set("username", "alice"); err != nil { ... }
//	name, err := st.Get("username")
//	if errors.Is(err, storage.ErrNotFound) { ... }
package storage
