// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the authenticated identity for the whole process.
//
// # Key Types
//
//   - Store: identity and bearer token, seeded from durable storage
//   - Watcher: reloads the Store when another process rewrites the session
//   - ChangedMsg: Bubble Tea message sent after a reload changed the identity
//
// # Usage
//
//	store, err := session.NewStore(session.Options{
//	    Storage: kv,
//	    Sealer:  sealer,
//	    Auth:    client,
//	})
//	if store.Login(ctx, creds) {
//	    name, _ := store.Username()
//	}
//
// A Store handle must come from NewStore. Calling any method on a nil
// *Store panics with ErrNoProvider instead of reporting a logged-out user.
//
// Only the username and the (optionally sealed) token are persisted, under
// the keys "username" and "authToken". There is no expiry and no refresh.
package session
