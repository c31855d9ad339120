// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the studysync packages.
//
// # Key Functions
//
//   - AtomicWriteFile: crash-safe file replacement used by config and storage
//   - TruncateWidth, PadRight: display-width aware string fitting for tiles
//     and CLI tables
//   - TruncateRunes: rune-safe truncation for form length caps
//
// # Usage
//
//	err := util.AtomicWriteFile(path, data, 0600)
//	label := util.TruncateWidth(group.Name, 24)
package util
