// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides the reusable pieces the StudySync views are
// built from.
//
//   - ToastManager: auto-dismissing notifications (also a session.Notifier)
//   - Field / Form: labelled inputs with inline errors and a submit button
//   - Tabs: a single-row tab strip
//   - RenderNavigator: the top bar
//   - RenderGroupTiles: the group grid
//   - KeyMap: global key bindings and their help
package components
