// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the StudySync domain types shared by the stores,
// the API client and the views.
//
// # Key Types
//
//   - Identity: who is logged in (username and bearer token)
//   - GroupSummary: a study group as listed and selected
//   - LoginCredentials, RegisterCredentials, CreateGroupForm: transient form input
//   - AssistantAnswer: an AI bot reply with its source documents
package model
