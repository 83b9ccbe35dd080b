// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cohere provides an optional Cohere chat client for zap.
//
// The client is only constructed when cohere.enabled is set in the config,
// and is only called when a credential is stored. Every failure is returned
// to the caller, which falls back to the canned reply.
package cohere
