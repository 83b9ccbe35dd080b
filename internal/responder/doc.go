// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder picks canned replies for user messages.
//
// Replies come from a Pack: an ordered list of keyword rules plus a pool of
// generic fallbacks. The embedded pack is used unless a user pack is loaded
// from YAML.
//
// # Matching
//
// The message is normalised (NFKC, then lower-cased) and each rule is tried
// in declaration order. A rule matches when any of its keywords is a
// substring of the message; the first matching rule wins. When nothing
// matches, a fallback is drawn uniformly at random from the pool using the
// Selector's Source, which tests replace with a fixed one.
//
// # Usage
//
//	sel := responder.New(nil, nil)
//	reply := sel.Select("can you help me")
package responder
