// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation drives the chat: it turns user actions into log
// appends and delayed assistant replies.
//
// The Controller is a reducer. Each action mutates its State and returns a
// list of Effects for the host to carry out; timers are expressed as
// Schedule effects whose Event must be handed back to Handle when due. The
// controller itself never sleeps, spawns goroutines or touches the clock,
// so tests drive it deterministically.
//
// Two hosts exist: the bubbletea model in ui/chat turns Schedule into
// tea.Tick, and Session runs effects on a typing.Scheduler for the
// line-mode REPL.
//
// # Reply flow
//
//	Submit("I need a script")
//	  -> user message appended
//	  -> Schedule{Delay(reply), ReplyReady}     typing indicator on
//	ReplyReady  -> reply appended, Schedule{1.5s, PromoDue}
//	PromoDue    -> Schedule{Delay(promo), ReplyReady}
//	ReplyReady  -> promo appended, Schedule{0.5s, FileOfferDue}
//	FileOfferDue -> All_Scripts.zip offer appended
package conversation
