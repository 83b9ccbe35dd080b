// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat provides the full-screen zap chat view.

The Model hosts a conversation.Controller inside the Bubble Tea update loop.
Every controller action returns effects, and effects.go turns each one into
a tea.Cmd: Schedule becomes a tea.Tick that feeds the event back as an
EventMsg, collaborator calls run as commands off the update loop. Because
Bubble Tea serializes Update, the controller needs no locking here.

# Files

	model.go    - Model, Options, New, Init
	update.go   - key routing, component messages, config reloads
	effects.go  - effect execution as tea.Cmd
	view.go     - layout and rendering
	keys.go     - key bindings
	messages.go - tea.Msg types

# Keyboard

	enter    send              ctrl+p   command palette
	ctrl+t   hints             ctrl+a   attach a file
	ctrl+x   remove last file  ctrl+d   download offered file
	ctrl+k   API key           esc      dismiss notice
	pgup/dn  scroll            ctrl+c   quit
*/
package chat
