// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"strings"

	"github.com/jeranaias/zap-tui/internal/model"
)

// =============================================================================
// PHASE
// =============================================================================

// Phase is the controller's conversational state.
type Phase int

const (
	// Idle means no assistant reply is in flight.
	Idle Phase = iota

	// AwaitingReply means at least one reply is being typed.
	AwaitingReply
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case AwaitingReply:
		return "AwaitingReply"
	default:
		return "Unknown"
	}
}

// =============================================================================
// STATIC CONTENT
// =============================================================================

// Fixed links.
const (
	DiscordURL   = "https://discord.gg/nn9Gzppq6V"
	DashboardURL = "https://dashboard.cohere.ai/api-keys"
)

// CredentialKey is the storage key the credential is kept under.
const CredentialKey = "cohere_api_key"

// DiscordCommand opens the community link confirmation when submitted.
const DiscordCommand = "/discord"

// ScriptsFile is the attachment offered after a scripts question.
var ScriptsFile = model.Attachment{
	Name: "All_Scripts.zip",
	Type: "ZIP file",
	Size: "2.4 MB",
}

// Suggestion is a command palette entry. Picking one only fills the input.
type Suggestion struct {
	Icon        string
	Label       string
	Description string
	Prefix      string
}

// Suggestions are the command palette entries in display order.
var Suggestions = []Suggestion{
	{Icon: "🖼️", Label: "Clone UI", Description: "Generate a UI from a screenshot", Prefix: "/clone"},
	{Icon: "🎨", Label: "Import Figma", Description: "Import a design from Figma", Prefix: "/figma"},
	{Icon: "📄", Label: "Create Page", Description: "Generate a new web page", Prefix: "/page"},
	{Icon: "✨", Label: "Improve", Description: "Improve existing UI design", Prefix: "/improve"},
	{Icon: "🔗", Label: "Discord", Description: "Join our Discord server", Prefix: DiscordCommand},
}

// Hints are the quick messages offered in the hints panel.
var Hints = []string{"Scripts", "Help", "Hi"}

// =============================================================================
// STATE
// =============================================================================

// State is the controller's UI state. The flags are independent toggles.
type State struct {
	// Input is the current input buffer.
	Input string

	// Pending counts typing simulations in flight.
	Pending int

	// Attachments are the names of files attached to the next message.
	Attachments []string

	// Credential is the stored third-party key; empty means demo mode.
	Credential string

	// CredentialDraft is the unsaved value in the credential modal.
	CredentialDraft string

	Loading             bool
	CredentialModalOpen bool
	LinkConfirmOpen     bool
	HintsOpen           bool
	PaletteOpen         bool

	// Notice is a non-blocking status line, empty when there is nothing to say.
	Notice string

	// SerializeReplies blocks submission while a reply is pending.
	SerializeReplies bool
}

// Phase derives the conversational phase from the pending count.
func (s State) Phase() Phase {
	if s.Pending > 0 {
		return AwaitingReply
	}
	return Idle
}

// Typing reports whether the typing indicator should be shown.
func (s State) Typing() bool {
	return s.Pending > 0
}

// DemoMode reports whether no credential is stored.
func (s State) DemoMode() bool {
	return s.Credential == ""
}

// CanSend reports whether the send affordance is enabled.
func (s State) CanSend() bool {
	if strings.TrimSpace(s.Input) == "" {
		return false
	}
	return !(s.SerializeReplies && s.Typing())
}

// ModalOpen reports whether a modal owns the keyboard.
func (s State) ModalOpen() bool {
	return s.CredentialModalOpen || s.LinkConfirmOpen
}

func (s State) clone() State {
	if s.Attachments != nil {
		s.Attachments = append([]string(nil), s.Attachments...)
	}
	return s
}
