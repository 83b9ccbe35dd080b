// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import "time"

// =============================================================================
// EVENTS
// =============================================================================

// Event is fed back into Controller.Handle by the host.
type Event interface {
	isEvent()
}

// Offer tracks where a reply sits in the scripts offer chain.
type Offer int

const (
	// OfferNone means the reply is not followed by anything.
	OfferNone Offer = iota

	// OfferPromo means the promo line follows this reply.
	OfferPromo

	// OfferFile means the file offer follows this reply.
	OfferFile
)

// ReplyReady fires when a typing simulation completes.
type ReplyReady struct {
	Text  string
	Offer Offer
}

// PromoDue fires when the scripts promo should start typing.
type PromoDue struct{}

// FileOfferDue fires when the scripts file should be appended.
type FileOfferDue struct{}

// LoadingDone fires when the initial loading screen ends.
type LoadingDone struct{}

// CredentialPromptDue fires when the first-run credential modal should open.
type CredentialPromptDue struct{}

// CompletionResult carries the outcome of a Complete effect.
type CompletionResult struct {
	Text     string
	Err      error
	Fallback string
	Offer    Offer
}

// Notice replaces the status line.
type Notice struct {
	Text string
}

func (ReplyReady) isEvent()          {}
func (PromoDue) isEvent()            {}
func (FileOfferDue) isEvent()        {}
func (LoadingDone) isEvent()         {}
func (CredentialPromptDue) isEvent() {}
func (CompletionResult) isEvent()    {}
func (Notice) isEvent()              {}

// =============================================================================
// EFFECTS
// =============================================================================

// Effect is work the host must perform after an action.
type Effect interface {
	isEffect()
}

// Schedule asks the host to deliver Event after the delay.
type Schedule struct {
	After time.Duration
	Event Event
}

// OpenLink asks the host to open URL in the system browser.
type OpenLink struct {
	URL string
}

// Download asks the host to start the mock download of Name.
type Download struct {
	Name string
}

// SaveCredential asks the host to persist Value under CredentialKey. An
// empty Value clears the stored credential.
type SaveCredential struct {
	Value string
}

// Complete asks the host to run the completer. The result must come back
// as a CompletionResult carrying the same Fallback and Offer.
type Complete struct {
	Prompt     string
	Credential string
	Fallback   string
	Offer      Offer
}

func (Schedule) isEffect()       {}
func (OpenLink) isEffect()       {}
func (Download) isEffect()       {}
func (SaveCredential) isEffect() {}
func (Complete) isEffect()       {}
