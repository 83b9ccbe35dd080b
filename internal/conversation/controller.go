// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jeranaias/zap-tui/internal/model"
	"github.com/jeranaias/zap-tui/internal/responder"
	"github.com/jeranaias/zap-tui/internal/typing"
)

// Fixed delays of the startup and scripts offer flows.
const (
	LoadingDelay          = 2 * time.Second
	CredentialPromptDelay = 1 * time.Second
	PromoDelay            = 1500 * time.Millisecond
	FileOfferDelay        = 500 * time.Millisecond
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures a Controller.
type Options struct {
	// Selector picks canned replies. Nil uses the embedded pack.
	Selector *responder.Selector

	// SerializeReplies rejects submissions while a reply is pending.
	SerializeReplies bool

	// TypingSpeed scales typing and offer delays. Zero makes them instant.
	TypingSpeed float64

	// UseCompleter routes replies through the Completer when a credential
	// is stored.
	UseCompleter bool

	// DiscordURL overrides the community link.
	DiscordURL string

	// Credential is the value loaded from storage at startup.
	Credential string

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// DefaultOptions returns options with serialized replies at normal speed.
func DefaultOptions() Options {
	return Options{
		SerializeReplies: true,
		TypingSpeed:      1.0,
		DiscordURL:       DiscordURL,
	}
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns the message log and UI state. It is not safe for
// concurrent use; hosts serialize calls.
type Controller struct {
	opts   Options
	sel    *responder.Selector
	log    *model.Log
	state  State
	closed bool
	logger *slog.Logger
}

// New creates a controller appending to log.
func New(log *model.Log, opts Options) *Controller {
	if log == nil {
		log = model.NewLog()
	}
	sel := opts.Selector
	if sel == nil {
		sel = responder.New(nil, nil)
	}
	if opts.DiscordURL == "" {
		opts.DiscordURL = DiscordURL
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{
		opts:   opts,
		sel:    sel,
		log:    log,
		logger: logger,
		state: State{
			Credential:       opts.Credential,
			SerializeReplies: opts.SerializeReplies,
		},
	}
}

// State returns a copy of the current UI state.
func (c *Controller) State() State {
	return c.state.clone()
}

// Log returns the message log.
func (c *Controller) Log() *model.Log {
	return c.log
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.closed
}

// Close tears the controller down. Events delivered afterwards are dropped.
func (c *Controller) Close() {
	c.closed = true
}

// SetTypingSpeed changes the delay multiplier for later replies.
func (c *Controller) SetTypingSpeed(speed float64) {
	c.opts.TypingSpeed = speed
}

// SetSerializeReplies toggles whether submissions wait for pending replies.
func (c *Controller) SetSerializeReplies(on bool) {
	c.opts.SerializeReplies = on
	c.state.SerializeReplies = on
}

// =============================================================================
// STARTUP
// =============================================================================

// Start shows the loading screen and schedules its end.
func (c *Controller) Start() []Effect {
	if c.closed {
		return nil
	}
	c.state.Loading = true
	return []Effect{Schedule{After: LoadingDelay, Event: LoadingDone{}}}
}

// =============================================================================
// SUBMISSION
// =============================================================================

// SetInput replaces the input buffer.
func (c *Controller) SetInput(text string) {
	c.state.Input = text
}

// Send submits the current input buffer.
func (c *Controller) Send() []Effect {
	return c.Submit(c.state.Input)
}

// Submit handles a user message. Whitespace-only text is ignored.
func (c *Controller) Submit(text string) []Effect {
	if c.closed {
		return nil
	}
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if c.opts.SerializeReplies && c.state.Typing() {
		c.logger.Debug("submission rejected while reply pending")
		return nil
	}

	c.log.Append(model.NewUserMessage(trimmed))
	c.state.Input = ""
	c.state.HintsOpen = false
	c.state.PaletteOpen = false

	if strings.EqualFold(trimmed, DiscordCommand) {
		c.state.LinkConfirmOpen = true
		return nil
	}

	offer := OfferNone
	if c.sel.WantsScripts(text) {
		offer = OfferPromo
	}
	reply := c.sel.Select(text)

	if c.opts.UseCompleter && c.state.Credential != "" {
		c.state.Pending++
		return []Effect{Complete{
			Prompt:     trimmed,
			Credential: c.state.Credential,
			Fallback:   reply,
			Offer:      offer,
		}}
	}
	return c.simulate(reply, offer)
}

// simulate starts a typing simulation for text.
func (c *Controller) simulate(text string, offer Offer) []Effect {
	c.state.Pending++
	return []Effect{Schedule{
		After: c.scale(typing.Delay(text)),
		Event: ReplyReady{Text: text, Offer: offer},
	}}
}

func (c *Controller) scale(d time.Duration) time.Duration {
	return typing.Scale(d, c.opts.TypingSpeed)
}

// =============================================================================
// EVENTS
// =============================================================================

// Handle applies a timer or collaborator event.
func (c *Controller) Handle(ev Event) []Effect {
	if c.closed {
		c.logger.Debug("event dropped after close", "event", fmt.Sprintf("%T", ev))
		return nil
	}

	switch ev := ev.(type) {
	case ReplyReady:
		return c.handleReplyReady(ev)

	case PromoDue:
		return c.simulate(c.sel.Promo(), OfferFile)

	case FileOfferDue:
		c.log.Append(model.NewFileMessage(ScriptsFile.Name, ScriptsFile))
		return nil

	case LoadingDone:
		c.state.Loading = false
		if c.state.Credential == "" {
			return []Effect{Schedule{After: CredentialPromptDelay, Event: CredentialPromptDue{}}}
		}
		return nil

	case CredentialPromptDue:
		if c.state.Credential == "" {
			c.state.CredentialModalOpen = true
		}
		return nil

	case CompletionResult:
		text := strings.TrimSpace(ev.Text)
		if ev.Err != nil || text == "" {
			if ev.Err != nil {
				c.logger.Warn("completion failed, using canned reply", "error", ev.Err)
			}
			text = ev.Fallback
		}
		// Pending was taken when the Complete effect was issued.
		return []Effect{Schedule{
			After: c.scale(typing.Delay(text)),
			Event: ReplyReady{Text: text, Offer: ev.Offer},
		}}

	case Notice:
		c.state.Notice = ev.Text
		return nil
	}
	return nil
}

func (c *Controller) handleReplyReady(ev ReplyReady) []Effect {
	if c.state.Pending > 0 {
		c.state.Pending--
	}
	c.log.Append(model.NewAssistantMessage(ev.Text))

	switch ev.Offer {
	case OfferPromo:
		return []Effect{Schedule{After: c.scale(PromoDelay), Event: PromoDue{}}}
	case OfferFile:
		return []Effect{Schedule{After: c.scale(FileOfferDelay), Event: FileOfferDue{}}}
	}
	return nil
}

// =============================================================================
// LINK CONFIRMATION
// =============================================================================

// ConfirmLink opens the community link and closes the dialog.
func (c *Controller) ConfirmLink() []Effect {
	if c.closed || !c.state.LinkConfirmOpen {
		return nil
	}
	c.state.LinkConfirmOpen = false
	return []Effect{OpenLink{URL: c.opts.DiscordURL}}
}

// DeclineLink closes the dialog and types the decline reply.
func (c *Controller) DeclineLink() []Effect {
	if c.closed || !c.state.LinkConfirmOpen {
		return nil
	}
	c.state.LinkConfirmOpen = false
	return c.simulate(c.sel.Decline(), OfferNone)
}

// =============================================================================
// CREDENTIAL MODAL
// =============================================================================

// OpenCredentialModal shows the credential modal with an empty draft.
func (c *Controller) OpenCredentialModal() {
	c.state.CredentialModalOpen = true
	c.state.CredentialDraft = ""
}

// SetCredentialDraft replaces the modal's unsaved value.
func (c *Controller) SetCredentialDraft(value string) {
	c.state.CredentialDraft = value
}

// SaveCredential stores the trimmed draft if it is non-empty. The modal
// closes and the draft is cleared either way.
func (c *Controller) SaveCredential() []Effect {
	if c.closed {
		return nil
	}
	value := strings.TrimSpace(c.state.CredentialDraft)
	c.state.CredentialModalOpen = false
	c.state.CredentialDraft = ""
	if value == "" {
		return nil
	}
	c.state.Credential = value
	return []Effect{SaveCredential{Value: value}}
}

// SkipCredential closes the modal without storing anything.
func (c *Controller) SkipCredential() {
	c.state.CredentialModalOpen = false
	c.state.CredentialDraft = ""
}

// ClearCredential forgets the stored credential, returning to demo mode.
func (c *Controller) ClearCredential() []Effect {
	if c.closed || c.state.Credential == "" {
		return nil
	}
	c.state.Credential = ""
	return []Effect{SaveCredential{Value: ""}}
}

// =============================================================================
// HINTS, PALETTE, ATTACHMENTS
// =============================================================================

// ToggleHints opens or closes the hints panel.
func (c *Controller) ToggleHints() {
	c.state.HintsOpen = !c.state.HintsOpen
}

// PickHint fills the input with hint i and closes the panel.
func (c *Controller) PickHint(i int) {
	if i < 0 || i >= len(Hints) {
		return
	}
	c.state.Input = Hints[i]
	c.state.HintsOpen = false
}

// TogglePalette opens or closes the command palette.
func (c *Controller) TogglePalette() {
	c.state.PaletteOpen = !c.state.PaletteOpen
}

// PickCommand fills the input with the suggestion's prefix and closes the
// palette. Commands carry no behavior of their own.
func (c *Controller) PickCommand(i int) {
	if i < 0 || i >= len(Suggestions) {
		return
	}
	c.state.Input = Suggestions[i].Prefix + " "
	c.state.PaletteOpen = false
}

// Attach adds a placeholder file name to the pending attachments.
func (c *Controller) Attach() string {
	name := fmt.Sprintf("file-%d.pdf", c.sel.Intn(1000))
	c.state.Attachments = append(c.state.Attachments, name)
	return name
}

// RemoveAttachment drops attachment i. Out of range indexes are ignored.
func (c *Controller) RemoveAttachment(i int) {
	if i < 0 || i >= len(c.state.Attachments) {
		return
	}
	c.state.Attachments = append(c.state.Attachments[:i:i], c.state.Attachments[i+1:]...)
}

// =============================================================================
// DOWNLOADS
// =============================================================================

// DownloadFile requests the mock download of a file offered in the thread.
func (c *Controller) DownloadFile(name string) []Effect {
	if c.closed || name == "" {
		return nil
	}
	return []Effect{Download{Name: name}}
}

// DismissNotice clears the status line.
func (c *Controller) DismissNotice() {
	c.state.Notice = ""
}
