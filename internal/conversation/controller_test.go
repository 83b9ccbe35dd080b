// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/zap-tui/internal/model"
	"github.com/jeranaias/zap-tui/internal/responder"
	"github.com/jeranaias/zap-tui/internal/typing"
)

type fixedSource int

func (f fixedSource) Intn(n int) int { return int(f) % n }

func newTestController(t *testing.T, mutate ...func(*Options)) *Controller {
	t.Helper()
	opts := DefaultOptions()
	opts.Selector = responder.New(nil, fixedSource(0))
	for _, fn := range mutate {
		fn(&opts)
	}
	return New(model.NewLog(), opts)
}

// onlySchedule asserts effects is a single Schedule and returns it.
func onlySchedule(t *testing.T, effects []Effect) Schedule {
	t.Helper()
	require.Len(t, effects, 1)
	sched, ok := effects[0].(Schedule)
	require.True(t, ok, "effect is %T", effects[0])
	return sched
}

// =============================================================================
// SUBMIT
// =============================================================================

func TestSubmit_IgnoresBlankInput(t *testing.T) {
	for _, input := range []string{"", " ", "\t\n", "   \r\n "} {
		c := newTestController(t)
		c.SetInput(input)
		before := c.State()

		effects := c.Submit(input)

		assert.Empty(t, effects)
		assert.Equal(t, 0, c.Log().Len())
		assert.Equal(t, before, c.State())
	}
}

func TestSubmit_AppendsTrimmedUserMessage(t *testing.T) {
	c := newTestController(t)
	c.SetInput("  hello there  ")

	effects := c.Send()

	require.Equal(t, 1, c.Log().Len())
	msg, _ := c.Log().Last()
	assert.Equal(t, model.RoleUser, msg.Role)
	assert.Equal(t, "hello there", msg.Content)
	assert.Equal(t, "", c.State().Input)
	assert.Equal(t, AwaitingReply, c.State().Phase())

	sched := onlySchedule(t, effects)
	ready, ok := sched.Event.(ReplyReady)
	require.True(t, ok)
	assert.Equal(t, typing.Delay(ready.Text), sched.After)
	assert.Equal(t, OfferNone, ready.Offer)
}

func TestSubmit_DiscordCommandOpensConfirm(t *testing.T) {
	for _, input := range []string{"/discord", "/DISCORD", "  /Discord "} {
		c := newTestController(t)

		effects := c.Submit(input)

		assert.Empty(t, effects)
		assert.True(t, c.State().LinkConfirmOpen)
		assert.Equal(t, Idle, c.State().Phase())
		require.Equal(t, 1, c.Log().Len())
		msg, _ := c.Log().Last()
		assert.Equal(t, model.RoleUser, msg.Role)
	}
}

func TestSubmit_QuickFillCommandsAreText(t *testing.T) {
	c := newTestController(t)
	effects := c.Submit("/clone my landing page")

	sched := onlySchedule(t, effects)
	ready := sched.Event.(ReplyReady)
	assert.Contains(t, responder.DefaultPack().Fallbacks, ready.Text)
	assert.False(t, c.State().LinkConfirmOpen)
}

func TestSubmit_ScriptsFlagsOffer(t *testing.T) {
	tests := []struct {
		input string
		offer Offer
	}{
		{"can I download the script", OfferPromo},
		{"scripts?", OfferPromo},
		{"show me code", OfferNone},
		{"download please", OfferNone},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			c := newTestController(t)
			sched := onlySchedule(t, c.Submit(tc.input))
			assert.Equal(t, tc.offer, sched.Event.(ReplyReady).Offer)
		})
	}
}

func TestSubmit_SerializedRejectsWhilePending(t *testing.T) {
	c := newTestController(t)
	require.NotEmpty(t, c.Submit("first"))

	assert.Empty(t, c.Submit("second"))
	assert.Equal(t, 1, c.Log().Len())
	assert.False(t, c.State().CanSend())
}

func TestSubmit_UnserializedAllowsOverlap(t *testing.T) {
	c := newTestController(t, func(o *Options) { o.SerializeReplies = false })
	require.NotEmpty(t, c.Submit("first"))
	require.NotEmpty(t, c.Submit("second"))

	assert.Equal(t, 2, c.Log().Len())
	assert.Equal(t, 2, c.State().Pending)
}

func TestSubmit_UsesCompleterWhenEnabled(t *testing.T) {
	c := newTestController(t, func(o *Options) {
		o.UseCompleter = true
		o.Credential = "key-123"
	})

	effects := c.Submit("write me a script")
	require.Len(t, effects, 1)
	comp, ok := effects[0].(Complete)
	require.True(t, ok)
	assert.Equal(t, "key-123", comp.Credential)
	assert.Equal(t, OfferPromo, comp.Offer)
	assert.True(t, c.State().Typing())

	sched := onlySchedule(t, c.Handle(CompletionResult{Text: "real answer", Offer: comp.Offer, Fallback: comp.Fallback}))
	assert.Equal(t, ReplyReady{Text: "real answer", Offer: OfferPromo}, sched.Event)
}

func TestSubmit_CompleterFailureFallsBack(t *testing.T) {
	c := newTestController(t, func(o *Options) {
		o.UseCompleter = true
		o.Credential = "key-123"
	})

	comp := c.Submit("hello")[0].(Complete)
	sched := onlySchedule(t, c.Handle(CompletionResult{Err: errors.New("boom"), Fallback: comp.Fallback}))
	assert.Equal(t, comp.Fallback, sched.Event.(ReplyReady).Text)
}

func TestSubmit_DemoModeSkipsCompleter(t *testing.T) {
	c := newTestController(t, func(o *Options) { o.UseCompleter = true })
	sched := onlySchedule(t, c.Submit("hello"))
	assert.IsType(t, ReplyReady{}, sched.Event)
}

// =============================================================================
// REPLY CHAIN
// =============================================================================

func TestHandle_ScriptsChain(t *testing.T) {
	c := newTestController(t)
	first := onlySchedule(t, c.Submit("I want a script download"))

	promo := onlySchedule(t, c.Handle(first.Event))
	assert.Equal(t, PromoDelay, promo.After)
	assert.Equal(t, PromoDue{}, promo.Event)
	assert.Equal(t, Idle, c.State().Phase())

	typingPromo := onlySchedule(t, c.Handle(promo.Event))
	assert.True(t, c.State().Typing())
	assert.Equal(t, ReplyReady{Text: "Here's our complete scripts collection! 📁", Offer: OfferFile}, typingPromo.Event)

	file := onlySchedule(t, c.Handle(typingPromo.Event))
	assert.Equal(t, FileOfferDelay, file.After)
	assert.Empty(t, c.Handle(file.Event))

	msgs := c.Log().Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, model.RoleUser, msgs[0].Role)
	assert.Equal(t, "Here's our complete scripts collection! 📁", msgs[2].Content)
	require.True(t, msgs[3].HasFile())
	assert.Equal(t, ScriptsFile, *msgs[3].File)
	assert.Equal(t, "All_Scripts.zip", msgs[3].Content)
}

func TestHandle_TypingSpeedScalesDelays(t *testing.T) {
	c := newTestController(t, func(o *Options) { o.TypingSpeed = 0 })
	first := onlySchedule(t, c.Submit("script"))
	assert.Equal(t, time.Duration(0), first.After)
	assert.Equal(t, time.Duration(0), onlySchedule(t, c.Handle(first.Event)).After)
}

func TestHandle_DroppedAfterClose(t *testing.T) {
	c := newTestController(t)
	sched := onlySchedule(t, c.Submit("hello"))

	c.Close()

	assert.Empty(t, c.Handle(sched.Event))
	assert.Empty(t, c.Handle(FileOfferDue{}))
	assert.Empty(t, c.Submit("again"))
	assert.Equal(t, 1, c.Log().Len())
}

// =============================================================================
// STARTUP
// =============================================================================

func TestStart_PromptsForCredentialWhenMissing(t *testing.T) {
	c := newTestController(t)

	sched := onlySchedule(t, c.Start())
	assert.True(t, c.State().Loading)
	assert.Equal(t, LoadingDelay, sched.After)

	prompt := onlySchedule(t, c.Handle(sched.Event))
	assert.False(t, c.State().Loading)
	assert.Equal(t, CredentialPromptDelay, prompt.After)
	assert.False(t, c.State().CredentialModalOpen)

	c.Handle(prompt.Event)
	assert.True(t, c.State().CredentialModalOpen)
}

func TestStart_NoPromptWithStoredCredential(t *testing.T) {
	c := newTestController(t, func(o *Options) { o.Credential = "saved" })

	sched := onlySchedule(t, c.Start())
	assert.Empty(t, c.Handle(sched.Event))
	assert.False(t, c.State().CredentialModalOpen)
	assert.False(t, c.State().DemoMode())
}

// =============================================================================
// LINK CONFIRMATION
// =============================================================================

func TestConfirmLink(t *testing.T) {
	c := newTestController(t)
	c.Submit("/discord")

	effects := c.ConfirmLink()
	assert.Equal(t, []Effect{OpenLink{URL: DiscordURL}}, effects)
	assert.False(t, c.State().LinkConfirmOpen)
	assert.Equal(t, 1, c.Log().Len())
}

func TestDeclineLink_TypesNoProblemReply(t *testing.T) {
	c := newTestController(t)
	c.Submit("/discord")

	sched := onlySchedule(t, c.DeclineLink())
	assert.False(t, c.State().LinkConfirmOpen)
	assert.True(t, c.State().Typing())

	ready := sched.Event.(ReplyReady)
	assert.Equal(t, responder.DefaultPack().Decline, ready.Text)
	assert.Equal(t, typing.Delay(ready.Text), sched.After)
	assert.Equal(t, 1, c.Log().Len())

	c.Handle(ready)
	require.Equal(t, 2, c.Log().Len())
	msg, _ := c.Log().Last()
	assert.Equal(t, ready.Text, msg.Content)
}

func TestLinkActions_NoopWhenClosed(t *testing.T) {
	c := newTestController(t)
	assert.Empty(t, c.ConfirmLink())
	assert.Empty(t, c.DeclineLink())
}

// =============================================================================
// CREDENTIAL MODAL
// =============================================================================

func TestSaveCredential(t *testing.T) {
	c := newTestController(t)
	c.OpenCredentialModal()
	c.SetCredentialDraft("  abc123  ")

	effects := c.SaveCredential()

	assert.Equal(t, []Effect{SaveCredential{Value: "abc123"}}, effects)
	st := c.State()
	assert.Equal(t, "abc123", st.Credential)
	assert.False(t, st.CredentialModalOpen)
	assert.Equal(t, "", st.CredentialDraft)
	assert.False(t, st.DemoMode())
}

func TestSaveCredential_BlankClosesWithoutStoring(t *testing.T) {
	c := newTestController(t)
	c.OpenCredentialModal()
	c.SetCredentialDraft("   ")

	assert.Empty(t, c.SaveCredential())
	assert.False(t, c.State().CredentialModalOpen)
	assert.True(t, c.State().DemoMode())
}

func TestSkipCredential(t *testing.T) {
	c := newTestController(t)
	c.OpenCredentialModal()
	c.SetCredentialDraft("abc")

	c.SkipCredential()

	st := c.State()
	assert.False(t, st.CredentialModalOpen)
	assert.Equal(t, "", st.CredentialDraft)
	assert.Equal(t, "", st.Credential)
}

func TestClearCredential(t *testing.T) {
	c := newTestController(t, func(o *Options) { o.Credential = "saved" })
	assert.Equal(t, []Effect{SaveCredential{Value: ""}}, c.ClearCredential())
	assert.True(t, c.State().DemoMode())
	assert.Empty(t, c.ClearCredential())
}

// =============================================================================
// HINTS, PALETTE, ATTACHMENTS
// =============================================================================

func TestHints(t *testing.T) {
	c := newTestController(t)
	c.ToggleHints()
	assert.True(t, c.State().HintsOpen)

	c.PickHint(1)
	assert.Equal(t, "Help", c.State().Input)
	assert.False(t, c.State().HintsOpen)

	c.PickHint(9)
	assert.Equal(t, "Help", c.State().Input)
}

func TestPalette(t *testing.T) {
	c := newTestController(t)
	c.TogglePalette()
	assert.True(t, c.State().PaletteOpen)

	c.PickCommand(1)
	assert.Equal(t, "/figma ", c.State().Input)
	assert.False(t, c.State().PaletteOpen)

	c.PickCommand(-1)
	assert.Equal(t, "/figma ", c.State().Input)
}

func TestAttachments(t *testing.T) {
	c := newTestController(t, func(o *Options) {
		o.Selector = responder.New(nil, fixedSource(42))
	})

	assert.Equal(t, "file-42.pdf", c.Attach())
	c.Attach()
	c.Attach()
	require.Len(t, c.State().Attachments, 3)

	c.RemoveAttachment(1)
	c.RemoveAttachment(7)
	assert.Equal(t, []string{"file-42.pdf", "file-42.pdf"}, c.State().Attachments)

	// State returns a copy.
	st := c.State()
	st.Attachments[0] = "mutated"
	assert.Equal(t, "file-42.pdf", c.State().Attachments[0])
}

func TestDownloadFile(t *testing.T) {
	c := newTestController(t)
	assert.Equal(t, []Effect{Download{Name: "All_Scripts.zip"}}, c.DownloadFile("All_Scripts.zip"))
	assert.Empty(t, c.DownloadFile(""))
}

func TestNotice(t *testing.T) {
	c := newTestController(t)
	c.Handle(Notice{Text: "heads up"})
	assert.Equal(t, "heads up", c.State().Notice)
	c.DismissNotice()
	assert.Equal(t, "", c.State().Notice)
}
