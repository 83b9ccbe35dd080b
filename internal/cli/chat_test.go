// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/jeranaias/zap-tui/internal/conversation"
	"github.com/jeranaias/zap-tui/internal/responder"
	"github.com/jeranaias/zap-tui/internal/storage"
	"github.com/jeranaias/zap-tui/internal/typing"
)

// scriptedReader replays lines and records the pre-filled text of each
// prompt.
type scriptedReader struct {
	lines     []string
	passwords []string
	initials  []string
}

func (r *scriptedReader) Prompt(prompt, initial string) (string, error) {
	r.initials = append(r.initials, initial)
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) PasswordPrompt(prompt string) (string, error) {
	if len(r.passwords) == 0 {
		return "", io.EOF
	}
	p := r.passwords[0]
	r.passwords = r.passwords[1:]
	return p, nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type recordingOpener struct {
	mu   sync.Mutex
	urls []string
}

func (o *recordingOpener) Open(url string) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return "", nil
}

func runChat(t *testing.T, in *scriptedReader, deps conversation.Deps) (*conversation.Session, string) {
	t.Helper()
	opts := conversation.DefaultOptions()
	opts.TypingSpeed = 0
	opts.Selector = responder.New(nil, responder.NewSource(3))
	sess := conversation.NewSession(conversation.New(nil, opts), typing.RealScheduler{}, deps)
	t.Cleanup(sess.Close)

	out := &syncBuffer{}
	if err := NewChat(sess, in, out).Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	return sess, out.String()
}

func TestChat_PrintsReply(t *testing.T) {
	_, out := runChat(t, &scriptedReader{lines: []string{"who are you"}}, conversation.Deps{})

	if !strings.Contains(out, "Final Site") {
		t.Error("welcome banner missing")
	}
	if !strings.Contains(out, "I'm Zap") {
		t.Errorf("reply missing from output:\n%s", out)
	}
	if strings.Contains(out, "who are you\n") {
		t.Error("user messages should not be echoed")
	}
}

func TestChat_ScriptsOfferAndDownload(t *testing.T) {
	sess, out := runChat(t, &scriptedReader{lines: []string{"any scripts?", "/download"}}, conversation.Deps{})

	if sess.Controller().Log().Len() != 4 {
		t.Errorf("log length = %d, want 4", sess.Controller().Log().Len())
	}
	promo := strings.Index(out, "Here's our complete scripts collection!")
	file := strings.Index(out, "📁 All_Scripts.zip")
	if promo < 0 || file < 0 || file < promo {
		t.Errorf("promo then file expected in order:\n%s", out)
	}
	if !strings.Contains(out, "Download started: All_Scripts.zip") {
		t.Errorf("download notice missing:\n%s", out)
	}
}

func TestChat_HintPrefillsNextPrompt(t *testing.T) {
	in := &scriptedReader{lines: []string{"/hints", "2"}}
	sess, _ := runChat(t, in, conversation.Deps{})

	// welcome prompt, pick prompt, then the prompt pre-filled with the hint
	if len(in.initials) < 3 || in.initials[2] != "Help" {
		t.Errorf("prompt initials = %q, want third to be Help", in.initials)
	}
	if sess.State().HintsOpen {
		t.Error("hints should close after a pick")
	}
}

func TestChat_PaletteCancel(t *testing.T) {
	in := &scriptedReader{lines: []string{"/palette", ""}}
	sess, out := runChat(t, in, conversation.Deps{})

	if !strings.Contains(out, "Clone UI") {
		t.Error("palette entries not listed")
	}
	if sess.State().PaletteOpen {
		t.Error("palette should close on cancel")
	}
	if in.initials[2] != "" {
		t.Errorf("cancelled pick should not pre-fill, got %q", in.initials[2])
	}
}

func TestChat_DiscordDecline(t *testing.T) {
	opener := &recordingOpener{}
	_, out := runChat(t, &scriptedReader{lines: []string{"/discord", "n"}}, conversation.Deps{Opener: opener})

	if !strings.Contains(out, "No problem!") {
		t.Errorf("decline reply missing:\n%s", out)
	}
	if len(opener.urls) != 0 {
		t.Errorf("link opened on decline: %v", opener.urls)
	}
}

func TestChat_DiscordConfirm(t *testing.T) {
	opener := &recordingOpener{}
	sess, _ := runChat(t, &scriptedReader{lines: []string{"/DISCORD", "yes"}}, conversation.Deps{Opener: opener})

	if len(opener.urls) != 1 || opener.urls[0] != conversation.DiscordURL {
		t.Errorf("opened urls = %v", opener.urls)
	}
	if sess.Controller().Log().Len() != 1 {
		t.Errorf("confirm should add no reply, log length = %d", sess.Controller().Log().Len())
	}
}

func TestChat_AttachDetach(t *testing.T) {
	sess, out := runChat(t, &scriptedReader{lines: []string{"/attach", "/attach", "/detach 1", "/detach 9"}}, conversation.Deps{})

	if n := len(sess.State().Attachments); n != 1 {
		t.Errorf("attachments = %d, want 1", n)
	}
	if !strings.Contains(out, "no attachment 9") {
		t.Errorf("out of range detach should report an error:\n%s", out)
	}
}

func TestChat_KeySet(t *testing.T) {
	creds := storage.NewCredentials(storage.NewMemory())
	in := &scriptedReader{lines: []string{"/key"}, passwords: []string{"  sk-test  "}}
	sess, out := runChat(t, in, conversation.Deps{Store: creds})

	if sess.State().Credential != "sk-test" {
		t.Errorf("credential = %q", sess.State().Credential)
	}
	if got, _ := creds.Load(context.Background()); got != "sk-test" {
		t.Errorf("stored = %q", got)
	}
	if !strings.Contains(out, "AI enabled") {
		t.Errorf("confirmation missing:\n%s", out)
	}
}

func TestChat_KeySkip(t *testing.T) {
	creds := storage.NewCredentials(storage.NewMemory())
	in := &scriptedReader{lines: []string{"/key"}, passwords: []string{""}}
	sess, out := runChat(t, in, conversation.Deps{Store: creds})

	if !sess.State().DemoMode() || sess.State().CredentialModalOpen {
		t.Errorf("state after skip = %+v", sess.State())
	}
	if !strings.Contains(out, "Still in demo mode") {
		t.Errorf("skip message missing:\n%s", out)
	}
}

func TestChat_QuitStopsReading(t *testing.T) {
	in := &scriptedReader{lines: []string{"/quit", "hello"}}
	sess, _ := runChat(t, in, conversation.Deps{})

	if sess.Controller().Log().Len() != 0 {
		t.Error("nothing should be submitted after /quit")
	}
	if len(in.lines) != 1 {
		t.Errorf("remaining lines = %d, want 1", len(in.lines))
	}
}

func TestChat_UnknownSlashIsSent(t *testing.T) {
	sess, _ := runChat(t, &scriptedReader{lines: []string{"/clone a login page"}}, conversation.Deps{})

	msgs := sess.Controller().Log().Messages()
	if len(msgs) != 2 || msgs[0].Content != "/clone a login page" {
		t.Errorf("palette prefix should be submitted as a message, got %d messages", len(msgs))
	}
}
