// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/zap-tui/internal/conversation"
)

// =============================================================================
// EFFECT EXECUTION
// =============================================================================

// runEffects turns controller effects into commands. Results come back
// through Update as EventMsg values.
func (m Model) runEffects(effects []conversation.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, eff := range effects {
		cmds = append(cmds, m.effectCmd(eff))
	}
	return tea.Batch(cmds...)
}

func (m Model) effectCmd(eff conversation.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case conversation.Schedule:
		ev := eff.Event
		if eff.After <= 0 {
			return func() tea.Msg { return EventMsg{Event: ev} }
		}
		return tea.Tick(eff.After, func(time.Time) tea.Msg {
			return EventMsg{Event: ev}
		})

	case conversation.Complete:
		completer := m.opts.Completer
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), conversation.CompletionTimeout)
			defer cancel()
			text, err := completer.CompleteChat(ctx, eff.Prompt, eff.Credential)
			return EventMsg{Event: conversation.CompletionResult{
				Text:     text,
				Err:      err,
				Fallback: eff.Fallback,
				Offer:    eff.Offer,
			}}
		}

	case conversation.Download:
		downloader, logger := m.opts.Downloader, m.logger
		return func() tea.Msg {
			notice, err := downloader.Download(context.Background(), eff.Name)
			if err != nil {
				logger.Warn("download failed", "file", eff.Name, "error", err)
				notice = conversation.NoticeDownloadFailed
			}
			return EventMsg{Event: conversation.Notice{Text: notice}}
		}

	case conversation.SaveCredential:
		store, logger := m.opts.Store, m.logger
		return func() tea.Msg {
			if store == nil {
				return EventMsg{Event: conversation.Notice{Text: conversation.NoticeStorageUnavailable}}
			}
			if err := store.SaveCredential(context.Background(), eff.Value); err != nil {
				logger.Warn("credential save failed", "error", err)
				return EventMsg{Event: conversation.Notice{Text: conversation.NoticeStorageUnavailable}}
			}
			return nil
		}

	case conversation.OpenLink:
		opener, logger := m.opts.Opener, m.logger
		if opener == nil {
			return nil
		}
		return func() tea.Msg {
			notice, err := opener.Open(eff.URL)
			if err != nil {
				logger.Warn("open link failed", "url", eff.URL, "error", err)
			}
			if notice == "" {
				return nil
			}
			return EventMsg{Event: conversation.Notice{Text: notice}}
		}
	}
	return nil
}
