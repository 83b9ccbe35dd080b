// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the visual pieces of the zap chat screen.

Components are small structs with an Update method that consumes key
messages and a View method that renders with the shared styles.Theme. They
never touch the conversation controller; selections are reported as
tea.Msg values that the chat model turns into controller calls:

	PaletteSelectMsg / PaletteCloseMsg   - command palette
	HintSelectMsg / HintsCloseMsg        - hints panel
	LinkConfirmMsg                       - "Leave this site?" dialog
	CredentialSubmitMsg / CredentialSkipMsg - credential modal
	DownloadRequestMsg                   - file card download

Pure renderers (Header, MessageBubble, FileCard, LoadingScreen,
TypingIndicator, StatusLine) take their data as arguments.
*/
package components
