// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package conversation

import (
	"context"
	"errors"
	"fmt"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotImplemented is returned by collaborators that are placeholders.
	ErrNotImplemented = errors.New("not implemented")
)

// =============================================================================
// COLLABORATOR INTERFACES
// =============================================================================

// Downloader starts the download of a file offered in the thread and returns
// a notice for the status line.
type Downloader interface {
	Download(ctx context.Context, name string) (string, error)
}

// Completer produces a reply for prompt using an external service.
type Completer interface {
	CompleteChat(ctx context.Context, prompt, credential string) (string, error)
}

// CredentialStore persists the credential. An empty value clears it.
type CredentialStore interface {
	SaveCredential(ctx context.Context, value string) error
}

// LinkOpener opens a URL outside the app. A non-empty notice tells the user
// what happened when the link could not be opened directly.
type LinkOpener interface {
	Open(url string) (notice string, err error)
}

// =============================================================================
// PLACEHOLDERS
// =============================================================================

// MockDownloader pretends to download. No bytes are fetched or written.
type MockDownloader struct{}

// Download returns a notice naming the file.
func (MockDownloader) Download(ctx context.Context, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Download started: %s", name), nil
}

// NoopCompleter never produces a reply.
type NoopCompleter struct{}

// CompleteChat always returns ErrNotImplemented.
func (NoopCompleter) CompleteChat(ctx context.Context, prompt, credential string) (string, error) {
	return "", ErrNotImplemented
}
