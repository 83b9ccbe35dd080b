// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package links opens outbound links for zap.
//
// The system browser is tried first. When it cannot be started (headless
// sessions, SSH) the URL is copied to the clipboard and a notice says so.
// When both fail, the notice carries the URL itself so the user can copy it.
package links

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
)

// Notices returned by Open.
const (
	NoticeCopied = "Couldn't open a browser; link copied to clipboard"
)

// ErrInvalidURL is returned for URLs that are not absolute http(s) links.
var ErrInvalidURL = errors.New("invalid link")

// Opener opens links in the system browser with a clipboard fallback.
type Opener struct {
	openURL  func(string) error
	copyText func(string) error
	logger   *slog.Logger
}

// NewOpener creates an Opener using the system browser and clipboard.
func NewOpener(logger *slog.Logger) *Opener {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	// pkg/browser echoes the launcher's output to the terminal, which would
	// corrupt the TUI.
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Opener{
		openURL:  browser.OpenURL,
		copyText: clipboard.WriteAll,
		logger:   logger,
	}
}

// Open opens rawURL. The notice is empty when the browser was launched.
func (o *Opener) Open(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	openErr := o.openURL(rawURL)
	if openErr == nil {
		o.logger.Debug("opened link", "url", rawURL)
		return "", nil
	}
	o.logger.Debug("browser unavailable", "error", openErr)

	if err := o.copyText(rawURL); err != nil {
		o.logger.Debug("clipboard unavailable", "error", err)
		return "Open " + rawURL, openErr
	}
	return NoticeCopied, nil
}
