// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package links

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpener(openErr, copyErr error) (*Opener, *[]string, *[]string) {
	var opened, copied []string
	o := NewOpener(nil)
	o.openURL = func(u string) error {
		opened = append(opened, u)
		return openErr
	}
	o.copyText = func(s string) error {
		copied = append(copied, s)
		return copyErr
	}
	return o, &opened, &copied
}

func TestOpen_Browser(t *testing.T) {
	o, opened, copied := newTestOpener(nil, nil)

	notice, err := o.Open("https://discord.gg/nn9Gzppq6V")
	require.NoError(t, err)
	assert.Empty(t, notice)
	assert.Equal(t, []string{"https://discord.gg/nn9Gzppq6V"}, *opened)
	assert.Empty(t, *copied)
}

func TestOpen_ClipboardFallback(t *testing.T) {
	o, _, copied := newTestOpener(errors.New("no display"), nil)

	notice, err := o.Open("https://discord.gg/nn9Gzppq6V")
	require.NoError(t, err)
	assert.Equal(t, NoticeCopied, notice)
	assert.Equal(t, []string{"https://discord.gg/nn9Gzppq6V"}, *copied)
}

func TestOpen_BothFail(t *testing.T) {
	o, _, _ := newTestOpener(errors.New("no display"), errors.New("no clipboard"))

	notice, err := o.Open("https://discord.gg/nn9Gzppq6V")
	assert.Error(t, err)
	assert.Equal(t, "Open https://discord.gg/nn9Gzppq6V", notice)
}

func TestOpen_RejectsInvalidURL(t *testing.T) {
	o, opened, _ := newTestOpener(nil, nil)

	for _, u := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "https://"} {
		_, err := o.Open(u)
		assert.ErrorIs(t, err, ErrInvalidURL, u)
	}
	assert.Empty(t, *opened)
}
