// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import "sync"

// =============================================================================
// LOG TYPE
// =============================================================================

// Log is the append-only message thread. Entries keep insertion order and
// are never edited, removed or reordered. A Log is safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	messages []Message
	onAppend []func(Message)
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{messages: make([]Message, 0, 16)}
}

// Append adds msg to the end of the log and notifies subscribers.
func (l *Log) Append(msg Message) {
	msg = msg.clone()

	l.mu.Lock()
	l.messages = append(l.messages, msg)
	subs := l.onAppend
	l.mu.Unlock()

	for _, fn := range subs {
		fn(msg.clone())
	}
}

// OnAppend registers fn to be called after every append. Callbacks run on the
// appending goroutine, outside the log's lock.
func (l *Log) OnAppend(fn func(Message)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onAppend = append(l.onAppend, fn)
}

// Messages returns a snapshot of the log in insertion order.
func (l *Log) Messages() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Message, len(l.messages))
	for i, msg := range l.messages {
		out[i] = msg.clone()
	}
	return out
}

// Len returns the number of messages in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}

// Last returns the newest message, or false if the log is empty.
func (l *Log) Last() (Message, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.messages) == 0 {
		return Message{}, false
	}
	return l.messages[len(l.messages)-1].clone(), true
}

// Files returns the attachment-bearing messages in insertion order.
func (l *Log) Files() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Message
	for _, msg := range l.messages {
		if msg.HasFile() {
			out = append(out, msg.clone())
		}
	}
	return out
}
