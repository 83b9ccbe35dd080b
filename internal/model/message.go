// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat thread.
package model

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "zap"
	default:
		return string(r)
	}
}

// =============================================================================
// ATTACHMENT TYPE
// =============================================================================

// Attachment describes a file offered in the thread. All fields are display
// labels; no file content is carried.
type Attachment struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Size string `json:"size"`
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in the thread. Messages are values and
// are never modified after creation.
type Message struct {
	// Identity
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	// Content
	Content string      `json:"content"`
	File    *Attachment `json:"file,omitempty"`
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) Message {
	return Message{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) Message {
	return NewMessage(RoleAssistant, content)
}

// NewFileMessage creates an assistant message carrying a file attachment.
func NewFileMessage(content string, file Attachment) Message {
	msg := NewMessage(RoleAssistant, content)
	msg.File = &file
	return msg
}

// HasFile reports whether the message carries an attachment.
func (m Message) HasFile() bool {
	return m.File != nil
}

// IsUser reports whether the message was sent by the user.
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

// FormatTime returns the timestamp in the short form shown next to messages.
func (m Message) FormatTime() string {
	return m.Timestamp.Format("15:04")
}

// clone returns a copy that shares no pointers with m.
func (m Message) clone() Message {
	if m.File != nil {
		f := *m.File
		m.File = &f
	}
	return m
}

// generateID returns a time-ordered UUIDv7 so IDs sort in creation order.
func generateID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "msg_" + uuid.NewString()
	}
	return "msg_" + id.String()
}
