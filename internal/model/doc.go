// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the chat thread.
//
// # Key Types
//
//   - Message: Single immutable message with role, content, timestamp and an
//     optional file attachment
//   - Attachment: Display metadata for a file offered in the thread
//   - Log: Append-only, insertion-ordered list of messages
//   - Role: Message sender enumeration (user, assistant)
//
// # Usage
//
//	log := model.NewLog()
//	log.Append(model.NewUserMessage("Hello!"))
//	log.Append(model.NewFileMessage("", model.Attachment{
//	    Name: "All_Scripts.zip",
//	    Type: "ZIP file",
//	    Size: "2.4 MB",
//	}))
//
//	for _, msg := range log.Messages() {
//	    fmt.Println(msg.Role.DisplayName(), msg.Content)
//	}
package model
