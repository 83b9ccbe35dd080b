// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/jeranaias/zap-tui/internal/config"
	"github.com/jeranaias/zap-tui/internal/conversation"
)

// EventMsg delivers a controller event from a timer or collaborator.
type EventMsg struct {
	Event conversation.Event
}

// ConfigUpdatedMsg carries a reloaded configuration.
type ConfigUpdatedMsg struct {
	Config *config.Config
}
