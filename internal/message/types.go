// Package message holds the agent-facing view of chat messages and the
// helpers that inspect responses produced for them.
package message

import (
	"github.com/memohai/agentcore/internal/channel"
	"github.com/memohai/agentcore/internal/identity"
)

// ActionNone is the action value meaning no follow-up is required.
const ActionNone = "NONE"

// Content is the payload of a message or agent response.
type Content struct {
	Text   string `json:"text"`
	Action string `json:"action,omitempty"`
}

// Memory is a message or response recorded for a channel.
type Memory struct {
	ID      string            `json:"id"`
	Channel channel.Channel   `json:"channel"`
	Sender  identity.Identity `json:"sender,omitempty"`
	Content Content           `json:"content"`
}
