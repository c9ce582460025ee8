package domain

import "time"

// Chat roles as rendered by the UI.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message of the conversation. Turns are display-only data and
// are never part of the financial model.
type Turn struct {
	Role    string
	Content string
	At      time.Time
}
