package store

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// GuestPrefix marks anonymous sessions created without a phone number.
const GuestPrefix = "guest-"

// phoneSessionRe matches a 10-digit phone with an optional
// single-letter admin/user suffix.
var phoneSessionRe = regexp.MustCompile(`^\d{10}[a-zA-Z]?$`)

// ChatTurn is one message in a session's conversation history.
type ChatTurn struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the active conversation state held in memory. Sessions
// are owned by the orchestrator; nothing else mutates them. There is
// no persistence across restarts by design.
type Session struct {
	ID            string     `json:"id"`
	History       []ChatTurn `json:"history"`
	LastIntent    string     `json:"last_intent"`
	LastIntentAt  time.Time  `json:"last_intent_at"`
	Authenticated bool       `json:"authenticated"`
	LastActive    time.Time  `json:"last_active"`
}

// ValidateSessionID rejects any session identifier that is neither a
// guest id nor a phone-shaped id. Invalid ids never reach the matching
// core.
func ValidateSessionID(id string) error {
	if strings.HasPrefix(id, GuestPrefix) && len(id) > len(GuestPrefix) {
		return nil
	}
	if phoneSessionRe.MatchString(id) {
		return nil
	}
	return fmt.Errorf("invalid session id: %q", id)
}
