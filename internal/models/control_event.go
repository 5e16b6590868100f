package models

import (
	"strings"
	"time"
)

// Journal entry types.
const (
	EventCruise     = "CRUISE"
	EventAccel      = "ACCEL"
	EventConnect    = "CONNECT"
	EventDisconnect = "DISCONNECT"
)

// EventTypes lists every journal entry type.
var EventTypes = []string{EventCruise, EventAccel, EventConnect, EventDisconnect}

// ParseEventType maps s, in any case and with surrounding spaces, to its
// journal type.
func ParseEventType(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, t := range EventTypes {
		if s == t {
			return t, true
		}
	}
	return "", false
}

// ControlEvent is one journal entry: an outbound control message or a
// telemetry connection change.
type ControlEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // CRUISE | ACCEL | CONNECT | DISCONNECT
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
