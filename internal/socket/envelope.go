package socket

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Envelope is one message on the wire: an event name and an optional JSON
// payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Handler receives the raw payload of one inbound event. Data is nil for
// lifecycle events and zero-payload messages.
type Handler func(data json.RawMessage)

func encode(event string, payload interface{}) ([]byte, error) {
	env := Envelope{Event: event}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %q payload", event)
		}
		env.Data = raw
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %q envelope", event)
	}
	return b, nil
}

func decode(msg []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		return env, errors.Wrap(err, "decode envelope")
	}
	if env.Event == "" {
		return env, errors.New("decode envelope: missing event name")
	}
	return env, nil
}
