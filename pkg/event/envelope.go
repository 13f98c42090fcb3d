package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Envelope builds the wire encoding of an event published by the
// ingress. Payload fields are passed through verbatim; only eventType,
// userId, eventId and timestamp are owned by the producer. Clients may
// send fields the pipeline does not know about, they travel unchanged.
func Envelope(t Type, userID string, fields map[string]any, now time.Time) ([]byte, error) {
	env := make(map[string]any, len(fields)+4)
	for k, v := range fields {
		env[k] = v
	}
	env["eventId"] = uuid.NewString()
	env["eventType"] = string(t)
	env["userId"] = userID
	env["timestamp"] = now.UTC().Format(time.RFC3339)

	return json.Marshal(env)
}
