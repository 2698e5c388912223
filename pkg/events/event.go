package events

import (
	"fmt"
	"time"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CONTENT_BULK_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeContentBulkUpdated = "CONTENT_BULK_UPDATED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// BulkUpdated describes a finished bulk action over one content kind.
type BulkUpdated struct {
	Kind      string   `json:"kind"`
	Action    string   `json:"action"`
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed"`
}

func (b BulkUpdated) Event(at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeContentBulkUpdated,
		Data: map[string]interface{}{
			"kind":      b.Kind,
			"action":    b.Action,
			"succeeded": b.Succeeded,
			"failed":    b.Failed,
		},
		OccurredAt: at,
	}
}

// BulkUpdatedFrom reads a BulkUpdated back from an event payload, whether
// it was built in process or decoded from JSON.
func BulkUpdatedFrom(e Event) (BulkUpdated, error) {
	if e.EventType() != TypeContentBulkUpdated {
		return BulkUpdated{}, fmt.Errorf("unexpected event type %q", e.EventType())
	}
	data := e.Payload()
	kind, _ := data["kind"].(string)
	if kind == "" {
		return BulkUpdated{}, fmt.Errorf("event %s has no kind", e.EventType())
	}
	action, _ := data["action"].(string)
	return BulkUpdated{
		Kind:      kind,
		Action:    action,
		Succeeded: stringList(data["succeeded"]),
		Failed:    stringList(data["failed"]),
	}, nil
}

func stringList(v interface{}) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []interface{}:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
