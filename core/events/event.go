package events

// Event represents a structured state change emitted by the protocol core.
// Attributes carry the canonical string rendering of the payload fields so
// downstream consumers (indexers, RPC, metrics) do not need to understand the
// module's internal types.
type Event struct {
	Type       string
	Attributes map[string]string
}

// Emitter broadcasts events to downstream subscribers.
type Emitter interface {
	Emit(*Event)
}

// NoopEmitter satisfies the Emitter interface while discarding all events. It
// is useful when a component wants to optionally expose events.
type NoopEmitter struct{}

// Emit implements the Emitter interface.
func (NoopEmitter) Emit(*Event) {}

// Capture records every emitted event in order. It exists for tests and for
// tooling that replays an operation's event stream.
type Capture struct {
	Events []*Event
}

// Emit implements the Emitter interface.
func (c *Capture) Emit(evt *Event) {
	if c == nil || evt == nil {
		return
	}
	c.Events = append(c.Events, evt)
}

// ByType returns the captured events matching the supplied type in emission
// order.
func (c *Capture) ByType(eventType string) []*Event {
	if c == nil {
		return nil
	}
	var matched []*Event
	for _, evt := range c.Events {
		if evt != nil && evt.Type == eventType {
			matched = append(matched, evt)
		}
	}
	return matched
}
