package game

// Broadcaster pushes state deltas to connected observers of a table.
// Fire-and-forget: the core does not wait on or depend on delivery.
type Broadcaster interface {
	Publish(tableID string, event Event)
}

// NopBroadcaster discards every event.
type NopBroadcaster struct{}

func (NopBroadcaster) Publish(string, Event) {}
