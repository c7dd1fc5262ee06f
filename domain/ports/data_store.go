package ports

import "github.com/reglet-dev/nativevm/domain/entities"

// DataStore is the event log of the current execution.
type DataStore interface {
	// EmitEvent appends an event. On error nothing is appended.
	EmitEvent(guid []byte, seqNum uint64, ty entities.Type, val entities.Value) error

	// Events returns the recorded events in append order.
	Events() []entities.Event
}
