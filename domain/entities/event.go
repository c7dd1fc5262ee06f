package entities

// Event is one record in the append-only event log.
// Layout is nil when the store recorded the event without a layout.
type Event struct {
	Value  Value
	Layout *TypeLayout
	GUID   []byte
	Type   Type
	SeqNum uint64
}
