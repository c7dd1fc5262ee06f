// Package memstore is an in-memory event store for one session.
package memstore

import (
	"slices"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
	"github.com/reglet-dev/nativevm/domain/ports"
)

const (
	// DefaultMaxEvents is the number of events a session may emit.
	DefaultMaxEvents = 10_000
	// DefaultMaxGUIDLength bounds the event handle GUID.
	DefaultMaxGUIDLength = 64
)

// Option configures a Store.
type Option func(*Store)

// WithMaxEvents sets the event limit.
func WithMaxEvents(n int) Option {
	return func(s *Store) {
		s.maxEvents = n
	}
}

// WithMaxGUIDLength sets the longest accepted GUID.
func WithMaxGUIDLength(n int) Option {
	return func(s *Store) {
		s.maxGUIDLength = n
	}
}

// Store is an append-only event log. Every event is recorded with its
// layout so it can be serialized later. It is not safe for concurrent use.
type Store struct {
	resolver      ports.Resolver
	events        []entities.Event
	maxEvents     int
	maxGUIDLength int
}

var _ ports.DataStore = (*Store)(nil)

// New returns an empty store computing layouts with resolver.
func New(resolver ports.Resolver, opts ...Option) *Store {
	s := &Store{
		resolver:      resolver,
		maxEvents:     DefaultMaxEvents,
		maxGUIDLength: DefaultMaxGUIDLength,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EmitEvent records an event. Errors from computing the layout are returned
// as the resolver classified them.
func (s *Store) EmitEvent(guid []byte, seqNum uint64, ty entities.Type, val entities.Value) error {
	if len(s.events) >= s.maxEvents {
		return vmerrors.Newf(vmerrors.EventLimitExceeded, "session already emitted %d events", len(s.events))
	}
	if len(guid) > s.maxGUIDLength {
		return vmerrors.Newf(vmerrors.EventLimitExceeded, "guid of %d bytes exceeds %d", len(guid), s.maxGUIDLength)
	}
	layout, err := s.resolver.TypeToTypeLayout(ty)
	if err != nil {
		return err
	}
	s.events = append(s.events, entities.Event{
		GUID:   slices.Clone(guid),
		SeqNum: seqNum,
		Type:   ty,
		Layout: &layout,
		Value:  entities.CopyValue(val),
	})
	return nil
}

// Events returns a copy of the log in append order.
func (s *Store) Events() []entities.Event {
	return slices.Clone(s.events)
}

// Len returns the number of recorded events.
func (s *Store) Len() int {
	return len(s.events)
}
