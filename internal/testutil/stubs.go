// Package testutil provides collaborator stubs and assertions shared by the
// native boundary tests.
package testutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/reglet-dev/nativevm/domain/entities"
	"github.com/reglet-dev/nativevm/domain/ports"
	"github.com/reglet-dev/nativevm/gas"
)

// ErrNoStub is returned by stubs for inputs they were not given behavior for.
var ErrNoStub = errors.New("testutil: no stub behavior")

// Interpreter writes Trace on every stack trace request.
type Interpreter struct {
	Err   error
	Trace string
	Calls int
}

func (i *Interpreter) DebugPrintStackTrace(w io.Writer, _ ports.Loader) error {
	i.Calls++
	if i.Err != nil {
		return i.Err
	}
	_, err := io.WriteString(w, i.Trace)
	return err
}

// Loader converts primitive and vector types. TagErr and LayoutErr, when
// set, are returned for every conversion.
type Loader struct {
	TagErr    error
	LayoutErr error
}

func (l *Loader) TypeToTypeTag(ty entities.Type) (entities.TypeTag, error) {
	if l.TagErr != nil {
		return entities.TypeTag{}, l.TagErr
	}
	switch {
	case ty.Kind.IsPrimitive():
		return entities.TypeTag{Kind: ty.Kind}, nil
	case ty.Kind == entities.KindVector:
		elem, err := l.TypeToTypeTag(*ty.Elem)
		if err != nil {
			return entities.TypeTag{}, err
		}
		return entities.VectorTag(elem), nil
	default:
		return entities.TypeTag{}, fmt.Errorf("%w: tag of %s", ErrNoStub, ty)
	}
}

func (l *Loader) TypeToTypeLayout(ty entities.Type) (entities.TypeLayout, error) {
	if l.LayoutErr != nil {
		return entities.TypeLayout{}, l.LayoutErr
	}
	switch {
	case ty.Kind.IsPrimitive():
		return entities.PrimitiveLayout(ty.Kind), nil
	case ty.Kind == entities.KindVector:
		elem, err := l.TypeToTypeLayout(*ty.Elem)
		if err != nil {
			return entities.TypeLayout{}, err
		}
		return entities.VectorLayout(elem), nil
	default:
		return entities.TypeLayout{}, fmt.Errorf("%w: layout of %s", ErrNoStub, ty)
	}
}

// Resolver serves layouts from its Loader.
type Resolver struct {
	L *Loader
}

// NewResolver returns a resolver over a fresh Loader.
func NewResolver() *Resolver {
	return &Resolver{L: &Loader{}}
}

func (r *Resolver) Loader() ports.Loader {
	return r.L
}

func (r *Resolver) TypeToTypeLayout(ty entities.Type) (entities.TypeLayout, error) {
	return r.L.TypeToTypeLayout(ty)
}

// DataStore records events in memory. When EmitErr is set every event is
// rejected with it.
type DataStore struct {
	EmitErr error
	Log     []entities.Event
}

func (d *DataStore) EmitEvent(guid []byte, seqNum uint64, ty entities.Type, val entities.Value) error {
	if d.EmitErr != nil {
		return d.EmitErr
	}
	d.Log = append(d.Log, entities.Event{GUID: guid, SeqNum: seqNum, Type: ty, Value: val})
	return nil
}

func (d *DataStore) Events() []entities.Event {
	return d.Log
}

// GasStatus serves Table.
type GasStatus struct {
	Table *gas.CostTable
}

func (g GasStatus) CostTable() *gas.CostTable {
	return g.Table
}
