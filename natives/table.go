package natives

import (
	"fmt"
	"iter"
	"slices"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// Entry is one validated registration.
type Entry struct {
	Func NativeFunction
	FunctionID
}

// Table is a flat list of registrations consumed by NewRegistry.
type Table []Entry

// RawEntry is a registration with names not yet validated.
type RawEntry struct {
	Func     NativeFunction
	Module   string
	Function string
}

// MakeTable validates names and attaches addr to every entry. The first
// invalid module or function name, or missing implementation, fails the call
// and no table is returned.
func MakeTable(addr entities.AccountAddress, entries []RawEntry) (Table, error) {
	return MakeTableFromSeq(addr, slices.Values(entries))
}

// MakeTableFromSeq is MakeTable over a lazily produced list.
func MakeTableFromSeq(addr entities.AccountAddress, entries iter.Seq[RawEntry]) (Table, error) {
	var table Table
	for raw := range entries {
		module, err := entities.NewIdentifier(raw.Module)
		if err != nil {
			return nil, fmt.Errorf("module name of %s::%s: %w", raw.Module, raw.Function, err)
		}
		function, err := entities.NewIdentifier(raw.Function)
		if err != nil {
			return nil, fmt.Errorf("function name of %s::%s: %w", raw.Module, raw.Function, err)
		}
		if raw.Func == nil {
			return nil, vmerrors.Newf(vmerrors.InvalidNativeFunction,
				"native function %s::%s has no implementation", raw.Module, raw.Function)
		}
		table = append(table, Entry{
			FunctionID: FunctionID{Address: addr, Module: module, Function: function},
			Func:       raw.Func,
		})
	}
	return table, nil
}

// MustMakeTable is MakeTable that panics on an invalid name. Native tables are
// fixed at host build time, so a bad name is a programming error.
func MustMakeTable(addr entities.AccountAddress, entries []RawEntry) Table {
	table, err := MakeTable(addr, entries)
	if err != nil {
		panic(err)
	}
	return table
}
