package natives

import (
	"fmt"

	"github.com/reglet-dev/nativevm/domain/entities"
	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// Args is the double-ended argument sequence of a native call. Arguments are
// pushed in call order, so the last parameter sits at the back.
type Args struct {
	vals []entities.Value
}

// NewArgs returns a sequence holding vals in call order.
func NewArgs(vals ...entities.Value) *Args {
	return &Args{vals: append([]entities.Value(nil), vals...)}
}

// Len is the number of remaining arguments.
func (a *Args) Len() int {
	return len(a.vals)
}

// PushBack appends v after the last argument.
func (a *Args) PushBack(v entities.Value) {
	a.vals = append(a.vals, v)
}

// PushFront inserts v before the first argument.
func (a *Args) PushFront(v entities.Value) {
	a.vals = append([]entities.Value{v}, a.vals...)
}

// PopBack removes and returns the last argument.
func (a *Args) PopBack() (entities.Value, bool) {
	if len(a.vals) == 0 {
		return nil, false
	}
	last := len(a.vals) - 1
	v := a.vals[last]
	a.vals[last] = nil
	a.vals = a.vals[:last]
	return v, true
}

// PopFront removes and returns the first argument.
func (a *Args) PopFront() (entities.Value, bool) {
	if len(a.vals) == 0 {
		return nil, false
	}
	v := a.vals[0]
	a.vals[0] = nil
	a.vals = a.vals[1:]
	return v, true
}

// PopBackAs pops the last argument and asserts its type. A missing argument
// or a value of another kind is an INTERNAL_TYPE_ERROR.
func PopBackAs[T entities.Value](a *Args) (T, error) {
	var zero T
	v, ok := a.PopBack()
	if !ok {
		return zero, vmerrors.Newf(vmerrors.InternalTypeError, "missing argument, want %T", zero)
	}
	t, ok := v.(T)
	if !ok {
		return zero, vmerrors.Newf(vmerrors.InternalTypeError, "argument is %T, want %T", v, zero)
	}
	return t, nil
}

// CheckArity fails with INTERNAL_TYPE_ERROR unless the call carries exactly
// the expected number of type arguments and arguments.
func CheckArity(tyArgs []entities.Type, args *Args, wantTyArgs, wantArgs int) error {
	if len(tyArgs) != wantTyArgs || args.Len() != wantArgs {
		return vmerrors.Wrap(vmerrors.InternalTypeError, fmt.Errorf(
			"got %d type arguments and %d arguments, want %d and %d",
			len(tyArgs), args.Len(), wantTyArgs, wantArgs))
	}
	return nil
}
