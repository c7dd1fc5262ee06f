package gas

import (
	"math"

	vmerrors "github.com/reglet-dev/nativevm/domain/errors"
)

// Status tracks gas consumption against a limit for one execution.
// It is not safe for concurrent use.
type Status struct {
	table *CostTable
	limit uint64
	used  uint64
}

// NewStatus returns a meter over table with the given limit.
func NewStatus(table *CostTable, limit uint64) *Status {
	return &Status{table: table, limit: limit}
}

// NewUnmeteredStatus returns a meter that never runs out.
func NewUnmeteredStatus(table *CostTable) *Status {
	return NewStatus(table, math.MaxUint64)
}

// CostTable returns the active schedule.
func (s *Status) CostTable() *CostTable {
	return s.table
}

// Charge deducts units. On OutOfGas the remaining balance is consumed.
func (s *Status) Charge(units uint64) error {
	if units > s.limit-s.used {
		s.used = s.limit
		return vmerrors.Newf(vmerrors.OutOfGas, "charge of %d exceeds gas limit %d", units, s.limit)
	}
	s.used += units
	return nil
}

// Used returns the gas consumed so far.
func (s *Status) Used() uint64 {
	return s.used
}

// Remaining returns the gas left before OutOfGas.
func (s *Status) Remaining() uint64 {
	return s.limit - s.used
}
