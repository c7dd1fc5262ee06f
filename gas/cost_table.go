// Package gas provides the gas schedule consulted by native functions and a
// minimal meter used by the call boundary to charge reported costs.
package gas

import (
	"fmt"
	"math"
	"math/bits"
	"sort"
)

// GasCost is the price of one unit of an operation.
type GasCost struct {
	Instruction uint64 `yaml:"instruction" json:"instruction" validate:"lte=1000000000"`
	Memory      uint64 `yaml:"memory" json:"memory" validate:"lte=1000000000"`
}

// Total is the combined instruction and memory cost.
func (c GasCost) Total() uint64 {
	return c.Instruction + c.Memory
}

// NativeCostIndex selects an entry of the native cost table.
type NativeCostIndex int

const (
	NativeSha2256 NativeCostIndex = iota
	NativeSha3256
	NativeBCSToBytes
	NativeLength
	NativeEmpty
	NativeBorrow
	NativePushBack
	NativePopBack
	NativeDestroyEmpty
	NativeSwap
	NativeSignerBorrow
	NativeEmitEvent
	NativeTypeName
	NativeDebugPrint
	NativeDebugPrintStackTrace
	NativeWasmCall

	numNativeCosts
)

var nativeCostNames = [numNativeCosts]string{
	NativeSha2256:              "sha2_256",
	NativeSha3256:              "sha3_256",
	NativeBCSToBytes:           "bcs_to_bytes",
	NativeLength:               "length",
	NativeEmpty:                "empty",
	NativeBorrow:               "borrow",
	NativePushBack:             "push_back",
	NativePopBack:              "pop_back",
	NativeDestroyEmpty:         "destroy_empty",
	NativeSwap:                 "swap",
	NativeSignerBorrow:         "signer_borrow",
	NativeEmitEvent:            "emit_event",
	NativeTypeName:             "type_name",
	NativeDebugPrint:           "debug_print",
	NativeDebugPrintStackTrace: "debug_print_stack_trace",
	NativeWasmCall:             "wasm_call",
}

func (i NativeCostIndex) String() string {
	if i >= 0 && i < numNativeCosts {
		return nativeCostNames[i]
	}
	return fmt.Sprintf("native_cost(%d)", int(i))
}

// ParseNativeCostIndex maps a configuration name to its index.
func ParseNativeCostIndex(name string) (NativeCostIndex, bool) {
	for i, n := range nativeCostNames {
		if n == name {
			return NativeCostIndex(i), true
		}
	}
	return 0, false
}

// NativeCostNames returns all configuration names in sorted order.
func NativeCostNames() []string {
	names := make([]string, len(nativeCostNames))
	copy(names, nativeCostNames[:])
	sort.Strings(names)
	return names
}

// CostTable is the active gas schedule.
type CostTable struct {
	Instructions map[string]GasCost
	Natives      []GasCost
}

// NativeCost returns the per-unit cost of a native operation.
// Indices outside the table cost nothing.
func (t *CostTable) NativeCost(idx NativeCostIndex) GasCost {
	if idx < 0 || int(idx) >= len(t.Natives) {
		return GasCost{}
	}
	return t.Natives[idx]
}

// NativeGasCost is the cost of a native operation over size units of data.
// Sizes below one are charged as one; the product saturates at MaxUint64.
func NativeGasCost(t *CostTable, idx NativeCostIndex, size int) uint64 {
	units := uint64(1)
	if size > 1 {
		units = uint64(size)
	}
	hi, lo := bits.Mul64(t.NativeCost(idx).Total(), units)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}

// DefaultCostTable returns the schedule used when the host supplies none.
func DefaultCostTable() *CostTable {
	natives := make([]GasCost, numNativeCosts)
	natives[NativeSha2256] = GasCost{Instruction: 30, Memory: 1}
	natives[NativeSha3256] = GasCost{Instruction: 64, Memory: 1}
	natives[NativeBCSToBytes] = GasCost{Instruction: 20, Memory: 1}
	natives[NativeLength] = GasCost{Instruction: 98, Memory: 1}
	natives[NativeEmpty] = GasCost{Instruction: 84, Memory: 1}
	natives[NativeBorrow] = GasCost{Instruction: 1334, Memory: 1}
	natives[NativePushBack] = GasCost{Instruction: 53, Memory: 1}
	natives[NativePopBack] = GasCost{Instruction: 227, Memory: 1}
	natives[NativeDestroyEmpty] = GasCost{Instruction: 572, Memory: 1}
	natives[NativeSwap] = GasCost{Instruction: 1436, Memory: 1}
	natives[NativeSignerBorrow] = GasCost{Instruction: 353, Memory: 1}
	natives[NativeEmitEvent] = GasCost{Instruction: 52, Memory: 1}
	natives[NativeTypeName] = GasCost{Instruction: 100, Memory: 1}
	natives[NativeDebugPrint] = GasCost{Instruction: 1, Memory: 0}
	natives[NativeDebugPrintStackTrace] = GasCost{Instruction: 1, Memory: 0}
	natives[NativeWasmCall] = GasCost{Instruction: 500, Memory: 1}
	return &CostTable{
		Instructions: map[string]GasCost{},
		Natives:      natives,
	}
}
