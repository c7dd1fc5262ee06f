package errors

import "fmt"

// StatusType is the coarse category of a StatusCode.
// It is derived from the numeric range the code falls in.
type StatusType int

const (
	StatusTypeValidation StatusType = iota
	StatusTypeVerification
	StatusTypeInvariantViolation
	StatusTypeDeserialization
	StatusTypeExecution
	StatusTypeUnknown
)

func (t StatusType) String() string {
	switch t {
	case StatusTypeValidation:
		return "validation"
	case StatusTypeVerification:
		return "verification"
	case StatusTypeInvariantViolation:
		return "invariant_violation"
	case StatusTypeDeserialization:
		return "deserialization"
	case StatusTypeExecution:
		return "execution"
	default:
		return "unknown"
	}
}

// StatusCode identifies a VM status.
//
// Ranges:
//
//	   0 -  999  validation
//	1000 - 1999  verification (includes linking and host configuration)
//	2000 - 2999  invariant violation
//	3000 - 3999  deserialization
//	4000 - 4999  execution
type StatusCode uint64

const (
	UnknownValidationStatus StatusCode = 0

	UnknownVerificationError  StatusCode = 1000
	InvalidIdentifier         StatusCode = 1001
	DuplicateNativeFunction   StatusCode = 1002
	DuplicateExtension        StatusCode = 1003
	UnknownExtension          StatusCode = 1004
	FunctionResolutionFailure StatusCode = 1010
	TypeLayoutUnavailable     StatusCode = 1020
	InvalidGasSchedule        StatusCode = 1030
	InvalidNativeFunction     StatusCode = 1040

	UnknownInvariantViolationError StatusCode = 2000
	InternalTypeError              StatusCode = 2001
	NativeFunctionPanicked         StatusCode = 2002
	NativeContextExpired           StatusCode = 2003
	UnknownStructType              StatusCode = 2004
	WasmExecutionFailure           StatusCode = 2005

	UnknownBinaryError StatusCode = 3000
	ValueSerialization StatusCode = 3001

	UnknownRuntimeStatus   StatusCode = 4000
	Executed               StatusCode = 4001
	OutOfGas               StatusCode = 4002
	Aborted                StatusCode = 4003
	ArithmeticError        StatusCode = 4004
	VMMaxTypeDepthReached  StatusCode = 4005
	EventLimitExceeded     StatusCode = 4006
	VectorOperationFailure StatusCode = 4007
)

var statusNames = map[StatusCode]string{
	UnknownValidationStatus:        "UNKNOWN_VALIDATION_STATUS",
	UnknownVerificationError:       "UNKNOWN_VERIFICATION_ERROR",
	InvalidIdentifier:              "INVALID_IDENTIFIER",
	DuplicateNativeFunction:        "DUPLICATE_NATIVE_FUNCTION",
	DuplicateExtension:             "DUPLICATE_EXTENSION",
	UnknownExtension:               "UNKNOWN_EXTENSION",
	FunctionResolutionFailure:      "FUNCTION_RESOLUTION_FAILURE",
	TypeLayoutUnavailable:          "TYPE_LAYOUT_UNAVAILABLE",
	InvalidGasSchedule:             "INVALID_GAS_SCHEDULE",
	InvalidNativeFunction:          "INVALID_NATIVE_FUNCTION",
	UnknownInvariantViolationError: "UNKNOWN_INVARIANT_VIOLATION_ERROR",
	InternalTypeError:              "INTERNAL_TYPE_ERROR",
	NativeFunctionPanicked:         "NATIVE_FUNCTION_PANICKED",
	NativeContextExpired:           "NATIVE_CONTEXT_EXPIRED",
	UnknownStructType:              "UNKNOWN_STRUCT_TYPE",
	WasmExecutionFailure:           "WASM_EXECUTION_FAILURE",
	UnknownBinaryError:             "UNKNOWN_BINARY_ERROR",
	ValueSerialization:             "VALUE_SERIALIZATION_ERROR",
	UnknownRuntimeStatus:           "UNKNOWN_RUNTIME_STATUS",
	Executed:                       "EXECUTED",
	OutOfGas:                       "OUT_OF_GAS",
	Aborted:                        "ABORTED",
	ArithmeticError:                "ARITHMETIC_ERROR",
	VMMaxTypeDepthReached:          "VM_MAX_TYPE_DEPTH_REACHED",
	EventLimitExceeded:             "EVENT_LIMIT_EXCEEDED",
	VectorOperationFailure:         "VECTOR_OPERATION_FAILURE",
}

func (c StatusCode) String() string {
	if name, ok := statusNames[c]; ok {
		return name
	}
	return fmt.Sprintf("STATUS_%d", uint64(c))
}

// StatusType returns the category of the code.
func (c StatusCode) StatusType() StatusType {
	switch {
	case c < 1000:
		return StatusTypeValidation
	case c < 2000:
		return StatusTypeVerification
	case c < 3000:
		return StatusTypeInvariantViolation
	case c < 4000:
		return StatusTypeDeserialization
	case c < 5000:
		return StatusTypeExecution
	default:
		return StatusTypeUnknown
	}
}
