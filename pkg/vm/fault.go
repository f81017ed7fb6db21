package vm

import (
	"fmt"

	"github.com/tallylabs/tally-go/pkg/vm/opcode"
)

// FaultCode distinguishes the violation classes that abort an evaluation.
// Codes are part of the caller-visible contract and must stay stable.
type FaultCode byte

// Possible fault codes.
const (
	// FaultNegativeSet is raised when SET carries a negatively tagged value.
	FaultNegativeSet FaultCode = 0
	// FaultUnknownOpcode is raised when an opcode outside the closed set
	// is evaluated.
	FaultUnknownOpcode FaultCode = 1
	// FaultArithmetic is raised when an adjustment would take the
	// accumulator outside the uint64 range. The accumulator never wraps.
	FaultArithmetic FaultCode = 2
	// FaultBadProgram is raised at the decode boundary when the binary
	// form of a program is malformed, before any evaluation starts.
	FaultBadProgram FaultCode = 3
)

// String implements the fmt.Stringer interface.
func (c FaultCode) String() string {
	switch c {
	case FaultNegativeSet:
		return "NEGATIVESET"
	case FaultUnknownOpcode:
		return "UNKNOWNOPCODE"
	case FaultArithmetic:
		return "ARITHMETIC"
	case FaultBadProgram:
		return "BADPROGRAM"
	default:
		return fmt.Sprintf("FAULT(%d)", byte(c))
	}
}

// Fault is the terminal abort signal of an evaluation. It carries the
// fault code together with the position and opcode of the faulting
// instruction. A fault produces no result value and the run cannot be
// resumed.
type Fault struct {
	// Code is the violation class.
	Code FaultCode
	// IP is the index of the faulting instruction (or the byte offset
	// within the binary form for FaultBadProgram).
	IP int
	// Op is the opcode of the faulting instruction.
	Op opcode.Opcode
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.Code == FaultBadProgram {
		return fmt.Sprintf("fault %d (%s) at offset %d", byte(f.Code), f.Code, f.IP)
	}
	return fmt.Sprintf("fault %d (%s) at instruction %d (%s)", byte(f.Code), f.Code, f.IP, f.Op)
}

func newFault(code FaultCode, ip int, op opcode.Opcode) *Fault {
	return &Fault{Code: code, IP: ip, Op: op}
}
