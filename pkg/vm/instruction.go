package vm

import (
	"github.com/tallylabs/tally-go/pkg/vm/opcode"
)

// Instruction is an (opcode, value) pair, immutable once constructed.
type Instruction struct {
	Op    opcode.Opcode
	Value Value
}

// String implements the fmt.Stringer interface.
func (i Instruction) String() string {
	return i.Op.String() + " " + i.Value.String()
}
