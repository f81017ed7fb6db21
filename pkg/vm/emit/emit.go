// Package emit provides a convenient builder for Tally programs.
package emit

import (
	"github.com/tallylabs/tally-go/pkg/vm"
	"github.com/tallylabs/tally-go/pkg/vm/opcode"
)

// Builder accumulates instructions and produces the binary form of a
// program. The zero value is ready to use.
type Builder struct {
	prog vm.Program
}

// NewBuilder returns a new Builder object.
func NewBuilder() *Builder {
	return &Builder{}
}

// Instruction appends a raw instruction. No validation is performed, so
// invalid opcodes can be emitted on purpose.
func (b *Builder) Instruction(op opcode.Opcode, val vm.Value) *Builder {
	b.prog = append(b.prog, vm.Instruction{Op: op, Value: val})
	return b
}

// Set emits a SET instruction initializing the accumulator with v.
func (b *Builder) Set(v uint64) *Builder {
	return b.Instruction(opcode.SET, vm.Pos(v))
}

// Add emits an ADJ instruction increasing the accumulator by v.
func (b *Builder) Add(v uint64) *Builder {
	return b.Instruction(opcode.ADJ, vm.Pos(v))
}

// Sub emits an ADJ instruction decreasing the accumulator by v.
func (b *Builder) Sub(v uint64) *Builder {
	return b.Instruction(opcode.ADJ, vm.Neg(v))
}

// Len returns the number of emitted instructions.
func (b *Builder) Len() int {
	return len(b.prog)
}

// Program returns the built program.
func (b *Builder) Program() vm.Program {
	return b.prog
}

// Bytes returns the binary form of the built program.
func (b *Builder) Bytes() ([]byte, error) {
	return b.prog.Bytes()
}
