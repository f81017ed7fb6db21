// Package vm implements the Tally machine: a bounded interpreter folding
// a fixed-length sequence of signed-delta instructions into a single
// unsigned accumulator. Evaluation either runs the whole program to
// completion or aborts at the first faulting instruction, there is no
// partial result and no resumption.
package vm

import (
	"errors"
	"math"

	"github.com/tallylabs/tally-go/pkg/vm/opcode"
)

// VM represents an instance of the Tally machine. It owns one
// accumulator per loaded program and holds no state between runs.
type VM struct {
	state State
	prog  Program
	ip    int
	acc   uint64
}

// ErrStopped is returned by Step when the machine has already halted or
// faulted.
var ErrStopped = errors.New("vm already stopped")

// New returns a new VM object ready to load a program.
func New() *VM {
	return &VM{state: NoneState}
}

// Load loads a program into the VM resetting the accumulator, the
// instruction pointer and the state.
func (v *VM) Load(prog Program) {
	v.prog = prog
	v.ip = 0
	v.acc = 0
	v.state = NoneState
}

// LoadBytes parses the binary form of a program and loads it.
func (v *VM) LoadBytes(b []byte) error {
	prog, err := ParseProgram(b)
	if err != nil {
		return err
	}
	v.Load(prog)
	return nil
}

// State returns the current state of the VM.
func (v *VM) State() State {
	return v.state
}

// Accumulator returns the current accumulator value. It is only the
// final result once the state is HALT.
func (v *VM) Accumulator() uint64 {
	return v.acc
}

// IP returns the index of the next instruction to execute.
func (v *VM) IP() int {
	return v.ip
}

// Step executes the next instruction. On a fault the state becomes FAULT
// and the fault is returned; after the last instruction the state
// becomes HALT.
func (v *VM) Step() error {
	if v.state != NoneState {
		return ErrStopped
	}
	if v.ip >= len(v.prog) {
		v.state = HaltState
		return nil
	}
	if err := v.execute(v.prog[v.ip]); err != nil {
		v.state = FaultState
		return err
	}
	v.ip++
	if v.ip == len(v.prog) {
		v.state = HaltState
	}
	return nil
}

// Run evaluates the loaded program from left to right and returns the
// final accumulator value. On a fault it returns the *Fault as the error
// and no result value.
func (v *VM) Run() (uint64, error) {
	for v.state == NoneState {
		if err := v.Step(); err != nil {
			return 0, err
		}
	}
	return v.acc, nil
}

// Evaluate is a shorthand running the given program on a fresh VM.
func Evaluate(prog Program) (uint64, error) {
	v := New()
	v.Load(prog)
	return v.Run()
}

func (v *VM) execute(instr Instruction) error {
	switch instr.Op {
	case opcode.SET:
		if instr.Value.Sign != Positive {
			return newFault(FaultNegativeSet, v.ip, instr.Op)
		}
		v.acc = instr.Value.Magnitude
	case opcode.ADJ:
		if instr.Value.Sign == Positive {
			if instr.Value.Magnitude > math.MaxUint64-v.acc {
				return newFault(FaultArithmetic, v.ip, instr.Op)
			}
			v.acc += instr.Value.Magnitude
		} else {
			if instr.Value.Magnitude > v.acc {
				return newFault(FaultArithmetic, v.ip, instr.Op)
			}
			v.acc -= instr.Value.Magnitude
		}
	default:
		return newFault(FaultUnknownOpcode, v.ip, instr.Op)
	}
	return nil
}
