package vm

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	"github.com/tallylabs/tally-go/pkg/vm/opcode"
)

const (
	// MaxProgramLength is the maximum number of instructions that fits
	// into the one-byte count prefix of the binary form.
	MaxProgramLength = 255
	// instructionSize is the size of one encoded instruction record:
	// opcode, sign tag and a little-endian uint64 magnitude.
	instructionSize = 10
)

// Program is an ordered, fixed-length sequence of instructions. Its
// length is declared in the binary form and validated at the decode
// boundary; the machine itself never resizes it.
type Program []Instruction

// Bytes returns the binary form of the program: a one-byte instruction
// count followed by the fixed-size instruction records.
func (p Program) Bytes() ([]byte, error) {
	if len(p) > MaxProgramLength {
		return nil, fmt.Errorf("program too long: %d instructions", len(p))
	}
	b := make([]byte, 1+len(p)*instructionSize)
	b[0] = byte(len(p))
	for i, instr := range p {
		off := 1 + i*instructionSize
		b[off] = byte(instr.Op)
		b[off+1] = byte(instr.Value.Sign)
		binary.LittleEndian.PutUint64(b[off+2:off+10], instr.Value.Magnitude)
	}
	return b, nil
}

// ParseProgram decodes the binary form of a program validating its
// framing: the declared count must match the payload exactly and sign
// tags must be well-formed. Framing violations surface as a Fault with
// FaultBadProgram before any evaluation starts. Opcodes are not checked
// here, an unknown opcode is a run-time fault.
func ParseProgram(b []byte) (Program, error) {
	if len(b) == 0 {
		return nil, newFault(FaultBadProgram, 0, 0)
	}
	count := int(b[0])
	if len(b)-1 != count*instructionSize {
		return nil, newFault(FaultBadProgram, len(b), 0)
	}
	prog := make(Program, count)
	for i := 0; i < count; i++ {
		off := 1 + i*instructionSize
		sign := b[off+1]
		if sign != byte(Positive) && sign != byte(Negative) {
			return nil, newFault(FaultBadProgram, off+1, 0)
		}
		prog[i] = Instruction{
			Op: opcode.Opcode(b[off]),
			Value: Value{
				Sign:      Sign(sign),
				Magnitude: binary.LittleEndian.Uint64(b[off+2 : off+10]),
			},
		}
	}
	return prog, nil
}

type instructionJSON struct {
	Op    string `json:"op"`
	Value string `json:"value"`
}

// MarshalJSON implements the json.Marshaler interface.
func (p Program) MarshalJSON() ([]byte, error) {
	arr := make([]instructionJSON, len(p))
	for i, instr := range p {
		arr[i] = instructionJSON{
			Op:    instr.Op.String(),
			Value: instr.Value.String(),
		}
	}
	return json.Marshal(arr)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Program) UnmarshalJSON(data []byte) error {
	var arr []instructionJSON
	if err := json.Unmarshal(data, &arr); err != nil {
		return err
	}
	if len(arr) > MaxProgramLength {
		return fmt.Errorf("program too long: %d instructions", len(arr))
	}
	prog := make(Program, len(arr))
	for i, in := range arr {
		op, err := opcode.FromString(in.Op)
		if err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
		val, err := ValueFromString(in.Value)
		if err != nil {
			return fmt.Errorf("instruction %d: %w", i, err)
		}
		prog[i] = Instruction{Op: op, Value: val}
	}
	*p = prog
	return nil
}
