package opcode

import "fmt"

// Opcode represents a single operation code for the Tally machine.
type Opcode byte

// Viable list of supported instruction constants. The set is closed:
// anything outside of it faults at run time.
const (
	// SET initializes the accumulator with the instruction's value.
	SET Opcode = 0x00
	// ADJ adds the instruction's value to the accumulator (or subtracts
	// it when the value carries a negative sign).
	ADJ Opcode = 0x01
)

var opcodeStrings = map[Opcode]string{
	SET: "SET",
	ADJ: "ADJ",
}

// String implements the fmt.Stringer interface.
func (o Opcode) String() string {
	if s, ok := opcodeStrings[o]; ok {
		return s
	}
	return fmt.Sprintf("OPCODE(%d)", byte(o))
}

// IsValid returns true if the opcode passed is valid (belongs to the
// closed instruction set).
func IsValid(op Opcode) bool {
	_, ok := opcodeStrings[op]
	return ok
}

// FromString converts a string representation to an Opcode.
func FromString(s string) (Opcode, error) {
	for op, name := range opcodeStrings {
		if name == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown opcode %q", s)
}
