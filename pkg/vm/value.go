package vm

import (
	"fmt"
	"strconv"
	"strings"
)

// Sign is the tag of a Value. A Value carries exactly one of the two
// possible tags.
type Sign byte

// Possible Value tags.
const (
	Positive Sign = 0
	Negative Sign = 1
)

// String implements the fmt.Stringer interface.
func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return fmt.Sprintf("SIGN(%d)", byte(s))
	}
}

// Value is a signed magnitude: an unsigned integer tagged as either to be
// added or to be subtracted. It is immutable once constructed.
type Value struct {
	Sign      Sign
	Magnitude uint64
}

// Pos returns a positively tagged Value with the given magnitude.
func Pos(v uint64) Value {
	return Value{Sign: Positive, Magnitude: v}
}

// Neg returns a negatively tagged Value with the given magnitude.
func Neg(v uint64) Value {
	return Value{Sign: Negative, Magnitude: v}
}

// String implements the fmt.Stringer interface.
func (v Value) String() string {
	return v.Sign.String() + strconv.FormatUint(v.Magnitude, 10)
}

// ValueFromString parses a signed decimal string ("5", "+5", "-5") into
// a Value. The magnitude must fit into an uint64.
func ValueFromString(s string) (Value, error) {
	sign := Positive
	switch {
	case strings.HasPrefix(s, "-"):
		sign = Negative
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}
	mag, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid value: %w", err)
	}
	return Value{Sign: sign, Magnitude: mag}, nil
}
