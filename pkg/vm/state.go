package vm

import (
	"encoding/json"
	"errors"
	"strings"
)

// State of the virtual machine.
type State uint8

// Available states.
const (
	// NoneState represents a running state.
	NoneState State = 0
	// HaltState represents a halt state, the program ran to completion.
	HaltState State = 1 << 0
	// FaultState represents a fault state, the program aborted.
	FaultState State = 1 << 1
)

var errInvalidState = errors.New("invalid state")

// HasFlag checks for State flag presence.
func (s State) HasFlag(f State) bool {
	return s&f != 0
}

// String implements the fmt.Stringer interface.
func (s State) String() string {
	if s == NoneState {
		return "NONE"
	}
	ss := make([]string, 0, 2)
	if s.HasFlag(HaltState) {
		ss = append(ss, "HALT")
	}
	if s.HasFlag(FaultState) {
		ss = append(ss, "FAULT")
	}
	return strings.Join(ss, ", ")
}

// StateFromString converts a string into the State.
func StateFromString(s string) (st State, err error) {
	if s == "NONE" {
		return NoneState, nil
	}
	for _, f := range strings.Split(s, ",") {
		switch strings.TrimSpace(f) {
		case "HALT":
			st |= HaltState
		case "FAULT":
			st |= FaultState
		default:
			return 0, errInvalidState
		}
	}
	return
}

// MarshalJSON implements the json.Marshaler interface.
func (s State) MarshalJSON() (data []byte, err error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *State) UnmarshalJSON(data []byte) (err error) {
	var js string
	if err = json.Unmarshal(data, &js); err != nil {
		return
	}
	*s, err = StateFromString(js)
	return
}
