// Package smartcontract holds the structured-parameter model used to
// exchange values with deployed contracts.
package smartcontract

import (
	"errors"
	"fmt"
	"math/big"

	json "github.com/nspcc-dev/go-ordered-json"
)

// Parameter represents a smart contract parameter.
type Parameter struct {
	// Type of the parameter.
	Type ParamType `json:"type"`
	// The actual value of the parameter.
	Value interface{} `json:"value"`
}

type rawParameter struct {
	Type  ParamType       `json:"type"`
	Value json.RawMessage `json:"value,omitempty"`
}

// NewParameter returns a Parameter with a proper initialized Value
// of the given ParamType.
func NewParameter(t ParamType) Parameter {
	return Parameter{
		Type:  t,
		Value: nil,
	}
}

// MarshalJSON implements the json.Marshaler interface. Marshaling is
// deterministic: nested values keep their order.
func (p Parameter) MarshalJSON() ([]byte, error) {
	var (
		resultRawValue json.RawMessage
		resultErr      error
	)
	if p.Value == nil {
		if _, ok := validParamTypes[p.Type]; ok && p.Type != UnknownType {
			return json.Marshal(rawParameter{Type: p.Type})
		}
		return nil, fmt.Errorf("can't marshal %s", p.Type)
	}
	switch p.Type {
	case BoolType, StringType:
		resultRawValue, resultErr = json.Marshal(p.Value)
	case IntegerType:
		val, ok := p.Value.(*big.Int)
		if !ok {
			resultErr = errors.New("invalid integer value")
			break
		}
		resultRawValue = json.RawMessage(`"` + val.String() + `"`)
	case ArrayType, StructType:
		value, ok := p.Value.([]Parameter)
		if !ok {
			resultErr = fmt.Errorf("invalid %s value", p.Type)
			break
		}
		if value == nil {
			value = []Parameter{}
		}
		resultRawValue, resultErr = json.Marshal(value)
	case AnyType, VoidType:
		resultRawValue = nil
	default:
		resultErr = fmt.Errorf("can't marshal %s", p.Type)
	}
	if resultErr != nil {
		return nil, resultErr
	}
	return json.Marshal(rawParameter{
		Type:  p.Type,
		Value: resultRawValue,
	})
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Parameter) UnmarshalJSON(data []byte) (err error) {
	var (
		r rawParameter
		b bool
		s string
	)
	if err = json.Unmarshal(data, &r); err != nil {
		return
	}
	p.Type = r.Type
	p.Value = nil
	if len(r.Value) == 0 || string(r.Value) == "null" {
		switch r.Type {
		case AnyType, VoidType:
			return
		default:
			return fmt.Errorf("%s requires a value", r.Type)
		}
	}
	switch r.Type {
	case BoolType:
		if err = json.Unmarshal(r.Value, &b); err != nil {
			return
		}
		p.Value = b
	case StringType:
		if err = json.Unmarshal(r.Value, &s); err != nil {
			return
		}
		p.Value = s
	case IntegerType:
		if err = json.Unmarshal(r.Value, &s); err != nil {
			return
		}
		i, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return errors.New("invalid integer value")
		}
		p.Value = i
	case ArrayType, StructType:
		ps := []Parameter{}
		if err = json.Unmarshal(r.Value, &ps); err != nil {
			return
		}
		p.Value = ps
	case AnyType, VoidType:
	default:
		return fmt.Errorf("can't unmarshal %s", r.Type)
	}
	return
}

// NewBoolParameter returns a boolean Parameter.
func NewBoolParameter(v bool) Parameter {
	return Parameter{Type: BoolType, Value: v}
}

// NewIntegerParameter returns an integer Parameter.
func NewIntegerParameter(v *big.Int) Parameter {
	return Parameter{Type: IntegerType, Value: v}
}

// NewStringParameter returns a string Parameter.
func NewStringParameter(v string) Parameter {
	return Parameter{Type: StringType, Value: v}
}

// NewArrayParameter returns an array Parameter with the given elements.
func NewArrayParameter(elems ...Parameter) Parameter {
	return Parameter{Type: ArrayType, Value: elems}
}

// NewStructParameter returns a struct Parameter with the given members.
func NewStructParameter(members ...Parameter) Parameter {
	return Parameter{Type: StructType, Value: members}
}
