package smartcontract

import (
	"fmt"
	"strings"
)

// ParamType represents the Type of the contract parameter.
type ParamType int

// A list of supported smart contract parameter types.
const (
	UnknownType ParamType = -1
	AnyType     ParamType = 0x00
	BoolType    ParamType = 0x10
	IntegerType ParamType = 0x11
	StringType  ParamType = 0x13
	ArrayType   ParamType = 0x20
	StructType  ParamType = 0x21
	VoidType    ParamType = 0xff
)

// validParamTypes contains a map of known ParamTypes.
var validParamTypes = map[ParamType]bool{
	UnknownType: true,
	AnyType:     true,
	BoolType:    true,
	IntegerType: true,
	StringType:  true,
	ArrayType:   true,
	StructType:  true,
	VoidType:    true,
}

// String implements the fmt.Stringer interface.
func (pt ParamType) String() string {
	switch pt {
	case AnyType:
		return "Any"
	case BoolType:
		return "Boolean"
	case IntegerType:
		return "Integer"
	case StringType:
		return "String"
	case ArrayType:
		return "Array"
	case StructType:
		return "Struct"
	case VoidType:
		return "Void"
	default:
		return ""
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (pt ParamType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + pt.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (pt *ParamType) UnmarshalJSON(data []byte) error {
	l := len(data)
	if l < 2 || data[0] != '"' || data[l-1] != '"' {
		return fmt.Errorf("invalid type: %s", data)
	}
	var err error
	*pt, err = ParseParamType(string(data[1 : l-1]))
	return err
}

// ParseParamType is a user-friendly string to ParamType converter, it's
// case-insensitive and makes the following conversions:
//
//	any -> AnyType
//	bool, boolean -> BoolType
//	int, integer -> IntegerType
//	string -> StringType
//	array -> ArrayType
//	struct -> StructType
//	void -> VoidType
func ParseParamType(typ string) (ParamType, error) {
	switch strings.ToLower(typ) {
	case "any":
		return AnyType, nil
	case "bool", "boolean":
		return BoolType, nil
	case "int", "integer":
		return IntegerType, nil
	case "string":
		return StringType, nil
	case "array":
		return ArrayType, nil
	case "struct":
		return StructType, nil
	case "void":
		return VoidType, nil
	default:
		return UnknownType, fmt.Errorf("unknown type: %q", typ)
	}
}
