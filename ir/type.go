package ir

import "fmt"

type Type int

const (
	NullType Type = iota
	IntType
	FloatType
	StringType
	BoolType
	TimeType
	ObjectType
	ArrayType
	UserDataType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		ObjectType:   "Object",
		ArrayType:    "Array",
		StringType:   "String",
		IntType:      "Int",
		FloatType:    "Float",
		TimeType:     "Time",
		BoolType:     "Bool",
		NullType:     "Null",
		UserDataType: "UserData",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Null":     NullType,
		"Int":      IntType,
		"Float":    FloatType,
		"String":   StringType,
		"Bool":     BoolType,
		"Time":     TimeType,
		"Array":    ArrayType,
		"Object":   ObjectType,
		"UserData": UserDataType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil

}

func Types() []Type {
	return []Type{
		NullType,
		IntType,
		FloatType,
		StringType,
		BoolType,
		TimeType,
		ObjectType,
		ArrayType,
		UserDataType,
	}
}

func (t Type) IsLeaf() bool {
	switch t {
	case ObjectType, ArrayType:
		return false
	default:
		return true
	}
}
