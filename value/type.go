package value

import "fmt"

// Type is the variant tag of a Value.
type Type uint8

const (
	NullType Type = iota
	TrueType
	FalseType
	StringType
	NumberType
	ArrayType
	ObjectType
)

var typeNames = [...]string{
	NullType:   "NULL",
	TrueType:   "TRUE",
	FalseType:  "FALSE",
	StringType: "STRING",
	NumberType: "NUMBER",
	ArrayType:  "ARRAY",
	ObjectType: "OBJECT",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for i, name := range typeNames {
		if name == string(d) {
			*t = Type(i)
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

// IsContainer reports whether values of this type hold other values.
func (t Type) IsContainer() bool {
	return t == ArrayType || t == ObjectType
}
