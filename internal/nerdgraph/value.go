package nerdgraph

import (
	"encoding/json"
	"fmt"
)

// Value is a GraphQL variable value: one of string, int, bool, or
// null. The zero Value is null.
type Value struct {
	kind valueKind
	str  string
	num  int
	b    bool
}

type valueKind int

const (
	kindNull valueKind = iota
	kindString
	kindInt
	kindBool
)

// String returns a string-typed Value.
func String(s string) Value { return Value{kind: kindString, str: s} }

// Int returns an integer-typed Value.
func Int(n int) Value { return Value{kind: kindInt, num: n} }

// Bool returns a boolean-typed Value.
func Bool(b bool) Value { return Value{kind: kindBool, b: b} }

// Null returns the null Value.
func Null() Value { return Value{} }

// MarshalJSON encodes the Value as the corresponding JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindString:
		return json.Marshal(v.str)
	case kindInt:
		return json.Marshal(v.num)
	case kindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar into the matching Value kind.
// Objects and arrays are rejected: GraphQL variables in this client
// are always scalars.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch x := raw.(type) {
	case nil:
		*v = Null()
	case string:
		*v = String(x)
	case float64:
		*v = Int(int(x))
	case bool:
		*v = Bool(x)
	default:
		return fmt.Errorf("nerdgraph: variable value %s is not a scalar", data)
	}
	return nil
}

// Vars is the variables mapping bound into a GraphQL document at
// execution time.
type Vars map[string]Value

// SetOptional inserts name only when val is non-nil. An absent
// optional field is omitted from the mapping entirely rather than sent
// as null, which the API reads as "leave unchanged".
func (vs Vars) SetOptional(name string, val *string) {
	if val != nil {
		vs[name] = String(*val)
	}
}
