package jsontree

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("<invalid kind>(%d)", int(k))
	}
}

// Value is a parsed JSON document.
//
// Objects are addressable by field name, lists keep the order and length of the source
// array, and scalars are kept as they were. The zero value is null.
type Value struct {
	kind    Kind
	boolean bool
	number  json.Number
	str     string
	list    []Value
	object  map[string]Value
}

// Numbers are decoded as json.Number so 64 bit ids survive the round trip
var decoder = jsoniter.Config{
	UseNumber:              true,
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

var ErrEmptyDocument = errors.New("empty json document")

func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, ErrEmptyDocument
	}

	var raw any
	if err := decoder.Unmarshal(data, &raw); err != nil {
		return Value{}, fmt.Errorf("failed to parse json: %w", err)
	}
	return FromAny(raw)
}

// FromAny converts the output of a generic json decode (map[string]any, []any, ...) into a Value
func FromAny(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(v), nil
	case json.Number:
		return Value{kind: KindNumber, number: v}, nil
	case float64:
		return Value{kind: KindNumber, number: json.Number(strconv.FormatFloat(v, 'f', -1, 64))}, nil
	case int:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case string:
		return String(v), nil
	case []any:
		list := make([]Value, 0, len(v))
		for i, item := range v {
			value, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			list = append(list, value)
		}
		return Value{kind: KindList, list: list}, nil
	case map[string]any:
		object := make(map[string]Value, len(v))
		for key, item := range v {
			value, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("field %q: %w", key, err)
			}
			object[key] = value
		}
		return Value{kind: KindObject, object: object}, nil
	default:
		return Value{}, fmt.Errorf("unsupported json type %T", raw)
	}
}

func Null() Value {
	return Value{kind: KindNull}
}

func Bool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

func Int(i int64) Value {
	return Value{kind: KindNumber, number: json.Number(strconv.FormatInt(i, 10))}
}

func String(s string) Value {
	return Value{kind: KindString, str: s}
}

func List(items ...Value) Value {
	return Value{kind: KindList, list: slices.Clone(items)}
}

func Object(fields map[string]Value) Value {
	object := make(map[string]Value, len(fields))
	for key, value := range fields {
		object[key] = value
	}
	return Value{kind: KindObject, object: object}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IsEmpty reports whether v is an object or list without any entries
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindObject:
		return len(v.object) == 0
	case KindList:
		return len(v.list) == 0
	default:
		return false
	}
}

// Field returns the named field of an object. ok is false if v is not an object or the field is missing.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	field, ok := v.object[name]
	return field, ok
}

// Path follows a chain of object fields
func (v Value) Path(names ...string) (Value, bool) {
	current := v
	for _, name := range names {
		next, ok := current.Field(name)
		if !ok {
			return Value{}, false
		}
		current = next
	}
	return current, true
}

func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}, false
	}
	return v.list[i], true
}

// Items returns a copy of the elements of a list, or nil for other kinds
func (v Value) Items() []Value {
	if v.kind != KindList {
		return nil
	}
	return slices.Clone(v.list)
}

// Len is the number of elements of a list or fields of an object
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindObject:
		return len(v.object)
	default:
		return 0
	}
}

// Keys returns the field names of an object in sorted order
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.object))
	for key := range v.object {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.boolean, true
}

func (v Value) Int() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	i, err := v.number.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := v.number.Float64()
	if err != nil {
		return 0, false
	}
	return f, true
}

func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Any converts v back into the generic representation used by encoding/json
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number
	case KindString:
		return v.str
	case KindList:
		list := make([]any, 0, len(v.list))
		for _, item := range v.list {
			list = append(list, item.Any())
		}
		return list
	case KindObject:
		object := make(map[string]any, len(v.object))
		for key, item := range v.object {
			object[key] = item.Any()
		}
		return object
	default:
		return nil
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Type assertions
var _ json.Marshaler = Value{}
var _ json.Unmarshaler = (*Value)(nil)
