package document

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// Value is a sealed interface representing a document node.
// Only Null, Bool, Int, Float, String, Sequence, and *Mapping implement it.
type Value interface {
	docValue() // Sealed - only these types implement it
}

// Null represents an explicit null value.
// Using a concrete type keeps the sealed interface total: a decoded null is
// distinguishable from "no value at all" (a nil Value).
type Null struct{}

func (Null) docValue() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) docValue() {}

// Int represents an integer value. Always int64.
type Int int64

func (Int) docValue() {}

// Float represents a floating-point value.
type Float float64

func (Float) docValue() {}

// String represents a string value.
type String string

func (String) docValue() {}

// Sequence represents an ordered list of values.
type Sequence []Value

func (Sequence) docValue() {}

// Mapping represents an ordered map of string keys to values.
// Keys are unique; insertion order is preserved for serialization fidelity.
// The zero value is not usable - construct with NewMapping.
type Mapping struct {
	keys    []string
	entries map[string]Value
}

func (*Mapping) docValue() {}

// Pair is a key-value pair for literal Mapping construction.
type Pair struct {
	Key   string
	Value Value
}

// P is a shorthand Pair constructor for ergonomic literals.
// Example: NewMapping(P("host", String("localhost")), P("port", Int(8080)))
func P(key string, value Value) Pair {
	return Pair{Key: key, Value: value}
}

// NewMapping creates a Mapping from pairs, preserving their order.
// A duplicate key keeps its original position and takes the last value.
func NewMapping(pairs ...Pair) *Mapping {
	m := &Mapping{entries: make(map[string]Value, len(pairs))}
	for _, p := range pairs {
		m.Set(p.Key, p.Value)
	}
	return m
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	return len(m.keys)
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Get returns the value for key and whether it was present.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.entries[key]
	return v, ok
}

// Set inserts or replaces the value for key.
// A new key is appended; an existing key keeps its position.
func (m *Mapping) Set(key string, value Value) {
	if _, ok := m.entries[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.entries[key] = value
}

// Delete removes key if present and reports whether it was removed.
func (m *Mapping) Delete(key string) bool {
	if _, ok := m.entries[key]; !ok {
		return false
	}
	delete(m.entries, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Clone returns a deep structural copy of v. The result shares no mutable
// substructure with the input, so callers may hold references to the original
// with zero risk of observing later mutations.
func Clone(v Value) Value {
	switch val := v.(type) {
	case nil:
		return nil
	case Null, Bool, Int, Float, String:
		return val
	case Sequence:
		out := make(Sequence, len(val))
		for i, elem := range val {
			out[i] = Clone(elem)
		}
		return out
	case *Mapping:
		out := &Mapping{
			keys:    make([]string, len(val.keys)),
			entries: make(map[string]Value, len(val.entries)),
		}
		copy(out.keys, val.keys)
		for k, elem := range val.entries {
			out.entries[k] = Clone(elem)
		}
		return out
	default:
		panic(fmt.Sprintf("document: unknown Value type %T", v))
	}
}

// Equal reports structural equality. Mapping key order is ignored; an Int and
// a Float are equal when they represent the same number.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Int:
		switch bv := b.(type) {
		case Int:
			return av == bv
		case Float:
			return float64(av) == float64(bv) && float64(bv) == math.Trunc(float64(bv))
		}
		return false
	case Float:
		switch bv := b.(type) {
		case Float:
			return av == bv
		case Int:
			return float64(av) == float64(bv) && float64(av) == math.Trunc(float64(av))
		}
		return false
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Sequence:
		bv, ok := b.(Sequence)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Mapping:
		bv, ok := b.(*Mapping)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, elem := range av.entries {
			other, present := bv.entries[k]
			if !present || !Equal(elem, other) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("document: unknown Value type %T", a))
	}
}

// TypeName returns a short name for v's variant, used in failure messages.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "absent"
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Sequence:
		return "sequence"
	case *Mapping:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// FromGo converts a plain Go value (as produced by encoding/json or yaml.v3
// when decoding into any) to a Value. Map key order is the map's iteration
// order and therefore unspecified; decode through the codec package when
// order fidelity matters.
func FromGo(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > math.MaxInt64 {
			return nil, fmt.Errorf("document: integer out of int64 range: %d", val)
		}
		return Int(val), nil
	case float64:
		return Float(val), nil
	case float32:
		return Float(val), nil
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("document: unrepresentable number %q", val)
		}
		return Float(f), nil
	case time.Time:
		return String(val.Format(time.RFC3339)), nil
	case []any:
		seq := make(Sequence, len(val))
		for i, elem := range val {
			converted, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("sequence[%d]: %w", i, err)
			}
			seq[i] = converted
		}
		return seq, nil
	case map[string]any:
		m := NewMapping()
		for k, elem := range val {
			converted, err := FromGo(elem)
			if err != nil {
				return nil, fmt.Errorf("mapping[%q]: %w", k, err)
			}
			m.Set(k, converted)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("document: unsupported type %T", v)
	}
}

// ToGo converts a Value to a plain Go value (nil, bool, int64, float64,
// string, []any, map[string]any). Mapping order is lost.
func ToGo(v Value) any {
	switch val := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(val)
	case Int:
		return int64(val)
	case Float:
		return float64(val)
	case String:
		return string(val)
	case Sequence:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToGo(elem)
		}
		return out
	case *Mapping:
		out := make(map[string]any, val.Len())
		for _, k := range val.keys {
			out[k] = ToGo(val.entries[k])
		}
		return out
	default:
		panic(fmt.Sprintf("document: unknown Value type %T", v))
	}
}
