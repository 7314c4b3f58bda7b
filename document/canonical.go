package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// hashDomain is the domain prefix for document content hashes.
// The version suffix enables future algorithm migration.
const hashDomain = "confroute/document/v1"

// MarshalCanonical produces deterministic JSON for content hashing.
//
// Differences from standard json.Marshal:
//  1. Mapping keys sorted by UTF-16 code units (RFC 8785 ordering),
//     regardless of insertion order
//  2. No HTML escaping
//  3. Strings are NFC normalized
//
// NaN and infinities have no JSON form and return an error.
func MarshalCanonical(v Value) ([]byte, error) {
	switch val := v.(type) {
	case nil, Null:
		return []byte("null"), nil
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case Float:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("document: %v has no canonical JSON form", f)
		}
		return strconv.AppendFloat(nil, f, 'g', -1, 64), nil
	case String:
		return marshalCanonicalString(string(val))
	case Sequence:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			elemBytes, err := MarshalCanonical(elem)
			if err != nil {
				return nil, fmt.Errorf("sequence[%d]: %w", i, err)
			}
			buf.Write(elemBytes)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case *Mapping:
		return marshalCanonicalMapping(val)
	default:
		return nil, fmt.Errorf("document: unknown Value type %T", v)
	}
}

// ContentHash computes a content-addressed identity for a document:
// SHA256(domain + 0x00 + canonical JSON), hex encoded. The null separator
// prevents domain/data boundary ambiguity. Two documents hash equal iff
// they are structurally equal up to mapping key order.
func ContentHash(v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("ContentHash: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(hashDomain))
	h.Write([]byte{0x00})
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// marshalCanonicalString produces a canonical JSON string: NFC normalized,
// no HTML escaping. Only control characters, backslash, and quote end up
// escaped.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func marshalCanonicalMapping(m *Mapping) ([]byte, error) {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	slices.SortFunc(keys, compareKeysUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := MarshalCanonical(m.entries[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// compareKeysUTF16 compares strings by UTF-16 code units as required by
// RFC 8785. Go's native string comparison is UTF-8 and produces a DIFFERENT
// order for strings containing supplementary-plane characters.
func compareKeysUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := min(len(a16), len(b16))
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}
