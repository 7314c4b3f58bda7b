package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/confroute/confroute/document"
)

// decodeJSON parses JSON into a document, preserving object key order.
// encoding/json's map decoding would lose order, so values are rebuilt from
// the decoder's token stream. Numbers become Int when they fit int64 exactly,
// Float otherwise.
func decodeJSON(data []byte) (document.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, &SyntaxError{Codec: JSON, Err: err}
	}

	// A document is exactly one value
	if tok, err := dec.Token(); err != io.EOF {
		return nil, &SyntaxError{Codec: JSON, Err: fmt.Errorf("trailing data after document: %v", tok)}
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (document.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeJSONToken(dec, tok)
}

func decodeJSONToken(dec *json.Decoder, tok json.Token) (document.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := document.NewMapping()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key is %T, want string", keyTok)
				}
				val, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("key %q: %w", key, err)
				}
				m.Set(key, val)
			}
			// Consume the closing '}'
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return m, nil
		case '[':
			var seq document.Sequence
			for dec.More() {
				elem, err := decodeJSONValue(dec)
				if err != nil {
					return nil, fmt.Errorf("index %d: %w", len(seq), err)
				}
				seq = append(seq, elem)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			if seq == nil {
				seq = document.Sequence{}
			}
			return seq, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return document.String(t), nil
	case bool:
		return document.Bool(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return document.Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("unrepresentable number %q", t)
		}
		return document.Float(f), nil
	case nil:
		return document.Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}

// encodeJSON serializes a document as two-space-indented JSON with a trailing
// newline. Mapping keys keep their insertion order via the document package's
// json.Marshaler implementations.
func encodeJSON(v document.Value) ([]byte, error) {
	if v == nil {
		v = document.Null{}
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(data, '\n'), nil
}
