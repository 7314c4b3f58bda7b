// Package codec selects and implements serialization formats for config
// documents. JSON and YAML are supported; both decode into document.Value
// preserving mapping key order and encode back without reordering keys.
package codec

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/confroute/confroute/document"
)

// Codec identifies a serialization format.
type Codec string

const (
	// None means no explicit codec; Infer falls back to the file extension.
	None Codec = ""

	// JSON is the JSON format.
	JSON Codec = "json"

	// YAML is the YAML format.
	YAML Codec = "yaml"
)

// Valid reports whether c is a supported format.
func (c Codec) Valid() bool {
	return c == JSON || c == YAML
}

// UnsupportedFormatError indicates that no codec could be determined for a
// file. It is a recoverable condition: the facade reads it as "absent" and
// writes as "failed", never as a fatal error.
type UnsupportedFormatError struct {
	// Format is the rejected explicit codec or file extension.
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return "UNSUPPORTED_FORMAT: path has no extension and no explicit codec"
	}
	return fmt.Sprintf("UNSUPPORTED_FORMAT: %q", e.Format)
}

// IsUnsupportedFormat reports whether err is an UnsupportedFormatError.
func IsUnsupportedFormat(err error) bool {
	var ue *UnsupportedFormatError
	return errors.As(err, &ue)
}

// SyntaxError wraps a parser error for malformed input. Like unsupported
// formats it is recoverable, in contrast to filesystem errors.
type SyntaxError struct {
	Codec Codec
	Err   error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed %s document: %v", e.Codec, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// IsSyntaxError reports whether err is a SyntaxError.
func IsSyntaxError(err error) bool {
	var se *SyntaxError
	return errors.As(err, &se)
}

// Infer determines the codec for path. An explicit codec, if valid, wins
// unconditionally; an invalid explicit codec fails. Otherwise the path's
// extension decides, case-insensitively: .json is JSON, .yml and .yaml are
// YAML. Any other extension (or none) fails with UnsupportedFormatError -
// there is no silent default format.
func Infer(path string, explicit Codec) (Codec, error) {
	if explicit != None {
		if !explicit.Valid() {
			return None, &UnsupportedFormatError{Format: string(explicit)}
		}
		return explicit, nil
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yml", ".yaml":
		return YAML, nil
	default:
		return None, &UnsupportedFormatError{Format: filepath.Ext(path)}
	}
}

// Decode parses data into a document.
func (c Codec) Decode(data []byte) (document.Value, error) {
	switch c {
	case JSON:
		return decodeJSON(data)
	case YAML:
		return decodeYAML(data)
	default:
		return nil, &UnsupportedFormatError{Format: string(c)}
	}
}

// Encode serializes a document to bytes suitable for writing to a file.
// Encoding is total for valid documents.
func (c Codec) Encode(v document.Value) ([]byte, error) {
	switch c {
	case JSON:
		return encodeJSON(v)
	case YAML:
		return encodeYAML(v)
	default:
		return nil, &UnsupportedFormatError{Format: string(c)}
	}
}
