package engine

import (
	"errors"
	"fmt"
)

// FailError represents a recoverable semantic failure during traversal or
// mutation. It is distinct from fatal I/O errors: callers at the facade
// boundary convert it to an "absent" read or a failed write rather than
// aborting.
//
// Failures include:
//   - Key not found: a route segment is not a key of the current mapping
//   - Not a mapping: traversal reached a scalar or sequence
//   - Path conflict: mutation under Strict policy hit a non-mapping
//     intermediate it would otherwise have to destroy
//   - Root conflict: the document root itself is not a mapping
type FailError struct {
	// Code identifies the failure category.
	Code FailCode

	// Segment is the route segment at which the failure occurred.
	Segment string

	// TypeName names the offending value's variant (for type failures).
	TypeName string
}

// FailCode categorizes semantic failures.
type FailCode string

const (
	// CodeKeyNotFound indicates a route segment missing from a mapping.
	CodeKeyNotFound FailCode = "KEY_NOT_FOUND"

	// CodeNotAMapping indicates traversal into a non-mapping value.
	CodeNotAMapping FailCode = "NOT_A_MAPPING"

	// CodePathConflict indicates a non-mapping intermediate blocked a
	// mutation under the Strict policy.
	CodePathConflict FailCode = "PATH_CONFLICT"

	// CodeRootConflict indicates the document root is not a mapping.
	CodeRootConflict FailCode = "ROOT_NOT_A_MAPPING"
)

// Error implements the error interface.
func (e *FailError) Error() string {
	switch {
	case e.Segment != "" && e.TypeName != "":
		return fmt.Sprintf("%s: segment %q addresses %s", e.Code, e.Segment, e.TypeName)
	case e.Segment != "":
		return fmt.Sprintf("%s: segment %q", e.Code, e.Segment)
	case e.TypeName != "":
		return fmt.Sprintf("%s: document root is %s", e.Code, e.TypeName)
	default:
		return string(e.Code)
	}
}

// IsFail reports whether err is any recoverable semantic failure.
// Uses errors.As to handle wrapped errors.
func IsFail(err error) bool {
	var fe *FailError
	return errors.As(err, &fe)
}

// IsKeyNotFound reports whether err is a missing-key failure.
func IsKeyNotFound(err error) bool {
	return failCode(err) == CodeKeyNotFound
}

// IsNotAMapping reports whether err is a traversal type failure.
func IsNotAMapping(err error) bool {
	return failCode(err) == CodeNotAMapping
}

// IsConflict reports whether err is a mutation conflict (path or root).
func IsConflict(err error) bool {
	code := failCode(err)
	return code == CodePathConflict || code == CodeRootConflict
}

func failCode(err error) FailCode {
	var fe *FailError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
