// Package route provides immutable key paths into nested documents.
package route

import "strings"

// Separator joins segments in the textual form accepted by Parse and
// produced by String. Keys containing a dot cannot be expressed textually;
// construct such routes with New.
const Separator = "."

// Route is an immutable, ordered sequence of key segments addressing a
// location inside a nested document. The zero value is the empty route,
// which addresses the document root itself.
//
// Two routes are equal iff their segment sequences are equal element-wise,
// in order. String returns a canonical textual form, so a Route's String is
// usable as a map key.
type Route struct {
	segs []string
}

// New constructs a Route from segments. The input slice is copied.
func New(segments ...string) Route {
	if len(segments) == 0 {
		return Route{}
	}
	segs := make([]string, len(segments))
	copy(segs, segments)
	return Route{segs: segs}
}

// Parse constructs a Route from its dotted textual form.
// An empty string parses to the empty route.
func Parse(s string) Route {
	if s == "" {
		return Route{}
	}
	return Route{segs: strings.Split(s, Separator)}
}

// Len returns the number of segments.
func (r Route) Len() int {
	return len(r.segs)
}

// IsEmpty reports whether the route addresses the document root.
func (r Route) IsEmpty() bool {
	return len(r.segs) == 0
}

// Segments returns the segments in order. The slice is a copy.
func (r Route) Segments() []string {
	segs := make([]string, len(r.segs))
	copy(segs, r.segs)
	return segs
}

// At returns the segment at index i.
func (r Route) At(i int) string {
	return r.segs[i]
}

// Leaf returns the final segment. It panics on the empty route.
func (r Route) Leaf() string {
	return r.segs[len(r.segs)-1]
}

// Parent returns the route without its final segment.
// The parent of the empty route is the empty route.
func (r Route) Parent() Route {
	if len(r.segs) <= 1 {
		return Route{}
	}
	return New(r.segs[:len(r.segs)-1]...)
}

// Child returns a new route with segment appended. The receiver is unchanged.
func (r Route) Child(segment string) Route {
	segs := make([]string, len(r.segs)+1)
	copy(segs, r.segs)
	segs[len(r.segs)] = segment
	return Route{segs: segs}
}

// Equal reports whether r and other have identical segment sequences.
func (r Route) Equal(other Route) bool {
	if len(r.segs) != len(other.segs) {
		return false
	}
	for i := range r.segs {
		if r.segs[i] != other.segs[i] {
			return false
		}
	}
	return true
}

// String returns the dotted textual form. The empty route is "".
func (r Route) String() string {
	return strings.Join(r.segs, Separator)
}
