package engine

import (
	"github.com/confroute/confroute/document"
	"github.com/confroute/confroute/route"
)

// ConflictPolicy controls how mutation treats a non-mapping value sitting on
// the path to the target route.
type ConflictPolicy int

const (
	// Strict fails with a conflict instead of destroying existing values.
	Strict ConflictPolicy = iota

	// OverwriteConflicts destructively replaces conflicting non-mapping
	// values with fresh empty mappings to reach the target route.
	OverwriteConflicts
)

// String returns the policy name.
func (p ConflictPolicy) String() string {
	if p == OverwriteConflicts {
		return "overwrite-conflicts"
	}
	return "strict"
}

// Assoc returns a new document with value installed at r, creating
// intermediate mappings as needed. The input doc is deep copied first and is
// never modified; value is deep copied into the result as well, so the caller
// may keep mutating either side afterwards.
//
// The empty route replaces the entire document with value (no merging). An
// absent or null root is bootstrapped to an empty mapping. A non-mapping
// root or intermediate fails under Strict and is coerced to an empty mapping
// under OverwriteConflicts. The final segment always overwrites whatever was
// there, including a whole subtree.
//
// Assoc is idempotent: applying the same (route, value) twice yields the same
// document both times.
func Assoc(doc document.Value, r route.Route, value document.Value, policy ConflictPolicy) (document.Value, error) {
	if r.IsEmpty() {
		return document.Clone(value), nil
	}

	root := document.Clone(doc)

	// Bootstrap or validate the root
	var cur *document.Mapping
	switch rv := root.(type) {
	case nil, document.Null:
		cur = document.NewMapping()
		root = cur
	case *document.Mapping:
		cur = rv
	default:
		if policy != OverwriteConflicts {
			return nil, &FailError{
				Code:     CodeRootConflict,
				TypeName: document.TypeName(root),
			}
		}
		cur = document.NewMapping()
		root = cur
	}

	// Walk parents: missing => fresh mapping, non-mapping => fail or coerce
	for i := 0; i < r.Len()-1; i++ {
		seg := r.At(i)
		if existing, present := cur.Get(seg); present {
			if next, ok := existing.(*document.Mapping); ok {
				cur = next
				continue
			}
			if policy != OverwriteConflicts {
				return nil, &FailError{
					Code:     CodePathConflict,
					Segment:  seg,
					TypeName: document.TypeName(existing),
				}
			}
		}
		next := document.NewMapping()
		cur.Set(seg, next)
		cur = next
	}

	cur.Set(r.Leaf(), document.Clone(value))
	return root, nil
}
