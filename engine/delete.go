package engine

import (
	"github.com/confroute/confroute/document"
	"github.com/confroute/confroute/route"
)

// Dissoc returns a new document with the value at r removed. The input doc is
// deep copied first and is never modified.
//
// The empty route clears the entire document, yielding null. Otherwise every
// segment of r must resolve: a missing key fails with KEY_NOT_FOUND and a
// non-mapping intermediate fails with NOT_A_MAPPING, mirroring Resolve.
//
// When prune is true, mapping ancestors left empty by the removal are removed
// as well, bottom-up, stopping at the first non-empty ancestor. The root
// mapping itself is kept even when emptied.
func Dissoc(doc document.Value, r route.Route, prune bool) (document.Value, error) {
	if r.IsEmpty() {
		return document.Null{}, nil
	}

	root := document.Clone(doc)
	rm, ok := root.(*document.Mapping)
	if !ok {
		return nil, &FailError{
			Code:     CodeNotAMapping,
			Segment:  r.At(0),
			TypeName: document.TypeName(root),
		}
	}

	// Walk to the leaf's parent, keeping the chain for pruning.
	chain := make([]*document.Mapping, 0, r.Len())
	chain = append(chain, rm)
	cur := rm
	for i := 0; i < r.Len()-1; i++ {
		seg := r.At(i)
		existing, present := cur.Get(seg)
		if !present {
			return nil, &FailError{Code: CodeKeyNotFound, Segment: seg}
		}
		next, isMapping := existing.(*document.Mapping)
		if !isMapping {
			return nil, &FailError{
				Code:     CodeNotAMapping,
				Segment:  seg,
				TypeName: document.TypeName(existing),
			}
		}
		chain = append(chain, next)
		cur = next
	}

	if !cur.Delete(r.Leaf()) {
		return nil, &FailError{Code: CodeKeyNotFound, Segment: r.Leaf()}
	}

	if prune {
		// Remove emptied ancestors bottom-up; chain[i] holds r.At(i-1)'s
		// mapping, so chain[i-1] is its parent.
		for i := len(chain) - 1; i > 0; i-- {
			if chain[i].Len() > 0 {
				break
			}
			chain[i-1].Delete(r.At(i - 1))
		}
	}

	return root, nil
}
