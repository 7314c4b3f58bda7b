package engine

import (
	"github.com/confroute/confroute/document"
	"github.com/confroute/confroute/route"
)

// Resolve walks r through doc and returns the addressed value.
//
// The empty route resolves to doc itself. Otherwise segments are walked left
// to right; a non-mapping intermediate fails with NOT_A_MAPPING (carrying the
// offending segment and the actual type), a missing key fails with
// KEY_NOT_FOUND. Resolve has no side effects and never modifies doc.
func Resolve(doc document.Value, r route.Route) (document.Value, error) {
	if r.IsEmpty() {
		return doc, nil
	}

	cur := doc
	for i := 0; i < r.Len(); i++ {
		seg := r.At(i)
		m, ok := cur.(*document.Mapping)
		if !ok {
			return nil, &FailError{
				Code:     CodeNotAMapping,
				Segment:  seg,
				TypeName: document.TypeName(cur),
			}
		}
		next, present := m.Get(seg)
		if !present {
			return nil, &FailError{Code: CodeKeyNotFound, Segment: seg}
		}
		cur = next
	}
	return cur, nil
}
