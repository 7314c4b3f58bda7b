package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/confroute/confroute/document"
	"github.com/confroute/confroute/route"
)

func serverDoc() *document.Mapping {
	return document.NewMapping(
		document.P("server", document.NewMapping(
			document.P("port", document.Int(8080)),
			document.P("host", document.String("localhost")),
		)),
		document.P("debug", document.Bool(false)),
	)
}

func TestResolve_EmptyRouteReturnsDocument(t *testing.T) {
	doc := serverDoc()
	got, err := Resolve(doc, route.Route{})
	require.NoError(t, err)
	assert.Same(t, doc, got)
}

func TestResolve_NestedValue(t *testing.T) {
	doc := serverDoc()

	got, err := Resolve(doc, route.New("server", "port"))
	require.NoError(t, err)
	assert.Equal(t, document.Int(8080), got)

	got, err = Resolve(doc, route.New("server"))
	require.NoError(t, err)
	assert.True(t, document.Equal(got, document.NewMapping(
		document.P("port", document.Int(8080)),
		document.P("host", document.String("localhost")),
	)))
}

func TestResolve_KeyNotFound(t *testing.T) {
	doc := serverDoc()

	_, err := Resolve(doc, route.New("server", "tls"))
	require.Error(t, err)
	assert.True(t, IsKeyNotFound(err))

	var fe *FailError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "tls", fe.Segment)
}

func TestResolve_NotAMapping(t *testing.T) {
	tests := []struct {
		name    string
		doc     document.Value
		route   route.Route
		segment string
		typ     string
	}{
		{
			name:    "descend_into_scalar",
			doc:     serverDoc(),
			route:   route.New("debug", "level"),
			segment: "level",
			typ:     "bool",
		},
		{
			name:    "root_is_scalar",
			doc:     document.String("not a config"),
			route:   route.New("server"),
			segment: "server",
			typ:     "string",
		},
		{
			name: "descend_into_sequence",
			doc: document.NewMapping(
				document.P("hosts", document.Sequence{document.String("a"), document.String("b")}),
			),
			route:   route.New("hosts", "first"),
			segment: "first",
			typ:     "sequence",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.doc, tt.route)
			require.Error(t, err)
			assert.True(t, IsNotAMapping(err))

			var fe *FailError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.segment, fe.Segment)
			assert.Equal(t, tt.typ, fe.TypeName)
		})
	}
}

func TestResolve_IsSideEffectFree(t *testing.T) {
	doc := serverDoc()
	snapshot := document.Clone(doc)

	_, _ = Resolve(doc, route.New("server", "port"))
	_, _ = Resolve(doc, route.New("server", "missing"))
	_, _ = Resolve(doc, route.New("debug", "level"))

	assert.True(t, document.Equal(doc, snapshot))
}

func TestResolve_DeterministicAcrossCalls(t *testing.T) {
	doc := serverDoc()
	r := route.New("server", "host")

	first, err := Resolve(doc, r)
	require.NoError(t, err)
	second, err := Resolve(doc, r)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
