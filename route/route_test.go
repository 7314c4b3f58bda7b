package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_CopiesInput(t *testing.T) {
	segs := []string{"server", "port"}
	r := New(segs...)
	segs[0] = "mutated"
	assert.Equal(t, []string{"server", "port"}, r.Segments())
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"", Route{}},
		{"server", New("server")},
		{"server.port", New("server", "port")},
		{"a.b.c", New("a", "b", "c")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.True(t, Parse(tt.in).Equal(tt.want))
		})
	}
}

func TestRoute_StringRoundTrip(t *testing.T) {
	r := New("server", "port")
	assert.Equal(t, "server.port", r.String())
	assert.True(t, Parse(r.String()).Equal(r))

	assert.Equal(t, "", Route{}.String())
}

func TestRoute_Empty(t *testing.T) {
	assert.True(t, Route{}.IsEmpty())
	assert.Zero(t, Route{}.Len())
	assert.False(t, New("x").IsEmpty())
}

func TestRoute_Equal(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("a", "b")))
	assert.False(t, New("a", "b").Equal(New("b", "a")))
	assert.False(t, New("a").Equal(New("a", "b")))
	assert.True(t, Route{}.Equal(New()))
}

func TestRoute_Accessors(t *testing.T) {
	r := New("a", "b", "c")
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "a", r.At(0))
	assert.Equal(t, "c", r.Leaf())
	assert.True(t, r.Parent().Equal(New("a", "b")))
	assert.True(t, New("a").Parent().IsEmpty())
}

func TestRoute_ChildIsImmutable(t *testing.T) {
	base := New("a")
	child := base.Child("b")

	assert.True(t, base.Equal(New("a")), "Child must not modify the receiver")
	assert.True(t, child.Equal(New("a", "b")))

	// Two children of the same base must not clobber each other
	c1 := base.Child("x")
	c2 := base.Child("y")
	assert.True(t, c1.Equal(New("a", "x")))
	assert.True(t, c2.Equal(New("a", "y")))
}

func TestRoute_SegmentsIsACopy(t *testing.T) {
	r := New("a", "b")
	segs := r.Segments()
	segs[0] = "mutated"
	assert.Equal(t, "a", r.At(0))
}
