package geometry

import (
	"testing"
	"unsafe"

	qt "github.com/frankban/quicktest"
)

func TestCubeFacesPointOutwards(t *testing.T) {
	c := qt.New(t)

	vertices, indices := Cube()
	c.Assert(vertices, qt.HasLen, 24)
	c.Assert(indices, qt.HasLen, 36)

	for tri := 0; tri < len(indices); tri += 3 {
		a := vertices[indices[tri]]
		b := vertices[indices[tri+1]]
		d := vertices[indices[tri+2]]

		winding := b.Position.Sub(a.Position).Cross(d.Position.Sub(a.Position))
		c.Check(winding.Dot(a.Normal) > 0, qt.IsTrue, qt.Commentf("triangle %d", tri/3))
	}
}

func TestVertexAttributesInFieldOrder(t *testing.T) {
	c := qt.New(t)

	var components int32
	for idx, attr := range VertexAttributes {
		if idx > 0 {
			c.Check(attr.Offset > VertexAttributes[idx-1].Offset, qt.IsTrue)
		}

		components += attr.Components
	}

	// every component is a float32
	c.Assert(int(unsafe.Sizeof(Vertex{})), qt.Equals, int(components)*4)
}
