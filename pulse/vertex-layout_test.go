package pulse

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/gpu/gputest"
)

type testVertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
}

func TestVertexLayoutSlotsAndAttributes(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	vertices := NewBuffer[testVertex](ctx)
	transforms := NewBuffer[mgl32.Mat4](ctx)
	layout := NewVertexLayout(ctx)

	defer vertices.Release()
	defer transforms.Release()
	defer layout.Release()

	c.Assert(layout.AttachVertexBuffer(vertices), qt.Equals, uint32(0))
	c.Assert(layout.DeclareAttribute(vertices, 3, 0, gpu.Float), qt.Equals, uint32(0))
	c.Assert(layout.DeclareAttribute(vertices, 2, 12, gpu.Float), qt.Equals, uint32(1))

	c.Assert(layout.AttachVertexBuffer(transforms), qt.Equals, uint32(1))
	layout.DeclareDivisorAttribute(transforms, DivisorRows[mgl32.Mat4]())

	state := dev.VertexArrays[layout.Handle()]

	c.Assert(state.Bindings[0], qt.Equals, gputest.Binding{Buffer: vertices.Handle(), Stride: 20})
	c.Assert(state.Bindings[1], qt.Equals, gputest.Binding{Buffer: transforms.Handle(), Stride: 64})

	c.Assert(*state.Attribs[1], qt.Equals, gputest.Attrib{
		Enabled: true,
		Size:    2,
		Type:    gpu.Float,
		Offset:  12,
		Binding: 0,
	})

	// the matrix takes four attributes, one per row, all on binding slot 1
	for row := range 4 {
		attrib := state.Attribs[uint32(2+row)]
		c.Check(attrib.Enabled, qt.IsTrue)
		c.Check(attrib.Size, qt.Equals, int32(4))
		c.Check(attrib.Offset, qt.Equals, uint32(row*16))
		c.Check(attrib.Binding, qt.Equals, uint32(1))
	}

	c.Assert(state.Attribs, qt.HasLen, 6)
	c.Assert(state.Divisors, qt.DeepEquals, map[uint32]uint32{1: 1})
}

func TestVertexLayoutCountersArePerLayout(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	first := NewVertexLayout(ctx)
	second := NewVertexLayout(ctx)
	defer first.Release()
	defer second.Release()

	a := NewBuffer[float32](ctx)
	b := NewBuffer[float32](ctx)
	defer a.Release()
	defer b.Release()

	c.Assert(first.AttachVertexBuffer(a), qt.Equals, uint32(0))
	c.Assert(first.DeclareAttribute(a, 1, 0, gpu.Float), qt.Equals, uint32(0))

	c.Assert(second.AttachVertexBuffer(b), qt.Equals, uint32(0))
	c.Assert(second.DeclareAttribute(b, 1, 0, gpu.Float), qt.Equals, uint32(0))
}

func TestDivisorRows(t *testing.T) {
	c := qt.New(t)

	c.Assert(DivisorRows[mgl32.Mat4](), qt.Equals, 4)
	c.Assert(DivisorRows[mgl32.Vec4](), qt.Equals, 1)
	c.Assert(DivisorRows[mgl32.Vec3](), qt.Equals, 1)
	c.Assert(DivisorRows[mgl32.Mat3](), qt.Equals, 3)
}

func TestVertexLayoutBufferOnSecondLayoutPanics(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	buf := NewBuffer[float32](ctx)
	defer buf.Release()

	first := NewVertexLayout(ctx)
	second := NewVertexLayout(ctx)
	defer second.Release()

	first.AttachVertexBuffer(buf)

	c.Assert(func() { second.AttachVertexBuffer(buf) }, qt.PanicMatches, `buffer \d+ is already attached to vertex layout \d+`)
	c.Assert(func() { first.AttachVertexBuffer(buf) }, qt.PanicMatches, `buffer \d+ is already attached .*`)

	// the buffer is free again once its layout is gone
	first.Release()
	c.Assert(second.AttachVertexBuffer(buf), qt.Equals, uint32(0))
}

func TestVertexLayoutContractViolationsPanic(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	layout := NewVertexLayout(ctx)
	defer layout.Release()

	buf := NewBuffer[testVertex](ctx)
	indices := NewBuffer[uint32](ctx)
	defer buf.Release()
	defer indices.Release()

	c.Assert(func() { layout.DeclareAttribute(buf, 3, 0, gpu.Float) }, qt.PanicMatches, `buffer \d+ is not attached to vertex layout \d+`)

	layout.AttachVertexBuffer(buf)
	layout.DeclareAttribute(buf, 2, 12, gpu.Float)
	c.Assert(func() { layout.DeclareAttribute(buf, 3, 0, gpu.Float) }, qt.PanicMatches, `attribute at offset 0 declared after offset 12 .*`)

	layout.AttachIndexBuffer(indices)
	c.Assert(func() { layout.AttachIndexBuffer(indices) }, qt.PanicMatches, `vertex layout \d+ already has index buffer \d+`)
}

func TestVertexLayoutDraw(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	program := newTestProgram(c, ctx)
	defer program.Release()
	program.Use()

	vertices := NewBuffer[testVertex](ctx)
	indices := NewBuffer[uint32](ctx)
	layout := NewVertexLayout(ctx)
	defer vertices.Release()
	defer indices.Release()
	defer layout.Release()

	layout.AttachVertexBuffer(vertices)
	layout.AttachIndexBuffer(indices)
	layout.DeclareAttribute(vertices, 3, 0, gpu.Float)

	vertices.UploadImmutable(make([]testVertex, 4))
	indices.UploadImmutable([]uint32{0, 1, 2, 0, 2, 3})

	layout.DrawInstanced(6, 2)
	c.Assert(dev.BoundVertexArray, qt.Equals, gpu.VertexArray(0))

	layout.Bind()
	layout.DrawInstancedAt(3, 12, 1)

	c.Assert(dev.Draws, qt.HasLen, 2)

	c.Assert(dev.Draws[0].VertexArray, qt.Equals, layout.Handle())
	c.Assert(dev.Draws[0].Count, qt.Equals, int32(6))
	c.Assert(dev.Draws[0].ByteOffset, qt.Equals, 0)
	c.Assert(dev.Draws[0].Instances, qt.Equals, int32(2))

	c.Assert(dev.Draws[1].Count, qt.Equals, int32(3))
	c.Assert(dev.Draws[1].ByteOffset, qt.Equals, 12)
	c.Assert(dev.Draws[1].Instances, qt.Equals, int32(1))
}
