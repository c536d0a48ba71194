package pulse

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/pulse/gpu"
)

// size of one attribute row in bytes, four 32 bit components
const attributeRowSize = 16

// VertexSource is a buffer that can feed vertex attributes. It is
// implemented by every *Buffer[T].
type VertexSource interface {
	Handle() gpu.Buffer
	Stride() int32
	vertexBinding() *vertexBinding
}

// vertexBinding records to which layout and binding slot a buffer is attached.
type vertexBinding struct {
	layout *VertexLayout
	slot   uint32

	// relative offset of the most recent attribute declared on this binding
	lastOffset uint32
	attributes int
}

func (vb *vertexBinding) detach() {
	*vb = vertexBinding{}
}

// VertexLayout owns a vertex array object. Buffers are attached to
// consecutive binding slots and attributes are declared in consecutive
// attribute indices, both counters are local to the layout.
type VertexLayout struct {
	ctx    *Context
	handle gpu.VertexArray

	nextAttribute uint32
	nextSlot      uint32

	sources []*vertexBinding
	indices *Buffer[uint32]
}

func NewVertexLayout(ctx *Context) *VertexLayout {
	layout := &VertexLayout{
		ctx:    ctx,
		handle: ctx.CreateVertexArray(),
	}

	slog.Debug("Create vertex layout", slog.Uint64("id", uint64(layout.handle)))

	return trackLeak(ctx, layout)
}

func (l *VertexLayout) Handle() gpu.VertexArray {
	return l.handle
}

// AttachVertexBuffer assigns buf the next binding slot of this layout and
// returns the slot. A buffer can only be attached to one layout, attaching it
// a second time panics.
func (l *VertexLayout) AttachVertexBuffer(buf VertexSource) uint32 {
	binding := buf.vertexBinding()
	if binding.layout != nil {
		panic(fmt.Sprintf("buffer %d is already attached to vertex layout %d", buf.Handle(), binding.layout.handle))
	}

	slot := l.nextSlot
	l.nextSlot++

	l.ctx.VertexArrayVertexBuffer(l.handle, slot, buf.Handle(), 0, buf.Stride())

	binding.layout = l
	binding.slot = slot
	l.sources = append(l.sources, binding)

	return slot
}

// AttachIndexBuffer sets the index source of this layout. A layout has at
// most one index buffer.
func (l *VertexLayout) AttachIndexBuffer(buf *Buffer[uint32]) {
	if l.indices != nil {
		panic(fmt.Sprintf("vertex layout %d already has index buffer %d", l.handle, l.indices.handle))
	}

	l.ctx.VertexArrayElementBuffer(l.handle, buf.Handle())
	l.indices = buf
}

// DeclareAttribute enables the next attribute index and sources it from the
// binding slot of buf. Attributes of one buffer must be declared in the order
// of their byte offset.
func (l *VertexLayout) DeclareAttribute(buf VertexSource, components int32, byteOffset uint32, typ gpu.Enum) uint32 {
	binding := l.requireAttached(buf)

	if binding.attributes > 0 && byteOffset < binding.lastOffset {
		panic(fmt.Sprintf("attribute at offset %d declared after offset %d of buffer %d",
			byteOffset, binding.lastOffset, buf.Handle()))
	}

	attrib := l.nextAttribute
	l.nextAttribute++

	l.ctx.EnableVertexArrayAttrib(l.handle, attrib)
	l.ctx.VertexArrayAttribFormat(l.handle, attrib, components, typ, false, byteOffset)
	l.ctx.VertexArrayAttribBinding(l.handle, attrib, binding.slot)

	binding.lastOffset = byteOffset
	binding.attributes++

	return attrib
}

// DeclareDivisorAttribute declares rows consecutive four float attributes,
// 16 bytes apart, and advances the binding slot of buf once per instance.
// Use DivisorRows to get the row count of a type.
func (l *VertexLayout) DeclareDivisorAttribute(buf VertexSource, rows int) {
	binding := l.requireAttached(buf)

	for row := range rows {
		l.DeclareAttribute(buf, 4, uint32(row*attributeRowSize), gpu.Float)
	}

	l.ctx.VertexArrayBindingDivisor(l.handle, binding.slot, 1)
}

// DivisorRows returns the number of attribute rows a value of type T spans.
func DivisorRows[T any]() int {
	return (sizeOf[T]() + attributeRowSize - 1) / attributeRowSize
}

func (l *VertexLayout) requireAttached(buf VertexSource) *vertexBinding {
	binding := buf.vertexBinding()
	if binding.layout != l {
		panic(fmt.Sprintf("buffer %d is not attached to vertex layout %d", buf.Handle(), l.handle))
	}

	return binding
}

func (l *VertexLayout) Bind() {
	l.ctx.BindVertexArray(l.handle)
}

// DrawInstanced binds the layout and draws indexCount indices from the start
// of the index buffer, instanceCount times.
func (l *VertexLayout) DrawInstanced(indexCount, instanceCount int32) {
	l.Bind()
	l.ctx.DrawElementsInstanced(gpu.Triangles, indexCount, gpu.UnsignedInt, 0, instanceCount)
	l.ctx.BindVertexArray(0)
}

// DrawInstancedAt draws starting at byteOffset into the index buffer.
// The layout must already be bound.
func (l *VertexLayout) DrawInstancedAt(indexCount int32, byteOffset int, instanceCount int32) {
	l.ctx.DrawElementsInstanced(gpu.Triangles, indexCount, gpu.UnsignedInt, byteOffset, instanceCount)
}

func (l *VertexLayout) released() bool {
	return l.handle == 0
}

// Release deletes the vertex array. Attached buffers are detached but not
// released, they are owned by whoever created them.
func (l *VertexLayout) Release() {
	if l.handle == 0 {
		return
	}

	slog.Debug("Release vertex layout", slog.Uint64("id", uint64(l.handle)))

	for _, binding := range l.sources {
		if binding.layout == l {
			binding.detach()
		}
	}

	l.ctx.DeleteVertexArray(l.handle)
	l.handle = 0
	l.sources = nil
	l.indices = nil
}
