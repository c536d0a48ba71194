package pulse

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/oliverbestmann/pulse/gpu"
)

// Buffer owns a device buffer holding a typed array together with a cpu side
// copy of its elements. The copy is authoritative only until the next upload.
//
// Storage is either immutable (UploadImmutable, allocated exactly once) or
// mutable (UploadMutable, reallocated on every call). Mixing both on the same
// buffer is a device error.
type Buffer[T any] struct {
	ctx    *Context
	handle gpu.Buffer

	elements []T

	// number of elements resident on the device, -1 without storage
	deviceLen int

	immutable bool

	binding vertexBinding
}

func NewBuffer[T any](ctx *Context) *Buffer[T] {
	buf := &Buffer[T]{
		ctx:       ctx,
		handle:    ctx.CreateBuffer(),
		deviceLen: -1,
	}

	slog.Debug("Create buffer",
		slog.Uint64("id", uint64(buf.handle)),
		slog.Int("stride", sizeOf[T]()),
	)

	return trackLeak(ctx, buf)
}

func (b *Buffer[T]) Handle() gpu.Buffer {
	return b.handle
}

// Stride is the size of one element in bytes.
func (b *Buffer[T]) Stride() int32 {
	return int32(sizeOf[T]())
}

// UploadImmutable replaces the local elements and allocates immutable device
// storage of exactly that size. It must be called at most once per buffer.
func (b *Buffer[T]) UploadImmutable(data []T) {
	b.elements = slices.Clone(data)
	b.ctx.NamedBufferStorage(b.handle, SliceAsBytes(b.elements))
	b.deviceLen = len(b.elements)
	b.immutable = true
}

// UploadMutable replaces the local elements and reallocates the device storage.
func (b *Buffer[T]) UploadMutable(data []T) {
	b.elements = slices.Clone(data)
	b.upload()
}

// Upload reallocates the device storage from the local elements. Use it after
// a batch of AppendLocal, SetLocal or ClearLocal calls.
func (b *Buffer[T]) Upload() {
	b.upload()
}

func (b *Buffer[T]) upload() {
	b.ctx.NamedBufferData(b.handle, SliceAsBytes(b.elements), gpu.DynamicDraw)
	b.deviceLen = len(b.elements)
}

// UpdateRange uploads the single local element at index into the existing
// device storage.
func (b *Buffer[T]) UpdateRange(index int) error {
	if index < 0 || index >= len(b.elements) {
		return fmt.Errorf("update element %d of %d: %w", index, len(b.elements), ErrIndexOutOfBounds)
	}

	if b.deviceLen < 0 {
		return fmt.Errorf("update element %d: %w", index, ErrNoStorage)
	}

	if index >= b.deviceLen {
		return fmt.Errorf("update element %d beyond device storage of %d elements: %w",
			index, b.deviceLen, ErrIndexOutOfBounds)
	}

	stride := sizeOf[T]()
	b.ctx.NamedBufferSubData(b.handle, index*stride, AsByteSlice(&b.elements[index]))

	return nil
}

// Push appends a value and reallocates the device storage. This is O(n).
func (b *Buffer[T]) Push(value T) {
	b.elements = append(b.elements, value)
	b.upload()
}

// RemoveAt removes the element at index and reallocates the device storage.
// This is O(n).
func (b *Buffer[T]) RemoveAt(index int) error {
	if index < 0 || index >= len(b.elements) {
		return fmt.Errorf("remove element %d of %d: %w", index, len(b.elements), ErrIndexOutOfBounds)
	}

	b.elements = slices.Delete(b.elements, index, index+1)
	b.upload()

	return nil
}

// AppendLocal appends values to the local elements without uploading them.
func (b *Buffer[T]) AppendLocal(values ...T) {
	b.elements = append(b.elements, values...)
}

// SetLocal replaces the local element at index without uploading it.
func (b *Buffer[T]) SetLocal(index int, value T) error {
	if index < 0 || index >= len(b.elements) {
		return fmt.Errorf("set element %d of %d: %w", index, len(b.elements), ErrIndexOutOfBounds)
	}

	b.elements[index] = value
	return nil
}

// ClearLocal removes all local elements without touching the device storage.
func (b *Buffer[T]) ClearLocal() {
	b.elements = b.elements[:0]
}

// Len returns the number of local elements.
func (b *Buffer[T]) Len() int {
	return len(b.elements)
}

// Elements returns the local elements. The slice must not be modified.
func (b *Buffer[T]) Elements() []T {
	return b.elements
}

func (b *Buffer[T]) Immutable() bool {
	return b.immutable
}

func (b *Buffer[T]) vertexBinding() *vertexBinding {
	return &b.binding
}

func (b *Buffer[T]) released() bool {
	return b.handle == 0
}

func (b *Buffer[T]) Release() {
	if b.handle == 0 {
		return
	}

	slog.Debug("Release buffer", slog.Uint64("id", uint64(b.handle)))

	b.binding.detach()
	b.ctx.DeleteBuffer(b.handle)
	b.handle = 0
	b.elements = nil
	b.deviceLen = -1
}
