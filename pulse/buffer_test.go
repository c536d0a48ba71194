package pulse

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/oliverbestmann/pulse/gpu"
)

func TestBufferUploadMutable(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	buf := NewBuffer[float32](ctx)
	defer buf.Release()

	buf.UploadMutable([]float32{1, 2, 3})
	c.Assert(buf.Len(), qt.Equals, 3)

	state := dev.Buffers[buf.Handle()]
	c.Assert(state.Immutable, qt.IsFalse)
	c.Assert(state.Data, qt.DeepEquals, SliceAsBytes([]float32{1, 2, 3}))

	c.Assert(buf.SetLocal(1, 5), qt.IsNil)
	c.Assert(buf.UpdateRange(1), qt.IsNil)
	c.Assert(buf.Len(), qt.Equals, 3)
	c.Assert(state.Data, qt.DeepEquals, SliceAsBytes([]float32{1, 5, 3}))

	// a range update does not reallocate
	c.Assert(state.Allocations, qt.Equals, 1)
}

func TestBufferUploadCopiesInput(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	buf := NewBuffer[int32](ctx)
	defer buf.Release()

	data := []int32{1, 2}
	buf.UploadMutable(data)
	data[0] = 7

	c.Assert(buf.Elements(), qt.DeepEquals, []int32{1, 2})
}

func TestBufferUploadImmutable(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	buf := NewBuffer[uint32](ctx)
	defer buf.Release()

	buf.UploadImmutable([]uint32{0, 1, 2})

	c.Assert(buf.Immutable(), qt.IsTrue)
	c.Assert(dev.Buffers[buf.Handle()].Immutable, qt.IsTrue)

	// range updates go into the immutable storage
	c.Assert(buf.SetLocal(2, 9), qt.IsNil)
	c.Assert(buf.UpdateRange(2), qt.IsNil)
	c.Assert(dev.Buffers[buf.Handle()].Data, qt.DeepEquals, SliceAsBytes([]uint32{0, 1, 9}))
}

func TestBufferImmutableStorageIsAllocatedOnce(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	buf := NewBuffer[uint32](ctx)
	buf.UploadImmutable([]uint32{0})
	buf.UploadImmutable([]uint32{0, 1})

	// a second immutable upload is a device error, nothing checks it before
	c.Assert(dev.Errors, qt.HasLen, 1)
	dev.Errors = nil

	buf.Release()
}

func TestBufferPushAndRemove(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	buf := NewBuffer[float32](ctx)
	defer buf.Release()

	buf.Push(1)
	buf.Push(2)
	buf.Push(3)
	c.Assert(buf.Len(), qt.Equals, 3)
	c.Assert(dev.Buffers[buf.Handle()].Allocations, qt.Equals, 3)

	c.Assert(buf.RemoveAt(1), qt.IsNil)
	c.Assert(buf.Elements(), qt.DeepEquals, []float32{1, 3})
	c.Assert(dev.Buffers[buf.Handle()].Data, qt.DeepEquals, SliceAsBytes([]float32{1, 3}))
}

func TestBufferRemoveOutOfBounds(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	buf := NewBuffer[float32](ctx)
	defer buf.Release()

	buf.UploadMutable([]float32{1, 2})

	for _, index := range []int{2, 3, -1} {
		err := buf.RemoveAt(index)
		c.Check(err, qt.ErrorIs, ErrIndexOutOfBounds)
		c.Check(buf.Len(), qt.Equals, 2)
	}
}

func TestBufferUpdateRangePreconditions(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	buf := NewBuffer[float32](ctx)
	defer buf.Release()

	// no element
	c.Assert(buf.UpdateRange(0), qt.ErrorIs, ErrIndexOutOfBounds)

	// element but no storage
	buf.AppendLocal(1)
	c.Assert(buf.UpdateRange(0), qt.ErrorIs, ErrNoStorage)

	// element beyond the device storage
	buf.Upload()
	buf.AppendLocal(2)
	c.Assert(buf.UpdateRange(1), qt.ErrorIs, ErrIndexOutOfBounds)
	c.Assert(buf.UpdateRange(0), qt.IsNil)
}

func TestBufferBatchEdits(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	buf := NewBuffer[float32](ctx)
	defer buf.Release()

	buf.UploadMutable([]float32{1, 2})

	buf.ClearLocal()
	buf.AppendLocal(3, 4, 5)

	// device storage is untouched until the next upload
	c.Assert(dev.Buffers[buf.Handle()].Data, qt.DeepEquals, SliceAsBytes([]float32{1, 2}))

	buf.Upload()
	c.Assert(dev.Buffers[buf.Handle()].Data, qt.DeepEquals, SliceAsBytes([]float32{3, 4, 5}))
	c.Assert(buf.Len(), qt.Equals, 3)
}

func TestBufferRelease(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	buf := NewBuffer[float32](ctx)
	c.Assert(dev.Live().Buffers, qt.Equals, 1)

	buf.Release()
	buf.Release()

	c.Assert(dev.Live().Buffers, qt.Equals, 0)
	c.Assert(buf.Handle(), qt.Equals, gpu.Buffer(0))
}
