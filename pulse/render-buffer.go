package pulse

import (
	"log/slog"

	"github.com/oliverbestmann/pulse/gpu"
)

// RenderBuffer owns a depth/stencil renderbuffer of a RenderTarget.
type RenderBuffer struct {
	ctx    *Context
	handle gpu.Renderbuffer

	width  int32
	height int32
}

func NewRenderBuffer(ctx *Context, width, height int32) *RenderBuffer {
	rb := &RenderBuffer{
		ctx:    ctx,
		handle: ctx.CreateRenderbuffer(),
	}

	slog.Debug("Create renderbuffer", slog.Uint64("id", uint64(rb.handle)))

	rb.Resize(width, height)

	return trackLeak(ctx, rb)
}

func (rb *RenderBuffer) Handle() gpu.Renderbuffer {
	return rb.handle
}

// Resize reallocates the storage in place, contents are undefined afterwards.
func (rb *RenderBuffer) Resize(width, height int32) {
	rb.ctx.NamedRenderbufferStorage(rb.handle, gpu.Depth24Stencil8, width, height)
	rb.width = width
	rb.height = height
}

func (rb *RenderBuffer) Size() (width, height int32) {
	return rb.width, rb.height
}

func (rb *RenderBuffer) released() bool {
	return rb.handle == 0
}

func (rb *RenderBuffer) Release() {
	if rb.handle == 0 {
		return
	}

	slog.Debug("Release renderbuffer", slog.Uint64("id", uint64(rb.handle)))

	rb.ctx.DeleteRenderbuffer(rb.handle)
	rb.handle = 0
}
