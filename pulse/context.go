package pulse

import (
	"runtime"

	"github.com/oliverbestmann/pulse/gpu"
)

func init() {
	// a graphics context is bound to the thread that created it
	runtime.LockOSThread()
}

// Context carries the device every resource is created on. It embeds the
// device, so the raw entry points are available for things pulse does not
// wrap.
type Context struct {
	gpu.Device

	// if set, resources that are garbage collected without being
	// released are logged
	ReportLeaks bool
}

func New(dev gpu.Device) *Context {
	return &Context{Device: dev}
}

// ClearFramebuffer clears the buffers in mask of the currently bound framebuffer.
func (ctx *Context) ClearFramebuffer(color Color, mask gpu.Enum) {
	if mask&gpu.ColorBufferBit != 0 {
		r, g, b, a := color.Components()
		ctx.ClearColor(r, g, b, a)
	}

	ctx.Device.Clear(mask)
}
