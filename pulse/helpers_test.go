package pulse

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/oliverbestmann/pulse/gpu/gputest"
)

const (
	testVertexShader   = "#version 450 core\nvoid main() { gl_Position = vec4(0); }\n"
	testFragmentShader = "#version 450 core\nout vec4 color;\nvoid main() { color = vec4(1); }\n"
)

func newTestContext(t *testing.T) (*qt.C, *Context, *gputest.Device) {
	c := qt.New(t)

	dev := gputest.New()
	ctx := New(dev)

	c.Cleanup(func() {
		c.Check(dev.Errors, qt.HasLen, 0, qt.Commentf("device errors: %v", dev.Errors))
	})

	return c, ctx, dev
}

func newTestProgram(c *qt.C, ctx *Context) *ShaderProgram {
	prog, err := NewShaderProgram(ctx, ShaderSources{
		Vertex:   testVertexShader,
		Fragment: testFragmentShader,
	})

	c.Assert(err, qt.IsNil)

	return prog
}

func decodedImage(width, height, channels int) DecodedImage {
	return DecodedImage{
		Pixels:   make([]byte, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}
}
