package pipeline

import (
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/gpu/gputest"
	"github.com/oliverbestmann/pulse/pulse"
)

const (
	vertexShader   = "#version 450 core\nvoid main() { gl_Position = vec4(0); }\n"
	fragmentShader = "#version 450 core\nout vec4 color;\nvoid main() { color = vec4(1); }\n"
)

func setup(t *testing.T) (*qt.C, *pulse.Context, *gputest.Device, *pulse.ShaderProgram) {
	c := qt.New(t)

	dev := gputest.New()
	ctx := pulse.New(dev)

	program, err := pulse.NewShaderProgram(ctx, pulse.ShaderSources{
		Vertex:   vertexShader,
		Fragment: fragmentShader,
	})
	c.Assert(err, qt.IsNil)

	c.Cleanup(func() {
		program.Release()
		c.Check(dev.Errors, qt.HasLen, 0, qt.Commentf("device errors: %v", dev.Errors))
	})

	return c, ctx, dev, program
}

func TestLinkSurfaceIntoConsumer(t *testing.T) {
	c, ctx, _, program := setup(t)

	producer, err := NewView2D(ctx, 800, 600)
	c.Assert(err, qt.IsNil)
	defer producer.Release()

	consumer, err := NewPostProcess(ctx, 800, 600, PostProcessOptions{Program: program})
	c.Assert(err, qt.IsNil)
	defer consumer.Release()

	Link(producer, consumer)

	output := producer.Target().Colors()[0]

	c.Assert(consumer.Inputs(), qt.HasLen, 1)
	c.Assert(consumer.Inputs()[0], qt.Equals, output)
	c.Assert(consumer.Inputs()[0].Handle(), qt.Equals, output.Handle())
	c.Assert(output.RefCount(), qt.Equals, 2)
}

func TestSetSizeKeepsLinkedTextures(t *testing.T) {
	c, ctx, dev, program := setup(t)

	producer, err := NewView2D(ctx, 800, 600)
	c.Assert(err, qt.IsNil)
	defer producer.Release()

	consumer, err := NewPostProcess(ctx, 800, 600, PostProcessOptions{Program: program})
	c.Assert(err, qt.IsNil)
	defer consumer.Release()

	Link(producer, consumer)
	output := producer.Target().Colors()[0]

	c.Assert(producer.SetSize(1024, 768), qt.IsNil)

	width, height := producer.Size()
	c.Assert([]int32{width, height}, qt.DeepEquals, []int32{1024, 768})

	width, height = output.Size()
	c.Assert([]int32{width, height}, qt.DeepEquals, []int32{1024, 768})

	width, height = producer.Target().DepthStencil().Size()
	c.Assert([]int32{width, height}, qt.DeepEquals, []int32{1024, 768})

	// the consumer sees the same, resized texture
	c.Assert(consumer.Inputs()[0], qt.Equals, output)
	c.Assert(dev.Textures[output.Handle()].Width, qt.Equals, int32(1024))
	c.Assert(dev.Textures[output.Handle()].Height, qt.Equals, int32(768))
}

func TestView2DBind(t *testing.T) {
	c, ctx, dev, _ := setup(t)

	view, err := NewView2D(ctx, 320, 200)
	c.Assert(err, qt.IsNil)
	defer view.Release()

	view.Bind()

	c.Assert(dev.ViewportRect, qt.Equals, [4]int32{0, 0, 320, 200})
	c.Assert(dev.BoundFramebuffer, qt.Equals, view.Target().Handle())
	c.Assert(dev.Clears, qt.DeepEquals, []gputest.Clear{
		{Framebuffer: view.Target().Handle(), Mask: gpu.DepthBufferBit},
	})

	c.Assert(view.Draw(), qt.IsNil)
	c.Assert(dev.Draws, qt.HasLen, 0)
}

func TestView3D(t *testing.T) {
	c, ctx, dev, program := setup(t)

	view, err := NewView3D(ctx, 200, 100, View3DOptions{Program: program, Colors: 2})
	c.Assert(err, qt.IsNil)
	defer view.Release()

	scene := view.Scene().Colors()
	c.Assert(handles(view.Inputs()), qt.DeepEquals, handles(scene))

	view.Bind()
	c.Assert(dev.Capabilities[gpu.DepthTest], qt.IsTrue)
	c.Assert(dev.Clears, qt.DeepEquals, []gputest.Clear{
		{Framebuffer: view.Scene().Handle(), Mask: gpu.ColorBufferBit | gpu.DepthBufferBit},
	})
	c.Assert(dev.UniformBindings[CameraBinding], qt.Not(qt.Equals), gpu.Buffer(0))

	c.Assert(view.Draw(), qt.IsNil)
	c.Assert(dev.Draws, qt.HasLen, 1)

	draw := dev.Draws[0]
	c.Assert(draw.DepthTest, qt.IsFalse)
	c.Assert(draw.Framebuffer, qt.Equals, view.Output().Handle())
	c.Assert(draw.Units, qt.DeepEquals, map[uint32]gpu.Texture{
		0: scene[0].Handle(),
		1: scene[1].Handle(),
	})

	surface := view.LinkSurface()
	c.Assert(handles(surface), qt.DeepEquals, handles(view.Output().Colors()))
	releaseAll(surface)
}

func TestView3DUnlinkKeepsScene(t *testing.T) {
	c, ctx, _, program := setup(t)

	view, err := NewView3D(ctx, 200, 100, View3DOptions{Program: program})
	c.Assert(err, qt.IsNil)
	defer view.Release()

	overlay, err := NewView2D(ctx, 200, 100)
	c.Assert(err, qt.IsNil)
	defer overlay.Release()

	Link(overlay, view)

	inputs := view.Inputs()
	c.Assert(inputs, qt.HasLen, 2)
	c.Assert(inputs[0], qt.Equals, view.Scene().Colors()[0])
	c.Assert(inputs[1], qt.Equals, overlay.Target().Colors()[0])

	view.Unlink()
	c.Assert(handles(view.Inputs()), qt.DeepEquals, handles(view.Scene().Colors()))
	c.Assert(overlay.Target().Colors()[0].RefCount(), qt.Equals, 1)
	c.Assert(view.Scene().Colors()[0].RefCount(), qt.Equals, 2)
}

func TestView3DCamera(t *testing.T) {
	c, ctx, dev, program := setup(t)

	view, err := NewView3D(ctx, 200, 100, View3DOptions{Program: program})
	c.Assert(err, qt.IsNil)
	defer view.Release()

	c.Assert(view.Camera().Projection, qt.Equals, mgl32.Perspective(mgl32.DegToRad(45), 2, 0.1, 100))

	eye := mgl32.LookAtV(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	c.Assert(view.SetView(eye), qt.IsNil)

	c.Assert(view.SetSize(100, 100), qt.IsNil)

	camera := view.Camera()
	c.Assert(camera.View, qt.Equals, eye)
	c.Assert(camera.Projection, qt.Equals, mgl32.Perspective(mgl32.DegToRad(45), 1, 0.1, 100))

	view.Bind()
	buffer := dev.Buffers[dev.UniformBindings[CameraBinding]]
	c.Assert(buffer.Data, qt.DeepEquals, pulse.AsByteSlice(&camera))
}

func TestView3DNeedsProgram(t *testing.T) {
	c, ctx, dev, _ := setup(t)

	_, err := NewView3D(ctx, 200, 100, View3DOptions{})
	c.Assert(err, qt.ErrorMatches, "3d view needs a composite program")

	_, err = NewPostProcess(ctx, 200, 100, PostProcessOptions{})
	c.Assert(err, qt.ErrorMatches, "post process needs a program")

	_, err = NewPresent(ctx, 200, 100, nil)
	c.Assert(err, qt.ErrorMatches, "present needs a program")

	c.Assert(dev.Live(), qt.Equals, gputest.Counts{Programs: 1})
}

func TestView3DIncompleteTarget(t *testing.T) {
	c, ctx, dev, program := setup(t)

	dev.ForceStatus = gpu.FramebufferUnsupported

	_, err := NewView3D(ctx, 200, 100, View3DOptions{Program: program})
	c.Assert(err, qt.ErrorIs, pulse.ErrFramebufferIncomplete)
	c.Assert(dev.Live(), qt.Equals, gputest.Counts{Programs: 1})
}

func TestPresent(t *testing.T) {
	c, ctx, dev, program := setup(t)

	source, err := NewPostProcess(ctx, 640, 480, PostProcessOptions{Program: program, Colors: 2})
	c.Assert(err, qt.IsNil)
	defer source.Release()

	present, err := NewPresent(ctx, 640, 480, program)
	c.Assert(err, qt.IsNil)
	defer present.Release()

	Link(source, present)
	c.Assert(present.LinkSurface(), qt.HasLen, 0)
	c.Assert(present.Inputs(), qt.HasLen, 2)

	present.Bind()
	c.Assert(present.Draw(), qt.IsNil)

	c.Assert(dev.Draws, qt.HasLen, 1)
	c.Assert(dev.Draws[0].Framebuffer, qt.Equals, gpu.DefaultFramebuffer)
	c.Assert(dev.Draws[0].Viewport, qt.Equals, [4]int32{0, 0, 640, 480})
	c.Assert(dev.Draws[0].Units, qt.HasLen, 2)
}

func TestChainRelease(t *testing.T) {
	c, ctx, dev, program := setup(t)

	view, err := NewView3D(ctx, 64, 64, View3DOptions{Program: program})
	c.Assert(err, qt.IsNil)

	post, err := NewPostProcess(ctx, 64, 64, PostProcessOptions{Program: program})
	c.Assert(err, qt.IsNil)

	present, err := NewPresent(ctx, 64, 64, program)
	c.Assert(err, qt.IsNil)

	Link(view, post)
	Link(post, present)

	// consumers keep their inputs alive
	view.Release()
	c.Assert(post.Inputs()[0].Handle(), qt.Not(qt.Equals), gpu.Texture(0))

	post.Release()
	present.Release()

	c.Assert(dev.Live(), qt.Equals, gputest.Counts{Programs: 1})
}

func releaseAll(textures []*pulse.Texture) {
	for _, texture := range textures {
		texture.Release()
	}
}

func handles(textures []*pulse.Texture) []gpu.Texture {
	var result []gpu.Texture
	for _, texture := range textures {
		result = append(result, texture.Handle())
	}

	return result
}
