package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/pulse"
)

// CameraBinding is the uniform buffer binding slot of the camera block.
const CameraBinding = 0

// Camera is the std140 layout of the camera uniform block:
//
//	layout(std140, binding = 0) uniform Camera {
//	    mat4 view;
//	    mat4 projection;
//	};
type Camera struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

type View3DOptions struct {
	// Program composites the scene outputs into the output texture.
	// It samples material.diffuse[0] to material.diffuse[n-1].
	Program pulse.Program

	// Number of color outputs of the scene, defaults to 1
	Colors int

	ClearColor pulse.Color

	// Vertical field of view in radians, defaults to 45 degrees
	FieldOfView float32

	// Clipping planes, default to 0.1 and 100
	Near, Far float32
}

// View3D renders a depth tested scene into a multi output target, then
// composites those outputs together with every linked input into a single
// output texture.
type View3D struct {
	ctx  *pulse.Context
	opts View3DOptions

	scene  *pulse.RenderTarget
	output *pulse.RenderTarget

	camera *pulse.UniformBuffer[Camera]
}

var _ RenderPipeline = (*View3D)(nil)

func NewView3D(ctx *pulse.Context, width, height int32, opts View3DOptions) (*View3D, error) {
	if opts.Program == nil {
		return nil, errors.New("3d view needs a composite program")
	}

	if opts.Colors == 0 {
		opts.Colors = 1
	}

	if opts.FieldOfView == 0 {
		opts.FieldOfView = mgl32.DegToRad(45)
	}

	if opts.Near == 0 {
		opts.Near = 0.1
	}

	if opts.Far == 0 {
		opts.Far = 100
	}

	scene, err := pulse.NewRenderTarget(ctx, width, height, opts.Colors, true)
	if err != nil {
		return nil, fmt.Errorf("create 3d scene target: %w", err)
	}

	sceneGuard := pulse.NewReleaseGuard(scene)
	defer sceneGuard.Release()

	output, err := pulse.NewRenderTarget(ctx, width, height, 1, false)
	if err != nil {
		return nil, fmt.Errorf("create 3d output target: %w", err)
	}

	sceneGuard.Keep()

	v := &View3D{
		ctx:    ctx,
		opts:   opts,
		scene:  scene,
		output: output,
	}

	v.camera = pulse.NewUniformBuffer(ctx, Camera{
		View:       mgl32.Ident4(),
		Projection: v.projection(width, height),
	})

	output.LinkFrom(scene)

	slog.Info("Create 3d view",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Int("colors", opts.Colors),
	)

	return v, nil
}

func (v *View3D) projection(width, height int32) mgl32.Mat4 {
	aspect := float32(width) / float32(max(height, 1))
	return mgl32.Perspective(v.opts.FieldOfView, aspect, v.opts.Near, v.opts.Far)
}

// Bind prepares the scene target for drawing and binds the camera block.
func (v *View3D) Bind() {
	v.scene.Viewport()
	v.scene.Bind()

	v.ctx.Enable(gpu.DepthTest)
	v.ctx.ClearFramebuffer(v.opts.ClearColor, gpu.ColorBufferBit|gpu.DepthBufferBit)

	if err := v.camera.Bind(CameraBinding); err != nil {
		slog.Warn("Bind camera of released 3d view", slog.Any("err", err))
	}
}

// Draw composites the scene outputs and the linked inputs.
func (v *View3D) Draw() error {
	v.ctx.Disable(gpu.DepthTest)

	v.output.Viewport()
	if err := v.output.Draw(v.opts.Program); err != nil {
		return fmt.Errorf("composite 3d view: %w", err)
	}

	return nil
}

// SetView updates the view matrix of the camera.
func (v *View3D) SetView(view mgl32.Mat4) error {
	camera := v.camera.Value()
	camera.View = view
	return v.camera.Update(camera)
}

func (v *View3D) Camera() Camera {
	return v.camera.Value()
}

func (v *View3D) LinkSurface() []*pulse.Texture {
	return v.output.LinkSurface()
}

// LinkFrom appends textures after the scene outputs.
func (v *View3D) LinkFrom(textures []*pulse.Texture) {
	v.output.Link(textures)
}

func (v *View3D) LinkPush(texture *pulse.Texture) {
	v.output.LinkPush(texture)
}

// Unlink drops the linked inputs. The scene outputs stay linked.
func (v *View3D) Unlink() {
	v.output.Unlink()
	v.output.LinkFrom(v.scene)
}

// Inputs returns the scene outputs followed by the linked textures.
func (v *View3D) Inputs() []*pulse.Texture {
	return v.output.Inputs()
}

func (v *View3D) Scene() *pulse.RenderTarget {
	return v.scene
}

func (v *View3D) Output() *pulse.RenderTarget {
	return v.output
}

// SetSize resizes both targets and updates the camera projection.
func (v *View3D) SetSize(width, height int32) error {
	if err := v.scene.SetSize(width, height); err != nil {
		return err
	}

	if err := v.output.SetSize(width, height); err != nil {
		return err
	}

	camera := v.camera.Value()
	camera.Projection = v.projection(width, height)

	return v.camera.Update(camera)
}

func (v *View3D) Size() (width, height int32) {
	return v.scene.Size()
}

func (v *View3D) Release() {
	v.camera.Release()
	v.output.Release()
	v.scene.Release()
}
