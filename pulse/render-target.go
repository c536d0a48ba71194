package pulse

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/pulse/gpu"
)

// RenderTarget owns a framebuffer with a number of color textures and an
// optional depth/stencil renderbuffer. It also owns a full screen quad that
// samples the textures linked into the target, drawing the quad is how a
// composition pass executes.
//
// Textures handed out by LinkSurface and Get carry a new reference that the
// receiver must release. Textures passed to LinkFrom and LinkPush are taken
// over by the target.
type RenderTarget struct {
	ctx    *Context
	handle gpu.Framebuffer

	width  int32
	height int32

	colors       []*Texture
	drawBuffers  []gpu.Enum
	depthStencil *RenderBuffer

	quad *Model
}

// NewRenderTarget creates a framebuffer with colorCount RGBA16F textures and
// optionally a depth/stencil renderbuffer, then checks its completeness.
func NewRenderTarget(ctx *Context, width, height int32, colorCount int, depthStencil bool) (*RenderTarget, error) {
	rt := &RenderTarget{
		ctx:    ctx,
		handle: ctx.CreateFramebuffer(),
		width:  width,
		height: height,
		quad:   NewQuad(ctx),
	}

	rtGuard := NewReleaseGuard(rt)
	defer rtGuard.Release()

	for idx := range colorCount {
		texture := NewRenderTexture(ctx, width, height)
		attachment := gpu.ColorAttachment0 + gpu.Enum(idx)

		ctx.NamedFramebufferTexture(rt.handle, attachment, texture.Handle(), 0)

		rt.colors = append(rt.colors, texture)
		rt.drawBuffers = append(rt.drawBuffers, attachment)
	}

	ctx.NamedFramebufferDrawBuffers(rt.handle, rt.drawBuffers)

	if depthStencil {
		rt.depthStencil = NewRenderBuffer(ctx, width, height)
		ctx.NamedFramebufferRenderbuffer(rt.handle, gpu.DepthStencilAttachment, rt.depthStencil.Handle())
	}

	status := ctx.CheckNamedFramebufferStatus(rt.handle, gpu.FramebufferTarget)
	if status != gpu.FramebufferComplete {
		return nil, fmt.Errorf("framebuffer %d has status %s: %w", rt.handle, status, ErrFramebufferIncomplete)
	}

	rtGuard.Keep()

	slog.Debug("Create render target",
		slog.Uint64("id", uint64(rt.handle)),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Int("colors", colorCount),
		slog.Bool("depthStencil", depthStencil),
	)

	return trackLeak(ctx, rt), nil
}

// NewScreenTarget creates a target for the default framebuffer. It has no
// textures of its own, only its quad to draw linked inputs to the screen.
func NewScreenTarget(ctx *Context, width, height int32) *RenderTarget {
	return &RenderTarget{
		ctx:    ctx,
		handle: gpu.DefaultFramebuffer,
		width:  width,
		height: height,
		quad:   NewQuad(ctx),
	}
}

func (rt *RenderTarget) Handle() gpu.Framebuffer {
	return rt.handle
}

// LinkSurface returns a new reference to every color texture.
func (rt *RenderTarget) LinkSurface() []*Texture {
	surface := make([]*Texture, 0, len(rt.colors))
	for _, texture := range rt.colors {
		surface = append(surface, texture.Retain())
	}

	return surface
}

// LinkFrom appends the color textures of other to the inputs of this target.
// Previous inputs are kept, so multiple sources can be combined. A target
// cannot sample the textures it draws into, linking it to itself panics.
func (rt *RenderTarget) LinkFrom(other *RenderTarget) {
	if other == rt {
		panic(fmt.Sprintf("render target %d cannot be linked to itself", rt.handle))
	}

	rt.Link(other.LinkSurface())
}

// Link appends textures to the inputs of this target.
func (rt *RenderTarget) Link(textures []*Texture) {
	for _, texture := range textures {
		rt.LinkPush(texture)
	}
}

// LinkPush appends a single texture to the inputs of this target.
func (rt *RenderTarget) LinkPush(texture *Texture) {
	rt.quad.Meshes[0].AddTexture(Diffuse, texture)
}

// Unlink drops all inputs.
func (rt *RenderTarget) Unlink() {
	rt.quad.Meshes[0].ClearTextures(Diffuse)
}

// Inputs returns the linked input textures. The caller must not release them.
func (rt *RenderTarget) Inputs() []*Texture {
	return rt.quad.Meshes[0].Textures(Diffuse)
}

// Get returns a new reference to the color texture at index, or nil.
func (rt *RenderTarget) Get(index int) *Texture {
	if index < 0 || index >= len(rt.colors) {
		return nil
	}

	return rt.colors[index].Retain()
}

// Colors returns the color textures. The caller must not release them.
func (rt *RenderTarget) Colors() []*Texture {
	return rt.colors
}

func (rt *RenderTarget) DrawBuffers() []gpu.Enum {
	return rt.drawBuffers
}

func (rt *RenderTarget) DepthStencil() *RenderBuffer {
	return rt.depthStencil
}

func (rt *RenderTarget) Len() int {
	return len(rt.colors)
}

func (rt *RenderTarget) Size() (width, height int32) {
	return rt.width, rt.height
}

// SetSize resizes every color texture and the renderbuffer in place. The
// framebuffer itself and the identity of its textures stay the same.
func (rt *RenderTarget) SetSize(width, height int32) error {
	rt.width = width
	rt.height = height

	for _, texture := range rt.colors {
		if err := texture.Resize(width, height); err != nil {
			return err
		}
	}

	if rt.depthStencil != nil {
		rt.depthStencil.Resize(width, height)
	}

	return nil
}

func (rt *RenderTarget) Bind() {
	rt.ctx.BindFramebuffer(gpu.FramebufferTarget, rt.handle)
}

// Viewport sets the viewport to cover the whole target.
func (rt *RenderTarget) Viewport() {
	rt.ctx.SetViewport(RectangleFromXYWH(0, 0, rt.width, rt.height))
}

// Draw binds the framebuffer and draws the quad with program, sampling all
// linked inputs.
func (rt *RenderTarget) Draw(program Program) error {
	if rt.quad == nil {
		return fmt.Errorf("draw render target: %w", ErrReleased)
	}

	rt.Bind()
	program.Use()

	return rt.quad.Draw(program)
}

func (rt *RenderTarget) released() bool {
	return rt.quad == nil
}

// Release frees the framebuffer, drops the references to its own textures and
// all linked inputs. Textures still linked elsewhere stay alive.
func (rt *RenderTarget) Release() {
	if rt.quad == nil {
		return
	}

	slog.Debug("Release render target", slog.Uint64("id", uint64(rt.handle)))

	rt.quad.Release()
	rt.quad = nil

	releaseAll(rt.colors)
	rt.colors = nil
	rt.drawBuffers = nil

	if rt.depthStencil != nil {
		rt.depthStencil.Release()
		rt.depthStencil = nil
	}

	if rt.handle != gpu.DefaultFramebuffer {
		rt.ctx.DeleteFramebuffer(rt.handle)
	}
}
