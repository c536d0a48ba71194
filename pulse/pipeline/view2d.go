package pipeline

import (
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/pulse"
)

// View2D renders into a single color texture with depth and stencil. It does
// no post processing, its output is meant to be linked into a later pass.
type View2D struct {
	ctx    *pulse.Context
	target *pulse.RenderTarget
}

var _ RenderPipeline = (*View2D)(nil)

func NewView2D(ctx *pulse.Context, width, height int32) (*View2D, error) {
	target, err := pulse.NewRenderTarget(ctx, width, height, 1, true)
	if err != nil {
		return nil, fmt.Errorf("create 2d view target: %w", err)
	}

	slog.Info("Create 2d view", slog.Int("width", int(width)), slog.Int("height", int(height)))

	return &View2D{ctx: ctx, target: target}, nil
}

func (v *View2D) Bind() {
	v.target.Viewport()
	v.target.Bind()
	v.ctx.Clear(gpu.DepthBufferBit)
}

func (v *View2D) Draw() error {
	return nil
}

func (v *View2D) LinkSurface() []*pulse.Texture {
	return v.target.LinkSurface()
}

func (v *View2D) LinkFrom(textures []*pulse.Texture) {
	v.target.Link(textures)
}

func (v *View2D) LinkPush(texture *pulse.Texture) {
	v.target.LinkPush(texture)
}

func (v *View2D) Unlink() {
	v.target.Unlink()
}

// Inputs returns the linked textures, they stay owned by the view.
func (v *View2D) Inputs() []*pulse.Texture {
	return v.target.Inputs()
}

func (v *View2D) Target() *pulse.RenderTarget {
	return v.target
}

func (v *View2D) SetSize(width, height int32) error {
	return v.target.SetSize(width, height)
}

func (v *View2D) Size() (width, height int32) {
	return v.target.Size()
}

func (v *View2D) Release() {
	v.target.Release()
}
