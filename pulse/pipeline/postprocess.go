package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/pulse"
)

type PostProcessOptions struct {
	// Program samples the linked inputs and writes every output
	Program pulse.Program

	// Number of color outputs, defaults to 1
	Colors int

	ClearColor pulse.Color
}

// PostProcess draws its linked inputs through a program into one or more
// color outputs. It has no depth buffer.
type PostProcess struct {
	ctx    *pulse.Context
	opts   PostProcessOptions
	target *pulse.RenderTarget
}

var _ RenderPipeline = (*PostProcess)(nil)

func NewPostProcess(ctx *pulse.Context, width, height int32, opts PostProcessOptions) (*PostProcess, error) {
	if opts.Program == nil {
		return nil, errors.New("post process needs a program")
	}

	if opts.Colors == 0 {
		opts.Colors = 1
	}

	target, err := pulse.NewRenderTarget(ctx, width, height, opts.Colors, false)
	if err != nil {
		return nil, fmt.Errorf("create post process target: %w", err)
	}

	slog.Info("Create post process",
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
		slog.Int("colors", opts.Colors),
	)

	return &PostProcess{ctx: ctx, opts: opts, target: target}, nil
}

func (p *PostProcess) Bind() {
	p.target.Viewport()
	p.target.Bind()
	p.ctx.ClearFramebuffer(p.opts.ClearColor, gpu.ColorBufferBit)
}

func (p *PostProcess) Draw() error {
	p.ctx.Disable(gpu.DepthTest)

	if err := p.target.Draw(p.opts.Program); err != nil {
		return fmt.Errorf("post process: %w", err)
	}

	return nil
}

func (p *PostProcess) LinkSurface() []*pulse.Texture {
	return p.target.LinkSurface()
}

func (p *PostProcess) LinkFrom(textures []*pulse.Texture) {
	p.target.Link(textures)
}

func (p *PostProcess) LinkPush(texture *pulse.Texture) {
	p.target.LinkPush(texture)
}

func (p *PostProcess) Unlink() {
	p.target.Unlink()
}

func (p *PostProcess) Inputs() []*pulse.Texture {
	return p.target.Inputs()
}

func (p *PostProcess) Target() *pulse.RenderTarget {
	return p.target
}

func (p *PostProcess) SetSize(width, height int32) error {
	return p.target.SetSize(width, height)
}

func (p *PostProcess) Size() (width, height int32) {
	return p.target.Size()
}

func (p *PostProcess) Release() {
	p.target.Release()
}
