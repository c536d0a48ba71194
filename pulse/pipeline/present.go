package pipeline

import (
	"errors"
	"fmt"

	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/pulse"
)

// Present draws its linked inputs to the screen. It is the last pass of a
// graph and has nothing to link from.
type Present struct {
	ctx     *pulse.Context
	program pulse.Program
	screen  *pulse.RenderTarget
}

var _ RenderPipeline = (*Present)(nil)

func NewPresent(ctx *pulse.Context, width, height int32, program pulse.Program) (*Present, error) {
	if program == nil {
		return nil, errors.New("present needs a program")
	}

	return &Present{
		ctx:     ctx,
		program: program,
		screen:  pulse.NewScreenTarget(ctx, width, height),
	}, nil
}

func (p *Present) Bind() {
	p.screen.Viewport()
	p.screen.Bind()
	p.ctx.ClearFramebuffer(pulse.ColorBlack, gpu.ColorBufferBit|gpu.DepthBufferBit)
}

func (p *Present) Draw() error {
	p.ctx.Disable(gpu.DepthTest)

	if err := p.screen.Draw(p.program); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	return nil
}

// LinkSurface is empty, the screen cannot be sampled.
func (p *Present) LinkSurface() []*pulse.Texture {
	return nil
}

func (p *Present) LinkFrom(textures []*pulse.Texture) {
	p.screen.Link(textures)
}

func (p *Present) LinkPush(texture *pulse.Texture) {
	p.screen.LinkPush(texture)
}

func (p *Present) Unlink() {
	p.screen.Unlink()
}

func (p *Present) Inputs() []*pulse.Texture {
	return p.screen.Inputs()
}

func (p *Present) SetSize(width, height int32) error {
	return p.screen.SetSize(width, height)
}

func (p *Present) Size() (width, height int32) {
	return p.screen.Size()
}

func (p *Present) Release() {
	p.screen.Release()
}
