package pulse

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/pulse/geometry"
)

// Skybox draws a cubemap on a unit cube behind everything else.
type Skybox struct {
	ctx   *Context
	model *Model
}

var _ Drawable = (*Skybox)(nil)

// NewSkybox takes over one reference of cubemap. On error the caller keeps it.
func NewSkybox(ctx *Context, cubemap *Texture) (*Skybox, error) {
	if cubemap.Target() != gpu.TextureCubeMap {
		return nil, fmt.Errorf("skybox needs a cubemap, got %s", cubemap)
	}

	vertices, indices := geometry.Cube()

	mesh := NewMesh(0, int32(len(indices)))
	mesh.AddTexture(Diffuse, cubemap)

	model, err := NewModel(ctx, vertices, indices, []mgl32.Mat4{mgl32.Ident4()}, []*Mesh{mesh})
	if err != nil {
		// the cube geometry is static and always valid
		panic(err)
	}

	return &Skybox{ctx: ctx, model: model}, nil
}

// Draw uses program to draw the cube. The depth test passes for equal depth
// while drawing, so a skybox at the far plane is not discarded.
func (s *Skybox) Draw(program Program) error {
	s.ctx.DepthFunc(gpu.LEqual)
	defer s.ctx.DepthFunc(gpu.Less)

	program.Use()

	return s.model.Draw(program)
}

func (s *Skybox) Release() {
	s.model.Release()
}
