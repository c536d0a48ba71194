package pulse

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/pulse/geometry"
)

// NewQuad creates a model of a single clip space quad. Without transforms
// the quad is drawn once, untransformed.
func NewQuad(ctx *Context, transforms ...mgl32.Mat4) *Model {
	if len(transforms) == 0 {
		transforms = []mgl32.Mat4{mgl32.Ident4()}
	}

	vertices, indices := geometry.Quad()

	quad, err := NewModel(ctx, vertices, indices, transforms, []*Mesh{NewMesh(0, int32(len(indices)))})
	if err != nil {
		// the quad geometry is static and always valid
		panic(err)
	}

	return quad
}

// QuadTextures are the optional textures of a textured quad. The quad takes
// over one reference of each non nil texture.
type QuadTextures struct {
	Diffuse      *Texture
	Normal       *Texture
	Displacement *Texture
}

func NewQuadWithTextures(ctx *Context, textures QuadTextures, transforms ...mgl32.Mat4) *Model {
	quad := NewQuad(ctx, transforms...)
	mesh := quad.Meshes[0]

	if textures.Diffuse != nil {
		mesh.AddTexture(Diffuse, textures.Diffuse)
	}

	if textures.Normal != nil {
		mesh.AddTexture(Normal, textures.Normal)
	}

	if textures.Displacement != nil {
		mesh.AddTexture(Displacement, textures.Displacement)
	}

	return quad
}
