package pulse

import (
	"slices"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/gpu/gputest"
	"github.com/oliverbestmann/pulse/pulse/geometry"
)

// two quads next to each other, one mesh each
func twoQuads() ([]geometry.Vertex, []uint32, []*Mesh) {
	vertices, indices := geometry.Quad()

	for _, vertex := range slices.Clone(vertices) {
		vertex.Position = vertex.Position.Add(mgl32.Vec3{2, 0, 0})
		vertices = append(vertices, vertex)
	}

	for _, index := range slices.Clone(indices) {
		indices = append(indices, index+4)
	}

	meshes := []*Mesh{NewMesh(0, 6), NewMesh(6, 6)}

	return vertices, indices, meshes
}

func TestModelCreate(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	vertices, indices, meshes := twoQuads()

	model, err := NewModel(ctx, vertices, indices, []mgl32.Mat4{mgl32.Ident4()}, meshes)
	c.Assert(err, qt.IsNil)
	defer model.Release()

	vao := dev.VertexArrays[model.layout.Handle()]
	c.Assert(vao.Attribs, qt.HasLen, 9)
	c.Assert(vao.ElementBuffer, qt.Equals, model.indices.Handle())

	// vertex attributes in field order on binding 0
	for idx, attr := range geometry.VertexAttributes {
		c.Assert(*vao.Attribs[uint32(idx)], qt.Equals, gputest.Attrib{
			Enabled: true,
			Size:    attr.Components,
			Type:    gpu.Float,
			Offset:  attr.Offset,
			Binding: 0,
		})
	}

	// one matrix per instance as four rows on binding 1
	for row := range 4 {
		c.Assert(*vao.Attribs[uint32(5+row)], qt.Equals, gputest.Attrib{
			Enabled: true,
			Size:    4,
			Type:    gpu.Float,
			Offset:  uint32(row * 16),
			Binding: 1,
		})
	}

	c.Assert(vao.Bindings[0], qt.Equals, gputest.Binding{Buffer: model.vertices.Handle(), Stride: 56})
	c.Assert(vao.Bindings[1], qt.Equals, gputest.Binding{Buffer: model.transforms.Handle(), Stride: 64})
	c.Assert(vao.Divisors, qt.DeepEquals, map[uint32]uint32{1: 1})

	c.Assert(dev.Buffers[model.vertices.Handle()].Immutable, qt.IsTrue)
	c.Assert(dev.Buffers[model.indices.Handle()].Immutable, qt.IsTrue)
	c.Assert(dev.Buffers[model.transforms.Handle()].Immutable, qt.IsFalse)
	c.Assert(dev.Buffers[model.indices.Handle()].Data, qt.DeepEquals, SliceAsBytes(indices))
}

func TestModelUploadsTangents(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	vertices, indices, meshes := twoQuads()

	model, err := NewModel(ctx, vertices, indices, nil, meshes)
	c.Assert(err, qt.IsNil)
	defer model.Release()

	// the input is not modified
	c.Assert(vertices[0].Tangent, qt.Equals, mgl32.Vec3{})

	expected := slices.Clone(vertices)
	c.Assert(geometry.CalcTangents(expected, indices), qt.IsNil)
	c.Assert(expected[0].Tangent, qt.Not(qt.Equals), mgl32.Vec3{})

	c.Assert(dev.Buffers[model.vertices.Handle()].Data, qt.DeepEquals, SliceAsBytes(expected))
}

func TestModelInvalidMesh(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	vertices, indices, _ := twoQuads()

	_, err := NewModel(ctx, vertices, indices, nil, []*Mesh{NewMesh(6, 12)})
	c.Assert(err, qt.ErrorIs, ErrIndexOutOfBounds)

	_, err = NewModel(ctx, vertices, []uint32{0, 1, 42}, nil, nil)
	c.Assert(err, qt.ErrorMatches, `calculate tangents: index 42 out of range for 8 vertices`)

	c.Assert(dev.Live(), qt.Equals, gputest.Counts{})
}

func TestModelDraw(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	vertices, indices, meshes := twoQuads()

	model, err := NewModel(ctx, vertices, indices, []mgl32.Mat4{mgl32.Ident4(), mgl32.Translate3D(0, 3, 0)}, meshes)
	c.Assert(err, qt.IsNil)
	defer model.Release()

	program := newTestProgram(c, ctx)
	defer program.Release()

	program.Use()
	c.Assert(model.Draw(program), qt.IsNil)

	c.Assert(dev.Draws, qt.HasLen, 2)

	c.Assert(dev.Draws[0].Count, qt.Equals, int32(6))
	c.Assert(dev.Draws[0].ByteOffset, qt.Equals, 0)
	c.Assert(dev.Draws[0].Instances, qt.Equals, int32(2))
	c.Assert(dev.Draws[0].VertexArray, qt.Equals, model.layout.Handle())

	// offsets are in indices, the device wants bytes
	c.Assert(dev.Draws[1].Count, qt.Equals, int32(6))
	c.Assert(dev.Draws[1].ByteOffset, qt.Equals, 24)

	c.Assert(dev.BoundVertexArray, qt.Equals, gpu.VertexArray(0))
}

func TestModelInstances(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	vertices, indices := geometry.Quad()

	model, err := NewModel(ctx, vertices, indices, nil, []*Mesh{NewMesh(0, 6)})
	c.Assert(err, qt.IsNil)
	defer model.Release()

	program := newTestProgram(c, ctx)
	defer program.Release()

	// nothing to draw without instances
	c.Assert(model.Draw(program), qt.IsNil)
	c.Assert(dev.Draws, qt.HasLen, 0)

	model.AddInstance(mgl32.Translate3D(1, 0, 0))
	model.AddInstance(mgl32.Translate3D(2, 0, 0))
	model.AddInstance(mgl32.Translate3D(3, 0, 0))
	c.Assert(model.InstanceCount(), qt.Equals, 3)

	c.Assert(model.RemoveInstance(1), qt.IsNil)
	instance, err := model.Instance(1)
	c.Assert(err, qt.IsNil)
	c.Assert(instance, qt.Equals, mgl32.Translate3D(3, 0, 0))

	_, err = model.Instance(2)
	c.Assert(err, qt.ErrorIs, ErrIndexOutOfBounds)
	c.Assert(err, qt.ErrorMatches, `instance 2 of 2: index out of bounds`)

	transforms := dev.Buffers[model.transforms.Handle()]
	allocations := transforms.Allocations

	c.Assert(model.SetInstance(0, mgl32.Scale3D(2, 2, 2)), qt.IsNil)
	c.Assert(transforms.Allocations, qt.Equals, allocations)

	expected := []mgl32.Mat4{mgl32.Scale3D(2, 2, 2), mgl32.Translate3D(3, 0, 0)}
	c.Assert(transforms.Data, qt.DeepEquals, SliceAsBytes(expected))

	c.Assert(model.SetInstance(2, mgl32.Ident4()), qt.ErrorIs, ErrIndexOutOfBounds)
	c.Assert(model.RemoveInstance(-1), qt.ErrorIs, ErrIndexOutOfBounds)

	model.SetInstances([]mgl32.Mat4{mgl32.Ident4()})
	c.Assert(model.InstanceCount(), qt.Equals, 1)

	program.Use()
	c.Assert(model.Draw(program), qt.IsNil)
	c.Assert(dev.Draws, qt.HasLen, 1)
	c.Assert(dev.Draws[0].Instances, qt.Equals, int32(1))
}

func TestModelRelease(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	texture := NewRenderTexture(ctx, 4, 4)

	quad := NewQuadWithTextures(ctx, QuadTextures{Diffuse: texture.Retain()})
	quad.Release()
	quad.Release()

	c.Assert(texture.RefCount(), qt.Equals, 1)
	c.Assert(quad.Draw(nil), qt.ErrorIs, ErrReleased)

	texture.Release()
	c.Assert(dev.Live(), qt.Equals, gputest.Counts{})
}

func TestMeshSetTextures(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	program := newTestProgram(c, ctx)
	defer program.Release()

	mesh := NewMesh(0, 6)
	mesh.Specular = mgl32.Vec3{0.5, 0.5, 0.5}
	mesh.Shininess = 32

	diffuse := NewRenderTexture(ctx, 4, 4)
	normal := NewRenderTexture(ctx, 4, 4)
	mesh.AddTexture(Diffuse, diffuse)
	mesh.AddTexture(Normal, normal)
	defer mesh.Release()

	mesh.SetTextures(program)

	c.Assert(dev.Units, qt.DeepEquals, map[uint32]gpu.Texture{
		0: diffuse.Handle(),
		1: normal.Handle(),
	})

	c.Assert(dev.Programs[program.Handle()].Uniforms, qt.DeepEquals, map[string]any{
		"material.diffuse[0]":        int32(0),
		"material.diffuseCount":      int32(1),
		"material.specularCount":     int32(0),
		"material.specularFloat":     [3]float32{0.5, 0.5, 0.5},
		"material.normal[0]":         int32(1),
		"material.normalCount":       int32(1),
		"material.displacementCount": int32(0),
		"material.shininessCount":    int32(0),
		"material.shininessFloat":    float32(32),
	})
}

func TestMeshClearTextures(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	texture := NewRenderTexture(ctx, 4, 4)
	defer texture.Release()

	mesh := NewMesh(0, 6)
	mesh.AddTexture(Diffuse, texture.Retain())
	mesh.AddTexture(Diffuse, texture.Retain())
	c.Assert(texture.RefCount(), qt.Equals, 3)

	mesh.ClearTextures(Diffuse)
	c.Assert(mesh.Textures(Diffuse), qt.HasLen, 0)
	c.Assert(texture.RefCount(), qt.Equals, 1)
}

func TestSkybox(t *testing.T) {
	c, ctx, dev := newTestContext(t)

	cubemap, err := NewCubemapTexture(ctx, cubemapFaces(8))
	c.Assert(err, qt.IsNil)

	skybox, err := NewSkybox(ctx, cubemap)
	c.Assert(err, qt.IsNil)

	program := newTestProgram(c, ctx)
	defer program.Release()

	c.Assert(skybox.Draw(program), qt.IsNil)

	c.Assert(dev.Draws, qt.HasLen, 1)
	c.Assert(dev.Draws[0].Count, qt.Equals, int32(36))
	c.Assert(dev.Draws[0].DepthFunc, qt.Equals, gpu.LEqual)
	c.Assert(dev.Draws[0].Units[0], qt.Equals, cubemap.Handle())
	c.Assert(dev.DepthFn, qt.Equals, gpu.Less)

	skybox.Release()
	c.Assert(cubemap.RefCount(), qt.Equals, 0)
	c.Assert(dev.Live(), qt.Equals, gputest.Counts{Programs: 1})
}

func TestSkyboxNeedsCubemap(t *testing.T) {
	c, ctx, _ := newTestContext(t)

	texture := NewRenderTexture(ctx, 4, 4)
	defer texture.Release()

	_, err := NewSkybox(ctx, texture)
	c.Assert(err, qt.ErrorMatches, `skybox needs a cubemap, got Texture\(\d+, TEXTURE_2D, 4x4\)`)
	c.Assert(texture.RefCount(), qt.Equals, 1)
}
