package pulse

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oliverbestmann/pulse/gpu"
	"github.com/oliverbestmann/pulse/pulse/geometry"
)

// Drawable is something that can be drawn with a program.
type Drawable interface {
	Draw(program Program) error
	Release()
}

// Model owns the vertex, index and per instance transform buffers of a set
// of meshes sharing one vertex layout. Every mesh is drawn once per instance.
type Model struct {
	ctx *Context

	layout     *VertexLayout
	vertices   *Buffer[geometry.Vertex]
	indices    *Buffer[uint32]
	transforms *Buffer[mgl32.Mat4]

	Meshes []*Mesh
}

var _ Drawable = (*Model)(nil)

// NewModel computes tangents for the vertices and uploads everything to the
// device. The model takes over the meshes.
func NewModel(ctx *Context, vertices []geometry.Vertex, indices []uint32, transforms []mgl32.Mat4, meshes []*Mesh) (*Model, error) {
	for idx, mesh := range meshes {
		if mesh.Offset < 0 || mesh.Count < 0 || mesh.Offset+int(mesh.Count) > len(indices) {
			return nil, fmt.Errorf("mesh %d covers indices [%d, %d) of %d: %w",
				idx, mesh.Offset, mesh.Offset+int(mesh.Count), len(indices), ErrIndexOutOfBounds)
		}
	}

	vertices = slices.Clone(vertices)
	if err := geometry.CalcTangents(vertices, indices); err != nil {
		return nil, fmt.Errorf("calculate tangents: %w", err)
	}

	m := &Model{
		ctx:        ctx,
		layout:     NewVertexLayout(ctx),
		vertices:   NewBuffer[geometry.Vertex](ctx),
		indices:    NewBuffer[uint32](ctx),
		transforms: NewBuffer[mgl32.Mat4](ctx),
		Meshes:     meshes,
	}

	m.layout.AttachVertexBuffer(m.vertices)
	m.layout.AttachIndexBuffer(m.indices)

	for _, attr := range geometry.VertexAttributes {
		m.layout.DeclareAttribute(m.vertices, attr.Components, attr.Offset, gpu.Float)
	}

	m.vertices.UploadImmutable(vertices)
	m.indices.UploadImmutable(indices)

	m.layout.AttachVertexBuffer(m.transforms)
	m.layout.DeclareDivisorAttribute(m.transforms, DivisorRows[mgl32.Mat4]())
	m.transforms.UploadMutable(transforms)

	slog.Debug("Create model",
		slog.Int("vertices", len(vertices)),
		slog.Int("indices", len(indices)),
		slog.Int("meshes", len(meshes)),
		slog.Int("instances", len(transforms)),
	)

	return m, nil
}

// Draw binds the layout once and draws every mesh for all instances.
func (m *Model) Draw(program Program) error {
	if m.layout == nil {
		return fmt.Errorf("draw model: %w", ErrReleased)
	}

	instances := int32(m.transforms.Len())
	if instances == 0 {
		return nil
	}

	m.layout.Bind()

	for _, mesh := range m.Meshes {
		mesh.SetTextures(program)
		m.layout.DrawInstancedAt(mesh.Count, mesh.Offset*4, instances)
	}

	m.ctx.BindVertexArray(0)

	return nil
}

func (m *Model) AddInstance(transform mgl32.Mat4) {
	m.transforms.Push(transform)
}

func (m *Model) RemoveInstance(index int) error {
	return m.transforms.RemoveAt(index)
}

// SetInstance replaces the transform of an existing instance without
// reallocating the transform buffer.
func (m *Model) SetInstance(index int, transform mgl32.Mat4) error {
	if err := m.transforms.SetLocal(index, transform); err != nil {
		return err
	}

	return m.transforms.UpdateRange(index)
}

// SetInstances replaces all instance transforms.
func (m *Model) SetInstances(transforms []mgl32.Mat4) {
	m.transforms.UploadMutable(transforms)
}

func (m *Model) Instance(index int) (mgl32.Mat4, error) {
	if index < 0 || index >= m.transforms.Len() {
		return mgl32.Mat4{}, fmt.Errorf("instance %d of %d: %w", index, m.transforms.Len(), ErrIndexOutOfBounds)
	}

	return m.transforms.Elements()[index], nil
}

func (m *Model) InstanceCount() int {
	return m.transforms.Len()
}

func (m *Model) Release() {
	if m.layout == nil {
		return
	}

	m.layout.Release()
	m.vertices.Release()
	m.indices.Release()
	m.transforms.Release()
	releaseAll(m.Meshes)

	m.layout = nil
	m.Meshes = nil
}
