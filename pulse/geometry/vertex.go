// Package geometry holds vertex data and pure functions on it. Nothing in
// here talks to the device.
package geometry

import (
	"structs"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the vertex format of every model. The field order is the
// attribute order.
type Vertex struct {
	_ structs.HostLayout

	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	TexCoord  mgl32.Vec2
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
}

// Attribute describes one float attribute of Vertex.
type Attribute struct {
	Name       string
	Components int32
	Offset     uint32
}

var vertex Vertex

// VertexAttributes lists the attributes of Vertex in field order.
var VertexAttributes = []Attribute{
	{Name: "position", Components: 3, Offset: uint32(unsafe.Offsetof(vertex.Position))},
	{Name: "normal", Components: 3, Offset: uint32(unsafe.Offsetof(vertex.Normal))},
	{Name: "texCoord", Components: 2, Offset: uint32(unsafe.Offsetof(vertex.TexCoord))},
	{Name: "tangent", Components: 3, Offset: uint32(unsafe.Offsetof(vertex.Tangent))},
	{Name: "bitangent", Components: 3, Offset: uint32(unsafe.Offsetof(vertex.Bitangent))},
}
