package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// CalcTangents computes tangent and bitangent of every triangle in indices
// from the position and texture coordinate deltas and assigns them to all
// three vertices of the triangle. Vertices shared between triangles get the
// values of the last triangle that references them.
//
// Triangles with collinear texture coordinates fall back to the deltas
// (0, 1) and (1, 0). A trailing incomplete triangle is ignored.
func CalcTangents(vertices []Vertex, indices []uint32) error {
	for _, index := range indices {
		if int(index) >= len(vertices) {
			return fmt.Errorf("index %d out of range for %d vertices", index, len(vertices))
		}
	}

	for tri := 0; tri+2 < len(indices); tri += 3 {
		v1 := &vertices[indices[tri]]
		v2 := &vertices[indices[tri+1]]
		v3 := &vertices[indices[tri+2]]

		edge1 := v2.Position.Sub(v1.Position)
		edge2 := v3.Position.Sub(v1.Position)

		deltaUV1 := v2.TexCoord.Sub(v1.TexCoord)
		deltaUV2 := v3.TexCoord.Sub(v1.TexCoord)

		// flip for mirrored texture coordinates
		var direction float32 = 1
		if deltaUV2.X()*deltaUV1.Y()-deltaUV2.Y()*deltaUV1.X() < 0 {
			direction = -1
		}

		if deltaUV1.X()*deltaUV2.Y() == deltaUV1.Y()*deltaUV2.X() {
			deltaUV1 = mgl32.Vec2{0, 1}
			deltaUV2 = mgl32.Vec2{1, 0}
		}

		tangent := edge2.Mul(deltaUV1.Y()).Sub(edge1.Mul(deltaUV2.Y())).Mul(direction)
		bitangent := edge1.Mul(deltaUV2.X()).Sub(edge2.Mul(deltaUV1.X())).Mul(direction)

		v1.Tangent, v2.Tangent, v3.Tangent = tangent, tangent, tangent
		v1.Bitangent, v2.Bitangent, v3.Bitangent = bitangent, bitangent, bitangent
	}

	return nil
}
