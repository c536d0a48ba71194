package geometry

import "github.com/go-gl/mathgl/mgl32"

// Quad returns a quad covering clip space, facing +z.
func Quad() ([]Vertex, []uint32) {
	normal := mgl32.Vec3{0, 0, 1}

	vertices := []Vertex{
		{Position: mgl32.Vec3{-1, 1, 0}, Normal: normal, TexCoord: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{-1, -1, 0}, Normal: normal, TexCoord: mgl32.Vec2{0, 0}},
		{Position: mgl32.Vec3{1, -1, 0}, Normal: normal, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{1, 1, 0}, Normal: normal, TexCoord: mgl32.Vec2{1, 1}},
	}

	indices := []uint32{
		0, 1, 2,
		0, 2, 3,
	}

	return vertices, indices
}

type cubeFace struct {
	normal, right, up mgl32.Vec3
}

// right x up == normal, so every face winds counter clockwise seen from outside
var cubeFaces = []cubeFace{
	{normal: mgl32.Vec3{1, 0, 0}, right: mgl32.Vec3{0, 0, -1}, up: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, right: mgl32.Vec3{0, 0, 1}, up: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, right: mgl32.Vec3{1, 0, 0}, up: mgl32.Vec3{0, 0, -1}},
	{normal: mgl32.Vec3{0, -1, 0}, right: mgl32.Vec3{1, 0, 0}, up: mgl32.Vec3{0, 0, 1}},
	{normal: mgl32.Vec3{0, 0, 1}, right: mgl32.Vec3{1, 0, 0}, up: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, -1}, right: mgl32.Vec3{-1, 0, 0}, up: mgl32.Vec3{0, 1, 0}},
}

// Cube returns a cube from -1 to 1 on every axis with four vertices per face.
func Cube() ([]Vertex, []uint32) {
	vertices := make([]Vertex, 0, 4*len(cubeFaces))
	indices := make([]uint32, 0, 6*len(cubeFaces))

	for _, face := range cubeFaces {
		base := uint32(len(vertices))

		corners := []struct {
			right, up float32
			uv        mgl32.Vec2
		}{
			{-1, -1, mgl32.Vec2{0, 0}},
			{1, -1, mgl32.Vec2{1, 0}},
			{1, 1, mgl32.Vec2{1, 1}},
			{-1, 1, mgl32.Vec2{0, 1}},
		}

		for _, corner := range corners {
			position := face.normal.
				Add(face.right.Mul(corner.right)).
				Add(face.up.Mul(corner.up))

			vertices = append(vertices, Vertex{
				Position: position,
				Normal:   face.normal,
				TexCoord: corner.uv,
			})
		}

		indices = append(indices,
			base, base+1, base+2,
			base, base+2, base+3,
		)
	}

	return vertices, indices
}
