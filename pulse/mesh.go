package pulse

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type TextureKind int

const (
	Diffuse TextureKind = iota
	Specular
	Normal
	Displacement
	Shininess

	textureKindCount = iota
)

var textureKindNames = [textureKindCount]string{"diffuse", "specular", "normal", "displacement", "shininess"}

func (k TextureKind) String() string {
	return textureKindNames[k]
}

// Mesh is a range in the index buffer of a Model together with the
// textures it is drawn with.
type Mesh struct {
	// first index of the mesh and number of indices
	Offset int
	Count  int32

	// used if the corresponding texture list is empty
	Diffuse   mgl32.Vec3
	Specular  mgl32.Vec3
	Shininess float32

	textures [textureKindCount][]*Texture
}

func NewMesh(offset int, count int32) *Mesh {
	return &Mesh{Offset: offset, Count: count}
}

// AddTexture appends a texture of the given kind. The mesh takes over one
// reference, call Retain before if the texture is shared.
func (m *Mesh) AddTexture(kind TextureKind, texture *Texture) {
	m.textures[kind] = append(m.textures[kind], texture)
}

func (m *Mesh) Textures(kind TextureKind) []*Texture {
	return m.textures[kind]
}

// ClearTextures drops every texture of the given kind.
func (m *Mesh) ClearTextures(kind TextureKind) {
	releaseAll(m.textures[kind])
	m.textures[kind] = nil
}

// SetTextures binds all textures to consecutive texture units and points the
// material samplers of program at them. Missing uniforms are ignored.
func (m *Mesh) SetTextures(program Program) {
	var unit uint32

	for kind, textures := range m.textures {
		name := TextureKind(kind).String()

		for idx, texture := range textures {
			texture.BindToUnit(unit)
			program.SetUniformUnchecked(fmt.Sprintf("material.%s[%d]", name, idx), int32(unit))
			unit++
		}

		program.SetUniformUnchecked("material."+name+"Count", int32(len(textures)))

		if len(textures) > 0 {
			continue
		}

		switch TextureKind(kind) {
		case Diffuse:
			program.SetUniformUnchecked("material.diffuseFloat", m.Diffuse)
		case Specular:
			program.SetUniformUnchecked("material.specularFloat", m.Specular)
		case Shininess:
			program.SetUniformUnchecked("material.shininessFloat", m.Shininess)
		}
	}
}

func (m *Mesh) Release() {
	for kind := range m.textures {
		m.ClearTextures(TextureKind(kind))
	}
}
