package gpu

import "fmt"

// Enum is a device enumerant. The values are the OpenGL ones so a backend
// can pass them through unchanged.
type Enum uint32

// primitive and component types
const (
	Triangles     Enum = 0x0004
	UnsignedByte  Enum = 0x1401
	UnsignedInt   Enum = 0x1405
	Float         Enum = 0x1406
	HalfFloat     Enum = 0x140B
	StaticDraw    Enum = 0x88E4
	DynamicDraw   Enum = 0x88E8
	UniformBuffer Enum = 0x8A11
)

// texture targets, formats and parameters
const (
	Texture2D      Enum = 0x0DE1
	TextureCubeMap Enum = 0x8513

	Red  Enum = 0x1903
	RG   Enum = 0x8227
	RGB  Enum = 0x1907
	RGBA Enum = 0x1908

	R8          Enum = 0x8229
	RG8         Enum = 0x822B
	RGB8        Enum = 0x8051
	RGBA8       Enum = 0x8058
	SRGB8       Enum = 0x8C41
	SRGB8Alpha8 Enum = 0x8C43
	RGBA16F     Enum = 0x881A

	TextureMagFilter Enum = 0x2800
	TextureMinFilter Enum = 0x2801
	TextureWrapS     Enum = 0x2802
	TextureWrapT     Enum = 0x2803
	TextureWrapR     Enum = 0x8072

	Nearest            Enum = 0x2600
	Linear             Enum = 0x2601
	LinearMipmapLinear Enum = 0x2703
	Repeat             Enum = 0x2901
	ClampToEdge        Enum = 0x812F
)

// framebuffer and renderbuffer
const (
	FramebufferTarget                      Enum = 0x8D40
	ColorAttachment0                       Enum = 0x8CE0
	DepthStencilAttachment                 Enum = 0x821A
	Depth24Stencil8                        Enum = 0x88F0
	FramebufferComplete                    Enum = 0x8CD5
	FramebufferIncompleteAttachment        Enum = 0x8CD6
	FramebufferIncompleteMissingAttachment Enum = 0x8CD7
	FramebufferIncompleteDrawBuffer        Enum = 0x8CDB
	FramebufferUnsupported                 Enum = 0x8CDD
	FramebufferIncompleteMultisample       Enum = 0x8D56
)

// clear bits and capabilities
const (
	DepthBufferBit   Enum = 0x0100
	StencilBufferBit Enum = 0x0400
	ColorBufferBit   Enum = 0x4000

	DepthTest Enum = 0x0B71
	Less      Enum = 0x0201
	LEqual    Enum = 0x0203
)

// shader stages
const (
	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
	GeometryShader Enum = 0x8DD9
)

// InvalidIndex is returned by GetUniformBlockIndex for unknown blocks.
const InvalidIndex uint32 = 0xFFFFFFFF

var enumNames = map[Enum]string{
	FramebufferComplete:                    "FRAMEBUFFER_COMPLETE",
	FramebufferIncompleteAttachment:        "FRAMEBUFFER_INCOMPLETE_ATTACHMENT",
	FramebufferIncompleteMissingAttachment: "FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT",
	FramebufferIncompleteDrawBuffer:        "FRAMEBUFFER_INCOMPLETE_DRAW_BUFFER",
	FramebufferUnsupported:                 "FRAMEBUFFER_UNSUPPORTED",
	FramebufferIncompleteMultisample:       "FRAMEBUFFER_INCOMPLETE_MULTISAMPLE",
	Texture2D:                              "TEXTURE_2D",
	TextureCubeMap:                         "TEXTURE_CUBE_MAP",
	VertexShader:                           "VERTEX_SHADER",
	FragmentShader:                         "FRAGMENT_SHADER",
	GeometryShader:                         "GEOMETRY_SHADER",
	R8:                                     "R8",
	RG8:                                    "RG8",
	RGB8:                                   "RGB8",
	RGBA8:                                  "RGBA8",
	SRGB8:                                  "SRGB8",
	SRGB8Alpha8:                            "SRGB8_ALPHA8",
	RGBA16F:                                "RGBA16F",
	Depth24Stencil8:                        "DEPTH24_STENCIL8",
}

func (e Enum) String() string {
	if name, ok := enumNames[e]; ok {
		return name
	}

	return fmt.Sprintf("0x%04X", uint32(e))
}
