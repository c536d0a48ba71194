// Package gpu describes the explicit graphics API that every resource in
// pulse is built on. The surface mirrors the direct-state-access subset of
// OpenGL 4.5: objects are created without binding, storage is specified on
// the object name and draws are submitted from a bound vertex array.
//
// Implementations are expected to be used from a single goroutine, the one
// that owns the graphics context.
package gpu

// Handle types for device objects. The zero value never names a live object,
// except for Framebuffer where zero is the default (window) framebuffer.
type (
	Buffer       uint32
	VertexArray  uint32
	Texture      uint32
	Framebuffer  uint32
	Renderbuffer uint32
	Shader       uint32
	Program      uint32
)

// DefaultFramebuffer is the framebuffer provided by the window system.
const DefaultFramebuffer Framebuffer = 0

// Device is the set of device entry points used by pulse.
type Device interface {
	// buffers
	CreateBuffer() Buffer
	NamedBufferStorage(buf Buffer, data []byte)
	NamedBufferData(buf Buffer, data []byte, usage Enum)
	NamedBufferSubData(buf Buffer, offset int, data []byte)
	BindBufferBase(target Enum, index uint32, buf Buffer)
	DeleteBuffer(buf Buffer)

	// vertex arrays
	CreateVertexArray() VertexArray
	VertexArrayVertexBuffer(vao VertexArray, bindingIndex uint32, buf Buffer, offset int, stride int32)
	VertexArrayElementBuffer(vao VertexArray, buf Buffer)
	EnableVertexArrayAttrib(vao VertexArray, attrib uint32)
	VertexArrayAttribFormat(vao VertexArray, attrib uint32, size int32, typ Enum, normalized bool, relativeOffset uint32)
	VertexArrayAttribBinding(vao VertexArray, attrib uint32, bindingIndex uint32)
	VertexArrayBindingDivisor(vao VertexArray, bindingIndex uint32, divisor uint32)
	BindVertexArray(vao VertexArray)
	DeleteVertexArray(vao VertexArray)
	DrawElementsInstanced(mode Enum, count int32, typ Enum, byteOffset int, instanceCount int32)

	// textures
	CreateTexture(target Enum) Texture
	TextureStorage2D(tex Texture, levels int32, internalFormat Enum, width, height int32)
	TextureSubImage2D(tex Texture, level, x, y, width, height int32, format, typ Enum, pixels []byte)
	TextureSubImage3D(tex Texture, level, x, y, z, width, height, depth int32, format, typ Enum, pixels []byte)

	// TexImage2D specifies mutable storage. Unlike the other texture calls
	// this one is bind based in the underlying API; implementations restore
	// the previous binding.
	TexImage2D(target Enum, tex Texture, level int32, internalFormat Enum, width, height int32, format, typ Enum, pixels []byte)
	GenerateTextureMipmap(tex Texture)
	TextureParameteri(tex Texture, pname Enum, param int32)
	BindTextureUnit(unit uint32, tex Texture)
	DeleteTexture(tex Texture)

	// framebuffers
	CreateFramebuffer() Framebuffer
	NamedFramebufferTexture(fb Framebuffer, attachment Enum, tex Texture, level int32)
	NamedFramebufferRenderbuffer(fb Framebuffer, attachment Enum, rb Renderbuffer)
	NamedFramebufferDrawBuffers(fb Framebuffer, buffers []Enum)
	CheckNamedFramebufferStatus(fb Framebuffer, target Enum) Enum
	BindFramebuffer(target Enum, fb Framebuffer)
	DeleteFramebuffer(fb Framebuffer)

	// renderbuffers
	CreateRenderbuffer() Renderbuffer
	NamedRenderbufferStorage(rb Renderbuffer, internalFormat Enum, width, height int32)
	DeleteRenderbuffer(rb Renderbuffer)

	// shaders and programs
	CreateShader(stage Enum) Shader
	ShaderSource(sh Shader, source string)
	CompileShader(sh Shader)
	ShaderCompileStatus(sh Shader) (ok bool, infoLog string)
	DeleteShader(sh Shader)
	CreateProgram() Program
	AttachShader(prog Program, sh Shader)
	LinkProgram(prog Program)
	ProgramLinkStatus(prog Program) (ok bool, infoLog string)
	UseProgram(prog Program)
	DeleteProgram(prog Program)

	// GetUniformLocation returns -1 if the program has no active uniform with that name.
	GetUniformLocation(prog Program, name string) int32

	// GetUniformBlockIndex returns InvalidIndex if the block does not exist.
	GetUniformBlockIndex(prog Program, name string) uint32
	UniformBlockBinding(prog Program, blockIndex uint32, binding uint32)
	ProgramUniform1i(prog Program, location int32, v int32)
	ProgramUniform1f(prog Program, location int32, v float32)
	ProgramUniform3f(prog Program, location int32, x, y, z float32)
	ProgramUniform4f(prog Program, location int32, x, y, z, w float32)
	ProgramUniformMatrix4fv(prog Program, location int32, m [16]float32)

	// fixed function state
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)
	Enable(capability Enum)
	Disable(capability Enum)
	DepthFunc(fn Enum)
}
