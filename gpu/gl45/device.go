// Package gl45 implements gpu.Device on top of an OpenGL 4.5 core context.
//
// The context must be current on the calling goroutine, and that goroutine
// must stay locked to its OS thread for as long as the device is used.
package gl45

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/oliverbestmann/pulse/gpu"
)

// Device issues every call directly to the current GL context.
type Device struct{}

var _ gpu.Device = (*Device)(nil)

type Options struct {
	// Debug routes KHR_debug messages into slog. Requires a debug context
	// for the driver to report anything useful.
	Debug bool
}

// New loads the GL entry points for the current context.
func New(opts Options) (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("load gl entry points: %w", err)
	}

	slog.Info("OpenGL context ready",
		slog.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		slog.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	if opts.Debug {
		enableDebugOutput()
	}

	// decoded rows are tightly packed, also for one and three channels
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	return &Device{}, nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}

	return unsafe.Pointer(&data[0])
}

func (d *Device) CreateBuffer() gpu.Buffer {
	var id uint32
	gl.CreateBuffers(1, &id)
	return gpu.Buffer(id)
}

func (d *Device) NamedBufferStorage(buf gpu.Buffer, data []byte) {
	// the size is fixed, the contents can still be updated with NamedBufferSubData
	gl.NamedBufferStorage(uint32(buf), len(data), ptr(data), gl.DYNAMIC_STORAGE_BIT)
}

func (d *Device) NamedBufferData(buf gpu.Buffer, data []byte, usage gpu.Enum) {
	gl.NamedBufferData(uint32(buf), len(data), ptr(data), uint32(usage))
}

func (d *Device) NamedBufferSubData(buf gpu.Buffer, offset int, data []byte) {
	gl.NamedBufferSubData(uint32(buf), offset, len(data), ptr(data))
}

func (d *Device) BindBufferBase(target gpu.Enum, index uint32, buf gpu.Buffer) {
	gl.BindBufferBase(uint32(target), index, uint32(buf))
}

func (d *Device) DeleteBuffer(buf gpu.Buffer) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	var id uint32
	gl.CreateVertexArrays(1, &id)
	return gpu.VertexArray(id)
}

func (d *Device) VertexArrayVertexBuffer(vao gpu.VertexArray, bindingIndex uint32, buf gpu.Buffer, offset int, stride int32) {
	gl.VertexArrayVertexBuffer(uint32(vao), bindingIndex, uint32(buf), offset, stride)
}

func (d *Device) VertexArrayElementBuffer(vao gpu.VertexArray, buf gpu.Buffer) {
	gl.VertexArrayElementBuffer(uint32(vao), uint32(buf))
}

func (d *Device) EnableVertexArrayAttrib(vao gpu.VertexArray, attrib uint32) {
	gl.EnableVertexArrayAttrib(uint32(vao), attrib)
}

func (d *Device) VertexArrayAttribFormat(vao gpu.VertexArray, attrib uint32, size int32, typ gpu.Enum, normalized bool, relativeOffset uint32) {
	gl.VertexArrayAttribFormat(uint32(vao), attrib, size, uint32(typ), normalized, relativeOffset)
}

func (d *Device) VertexArrayAttribBinding(vao gpu.VertexArray, attrib uint32, bindingIndex uint32) {
	gl.VertexArrayAttribBinding(uint32(vao), attrib, bindingIndex)
}

func (d *Device) VertexArrayBindingDivisor(vao gpu.VertexArray, bindingIndex uint32, divisor uint32) {
	gl.VertexArrayBindingDivisor(uint32(vao), bindingIndex, divisor)
}

func (d *Device) BindVertexArray(vao gpu.VertexArray) {
	gl.BindVertexArray(uint32(vao))
}

func (d *Device) DeleteVertexArray(vao gpu.VertexArray) {
	id := uint32(vao)
	gl.DeleteVertexArrays(1, &id)
}

func (d *Device) DrawElementsInstanced(mode gpu.Enum, count int32, typ gpu.Enum, byteOffset int, instanceCount int32) {
	gl.DrawElementsInstanced(uint32(mode), count, uint32(typ), gl.PtrOffset(byteOffset), instanceCount)
}

func (d *Device) CreateTexture(target gpu.Enum) gpu.Texture {
	var id uint32
	gl.CreateTextures(uint32(target), 1, &id)
	return gpu.Texture(id)
}

func (d *Device) TextureStorage2D(tex gpu.Texture, levels int32, internalFormat gpu.Enum, width, height int32) {
	gl.TextureStorage2D(uint32(tex), levels, uint32(internalFormat), width, height)
}

func (d *Device) TextureSubImage2D(tex gpu.Texture, level, x, y, width, height int32, format, typ gpu.Enum, pixels []byte) {
	gl.TextureSubImage2D(uint32(tex), level, x, y, width, height, uint32(format), uint32(typ), ptr(pixels))
}

func (d *Device) TextureSubImage3D(tex gpu.Texture, level, x, y, z, width, height, depth int32, format, typ gpu.Enum, pixels []byte) {
	gl.TextureSubImage3D(uint32(tex), level, x, y, z, width, height, depth, uint32(format), uint32(typ), ptr(pixels))
}

func (d *Device) TexImage2D(target gpu.Enum, tex gpu.Texture, level int32, internalFormat gpu.Enum, width, height int32, format, typ gpu.Enum, pixels []byte) {
	var previous int32
	gl.GetIntegerv(bindingQuery(target), &previous)

	gl.BindTexture(uint32(target), uint32(tex))
	gl.TexImage2D(uint32(target), level, int32(internalFormat), width, height, 0, uint32(format), uint32(typ), ptr(pixels))
	gl.BindTexture(uint32(target), uint32(previous))
}

func bindingQuery(target gpu.Enum) uint32 {
	if target == gpu.TextureCubeMap {
		return gl.TEXTURE_BINDING_CUBE_MAP
	}

	return gl.TEXTURE_BINDING_2D
}

func (d *Device) GenerateTextureMipmap(tex gpu.Texture) {
	gl.GenerateTextureMipmap(uint32(tex))
}

func (d *Device) TextureParameteri(tex gpu.Texture, pname gpu.Enum, param int32) {
	gl.TextureParameteri(uint32(tex), uint32(pname), param)
}

func (d *Device) BindTextureUnit(unit uint32, tex gpu.Texture) {
	gl.BindTextureUnit(unit, uint32(tex))
}

func (d *Device) DeleteTexture(tex gpu.Texture) {
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

func (d *Device) CreateFramebuffer() gpu.Framebuffer {
	var id uint32
	gl.CreateFramebuffers(1, &id)
	return gpu.Framebuffer(id)
}

func (d *Device) NamedFramebufferTexture(fb gpu.Framebuffer, attachment gpu.Enum, tex gpu.Texture, level int32) {
	gl.NamedFramebufferTexture(uint32(fb), uint32(attachment), uint32(tex), level)
}

func (d *Device) NamedFramebufferRenderbuffer(fb gpu.Framebuffer, attachment gpu.Enum, rb gpu.Renderbuffer) {
	gl.NamedFramebufferRenderbuffer(uint32(fb), uint32(attachment), gl.RENDERBUFFER, uint32(rb))
}

func (d *Device) NamedFramebufferDrawBuffers(fb gpu.Framebuffer, buffers []gpu.Enum) {
	if len(buffers) == 0 {
		none := uint32(gl.NONE)
		gl.NamedFramebufferDrawBuffers(uint32(fb), 1, &none)
		return
	}

	enums := make([]uint32, len(buffers))
	for idx, buf := range buffers {
		enums[idx] = uint32(buf)
	}

	gl.NamedFramebufferDrawBuffers(uint32(fb), int32(len(enums)), &enums[0])
}

func (d *Device) CheckNamedFramebufferStatus(fb gpu.Framebuffer, target gpu.Enum) gpu.Enum {
	return gpu.Enum(gl.CheckNamedFramebufferStatus(uint32(fb), uint32(target)))
}

func (d *Device) BindFramebuffer(target gpu.Enum, fb gpu.Framebuffer) {
	gl.BindFramebuffer(uint32(target), uint32(fb))
}

func (d *Device) DeleteFramebuffer(fb gpu.Framebuffer) {
	id := uint32(fb)
	gl.DeleteFramebuffers(1, &id)
}

func (d *Device) CreateRenderbuffer() gpu.Renderbuffer {
	var id uint32
	gl.CreateRenderbuffers(1, &id)
	return gpu.Renderbuffer(id)
}

func (d *Device) NamedRenderbufferStorage(rb gpu.Renderbuffer, internalFormat gpu.Enum, width, height int32) {
	gl.NamedRenderbufferStorage(uint32(rb), uint32(internalFormat), width, height)
}

func (d *Device) DeleteRenderbuffer(rb gpu.Renderbuffer) {
	id := uint32(rb)
	gl.DeleteRenderbuffers(1, &id)
}

func (d *Device) CreateShader(stage gpu.Enum) gpu.Shader {
	return gpu.Shader(gl.CreateShader(uint32(stage)))
}

func (d *Device) ShaderSource(sh gpu.Shader, source string) {
	sources, free := gl.Strs(source + "\x00")
	defer free()

	gl.ShaderSource(uint32(sh), 1, sources, nil)
}

func (d *Device) CompileShader(sh gpu.Shader) {
	gl.CompileShader(uint32(sh))
}

func (d *Device) ShaderCompileStatus(sh gpu.Shader) (bool, string) {
	var status int32
	gl.GetShaderiv(uint32(sh), gl.COMPILE_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var length int32
	gl.GetShaderiv(uint32(sh), gl.INFO_LOG_LENGTH, &length)

	return false, readInfoLog(length, func(buf *uint8) {
		gl.GetShaderInfoLog(uint32(sh), length, nil, buf)
	})
}

func (d *Device) DeleteShader(sh gpu.Shader) {
	gl.DeleteShader(uint32(sh))
}

func (d *Device) CreateProgram() gpu.Program {
	return gpu.Program(gl.CreateProgram())
}

func (d *Device) AttachShader(prog gpu.Program, sh gpu.Shader) {
	gl.AttachShader(uint32(prog), uint32(sh))
}

func (d *Device) LinkProgram(prog gpu.Program) {
	gl.LinkProgram(uint32(prog))
}

func (d *Device) ProgramLinkStatus(prog gpu.Program) (bool, string) {
	var status int32
	gl.GetProgramiv(uint32(prog), gl.LINK_STATUS, &status)
	if status == gl.TRUE {
		return true, ""
	}

	var length int32
	gl.GetProgramiv(uint32(prog), gl.INFO_LOG_LENGTH, &length)

	return false, readInfoLog(length, func(buf *uint8) {
		gl.GetProgramInfoLog(uint32(prog), length, nil, buf)
	})
}

func readInfoLog(length int32, read func(buf *uint8)) string {
	if length <= 0 {
		return ""
	}

	buf := strings.Repeat("\x00", int(length+1))
	read(gl.Str(buf))

	return strings.TrimRight(buf, "\x00")
}

func (d *Device) UseProgram(prog gpu.Program) {
	gl.UseProgram(uint32(prog))
}

func (d *Device) DeleteProgram(prog gpu.Program) {
	gl.DeleteProgram(uint32(prog))
}

func (d *Device) GetUniformLocation(prog gpu.Program, name string) int32 {
	return gl.GetUniformLocation(uint32(prog), gl.Str(name+"\x00"))
}

func (d *Device) GetUniformBlockIndex(prog gpu.Program, name string) uint32 {
	return gl.GetUniformBlockIndex(uint32(prog), gl.Str(name+"\x00"))
}

func (d *Device) UniformBlockBinding(prog gpu.Program, blockIndex uint32, binding uint32) {
	gl.UniformBlockBinding(uint32(prog), blockIndex, binding)
}

func (d *Device) ProgramUniform1i(prog gpu.Program, location int32, v int32) {
	gl.ProgramUniform1i(uint32(prog), location, v)
}

func (d *Device) ProgramUniform1f(prog gpu.Program, location int32, v float32) {
	gl.ProgramUniform1f(uint32(prog), location, v)
}

func (d *Device) ProgramUniform3f(prog gpu.Program, location int32, x, y, z float32) {
	gl.ProgramUniform3f(uint32(prog), location, x, y, z)
}

func (d *Device) ProgramUniform4f(prog gpu.Program, location int32, x, y, z, w float32) {
	gl.ProgramUniform4f(uint32(prog), location, x, y, z, w)
}

func (d *Device) ProgramUniformMatrix4fv(prog gpu.Program, location int32, m [16]float32) {
	gl.ProgramUniformMatrix4fv(uint32(prog), location, 1, false, &m[0])
}

func (d *Device) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (d *Device) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (d *Device) Clear(mask gpu.Enum) {
	gl.Clear(uint32(mask))
}

func (d *Device) Enable(capability gpu.Enum) {
	gl.Enable(uint32(capability))
}

func (d *Device) Disable(capability gpu.Enum) {
	gl.Disable(uint32(capability))
}

func (d *Device) DepthFunc(fn gpu.Enum) {
	gl.DepthFunc(uint32(fn))
}
