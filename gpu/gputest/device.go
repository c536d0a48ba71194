// Package gputest provides an in-memory gpu.Device for tests.
//
// The device does not rasterize anything. It tracks object lifetime, storage,
// vertex array and framebuffer state and records every draw together with the
// state it was issued with. Invalid API usage that a real driver would report
// as a GL error is collected in Errors.
package gputest

import (
	"fmt"
	"strings"

	"github.com/oliverbestmann/pulse/gpu"
)

type BufferState struct {
	Data      []byte
	Immutable bool
	Usage     gpu.Enum

	// number of storage (re)allocations
	Allocations int
}

type Binding struct {
	Buffer gpu.Buffer
	Offset int
	Stride int32
}

type Attrib struct {
	Enabled    bool
	Size       int32
	Type       gpu.Enum
	Normalized bool
	Offset     uint32
	Binding    uint32
}

type VertexArrayState struct {
	Bindings      map[uint32]Binding
	Divisors      map[uint32]uint32
	Attribs       map[uint32]*Attrib
	ElementBuffer gpu.Buffer
}

type TextureState struct {
	Target         gpu.Enum
	Immutable      bool
	Levels         int32
	InternalFormat gpu.Enum
	Width, Height  int32
	Params         map[gpu.Enum]int32

	// layers uploaded through TextureSubImage3D, cube faces for cubemaps
	Layers map[int32]bool

	Uploads int
	Mipmaps bool

	// number of storage (re)allocations
	Allocations int
}

type FramebufferState struct {
	Colors       map[gpu.Enum]gpu.Texture
	DepthStencil gpu.Renderbuffer
	DrawBuffers  []gpu.Enum
}

type RenderbufferState struct {
	Format        gpu.Enum
	Width, Height int32
}

type ShaderState struct {
	Stage    gpu.Enum
	Source   string
	Compiled bool
	InfoLog  string
}

type ProgramState struct {
	Shaders []gpu.Shader
	Linked  bool
	InfoLog string

	// uniform values by name, as last written
	Uniforms map[string]any

	// uniform block bindings by block name
	Blocks map[string]uint32

	locations map[string]int32
	names     map[int32]string
	blocks    map[string]uint32
}

type Clear struct {
	Framebuffer gpu.Framebuffer
	Mask        gpu.Enum
}

// DrawCall is a draw together with the state it observed.
type DrawCall struct {
	Framebuffer gpu.Framebuffer
	VertexArray gpu.VertexArray
	Program     gpu.Program
	Count       int32
	ByteOffset  int
	Instances   int32
	Viewport    [4]int32
	DepthTest   bool
	DepthFunc   gpu.Enum

	// textures bound to texture units at the time of the draw
	Units map[uint32]gpu.Texture
}

// Counts holds the number of live objects per type.
type Counts struct {
	Buffers       int
	VertexArrays  int
	Textures      int
	Framebuffers  int
	Renderbuffers int
	Shaders       int
	Programs      int
}

type Device struct {
	next uint32

	Buffers       map[gpu.Buffer]*BufferState
	VertexArrays  map[gpu.VertexArray]*VertexArrayState
	Textures      map[gpu.Texture]*TextureState
	Framebuffers  map[gpu.Framebuffer]*FramebufferState
	Renderbuffers map[gpu.Renderbuffer]*RenderbufferState
	Shaders       map[gpu.Shader]*ShaderState
	Programs      map[gpu.Program]*ProgramState

	// UniformNames restricts the active uniforms of every program.
	// A nil set means that every name is active.
	UniformNames map[string]bool

	// BlockNames restricts the uniform blocks of every program.
	// A nil set means that every block exists.
	BlockNames map[string]bool

	// ForceStatus, if non zero, is reported by CheckNamedFramebufferStatus
	// instead of the computed status.
	ForceStatus gpu.Enum

	BoundFramebuffer gpu.Framebuffer
	BoundVertexArray gpu.VertexArray
	CurrentProgram   gpu.Program
	Units            map[uint32]gpu.Texture
	UniformBindings  map[uint32]gpu.Buffer
	ViewportRect     [4]int32
	ClearValue       [4]float32
	Capabilities     map[gpu.Enum]bool
	DepthFn          gpu.Enum

	Clears []Clear
	Draws  []DrawCall
	Errors []string
}

var _ gpu.Device = (*Device)(nil)

func New() *Device {
	return &Device{
		Buffers:         map[gpu.Buffer]*BufferState{},
		VertexArrays:    map[gpu.VertexArray]*VertexArrayState{},
		Textures:        map[gpu.Texture]*TextureState{},
		Framebuffers:    map[gpu.Framebuffer]*FramebufferState{},
		Renderbuffers:   map[gpu.Renderbuffer]*RenderbufferState{},
		Shaders:         map[gpu.Shader]*ShaderState{},
		Programs:        map[gpu.Program]*ProgramState{},
		Units:           map[uint32]gpu.Texture{},
		UniformBindings: map[uint32]gpu.Buffer{},
		Capabilities:    map[gpu.Enum]bool{},
		DepthFn:         gpu.Less,
	}
}

// Live returns the number of objects that were created and not yet deleted.
func (d *Device) Live() Counts {
	return Counts{
		Buffers:       len(d.Buffers),
		VertexArrays:  len(d.VertexArrays),
		Textures:      len(d.Textures),
		Framebuffers:  len(d.Framebuffers),
		Renderbuffers: len(d.Renderbuffers),
		Shaders:       len(d.Shaders),
		Programs:      len(d.Programs),
	}
}

// Reset forgets recorded draws, clears and errors, keeping object state.
func (d *Device) Reset() {
	d.Draws = nil
	d.Clears = nil
	d.Errors = nil
}

func (d *Device) errorf(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Device) id() uint32 {
	d.next++
	return d.next
}

func (d *Device) buffer(buf gpu.Buffer, op string) *BufferState {
	state, ok := d.Buffers[buf]
	if !ok {
		d.errorf("%s: unknown buffer %d", op, buf)
	}

	return state
}

func (d *Device) vertexArray(vao gpu.VertexArray, op string) *VertexArrayState {
	state, ok := d.VertexArrays[vao]
	if !ok {
		d.errorf("%s: unknown vertex array %d", op, vao)
	}

	return state
}

func (d *Device) texture(tex gpu.Texture, op string) *TextureState {
	state, ok := d.Textures[tex]
	if !ok {
		d.errorf("%s: unknown texture %d", op, tex)
	}

	return state
}

func (d *Device) framebuffer(fb gpu.Framebuffer, op string) *FramebufferState {
	state, ok := d.Framebuffers[fb]
	if !ok {
		d.errorf("%s: unknown framebuffer %d", op, fb)
	}

	return state
}

func (d *Device) program(prog gpu.Program, op string) *ProgramState {
	state, ok := d.Programs[prog]
	if !ok {
		d.errorf("%s: unknown program %d", op, prog)
	}

	return state
}

func (d *Device) CreateBuffer() gpu.Buffer {
	buf := gpu.Buffer(d.id())
	d.Buffers[buf] = &BufferState{}
	return buf
}

func (d *Device) NamedBufferStorage(buf gpu.Buffer, data []byte) {
	state := d.buffer(buf, "NamedBufferStorage")
	if state == nil {
		return
	}

	if state.Immutable {
		d.errorf("NamedBufferStorage: buffer %d already has immutable storage", buf)
		return
	}

	state.Data = append([]byte(nil), data...)
	state.Immutable = true
	state.Allocations++
}

func (d *Device) NamedBufferData(buf gpu.Buffer, data []byte, usage gpu.Enum) {
	state := d.buffer(buf, "NamedBufferData")
	if state == nil {
		return
	}

	if state.Immutable {
		d.errorf("NamedBufferData: buffer %d has immutable storage", buf)
		return
	}

	state.Data = append([]byte(nil), data...)
	state.Usage = usage
	state.Allocations++
}

func (d *Device) NamedBufferSubData(buf gpu.Buffer, offset int, data []byte) {
	state := d.buffer(buf, "NamedBufferSubData")
	if state == nil {
		return
	}

	if offset < 0 || offset+len(data) > len(state.Data) {
		d.errorf("NamedBufferSubData: range [%d, %d) outside of buffer %d with size %d",
			offset, offset+len(data), buf, len(state.Data))
		return
	}

	copy(state.Data[offset:], data)
}

func (d *Device) BindBufferBase(target gpu.Enum, index uint32, buf gpu.Buffer) {
	if d.buffer(buf, "BindBufferBase") == nil {
		return
	}

	if target == gpu.UniformBuffer {
		d.UniformBindings[index] = buf
	}
}

func (d *Device) DeleteBuffer(buf gpu.Buffer) {
	if d.buffer(buf, "DeleteBuffer") == nil {
		return
	}

	delete(d.Buffers, buf)
}

func (d *Device) CreateVertexArray() gpu.VertexArray {
	vao := gpu.VertexArray(d.id())
	d.VertexArrays[vao] = &VertexArrayState{
		Bindings: map[uint32]Binding{},
		Divisors: map[uint32]uint32{},
		Attribs:  map[uint32]*Attrib{},
	}

	return vao
}

func (d *Device) attrib(state *VertexArrayState, attrib uint32) *Attrib {
	at, ok := state.Attribs[attrib]
	if !ok {
		at = &Attrib{}
		state.Attribs[attrib] = at
	}

	return at
}

func (d *Device) VertexArrayVertexBuffer(vao gpu.VertexArray, bindingIndex uint32, buf gpu.Buffer, offset int, stride int32) {
	state := d.vertexArray(vao, "VertexArrayVertexBuffer")
	if state == nil || d.buffer(buf, "VertexArrayVertexBuffer") == nil {
		return
	}

	state.Bindings[bindingIndex] = Binding{Buffer: buf, Offset: offset, Stride: stride}
}

func (d *Device) VertexArrayElementBuffer(vao gpu.VertexArray, buf gpu.Buffer) {
	state := d.vertexArray(vao, "VertexArrayElementBuffer")
	if state == nil || d.buffer(buf, "VertexArrayElementBuffer") == nil {
		return
	}

	state.ElementBuffer = buf
}

func (d *Device) EnableVertexArrayAttrib(vao gpu.VertexArray, attrib uint32) {
	if state := d.vertexArray(vao, "EnableVertexArrayAttrib"); state != nil {
		d.attrib(state, attrib).Enabled = true
	}
}

func (d *Device) VertexArrayAttribFormat(vao gpu.VertexArray, attrib uint32, size int32, typ gpu.Enum, normalized bool, relativeOffset uint32) {
	state := d.vertexArray(vao, "VertexArrayAttribFormat")
	if state == nil {
		return
	}

	at := d.attrib(state, attrib)
	at.Size = size
	at.Type = typ
	at.Normalized = normalized
	at.Offset = relativeOffset
}

func (d *Device) VertexArrayAttribBinding(vao gpu.VertexArray, attrib uint32, bindingIndex uint32) {
	if state := d.vertexArray(vao, "VertexArrayAttribBinding"); state != nil {
		d.attrib(state, attrib).Binding = bindingIndex
	}
}

func (d *Device) VertexArrayBindingDivisor(vao gpu.VertexArray, bindingIndex uint32, divisor uint32) {
	if state := d.vertexArray(vao, "VertexArrayBindingDivisor"); state != nil {
		state.Divisors[bindingIndex] = divisor
	}
}

func (d *Device) BindVertexArray(vao gpu.VertexArray) {
	if vao != 0 && d.vertexArray(vao, "BindVertexArray") == nil {
		return
	}

	d.BoundVertexArray = vao
}

func (d *Device) DeleteVertexArray(vao gpu.VertexArray) {
	if d.vertexArray(vao, "DeleteVertexArray") == nil {
		return
	}

	if d.BoundVertexArray == vao {
		d.BoundVertexArray = 0
	}

	delete(d.VertexArrays, vao)
}

func (d *Device) DrawElementsInstanced(mode gpu.Enum, count int32, typ gpu.Enum, byteOffset int, instanceCount int32) {
	if d.BoundVertexArray == 0 {
		d.errorf("DrawElementsInstanced: no vertex array bound")
		return
	}

	vao := d.VertexArrays[d.BoundVertexArray]
	if vao.ElementBuffer == 0 {
		d.errorf("DrawElementsInstanced: vertex array %d has no element buffer", d.BoundVertexArray)
		return
	}

	if d.CurrentProgram == 0 {
		d.errorf("DrawElementsInstanced: no program in use")
	}

	if elements, ok := d.Buffers[vao.ElementBuffer]; ok && typ == gpu.UnsignedInt {
		if byteOffset+int(count)*4 > len(elements.Data) {
			d.errorf("DrawElementsInstanced: index range exceeds element buffer %d", vao.ElementBuffer)
		}
	}

	units := make(map[uint32]gpu.Texture, len(d.Units))
	for unit, tex := range d.Units {
		units[unit] = tex
	}

	d.Draws = append(d.Draws, DrawCall{
		Framebuffer: d.BoundFramebuffer,
		VertexArray: d.BoundVertexArray,
		Program:     d.CurrentProgram,
		Count:       count,
		ByteOffset:  byteOffset,
		Instances:   instanceCount,
		Viewport:    d.ViewportRect,
		DepthTest:   d.Capabilities[gpu.DepthTest],
		DepthFunc:   d.DepthFn,
		Units:       units,
	})
}

func (d *Device) CreateTexture(target gpu.Enum) gpu.Texture {
	tex := gpu.Texture(d.id())
	d.Textures[tex] = &TextureState{
		Target: target,
		Params: map[gpu.Enum]int32{},
		Layers: map[int32]bool{},
	}

	return tex
}

func (d *Device) TextureStorage2D(tex gpu.Texture, levels int32, internalFormat gpu.Enum, width, height int32) {
	state := d.texture(tex, "TextureStorage2D")
	if state == nil {
		return
	}

	if state.Immutable {
		d.errorf("TextureStorage2D: texture %d already has immutable storage", tex)
		return
	}

	if state.Target == gpu.TextureCubeMap && width != height {
		d.errorf("TextureStorage2D: cubemap %d needs square faces, got %dx%d", tex, width, height)
		return
	}

	state.Immutable = true
	state.Levels = levels
	state.InternalFormat = internalFormat
	state.Width = width
	state.Height = height
	state.Allocations++
}

func (d *Device) checkUpload(state *TextureState, tex gpu.Texture, op string, level, x, y, width, height int32, pixels []byte) bool {
	if state.Width == 0 || state.Height == 0 {
		d.errorf("%s: texture %d has no storage", op, tex)
		return false
	}

	if level >= max(state.Levels, 1) || x+width > state.Width>>level || y+height > state.Height>>level {
		d.errorf("%s: region outside of texture %d", op, tex)
		return false
	}

	if len(pixels) == 0 {
		d.errorf("%s: no pixel data for texture %d", op, tex)
		return false
	}

	return true
}

func (d *Device) TextureSubImage2D(tex gpu.Texture, level, x, y, width, height int32, format, typ gpu.Enum, pixels []byte) {
	state := d.texture(tex, "TextureSubImage2D")
	if state == nil || !d.checkUpload(state, tex, "TextureSubImage2D", level, x, y, width, height, pixels) {
		return
	}

	state.Uploads++
}

func (d *Device) TextureSubImage3D(tex gpu.Texture, level, x, y, z, width, height, depth int32, format, typ gpu.Enum, pixels []byte) {
	state := d.texture(tex, "TextureSubImage3D")
	if state == nil || !d.checkUpload(state, tex, "TextureSubImage3D", level, x, y, width, height, pixels) {
		return
	}

	if state.Target == gpu.TextureCubeMap && z+depth > 6 {
		d.errorf("TextureSubImage3D: layer %d outside of cubemap %d", z+depth-1, tex)
		return
	}

	for layer := z; layer < z+depth; layer++ {
		state.Layers[layer] = true
	}

	state.Uploads++
}

func (d *Device) TexImage2D(target gpu.Enum, tex gpu.Texture, level int32, internalFormat gpu.Enum, width, height int32, format, typ gpu.Enum, pixels []byte) {
	state := d.texture(tex, "TexImage2D")
	if state == nil {
		return
	}

	if state.Immutable {
		d.errorf("TexImage2D: texture %d has immutable storage", tex)
		return
	}

	if state.Target != target {
		d.errorf("TexImage2D: texture %d has target %s, not %s", tex, state.Target, target)
		return
	}

	state.Levels = 1
	state.InternalFormat = internalFormat
	state.Width = width
	state.Height = height
	state.Allocations++
}

func (d *Device) GenerateTextureMipmap(tex gpu.Texture) {
	if state := d.texture(tex, "GenerateTextureMipmap"); state != nil {
		state.Mipmaps = true
	}
}

func (d *Device) TextureParameteri(tex gpu.Texture, pname gpu.Enum, param int32) {
	if state := d.texture(tex, "TextureParameteri"); state != nil {
		state.Params[pname] = param
	}
}

func (d *Device) BindTextureUnit(unit uint32, tex gpu.Texture) {
	if tex != 0 && d.texture(tex, "BindTextureUnit") == nil {
		return
	}

	if tex == 0 {
		delete(d.Units, unit)
		return
	}

	d.Units[unit] = tex
}

func (d *Device) DeleteTexture(tex gpu.Texture) {
	if d.texture(tex, "DeleteTexture") == nil {
		return
	}

	for unit, bound := range d.Units {
		if bound == tex {
			delete(d.Units, unit)
		}
	}

	delete(d.Textures, tex)
}

func (d *Device) CreateFramebuffer() gpu.Framebuffer {
	fb := gpu.Framebuffer(d.id())
	d.Framebuffers[fb] = &FramebufferState{Colors: map[gpu.Enum]gpu.Texture{}}
	return fb
}

func (d *Device) NamedFramebufferTexture(fb gpu.Framebuffer, attachment gpu.Enum, tex gpu.Texture, level int32) {
	state := d.framebuffer(fb, "NamedFramebufferTexture")
	if state == nil || d.texture(tex, "NamedFramebufferTexture") == nil {
		return
	}

	state.Colors[attachment] = tex
}

func (d *Device) NamedFramebufferRenderbuffer(fb gpu.Framebuffer, attachment gpu.Enum, rb gpu.Renderbuffer) {
	state := d.framebuffer(fb, "NamedFramebufferRenderbuffer")
	if state == nil {
		return
	}

	if _, ok := d.Renderbuffers[rb]; !ok {
		d.errorf("NamedFramebufferRenderbuffer: unknown renderbuffer %d", rb)
		return
	}

	if attachment != gpu.DepthStencilAttachment {
		d.errorf("NamedFramebufferRenderbuffer: unsupported attachment %s", attachment)
		return
	}

	state.DepthStencil = rb
}

func (d *Device) NamedFramebufferDrawBuffers(fb gpu.Framebuffer, buffers []gpu.Enum) {
	if state := d.framebuffer(fb, "NamedFramebufferDrawBuffers"); state != nil {
		state.DrawBuffers = append([]gpu.Enum(nil), buffers...)
	}
}

func (d *Device) CheckNamedFramebufferStatus(fb gpu.Framebuffer, target gpu.Enum) gpu.Enum {
	if d.ForceStatus != 0 {
		return d.ForceStatus
	}

	if fb == gpu.DefaultFramebuffer {
		return gpu.FramebufferComplete
	}

	state := d.framebuffer(fb, "CheckNamedFramebufferStatus")
	if state == nil {
		return 0
	}

	if len(state.Colors) == 0 && state.DepthStencil == 0 {
		return gpu.FramebufferIncompleteMissingAttachment
	}

	for _, tex := range state.Colors {
		texState, ok := d.Textures[tex]
		if !ok || texState.Width == 0 || texState.Height == 0 {
			return gpu.FramebufferIncompleteAttachment
		}
	}

	if state.DepthStencil != 0 {
		rb, ok := d.Renderbuffers[state.DepthStencil]
		if !ok || rb.Width == 0 || rb.Height == 0 {
			return gpu.FramebufferIncompleteAttachment
		}
	}

	for _, buf := range state.DrawBuffers {
		if _, ok := state.Colors[buf]; !ok {
			return gpu.FramebufferIncompleteDrawBuffer
		}
	}

	return gpu.FramebufferComplete
}

func (d *Device) BindFramebuffer(target gpu.Enum, fb gpu.Framebuffer) {
	if fb != gpu.DefaultFramebuffer && d.framebuffer(fb, "BindFramebuffer") == nil {
		return
	}

	d.BoundFramebuffer = fb
}

func (d *Device) DeleteFramebuffer(fb gpu.Framebuffer) {
	if d.framebuffer(fb, "DeleteFramebuffer") == nil {
		return
	}

	if d.BoundFramebuffer == fb {
		d.BoundFramebuffer = gpu.DefaultFramebuffer
	}

	delete(d.Framebuffers, fb)
}

func (d *Device) CreateRenderbuffer() gpu.Renderbuffer {
	rb := gpu.Renderbuffer(d.id())
	d.Renderbuffers[rb] = &RenderbufferState{}
	return rb
}

func (d *Device) NamedRenderbufferStorage(rb gpu.Renderbuffer, internalFormat gpu.Enum, width, height int32) {
	state, ok := d.Renderbuffers[rb]
	if !ok {
		d.errorf("NamedRenderbufferStorage: unknown renderbuffer %d", rb)
		return
	}

	state.Format = internalFormat
	state.Width = width
	state.Height = height
}

func (d *Device) DeleteRenderbuffer(rb gpu.Renderbuffer) {
	if _, ok := d.Renderbuffers[rb]; !ok {
		d.errorf("DeleteRenderbuffer: unknown renderbuffer %d", rb)
		return
	}

	delete(d.Renderbuffers, rb)
}

func (d *Device) CreateShader(stage gpu.Enum) gpu.Shader {
	sh := gpu.Shader(d.id())
	d.Shaders[sh] = &ShaderState{Stage: stage}
	return sh
}

func (d *Device) ShaderSource(sh gpu.Shader, source string) {
	if state, ok := d.Shaders[sh]; ok {
		state.Source = source
	} else {
		d.errorf("ShaderSource: unknown shader %d", sh)
	}
}

// CompileShader fails for every source containing an "#error" directive,
// the directive line becomes the info log.
func (d *Device) CompileShader(sh gpu.Shader) {
	state, ok := d.Shaders[sh]
	if !ok {
		d.errorf("CompileShader: unknown shader %d", sh)
		return
	}

	for line := range strings.Lines(state.Source) {
		if strings.HasPrefix(strings.TrimSpace(line), "#error") {
			state.Compiled = false
			state.InfoLog = "0:1: " + strings.TrimSpace(line)
			return
		}
	}

	state.Compiled = true
	state.InfoLog = ""
}

func (d *Device) ShaderCompileStatus(sh gpu.Shader) (bool, string) {
	state, ok := d.Shaders[sh]
	if !ok {
		d.errorf("ShaderCompileStatus: unknown shader %d", sh)
		return false, ""
	}

	return state.Compiled, state.InfoLog
}

func (d *Device) DeleteShader(sh gpu.Shader) {
	if _, ok := d.Shaders[sh]; !ok {
		d.errorf("DeleteShader: unknown shader %d", sh)
		return
	}

	delete(d.Shaders, sh)
}

func (d *Device) CreateProgram() gpu.Program {
	prog := gpu.Program(d.id())
	d.Programs[prog] = &ProgramState{
		Uniforms:  map[string]any{},
		Blocks:    map[string]uint32{},
		locations: map[string]int32{},
		names:     map[int32]string{},
		blocks:    map[string]uint32{},
	}

	return prog
}

func (d *Device) AttachShader(prog gpu.Program, sh gpu.Shader) {
	state := d.program(prog, "AttachShader")
	if state == nil {
		return
	}

	if _, ok := d.Shaders[sh]; !ok {
		d.errorf("AttachShader: unknown shader %d", sh)
		return
	}

	state.Shaders = append(state.Shaders, sh)
}

func (d *Device) LinkProgram(prog gpu.Program) {
	state := d.program(prog, "LinkProgram")
	if state == nil {
		return
	}

	if len(state.Shaders) == 0 {
		state.Linked = false
		state.InfoLog = "no shaders attached"
		return
	}

	for _, sh := range state.Shaders {
		if sh := d.Shaders[sh]; sh == nil || !sh.Compiled {
			state.Linked = false
			state.InfoLog = "attached shader is not compiled"
			return
		}
	}

	state.Linked = true
	state.InfoLog = ""
}

func (d *Device) ProgramLinkStatus(prog gpu.Program) (bool, string) {
	state := d.program(prog, "ProgramLinkStatus")
	if state == nil {
		return false, ""
	}

	return state.Linked, state.InfoLog
}

func (d *Device) UseProgram(prog gpu.Program) {
	if prog != 0 && d.program(prog, "UseProgram") == nil {
		return
	}

	d.CurrentProgram = prog
}

func (d *Device) DeleteProgram(prog gpu.Program) {
	if d.program(prog, "DeleteProgram") == nil {
		return
	}

	if d.CurrentProgram == prog {
		d.CurrentProgram = 0
	}

	delete(d.Programs, prog)
}

func (d *Device) GetUniformLocation(prog gpu.Program, name string) int32 {
	state := d.program(prog, "GetUniformLocation")
	if state == nil {
		return -1
	}

	if d.UniformNames != nil && !d.UniformNames[name] {
		return -1
	}

	location, ok := state.locations[name]
	if !ok {
		location = int32(len(state.locations))
		state.locations[name] = location
		state.names[location] = name
	}

	return location
}

func (d *Device) GetUniformBlockIndex(prog gpu.Program, name string) uint32 {
	state := d.program(prog, "GetUniformBlockIndex")
	if state == nil {
		return gpu.InvalidIndex
	}

	if d.BlockNames != nil && !d.BlockNames[name] {
		return gpu.InvalidIndex
	}

	index, ok := state.blocks[name]
	if !ok {
		index = uint32(len(state.blocks))
		state.blocks[name] = index
	}

	return index
}

func (d *Device) UniformBlockBinding(prog gpu.Program, blockIndex uint32, binding uint32) {
	state := d.program(prog, "UniformBlockBinding")
	if state == nil {
		return
	}

	for name, index := range state.blocks {
		if index == blockIndex {
			state.Blocks[name] = binding
			return
		}
	}

	d.errorf("UniformBlockBinding: unknown block index %d", blockIndex)
}

func (d *Device) setUniform(prog gpu.Program, location int32, value any) {
	if location == -1 {
		// silently ignored, as in GL
		return
	}

	state := d.program(prog, "ProgramUniform")
	if state == nil {
		return
	}

	name, ok := state.names[location]
	if !ok {
		d.errorf("ProgramUniform: unknown location %d in program %d", location, prog)
		return
	}

	state.Uniforms[name] = value
}

func (d *Device) ProgramUniform1i(prog gpu.Program, location int32, v int32) {
	d.setUniform(prog, location, v)
}

func (d *Device) ProgramUniform1f(prog gpu.Program, location int32, v float32) {
	d.setUniform(prog, location, v)
}

func (d *Device) ProgramUniform3f(prog gpu.Program, location int32, x, y, z float32) {
	d.setUniform(prog, location, [3]float32{x, y, z})
}

func (d *Device) ProgramUniform4f(prog gpu.Program, location int32, x, y, z, w float32) {
	d.setUniform(prog, location, [4]float32{x, y, z, w})
}

func (d *Device) ProgramUniformMatrix4fv(prog gpu.Program, location int32, m [16]float32) {
	d.setUniform(prog, location, m)
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.ViewportRect = [4]int32{x, y, width, height}
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.ClearValue = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask gpu.Enum) {
	d.Clears = append(d.Clears, Clear{Framebuffer: d.BoundFramebuffer, Mask: mask})
}

func (d *Device) Enable(capability gpu.Enum) {
	d.Capabilities[capability] = true
}

func (d *Device) Disable(capability gpu.Enum) {
	d.Capabilities[capability] = false
}

func (d *Device) DepthFunc(fn gpu.Enum) {
	d.DepthFn = fn
}
