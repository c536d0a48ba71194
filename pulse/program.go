package pulse

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/pulse/gpu"
)

// Program is the capability of a linked shader program that draws need.
type Program interface {
	Use()

	// SetUniform sets a uniform and fails with ErrUniformNotFound if the
	// program has no active uniform of that name.
	SetUniform(name string, value any) error

	// SetUniformUnchecked sets a uniform and silently ignores missing ones.
	SetUniformUnchecked(name string, value any)

	// BindUniformBlock binds a uniform block to a uniform buffer binding
	// slot and fails with ErrUniformBlockNotFound for unknown blocks.
	BindUniformBlock(name string, slot uint32) error
}

type ShaderSources struct {
	Vertex   string
	Geometry string
	Fragment string
}

// ShaderProgram is a linked program built from glsl sources. Uniform
// locations are looked up once and then cached.
type ShaderProgram struct {
	ctx    *Context
	handle gpu.Program

	locations *lru.Cache[string, int32]
	blocks    *lru.Cache[string, uint32]
}

var _ Program = (*ShaderProgram)(nil)

// NewShaderProgram compiles every non empty stage and links them. A failing
// stage or link returns a *ShaderCompileError.
func NewShaderProgram(ctx *Context, sources ShaderSources) (*ShaderProgram, error) {
	stages := []struct {
		stage  gpu.Enum
		source string
	}{
		{gpu.VertexShader, sources.Vertex},
		{gpu.GeometryShader, sources.Geometry},
		{gpu.FragmentShader, sources.Fragment},
	}

	handle := ctx.CreateProgram()

	programGuard := NewReleaseGuard(ReleaseFunc(func() { ctx.DeleteProgram(handle) }))
	defer programGuard.Release()

	var shaders []gpu.Shader

	// shader objects are not needed after linking
	defer func() {
		for _, sh := range shaders {
			ctx.DeleteShader(sh)
		}
	}()

	for _, stage := range stages {
		if stage.source == "" {
			continue
		}

		sh, err := compileShader(ctx, stage.stage, stage.source)
		if err != nil {
			return nil, err
		}

		shaders = append(shaders, sh)
		ctx.AttachShader(handle, sh)
	}

	ctx.LinkProgram(handle)

	if ok, infoLog := ctx.ProgramLinkStatus(handle); !ok {
		return nil, &ShaderCompileError{Object: uint32(handle), InfoLog: infoLog}
	}

	locations, _ := lru.New[string, int32](64)
	blocks, _ := lru.New[string, uint32](8)

	prog := &ShaderProgram{
		ctx:       ctx,
		handle:    handle,
		locations: locations,
		blocks:    blocks,
	}

	programGuard.Keep()

	slog.Debug("Create shader program",
		slog.Uint64("id", uint64(handle)),
		slog.Int("stages", len(shaders)),
	)

	return trackLeak(ctx, prog), nil
}

func compileShader(ctx *Context, stage gpu.Enum, source string) (gpu.Shader, error) {
	sh := ctx.CreateShader(stage)
	ctx.ShaderSource(sh, source)
	ctx.CompileShader(sh)

	if ok, infoLog := ctx.ShaderCompileStatus(sh); !ok {
		ctx.DeleteShader(sh)
		return 0, &ShaderCompileError{Stage: stage, Object: uint32(sh), InfoLog: infoLog}
	}

	return sh, nil
}

func (p *ShaderProgram) Handle() gpu.Program {
	return p.handle
}

func (p *ShaderProgram) Use() {
	p.ctx.UseProgram(p.handle)
}

// location returns the cached location of a uniform, -1 if it does not exist.
func (p *ShaderProgram) location(name string) int32 {
	location, ok := p.locations.Get(name)
	if !ok {
		location = p.ctx.GetUniformLocation(p.handle, name)
		p.locations.Add(name, location)
	}

	return location
}

func (p *ShaderProgram) checkedLocation(name string) (int32, error) {
	location := p.location(name)
	if location == -1 {
		return -1, fmt.Errorf("uniform %q in program %d: %w", name, p.handle, ErrUniformNotFound)
	}

	return location, nil
}

func (p *ShaderProgram) SetUniform(name string, value any) error {
	location, err := p.checkedLocation(name)
	if err != nil {
		return err
	}

	return p.write(location, value)
}

func (p *ShaderProgram) SetUniformUnchecked(name string, value any) {
	location := p.location(name)
	if location == -1 {
		return
	}

	if err := p.write(location, value); err != nil {
		slog.Debug("Ignore uniform", slog.String("name", name), slog.Any("err", err))
	}
}

func (p *ShaderProgram) write(location int32, value any) error {
	switch value := value.(type) {
	case int:
		p.ctx.ProgramUniform1i(p.handle, location, int32(value))
	case int32:
		p.ctx.ProgramUniform1i(p.handle, location, value)
	case uint32:
		p.ctx.ProgramUniform1i(p.handle, location, int32(value))
	case bool:
		p.ctx.ProgramUniform1i(p.handle, location, boolToInt(value))
	case float32:
		p.ctx.ProgramUniform1f(p.handle, location, value)
	case mgl32.Vec3:
		p.ctx.ProgramUniform3f(p.handle, location, value[0], value[1], value[2])
	case mgl32.Vec4:
		p.ctx.ProgramUniform4f(p.handle, location, value[0], value[1], value[2], value[3])
	case Color:
		r, g, b, a := value.Components()
		p.ctx.ProgramUniform4f(p.handle, location, r, g, b, a)
	case mgl32.Mat4:
		p.ctx.ProgramUniformMatrix4fv(p.handle, location, value)
	default:
		return fmt.Errorf("unsupported uniform type %T", value)
	}

	return nil
}

func (p *ShaderProgram) SetInt(name string, value int32) error {
	return p.SetUniform(name, value)
}

func (p *ShaderProgram) SetBool(name string, value bool) error {
	return p.SetUniform(name, value)
}

func (p *ShaderProgram) SetFloat(name string, value float32) error {
	return p.SetUniform(name, value)
}

func (p *ShaderProgram) SetVec3(name string, value mgl32.Vec3) error {
	return p.SetUniform(name, value)
}

func (p *ShaderProgram) SetVec4(name string, value mgl32.Vec4) error {
	return p.SetUniform(name, value)
}

func (p *ShaderProgram) SetMat4(name string, value mgl32.Mat4) error {
	return p.SetUniform(name, value)
}

func (p *ShaderProgram) SetIntUnchecked(name string, value int32) {
	p.SetUniformUnchecked(name, value)
}

func (p *ShaderProgram) SetBoolUnchecked(name string, value bool) {
	p.SetUniformUnchecked(name, value)
}

func (p *ShaderProgram) SetFloatUnchecked(name string, value float32) {
	p.SetUniformUnchecked(name, value)
}

func (p *ShaderProgram) SetVec3Unchecked(name string, value mgl32.Vec3) {
	p.SetUniformUnchecked(name, value)
}

func (p *ShaderProgram) SetVec4Unchecked(name string, value mgl32.Vec4) {
	p.SetUniformUnchecked(name, value)
}

func (p *ShaderProgram) SetMat4Unchecked(name string, value mgl32.Mat4) {
	p.SetUniformUnchecked(name, value)
}

func (p *ShaderProgram) BindUniformBlock(name string, slot uint32) error {
	index, ok := p.blocks.Get(name)
	if !ok {
		index = p.ctx.GetUniformBlockIndex(p.handle, name)
		p.blocks.Add(name, index)
	}

	if index == gpu.InvalidIndex {
		return fmt.Errorf("uniform block %q in program %d: %w", name, p.handle, ErrUniformBlockNotFound)
	}

	p.ctx.UniformBlockBinding(p.handle, index, slot)

	return nil
}

func (p *ShaderProgram) released() bool {
	return p.handle == 0
}

func (p *ShaderProgram) Release() {
	if p.handle == 0 {
		return
	}

	slog.Debug("Release shader program", slog.Uint64("id", uint64(p.handle)))

	p.ctx.DeleteProgram(p.handle)
	p.handle = 0
	p.locations.Purge()
	p.blocks.Purge()
}

func boolToInt(value bool) int32 {
	if value {
		return 1
	}

	return 0
}
