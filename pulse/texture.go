package pulse

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/oliverbestmann/pulse/gpu"
)

// Texture owns a 2D or cubemap device texture.
//
// Textures are reference counted as the same texture is commonly held by the
// render target drawing into it and by every stage sampling from it. Each
// holder calls Retain once and Release once, the device texture is deleted
// when the last holder released it.
type Texture struct {
	ctx    *Context
	handle gpu.Texture

	target gpu.Enum
	format gpu.Enum
	levels int32

	width  int32
	height int32

	// only textures with mutable storage can be resized
	resizable bool

	refs int
	path string
}

// NewTextureFromDecoded creates an immutable 2D texture with a full mipmap
// chain from the decoded image.
func NewTextureFromDecoded(ctx *Context, img DecodedImage) (*Texture, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}

	internal, data := img.formats()
	width, height := int32(img.Width), int32(img.Height)

	t := newTexture(ctx, gpu.Texture2D, internal, width, height)
	t.levels = mipLevels(width, height)
	t.path = img.Path

	ctx.TextureStorage2D(t.handle, t.levels, internal, width, height)
	ctx.TextureSubImage2D(t.handle, 0, 0, 0, width, height, data, gpu.UnsignedByte, img.Pixels)
	ctx.GenerateTextureMipmap(t.handle)

	t.parameters(gpu.Repeat, gpu.LinearMipmapLinear, gpu.Linear)

	return t, nil
}

// NewCubemapTexture creates an immutable cubemap from exactly six faces of
// equal size, in the order +x, -x, +y, -y, +z, -z.
func NewCubemapTexture(ctx *Context, faces []DecodedImage) (*Texture, error) {
	if len(faces) != 6 {
		return nil, fmt.Errorf("cubemap needs 6 faces, got %d: %w", len(faces), ErrSizeMismatch)
	}

	if faces[0].Width != faces[0].Height {
		return nil, fmt.Errorf("cubemap faces must be square, got %dx%d: %w",
			faces[0].Width, faces[0].Height, ErrSizeMismatch)
	}

	for idx, face := range faces {
		if err := face.validate(); err != nil {
			return nil, fmt.Errorf("cubemap face %d: %w", idx, err)
		}

		if face.Width != faces[0].Width || face.Height != faces[0].Height || face.Channels != faces[0].Channels {
			return nil, fmt.Errorf("cubemap face %d differs from face 0: %w", idx, ErrSizeMismatch)
		}
	}

	internal, data := faces[0].formats()
	width, height := int32(faces[0].Width), int32(faces[0].Height)

	t := newTexture(ctx, gpu.TextureCubeMap, internal, width, height)
	t.levels = 1
	t.path = faces[0].Path

	ctx.TextureStorage2D(t.handle, 1, internal, width, height)

	for layer, face := range faces {
		ctx.TextureSubImage3D(t.handle, 0, 0, 0, int32(layer), width, height, 1, data, gpu.UnsignedByte, face.Pixels)
	}

	t.parameters(gpu.ClampToEdge, gpu.Linear, gpu.Linear)
	ctx.TextureParameteri(t.handle, gpu.TextureWrapR, int32(gpu.ClampToEdge))

	return t, nil
}

// NewRenderTexture creates a resizable RGBA16F texture to render into.
func NewRenderTexture(ctx *Context, width, height int32) *Texture {
	t := newTexture(ctx, gpu.Texture2D, gpu.RGBA16F, width, height)
	t.levels = 1
	t.resizable = true

	t.allocate()
	t.parameters(gpu.ClampToEdge, gpu.Nearest, gpu.Nearest)

	return t
}

func newTexture(ctx *Context, target, format gpu.Enum, width, height int32) *Texture {
	t := &Texture{
		ctx:    ctx,
		handle: ctx.CreateTexture(target),
		target: target,
		format: format,
		width:  width,
		height: height,
		refs:   1,
	}

	slog.Debug("Create texture",
		slog.Uint64("id", uint64(t.handle)),
		slog.Any("target", target),
		slog.Any("format", format),
		slog.Int("width", int(width)),
		slog.Int("height", int(height)),
	)

	return trackLeak(ctx, t)
}

func (t *Texture) parameters(wrap, minFilter, magFilter gpu.Enum) {
	t.ctx.TextureParameteri(t.handle, gpu.TextureWrapS, int32(wrap))
	t.ctx.TextureParameteri(t.handle, gpu.TextureWrapT, int32(wrap))
	t.ctx.TextureParameteri(t.handle, gpu.TextureMinFilter, int32(minFilter))
	t.ctx.TextureParameteri(t.handle, gpu.TextureMagFilter, int32(magFilter))
}

func (t *Texture) allocate() {
	t.ctx.TexImage2D(t.target, t.handle, 0, t.format, t.width, t.height, gpu.RGBA, gpu.UnsignedByte, nil)
}

// Resize reallocates the storage of a render texture in place. The texture
// keeps its identity, its contents are undefined afterwards.
func (t *Texture) Resize(width, height int32) error {
	if t.refs == 0 {
		return fmt.Errorf("resize texture: %w", ErrReleased)
	}

	if !t.resizable {
		return fmt.Errorf("resize texture %d: %w", t.handle, ErrCannotResize)
	}

	t.width = width
	t.height = height
	t.allocate()

	return nil
}

// BindToUnit binds the texture to a texture unit for sampling.
func (t *Texture) BindToUnit(unit uint32) {
	t.ctx.BindTextureUnit(unit, t.handle)
}

// Retain registers another holder and returns the texture.
func (t *Texture) Retain() *Texture {
	if t.refs == 0 {
		panic("retain of released texture")
	}

	t.refs++
	return t
}

// Release drops one reference. The device texture is deleted when the last
// reference is dropped.
func (t *Texture) Release() {
	if t.refs == 0 {
		return
	}

	t.refs--
	if t.refs > 0 {
		return
	}

	slog.Debug("Release texture", slog.Uint64("id", uint64(t.handle)))

	t.ctx.DeleteTexture(t.handle)
	t.handle = 0
}

func (t *Texture) released() bool {
	return t.refs == 0
}

func (t *Texture) RefCount() int {
	return t.refs
}

func (t *Texture) Handle() gpu.Texture {
	return t.handle
}

func (t *Texture) Target() gpu.Enum {
	return t.target
}

func (t *Texture) Format() gpu.Enum {
	return t.format
}

func (t *Texture) Levels() int32 {
	return t.levels
}

func (t *Texture) Width() int32 {
	return t.width
}

func (t *Texture) Height() int32 {
	return t.height
}

func (t *Texture) Size() (width, height int32) {
	return t.width, t.height
}

func (t *Texture) Resizable() bool {
	return t.resizable
}

// Path returns the file a decoded texture was created from. For cubemaps this
// is the path of the first face.
func (t *Texture) Path() string {
	return t.path
}

func (t *Texture) String() string {
	return fmt.Sprintf("Texture(%d, %s, %dx%d)", t.handle, t.target, t.width, t.height)
}

func mipLevels(width, height int32) int32 {
	return int32(bits.Len32(uint32(max(width, height))))
}
