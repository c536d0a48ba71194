// Package imagefile decodes image files into pixel data ready for upload
// with pulse.NewTextureFromDecoded.
package imagefile

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	// registered image formats
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/oliverbestmann/pulse/pulse"
	"golang.org/x/image/draw"
)

// Options control how decoded pixels are interpreted.
type Options struct {
	// Linear marks the pixels as linear data, e.g. normal or displacement
	// maps. Color images are stored as sRGB otherwise.
	Linear bool
}

// Decode reads and decodes the image file at path.
func Decode(path string, opts *Options) (pulse.DecodedImage, error) {
	fp, err := os.Open(path)
	if err != nil {
		return pulse.DecodedImage{}, fmt.Errorf("open image: %w", err)
	}

	defer fp.Close()

	img, err := DecodeReader(fp, opts)
	if err != nil {
		return pulse.DecodedImage{}, fmt.Errorf("decode %q: %w", path, err)
	}

	img.Path = path

	return img, nil
}

// DecodeBytes decodes an image held in memory.
func DecodeBytes(buf []byte, opts *Options) (pulse.DecodedImage, error) {
	return DecodeReader(bytes.NewReader(buf), opts)
}

// DecodeReader decodes an image in any registered format. Gray images keep a
// single channel, opaque images are reduced to three channels. Rows are
// flipped so that the first row is the bottom of the image.
func DecodeReader(r io.Reader, opts *Options) (pulse.DecodedImage, error) {
	if opts == nil {
		opts = &Options{}
	}

	src, _, err := image.Decode(r)
	if err != nil {
		return pulse.DecodedImage{}, err
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	var pixels []byte
	var channels int

	switch {
	case isGray(src):
		gray := image.NewGray(image.Rect(0, 0, width, height))
		draw.Draw(gray, gray.Bounds(), src, bounds.Min, draw.Src)
		pixels, channels = gray.Pix, 1

	case isOpaque(src):
		rgba := toNRGBA(src)
		pixels, channels = dropAlpha(rgba.Pix), 3

	default:
		pixels, channels = toNRGBA(src).Pix, 4
	}

	flipRows(pixels, width*channels)

	return pulse.DecodedImage{
		Pixels:   pixels,
		Width:    width,
		Height:   height,
		Channels: channels,
		Linear:   opts.Linear,
	}, nil
}

func toNRGBA(src image.Image) *image.NRGBA {
	bounds := src.Bounds()

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	return dst
}

func isGray(img image.Image) bool {
	model := img.ColorModel()
	return model == color.GrayModel || model == color.Gray16Model
}

func isOpaque(img image.Image) bool {
	opaque, ok := img.(interface{ Opaque() bool })
	return ok && opaque.Opaque()
}

// dropAlpha packs four channel pixels into three channels in place.
func dropAlpha(pix []byte) []byte {
	count := len(pix) / 4

	for idx := range count {
		copy(pix[idx*3:idx*3+3], pix[idx*4:idx*4+3])
	}

	return pix[:count*3]
}

func flipRows(pix []byte, stride int) {
	if stride == 0 {
		return
	}

	rows := len(pix) / stride

	tmp := make([]byte, stride)
	for top := 0; top < rows/2; top++ {
		bottom := rows - 1 - top

		topRow := pix[top*stride : (top+1)*stride]
		bottomRow := pix[bottom*stride : (bottom+1)*stride]

		copy(tmp, topRow)
		copy(topRow, bottomRow)
		copy(bottomRow, tmp)
	}
}
