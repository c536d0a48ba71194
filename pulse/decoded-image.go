package pulse

import (
	"fmt"

	"github.com/oliverbestmann/pulse/gpu"
)

// DecodedImage is tightly packed 8 bit pixel data, rows from bottom to top as
// the device expects them.
type DecodedImage struct {
	Pixels   []byte
	Width    int
	Height   int
	Channels int

	// Linear disables srgb decoding of three and four channel images.
	// Set it for data textures like normal or displacement maps.
	Linear bool

	// Path of the file the image was decoded from, if any.
	Path string
}

func (img DecodedImage) validate() error {
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("image %q has size %dx%d: %w", img.Path, img.Width, img.Height, ErrSizeMismatch)
	}

	if img.Channels < 1 || img.Channels > 4 {
		return fmt.Errorf("image %q has %d channels: %w", img.Path, img.Channels, ErrUnsupportedFormat)
	}

	expected := img.Width * img.Height * img.Channels
	if len(img.Pixels) != expected {
		return fmt.Errorf("image %q has %d bytes of pixel data, expected %d: %w",
			img.Path, len(img.Pixels), expected, ErrSizeMismatch)
	}

	return nil
}

// formats returns the internal storage format and the format of the pixel data.
func (img DecodedImage) formats() (internal, data gpu.Enum) {
	switch img.Channels {
	case 1:
		return gpu.R8, gpu.Red
	case 2:
		return gpu.RG8, gpu.RG
	case 3:
		if img.Linear {
			return gpu.RGB8, gpu.RGB
		}

		return gpu.SRGB8, gpu.RGB
	default:
		// TODO detect actual transparency so translucent meshes can be sorted
		if img.Linear {
			return gpu.RGBA8, gpu.RGBA
		}

		return gpu.SRGB8Alpha8, gpu.RGBA
	}
}
