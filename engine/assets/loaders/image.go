package loaders

import (
	"bytes"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/spaghettifunk/oxide/engine/core"
)

// Image is a decoded raster image. PNG, JPEG, GIF, BMP, TIFF and WebP files
// are supported.
type Image struct {
	Path   string
	Format string
	Width  int
	Height int
	Pixels *image.RGBA
}

func (img *Image) Kind() string {
	return "image"
}

func (img *Image) Load(path string, data []byte) error {
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedAsset, err)
	}

	bounds := decoded.Bounds()
	rgba, ok := decoded.(*image.RGBA)
	if !ok || bounds.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), decoded, bounds.Min, draw.Src)
	}

	img.Path = path
	img.Format = format
	img.Width = bounds.Dx()
	img.Height = bounds.Dy()
	img.Pixels = rgba
	return nil
}

// ChannelCount is always 4, pixels are expanded to RGBA.
func (img *Image) ChannelCount() int {
	return 4
}

