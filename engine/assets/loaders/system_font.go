package loaders

import (
	"fmt"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"

	"github.com/spaghettifunk/oxide/engine/core"
)

// SystemFont is a TrueType or OpenType font, or a collection of them.
type SystemFont struct {
	Path  string
	Faces []string

	collection *opentype.Collection
}

func (f *SystemFont) Kind() string {
	return "system_font"
}

func (f *SystemFont) Load(path string, data []byte) error {
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedAsset, err)
	}

	var buf sfnt.Buffer
	faces := make([]string, 0, c.NumFonts())
	for i := 0; i < c.NumFonts(); i++ {
		fnt, err := c.Font(i)
		if err != nil {
			return fmt.Errorf("%w: font %d: %w", core.ErrMalformedAsset, i, err)
		}
		name, err := fnt.Name(&buf, sfnt.NameIDFamily)
		if err != nil {
			name = fmt.Sprintf("face-%d", i)
		}
		faces = append(faces, name)
	}

	f.Path = path
	f.Faces = faces
	f.collection = c
	return nil
}

// Face builds a drawable face of the index-th font at size points.
func (f *SystemFont) Face(index int, size float64) (font.Face, error) {
	if f.collection == nil {
		return nil, fmt.Errorf("font '%s' is not loaded", f.Path)
	}
	fnt, err := f.collection.Font(index)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Measure returns the advance width of text in pixels.
func (f *SystemFont) Measure(index int, size float64, text string) (int, error) {
	face, err := f.Face(index, size)
	if err != nil {
		return 0, err
	}
	defer face.Close()
	return font.MeasureString(face, text).Ceil(), nil
}
