package loaders

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/oxide/engine/core"
)

type FontGlyph struct {
	Codepoint rune
	X         uint16
	Y         uint16
	Width     uint16
	Height    uint16
	XOffset   int16
	YOffset   int16
	XAdvance  int16
	PageID    uint8
}

type FontKerning struct {
	Codepoint0 rune
	Codepoint1 rune
	Amount     int16
}

type BitmapFontPage struct {
	ID   int8
	File string
}

// BitmapFont is an AngelCode BMFont text descriptor (.fnt). Page images are
// resolved relative to the descriptor and must exist on disk, so bitmap
// fonts can only be loaded through the OS filesystem.
type BitmapFont struct {
	Path       string
	Face       string
	Size       uint32
	LineHeight int32
	Baseline   int32
	AtlasSizeX int32
	AtlasSizeY int32
	Glyphs     map[rune]FontGlyph
	Kernings   []FontKerning
	Pages      []BitmapFontPage
}

func (f *BitmapFont) Kind() string {
	return "bitmap_font"
}

func (f *BitmapFont) Load(path string, data []byte) error {
	if ext := filepath.Ext(path); ext != ".fnt" {
		return fmt.Errorf("%w: unsupported bitmap font extension %q", core.ErrMalformedAsset, ext)
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty bitmap font descriptor", core.ErrMalformedAsset)
	}

	font, err := bmfont.Load(path)
	if err != nil {
		return fmt.Errorf("%w: %w", core.ErrMalformedAsset, err)
	}
	desc := font.Descriptor

	f.Path = path
	f.Face = desc.Info.Face
	f.Size = uint32(desc.Info.Size)
	f.LineHeight = int32(desc.Common.LineHeight)
	f.Baseline = int32(desc.Common.Base)
	f.AtlasSizeX = int32(desc.Common.ScaleW)
	f.AtlasSizeY = int32(desc.Common.ScaleH)

	f.Pages = make([]BitmapFontPage, 0, len(desc.Pages))
	for _, p := range desc.Pages {
		f.Pages = append(f.Pages, BitmapFontPage{ID: int8(p.ID), File: p.File})
	}
	sort.Slice(f.Pages, func(i, j int) bool { return f.Pages[i].ID < f.Pages[j].ID })

	f.Glyphs = make(map[rune]FontGlyph, len(desc.Chars))
	for _, g := range desc.Chars {
		f.Glyphs[rune(g.ID)] = FontGlyph{
			Codepoint: rune(g.ID),
			X:         uint16(g.X),
			Y:         uint16(g.Y),
			Width:     uint16(g.Width),
			Height:    uint16(g.Height),
			XOffset:   int16(g.XOffset),
			YOffset:   int16(g.YOffset),
			XAdvance:  int16(g.XAdvance),
			PageID:    uint8(g.Page),
		}
	}

	f.Kernings = make([]FontKerning, 0, len(desc.Kerning))
	for pair, k := range desc.Kerning {
		f.Kernings = append(f.Kernings, FontKerning{
			Codepoint0: rune(pair.First),
			Codepoint1: rune(pair.Second),
			Amount:     int16(k.Amount),
		})
	}
	return nil
}

// Glyph returns the glyph of codepoint r.
func (f *BitmapFont) Glyph(r rune) (FontGlyph, bool) {
	g, ok := f.Glyphs[r]
	return g, ok
}

// Kerning returns the horizontal adjustment between two codepoints.
func (f *BitmapFont) Kerning(first, second rune) int16 {
	for _, k := range f.Kernings {
		if k.Codepoint0 == first && k.Codepoint1 == second {
			return k.Amount
		}
	}
	return 0
}

// Measure returns the advance width of text in pixels.
func (f *BitmapFont) Measure(text string) int {
	width := 0
	prev := rune(-1)
	for _, r := range text {
		if g, ok := f.Glyphs[r]; ok {
			width += int(g.XAdvance)
		}
		if prev >= 0 {
			width += int(f.Kerning(prev, r))
		}
		prev = r
	}
	return width
}

