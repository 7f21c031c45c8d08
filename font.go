package canopy

import (
	"errors"
	"fmt"

	"github.com/fzipp/bmfont"
)

// ErrNoGlyphs is returned by LoadBitmapFont when the font defines no
// characters.
var ErrNoGlyphs = errors.New("canopy: font defines no glyphs")

const asciiGlyphCount = 128

// BitmapFont is a FontAtlas backed by a pre-rasterized glyph texture in
// BMFont layout.
type BitmapFont struct {
	texture    TextureID
	lineHeight float32
	base       float32
	scaleW     float32
	scaleH     float32

	asciiGlyphs [asciiGlyphCount]Glyph // fixed array for ASCII, zero-alloc lookup
	asciiSet    [asciiGlyphCount]bool  // which ASCII entries are populated
	extGlyphs   map[rune]*Glyph        // extended Unicode (pointer avoids per-lookup alloc)
	count       int
}

// NewBitmapFont creates an empty font over a glyph texture of scaleW x
// scaleH pixels. lineHeight is the baseline-to-baseline distance and base
// the distance from the top of a line to its baseline.
func NewBitmapFont(tex TextureID, lineHeight, base float32, scaleW, scaleH int) *BitmapFont {
	if scaleW <= 0 || scaleH <= 0 {
		panic("canopy: font texture dimensions must be positive")
	}
	return &BitmapFont{
		texture:    tex,
		lineHeight: lineHeight,
		base:       base,
		scaleW:     float32(scaleW),
		scaleH:     float32(scaleH),
	}
}

// Texture returns the glyph texture.
func (f *BitmapFont) Texture() TextureID { return f.texture }

// Height returns the distance between baselines.
func (f *BitmapFont) Height() float32 { return f.lineHeight }

// Base returns the distance from the top of a line to its baseline.
func (f *BitmapFont) Base() float32 { return f.base }

// Len returns the number of glyphs.
func (f *BitmapFont) Len() int { return f.count }

// Glyph returns the glyph for r, or nil if the font has none.
func (f *BitmapFont) Glyph(r rune) *Glyph {
	if r >= 0 && r < asciiGlyphCount {
		if f.asciiSet[r] {
			return &f.asciiGlyphs[r]
		}
		return nil
	}
	return f.extGlyphs[r]
}

// AddGlyph defines the glyph for r from its BMFont metrics: the pixel
// rectangle (x, y, w, h) in the texture, the offsets from the pen position
// to the top-left of the bitmap, and the horizontal advance.
func (f *BitmapFont) AddGlyph(r rune, x, y, w, h, xoffset, yoffset, xadvance int) {
	u0 := float32(x) / f.scaleW
	u1 := float32(x+w) / f.scaleW
	v0 := float32(y) / f.scaleH
	v1 := float32(y+h) / f.scaleH

	// Quads are relative to the pen after the left bearing, with y up from
	// the bottom of the line.
	top := f.lineHeight - float32(yoffset)
	bottom := top - float32(h)
	right := float32(w)

	g := Glyph{
		Advance: float32(xadvance),
		Left:    float32(xoffset),
		Quad: [4]GlyphVertex{
			{Texcoord: Vec2{u0, v1}, Position: Vec2{0, bottom}},
			{Texcoord: Vec2{u1, v1}, Position: Vec2{right, bottom}},
			{Texcoord: Vec2{u1, v0}, Position: Vec2{right, top}},
			{Texcoord: Vec2{u0, v0}, Position: Vec2{0, top}},
		},
	}

	if f.Glyph(r) == nil {
		f.count++
	}
	if r >= 0 && r < asciiGlyphCount {
		f.asciiGlyphs[r] = g
		f.asciiSet[r] = true
		return
	}
	if f.extGlyphs == nil {
		f.extGlyphs = make(map[rune]*Glyph)
	}
	f.extGlyphs[r] = &g
}

// LoadBitmapFont reads a BMFont text descriptor (and its page images) from
// path and builds a font whose glyphs sample tex. Only single-page fonts
// are supported; glyphs on other pages are skipped.
func LoadBitmapFont(tex TextureID, path string) (*BitmapFont, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("canopy: failed to load font %s: %w", path, err)
	}
	d := font.Descriptor
	if d.Common.LineHeight <= 0 {
		return nil, fmt.Errorf("canopy: font %s missing common lineHeight", path)
	}
	if d.Common.ScaleW <= 0 || d.Common.ScaleH <= 0 {
		return nil, fmt.Errorf("canopy: font %s missing texture size", path)
	}

	f := NewBitmapFont(tex, float32(d.Common.LineHeight), float32(d.Common.Base),
		int(d.Common.ScaleW), int(d.Common.ScaleH))
	skipped := 0
	for _, c := range d.Chars {
		if int(c.Page) != 0 {
			skipped++
			continue
		}
		f.AddGlyph(rune(c.ID), int(c.X), int(c.Y), int(c.Width), int(c.Height),
			int(c.XOffset), int(c.YOffset), int(c.XAdvance))
	}
	if f.count == 0 {
		return nil, fmt.Errorf("canopy: font %s: %w", path, ErrNoGlyphs)
	}
	if skipped > 0 {
		logger.Warn("font glyphs on extra pages skipped", "font", d.Info.Face, "skipped", skipped)
	}
	logger.Debug("font loaded", "font", d.Info.Face, "size", d.Info.Size, "glyphs", f.count)
	return f, nil
}
