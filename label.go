package canopy

import (
	"math"
	"unicode/utf8"

	"github.com/chewxy/math32"
)

// Label dirty bits.
const (
	labelStaleBuffer     uint8 = 1 << 0 // glyph geometry must be laid out again
	labelStaleBufferSize uint8 = 1 << 1 // vertex storage must grow first
	labelStaleColor      uint8 = 1 << 2 // only vertex colors changed
)

// Label minimum and maximum scale.
const (
	labelMinScale = 0.01
	labelMaxScale = 1.0
)

// epsilon is the float32 machine epsilon.
const epsilon = 1.1920929e-07

// isEqual reports whether a and b are equal within relative epsilon.
func isEqual(a, b float32) bool {
	return math32.Abs(a-b) <= math32.Max(math32.Abs(a), math32.Abs(b))*epsilon
}

// Label lays out a line-broken UTF-8 string as glyph quads from a font
// atlas. Like a batch it keeps a dirty bitmask and only redoes layout when
// the text, font, geometry or alignment changed.
type Label struct {
	text     string
	font     FontAtlas
	position Vec2
	scale    float32
	angle    float32
	align    TextAlign
	color    Color

	vertices []Vertex // grow-only; len is 4 * the longest text seen
	count    int      // vertices in use
	size     int      // longest text length seen, in bytes
	stale    uint8
	width    float32
	buffer   Buffer
}

// NewLabel creates an empty, left-aligned label.
func NewLabel(dev Device, font FontAtlas) *Label {
	return &Label{
		font:   font,
		scale:  1,
		color:  ColorWhite,
		buffer: dev.NewBuffer(),
	}
}

// Text returns the label's text.
func (l *Label) Text() string { return l.text }

// Font returns the label's font.
func (l *Label) Font() FontAtlas { return l.font }

// Alignment returns the text alignment.
func (l *Label) Alignment() TextAlign { return l.align }

// Angle returns the rotation in radians.
func (l *Label) Angle() float32 { return l.angle }

// Color returns the text color.
func (l *Label) Color() Color { return l.color }

// Position returns the anchor position.
func (l *Label) Position() Vec2 { return l.position }

// Scale returns the scale factor.
func (l *Label) Scale() float32 { return l.scale }

// Width returns the width of the widest line as of the last Update.
func (l *Label) Width() float32 { return l.width }

// Len returns the number of glyph quads as of the last Update.
func (l *Label) Len() int { return l.count / 4 }

// Capacity returns how many glyph quads fit in the vertex storage without
// growing it.
func (l *Label) Capacity() int { return len(l.vertices) / 4 }

// Vertices returns the laid out vertices. The returned slice MUST NOT be
// mutated.
func (l *Label) Vertices() []Vertex { return l.vertices[:l.count] }

// Buffer returns the label's GPU buffer.
func (l *Label) Buffer() Buffer { return l.buffer }

// IsStale reports whether the label needs an Update.
func (l *Label) IsStale() bool { return l.stale != 0 }

// SetAlignment sets the horizontal alignment of each line.
func (l *Label) SetAlignment(a TextAlign) {
	l.align = a
	l.stale |= labelStaleBuffer
}

// SetColor sets the text color. Layout is kept; only colors are rewritten.
func (l *Label) SetColor(c Color) {
	l.color = c
	l.stale |= labelStaleColor
}

// SetFont sets the font.
func (l *Label) SetFont(f FontAtlas) {
	l.font = f
	l.stale |= labelStaleBuffer
}

// SetPosition sets the anchor position, rounded to whole pixels.
func (l *Label) SetPosition(p Vec2) {
	l.position = Vec2{round(p.X), round(p.Y)}
	l.stale |= labelStaleBuffer
}

// SetRotation sets the rotation in radians.
func (l *Label) SetRotation(r float32) {
	if isEqual(r, l.angle) {
		return
	}
	l.angle = r
	l.stale |= labelStaleBuffer
}

// SetScale sets the scale factor, clamped to [0.01, 1].
func (l *Label) SetScale(f float32) {
	if isEqual(f, l.scale) {
		return
	}
	l.scale = min(max(f, labelMinScale), labelMaxScale)
	l.stale |= labelStaleBuffer
}

// SetText sets the text. Storage only grows when the text is longer than
// any text the label has held before.
func (l *Label) SetText(text string) {
	if len(text) > l.size {
		l.size = len(text)
		l.stale |= labelStaleBufferSize
	}
	l.text = text
	l.stale |= labelStaleBuffer
}

// Move translates the label by delta.
func (l *Label) Move(delta Vec2) {
	l.position = l.position.Add(delta)
	l.stale |= labelStaleBuffer
}

// Update redoes whatever the dirty bits call for and uploads the vertices.
// It reports whether anything was uploaded.
func (l *Label) Update() bool {
	if l.stale == 0 {
		return false
	}
	l.updateInternal()
	l.buffer.Upload(l.vertices[:l.count])
	l.stale = 0
	return true
}

// Draw binds the font texture and draws the label's glyphs.
func (l *Label) Draw(r Rasterizer) {
	if l.count == 0 {
		return
	}
	var tex TextureID
	if l.font != nil {
		tex = l.font.Texture()
	}
	r.BindTexture(0, tex)
	r.BindTexture(1, 0)
	r.DrawQuads(l.buffer, l.count/4)
}

func (l *Label) updateInternal() {
	if l.stale&labelStaleBuffer == 0 {
		if l.stale&labelStaleColor != 0 {
			for i := range l.vertices[:l.count] {
				l.vertices[i].Color = l.color
			}
		}
		return
	}

	if l.stale&labelStaleBufferSize != 0 {
		l.vertices = make([]Vertex, l.size*4)
	}

	l.width = 0
	l.count = 0
	if l.font == nil {
		return
	}

	rotated := !isEqual(l.angle, 0)
	rot := Vec2{1, 0}
	if rotated {
		rot = Vec2{math32.Cos(-l.angle), math32.Sin(-l.angle)}
	}
	aligned := l.align != TextAlignLeft || rotated

	// Aligned text is laid out around the origin and moved into place once
	// each line's width is known.
	pen := l.position
	if aligned {
		pen = Vec2{}
	}
	originX := pen.X
	lineHeight := l.font.Height() * l.scale

	start := 0
	glyphs := 0
	text := l.text
	for i := 0; i < len(text); {
		if text[i] == '\n' {
			l.finishLine(start, glyphs, pen.X-originX, rot, aligned)
			pen.X = originX
			start = glyphs
			pen.Y -= lineHeight
			i++
			continue
		}

		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size <= 1 {
			break
		}
		i += size

		g := l.font.Glyph(r)
		if g == nil {
			continue
		}

		pen.X += g.Left * l.scale
		vx := l.vertices[glyphs*4 : glyphs*4+4]
		for j := range vx {
			vx[j] = Vertex{
				Position: g.Quad[j].Position.Scale(l.scale).Add(pen),
				Texcoord: g.Quad[j].Texcoord,
				Color:    l.color,
			}
		}
		pen.X += (g.Advance - g.Left) * l.scale
		glyphs++
	}
	l.count = glyphs * 4
	l.finishLine(start, glyphs, pen.X-originX, rot, aligned)
}

// finishLine applies alignment and rotation to the glyphs [start, end) of
// one line and records its width.
func (l *Label) finishLine(start, end int, width float32, rot Vec2, aligned bool) {
	if aligned {
		offset := width * alignmentFactor[l.align]
		t := l.position
		for i := range l.vertices[start*4 : end*4] {
			p := &l.vertices[start*4+i].Position
			x := p.X - offset
			*p = Vec2{
				rot.X*x - rot.Y*p.Y + t.X,
				rot.Y*x + rot.X*p.Y + t.Y,
			}
		}
	}
	if width > l.width {
		l.width = width
	}
}

func round(f float32) float32 {
	return float32(math.Round(float64(f)))
}
