package canopy

import "image/color"

// Vec2 is a 2D vector used for positions, offsets, sizes and texture
// coordinates throughout the API. Y increases upward in scene space.
type Vec2 struct {
	X, Y float32
}

// Add returns v+o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v-o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Scale returns v scaled by f.
func (v Vec2) Scale(f float32) Vec2 { return Vec2{v.X * f, v.Y * f} }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Color is an 8-bit per channel RGBA color. Not premultiplied.
type Color struct {
	R, G, B, A uint8
}

// ColorWhite is the default tint for sprites and labels.
var ColorWhite = Color{0xff, 0xff, 0xff, 0xff}

// RGBA returns the color packed as 0xRRGGBBAA.
func (c Color) RGBA() uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

// toNRGBA converts c for use with image/color APIs.
func (c Color) toNRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// ColorFromRGBA unpacks a 0xRRGGBBAA value.
func ColorFromRGBA(v uint32) Color {
	return Color{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}

// Vertex is one corner of a quad as handed to the GPU.
type Vertex struct {
	Position Vec2
	Texcoord Vec2
	Color    Color
}

// Region holds the texture coordinates of a quad's four corners, in the
// same corner order used for vertex positions: bottom-left, bottom-right,
// top-right, top-left.
type Region [4]Vec2

// TextureID names a texture registered with the rasterizer. Zero means no
// texture.
type TextureID uint32

// TextAlign controls horizontal alignment of each line of a Label.
type TextAlign uint8

const (
	TextAlignLeft   TextAlign = iota // lines start at the label position (default)
	TextAlignCenter                  // lines are centered on the label position
	TextAlignRight                   // lines end at the label position
)

// alignmentFactor is the fraction of a line's width subtracted from its
// vertices for each TextAlign.
var alignmentFactor = [...]float32{
	TextAlignLeft:   0,
	TextAlignCenter: 0.5,
	TextAlignRight:  1,
}

// NodeType distinguishes what a Node carries.
type NodeType uint8

const (
	NodeTypeGroup     NodeType = iota // grouping node with no renderable
	NodeTypeBatch                     // renders a SpriteBatch
	NodeTypeLabel                     // renders a Label
	NodeTypeAnimation                 // drives an Animation; draws nothing
	NodeTypeDrawable                  // user-provided Drawable
)

func (t NodeType) String() string {
	switch t {
	case NodeTypeGroup:
		return "group"
	case NodeTypeBatch:
		return "batch"
	case NodeTypeLabel:
		return "label"
	case NodeTypeAnimation:
		return "animation"
	case NodeTypeDrawable:
		return "drawable"
	default:
		return "unknown"
	}
}
