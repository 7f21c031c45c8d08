package canopy

import "github.com/chewxy/math32"

// Sprite state bits. The low 16 bits mark stale vertex data; the bits
// above hold persistent sprite flags.
const (
	staleBuffer   uint32 = 1 << 0 // corner positions must be re-derived
	stalePosition uint32 = 1 << 1 // corners must be translated to position
	staleTexture  uint32 = 1 << 2 // texcoords and colors must be rewritten
	staleNormal   uint32 = 1 << 3 // normal map coordinates must be rewritten
	staleMask     uint32 = 0xffff

	spriteHidden   uint32 = 1 << 16
	spriteFlipped  uint32 = 1 << 17
	spriteMirrored uint32 = 1 << 18
)

// flipTable maps region corner i to vertex flipTable[row][i]. Corners are
// ordered bottom-left, bottom-right, top-right, top-left.
var flipTable = [4][4]int{
	{0, 1, 2, 3}, // normal
	{3, 2, 1, 0}, // flipped: top and bottom swap
	{1, 0, 3, 2}, // mirrored: left and right swap
	{2, 3, 0, 1}, // flipped and mirrored
}

// flipRow returns the flipTable row for the given state.
func flipRow(state uint32) int {
	row := 0
	if state&spriteFlipped != 0 {
		row++
	}
	if state&spriteMirrored != 0 {
		row += 2
	}
	return row
}

// Sprite is the transform and appearance state of one textured quad.
// Sprites live inside a SpriteBatch; reach them through a SpriteRef.
//
// Mutators only record what changed. Vertex data is rebuilt by the owning
// batch during SpriteBatch.Update.
type Sprite struct {
	state    uint32
	center   Vec2
	position Vec2
	pivot    Vec2
	scale    Vec2
	angle    float32
	width    float32
	height   float32
	color    Color
	texture  int
	normal   int
}

func newSprite(width, height float32) Sprite {
	return Sprite{
		state:  staleMask,
		pivot:  Vec2{0.5, 0.5},
		scale:  Vec2{1, 1},
		width:  width,
		height: height,
		color:  ColorWhite,
	}
}

// Angle returns the rotation in radians.
func (s *Sprite) Angle() float32 { return s.angle }

// Color returns the tint color.
func (s *Sprite) Color() Color { return s.color }

// Height returns the unscaled height.
func (s *Sprite) Height() float32 { return s.height }

// Width returns the unscaled width.
func (s *Sprite) Width() float32 { return s.width }

// Position returns the position of the pivot point.
func (s *Sprite) Position() Vec2 { return s.position }

// Pivot returns the normalized pivot point.
func (s *Sprite) Pivot() Vec2 { return s.pivot }

// Scale returns the scale factors.
func (s *Sprite) Scale() Vec2 { return s.scale }

// Texture returns the texture region id.
func (s *Sprite) Texture() int { return s.texture }

// Normal returns the normal map region id.
func (s *Sprite) Normal() int { return s.normal }

// IsFlipped reports whether the texture is flipped vertically.
func (s *Sprite) IsFlipped() bool { return s.state&spriteFlipped != 0 }

// IsMirrored reports whether the texture is mirrored horizontally.
func (s *Sprite) IsMirrored() bool { return s.state&spriteMirrored != 0 }

// IsHidden reports whether the sprite is hidden.
func (s *Sprite) IsHidden() bool { return s.state&spriteHidden != 0 }

// IsStale reports whether the sprite's vertices need regenerating. Normal
// map coordinates are tracked separately.
func (s *Sprite) IsStale() bool { return s.state&(staleMask&^staleNormal) != 0 }

// SetColor sets the tint color.
func (s *Sprite) SetColor(c Color) {
	s.state |= staleTexture
	s.color = c
}

// SetNormal sets the normal map region id.
func (s *Sprite) SetNormal(id int) {
	s.state |= staleNormal
	s.normal = id
}

// SetPivot moves the pivot point. Position and center shift by the pivot
// change times the scaled size, so an unrotated quad stays where it is on
// screen. The shift is not rotated. Both components must lie in [0, 1].
func (s *Sprite) SetPivot(pivot Vec2) {
	debugAssert(pivot.X >= 0 && pivot.X <= 1 && pivot.Y >= 0 && pivot.Y <= 1,
		"invalid pivot point")

	diff := pivot.Sub(s.pivot)
	if diff.IsZero() {
		return
	}
	diff.X *= s.width * s.scale.X
	diff.Y *= s.height * s.scale.Y
	s.center = s.center.Add(diff)
	s.position = s.position.Add(diff)
	s.pivot = pivot
}

// SetPosition sets the position of the pivot point.
func (s *Sprite) SetPosition(p Vec2) {
	s.state |= stalePosition
	s.position = p
}

// SetRotation sets the rotation in radians.
func (s *Sprite) SetRotation(r float32) {
	s.state |= staleBuffer
	s.angle = r
}

// SetScale sets the scale factors. Both must be greater than zero.
func (s *Sprite) SetScale(f Vec2) {
	debugAssert(f.X > 0 && f.Y > 0, "can't scale with a factor of zero or less")
	s.state |= staleBuffer
	s.scale = f
}

// SetTexture sets the texture region id.
func (s *Sprite) SetTexture(id int) {
	s.state |= staleTexture
	s.texture = id
}

// Flip toggles vertical flipping of the texture.
func (s *Sprite) Flip() {
	s.state ^= spriteFlipped
	s.state |= staleTexture | staleNormal
}

// Mirror toggles horizontal mirroring of the texture.
func (s *Sprite) Mirror() {
	s.state ^= spriteMirrored
	s.state |= staleTexture | staleNormal
}

// Hide collapses the sprite on the next update. It keeps its buffer slot.
func (s *Sprite) Hide() {
	if s.IsHidden() {
		return
	}
	s.state |= spriteHidden | staleMask
}

// Show restores a hidden sprite.
func (s *Sprite) Show() {
	if !s.IsHidden() {
		return
	}
	s.state &^= spriteHidden
	s.state |= staleMask
}

// Move translates the sprite by delta.
func (s *Sprite) Move(delta Vec2) {
	s.state |= stalePosition
	s.position = s.position.Add(delta)
}

// Rotate adds r radians to the rotation.
func (s *Sprite) Rotate(r float32) {
	s.state |= staleBuffer
	s.angle += r
}

// update rewrites the stale parts of the sprite's four vertices and reports
// whether anything was written. vertices must have length 4.
func (s *Sprite) update(vertices []Vertex, atlas TextureAtlas) bool {
	if s.state&(staleMask&^staleNormal) == 0 {
		return false
	}

	if s.IsHidden() {
		for i := range vertices[:4] {
			vertices[i].Position = Vec2{}
		}
		s.state &^= staleMask &^ staleNormal
		return true
	}

	if s.state&staleBuffer != 0 {
		if s.state&stalePosition != 0 {
			s.center = s.position
		}
		s.transform(vertices)
	} else if s.state&stalePosition != 0 {
		// Corners are already correct relative to center; translate them.
		delta := s.position.Sub(s.center)
		for i := range vertices[:4] {
			vertices[i].Position = vertices[i].Position.Add(delta)
		}
		s.center = s.position
	}

	if s.state&staleTexture != 0 {
		var region Region
		if atlas != nil {
			region = atlas.Region(s.texture)
		}
		row := &flipTable[flipRow(s.state)]
		for i := 0; i < 4; i++ {
			v := &vertices[row[i]]
			v.Color = s.color
			v.Texcoord = region[i]
		}
	}

	s.state &^= staleMask &^ staleNormal
	return true
}

// updateNormals rewrites the sprite's four normal map coordinates if they
// are stale. normals must have length 4.
func (s *Sprite) updateNormals(normals []Vec2, atlas TextureAtlas) bool {
	if s.state&staleNormal == 0 {
		return false
	}
	s.state &^= staleNormal

	region := atlas.Region(s.normal)
	row := &flipTable[flipRow(s.state)]
	for i := 0; i < 4; i++ {
		normals[row[i]] = region[i]
	}
	return true
}

// transform derives all four corner positions from center, pivot, scale
// and angle.
func (s *Sprite) transform(vertices []Vertex) {
	w := s.width * s.scale.X
	h := s.height * s.scale.Y
	left := -s.pivot.X * w
	bottom := -s.pivot.Y * h
	right := left + w
	top := bottom + h

	corners := [4]Vec2{
		{left, bottom},
		{right, bottom},
		{right, top},
		{left, top},
	}

	if s.angle == 0 {
		for i, c := range corners {
			vertices[i].Position = c.Add(s.center)
		}
		return
	}

	sin, cos := math32.Sin(s.angle), math32.Cos(s.angle)
	for i, c := range corners {
		vertices[i].Position = Vec2{
			cos*c.X - sin*c.Y + s.center.X,
			sin*c.X + cos*c.Y + s.center.Y,
		}
	}
}
