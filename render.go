package canopy

// TextureAtlas resolves region ids to texture coordinates. Atlases are
// shared between batches and are never mutated by the scene.
type TextureAtlas interface {
	// Texture returns the texture to bind before drawing quads that use
	// this atlas.
	Texture() TextureID
	// Region returns the corner texture coordinates of region id.
	Region(id int) Region
}

// GlyphVertex is one corner of a glyph quad, relative to the pen position
// at scale 1.
type GlyphVertex struct {
	Texcoord Vec2
	Position Vec2
}

// Glyph is the layout record for a single code point.
type Glyph struct {
	Advance float32 // horizontal distance from this pen position to the next
	Left    float32 // left bearing applied before the quad is placed
	Quad    [4]GlyphVertex
}

// FontAtlas maps code points to glyphs.
type FontAtlas interface {
	Texture() TextureID
	// Height is the distance between consecutive baselines at scale 1.
	Height() float32
	// Glyph returns nil when the font has no glyph for r.
	Glyph(r rune) *Glyph
}

// Buffer is a GPU vertex buffer. The scene writes buffers but never reads
// them back.
type Buffer interface {
	Upload(vertices []Vertex)
	UploadNormals(normals []Vec2)
}

// Device creates GPU resources.
type Device interface {
	NewBuffer() Buffer
}

// Rasterizer issues draw calls. It is only called after every renderable
// in the frame has been updated.
type Rasterizer interface {
	// UseProgram switches the active program and returns the previous one.
	// Program 0 is the rasterizer's default.
	UseProgram(program int) int
	// BindTexture binds tex to the given texture unit. Unit 0 holds the
	// diffuse texture and unit 1 the normal map.
	BindTexture(unit int, tex TextureID)
	// DrawQuads draws the first quads quads of buf.
	DrawQuads(buf Buffer, quads int)
}

// Drawable is a user-provided renderable attached to a Node.
type Drawable interface {
	Update(dt float64)
	Draw(r Rasterizer)
}

// Mover is implemented by renderables that can be translated as a whole.
// Drawables that implement it follow Node.Move.
type Mover interface {
	Move(delta Vec2)
}
