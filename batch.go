package canopy

import (
	"fmt"

	"github.com/google/uuid"
)

// SpriteBatch owns an ordered set of sprites that share one texture atlas
// and one vertex buffer, and draws them in a single call.
//
// Sprites are addressed by index. Removing a sprite shifts every later
// sprite down by one, so SpriteRefs taken before a removal must not be used
// afterwards.
type SpriteBatch struct {
	id       uuid.UUID
	sprites  []Sprite
	vertices []Vertex
	normals  []Vec2
	atlas    TextureAtlas
	normal   TextureAtlas
	buffer   Buffer
	visible  bool
	gen      uint32 // bumped whenever indices are invalidated
	resized  bool   // vertex count changed since the last upload
}

// NewSpriteBatch creates an empty batch with room for hint sprites before
// its storage has to grow.
func NewSpriteBatch(dev Device, hint int) *SpriteBatch {
	if hint < 0 {
		hint = 0
	}
	return &SpriteBatch{
		id:       uuid.New(),
		sprites:  make([]Sprite, 0, hint),
		vertices: make([]Vertex, 0, hint*4),
		buffer:   dev.NewBuffer(),
		visible:  true,
	}
}

// ID returns the batch's identity.
func (b *SpriteBatch) ID() uuid.UUID { return b.id }

// Len returns the number of sprites.
func (b *SpriteBatch) Len() int { return len(b.sprites) }

// Vertices returns the vertex data as of the last Update. The returned
// slice MUST NOT be mutated.
func (b *SpriteBatch) Vertices() []Vertex { return b.vertices }

// Buffer returns the batch's GPU buffer.
func (b *SpriteBatch) Buffer() Buffer { return b.buffer }

// Texture returns the batch's atlas.
func (b *SpriteBatch) Texture() TextureAtlas { return b.atlas }

// IsVisible reports whether the batch is drawn.
func (b *SpriteBatch) IsVisible() bool { return b.visible }

// SetVisible shows or hides the whole batch without touching its sprites.
func (b *SpriteBatch) SetVisible(v bool) { b.visible = v }

// SetTexture sets the atlas shared by all sprites and marks every sprite's
// texture coordinates stale.
func (b *SpriteBatch) SetTexture(atlas TextureAtlas) {
	b.atlas = atlas
	for i := range b.sprites {
		b.sprites[i].state |= staleTexture
	}
}

// SetNormal sets the normal map atlas. Passing nil disables normal mapping.
func (b *SpriteBatch) SetNormal(atlas TextureAtlas) {
	b.normal = atlas
	if atlas == nil {
		b.normals = nil
		return
	}
	b.normals = make([]Vec2, len(b.sprites)*4)
	for i := range b.sprites {
		b.sprites[i].state |= staleNormal
	}
}

// CreateSprite appends a sprite of the given size and returns its handle.
func (b *SpriteBatch) CreateSprite(width, height float32) SpriteRef {
	b.sprites = append(b.sprites, newSprite(width, height))
	b.vertices = append(b.vertices, make([]Vertex, 4)...)
	if b.normal != nil {
		b.normals = append(b.normals, make([]Vec2, 4)...)
	}
	b.resized = true
	return SpriteRef{batch: b, index: len(b.sprites) - 1, gen: b.gen}
}

// At returns a handle to the sprite at index i.
func (b *SpriteBatch) At(i int) SpriteRef {
	if i < 0 || i >= len(b.sprites) {
		panic(fmt.Sprintf("canopy: sprite index %d out of range [0, %d)", i, len(b.sprites)))
	}
	return SpriteRef{batch: b, index: i, gen: b.gen}
}

// Remove deletes the sprite behind ref. Every later sprite moves down one
// index and every outstanding handle into this batch is invalidated.
func (b *SpriteBatch) Remove(ref SpriteRef) {
	debugAssert(ref.batch == b, "sprite does not belong to this batch")
	ref.check()
	i := ref.index

	copy(b.sprites[i:], b.sprites[i+1:])
	b.sprites = b.sprites[:len(b.sprites)-1]
	for j := i; j < len(b.sprites); j++ {
		b.sprites[j].state |= staleMask
	}

	// Shifted sprites are rebuilt on the next update; just drop four slots.
	b.vertices = b.vertices[:len(b.vertices)-4]
	if b.normals != nil {
		b.normals = b.normals[:len(b.normals)-4]
	}
	b.gen++
	b.resized = true
}

// Clear removes every sprite.
func (b *SpriteBatch) Clear() {
	b.sprites = b.sprites[:0]
	b.vertices = b.vertices[:0]
	if b.normals != nil {
		b.normals = b.normals[:0]
	}
	b.gen++
	b.resized = true
}

// Move translates every sprite by delta.
func (b *SpriteBatch) Move(delta Vec2) {
	if delta.IsZero() {
		return
	}
	for i := range b.sprites {
		b.sprites[i].Move(delta)
	}
}

// Update rebuilds the vertices of stale sprites and, if any changed,
// uploads the whole vertex range in one call. It reports whether an upload
// happened.
func (b *SpriteBatch) Update() bool {
	changed := b.resized
	for i := range b.sprites {
		v := b.vertices[i*4 : i*4+4]
		if b.sprites[i].update(v, b.atlas) {
			changed = true
		}
	}
	if changed {
		b.buffer.Upload(b.vertices)
	}

	if b.normal != nil {
		normalsChanged := b.resized
		for i := range b.sprites {
			if b.sprites[i].updateNormals(b.normals[i*4:i*4+4], b.normal) {
				normalsChanged = true
			}
		}
		if normalsChanged {
			b.buffer.UploadNormals(b.normals)
		}
	}

	b.resized = false
	return changed
}

// Draw binds the batch's textures and draws all of its sprites. Both units
// are always bound; a missing atlas binds texture 0.
func (b *SpriteBatch) Draw(r Rasterizer) {
	if !b.visible || len(b.sprites) == 0 {
		return
	}
	var tex, normal TextureID
	if b.atlas != nil {
		tex = b.atlas.Texture()
	}
	if b.normal != nil {
		normal = b.normal.Texture()
	}
	r.BindTexture(0, tex)
	r.BindTexture(1, normal)
	r.DrawQuads(b.buffer, len(b.sprites))
}

// SpriteRef is a handle to a sprite inside a SpriteBatch. It stays valid
// until the batch removes a sprite or is cleared.
type SpriteRef struct {
	batch *SpriteBatch
	index int
	gen   uint32
}

// Batch returns the batch that owns the sprite.
func (r SpriteRef) Batch() *SpriteBatch { return r.batch }

// Index returns the sprite's index within its batch.
func (r SpriteRef) Index() int { return r.index }

// IsValid reports whether the handle still addresses the sprite it was
// created for.
func (r SpriteRef) IsValid() bool {
	return r.batch != nil && r.gen == r.batch.gen && r.index < len(r.batch.sprites)
}

// Sprite returns the sprite. The pointer must not be retained across batch
// mutations.
func (r SpriteRef) Sprite() *Sprite {
	r.check()
	return &r.batch.sprites[r.index]
}

func (r SpriteRef) check() {
	if globalDebug && !r.IsValid() {
		if r.batch == nil {
			panic("canopy debug: sprite handle has no batch")
		}
		panic(fmt.Sprintf("canopy debug: stale sprite handle %d into batch %s", r.index, r.batch.id))
	}
}
