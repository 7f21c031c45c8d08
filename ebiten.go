package canopy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RenderStats counts renderer work since the last ResetStats.
type RenderStats struct {
	DrawCalls int
	Quads     int
	Uploads   int
}

// EbitenRenderer implements Device and Rasterizer on top of Ebitengine.
// Buffers keep a CPU copy of the uploaded vertices; each DrawQuads converts
// them to ebiten vertices and submits one DrawTriangles32 call, or one
// DrawTrianglesShader32 call when a program is active.
//
// Scene space has y pointing up. With SetFlipY the renderer mirrors
// positions so that scene y=0 is the bottom of the target.
type EbitenRenderer struct {
	target *ebiten.Image

	textures []*ebiten.Image  // TextureID n is textures[n-1]
	programs []*ebiten.Shader // program n is programs[n-1]
	bound    [2]*ebiten.Image
	program  int

	viewHeight float32
	antiAlias  bool

	verts []ebiten.Vertex
	inds  []uint32
	stats RenderStats

	shots   []string
	shotDir string
}

// NewEbitenRenderer creates a renderer drawing onto target. target may be
// nil until the first SetTarget, which Run does every frame.
func NewEbitenRenderer(target *ebiten.Image) *EbitenRenderer {
	return &EbitenRenderer{target: target}
}

// SetTarget sets the image draw calls render onto.
func (r *EbitenRenderer) SetTarget(target *ebiten.Image) { r.target = target }

// SetFlipY makes the renderer treat scene y as growing upward from the
// bottom of a view height pixels tall. Zero disables flipping.
func (r *EbitenRenderer) SetFlipY(height float32) { r.viewHeight = height }

// SetAntiAlias enables anti-aliased triangle edges.
func (r *EbitenRenderer) SetAntiAlias(enabled bool) { r.antiAlias = enabled }

// RegisterTexture makes img available to atlases and fonts and returns its
// id. Ids start at 1; TextureID 0 draws solid white.
func (r *EbitenRenderer) RegisterTexture(img *ebiten.Image) TextureID {
	if img == nil {
		panic("canopy: cannot register nil texture")
	}
	r.textures = append(r.textures, img)
	return TextureID(len(r.textures))
}

// Texture returns the image registered under id, or nil.
func (r *EbitenRenderer) Texture(id TextureID) *ebiten.Image {
	if id == 0 || int(id) > len(r.textures) {
		return nil
	}
	return r.textures[id-1]
}

// RegisterProgram compiles a Kage shader and returns its program id for
// Node.AttachProgram. The shader receives the diffuse texture as image 0,
// the normal map (if any) as image 1, and per-vertex normals in Custom0
// and Custom1.
func (r *EbitenRenderer) RegisterProgram(src []byte) (int, error) {
	s, err := ebiten.NewShader(src)
	if err != nil {
		return 0, fmt.Errorf("canopy: failed to compile program: %w", err)
	}
	r.programs = append(r.programs, s)
	return len(r.programs), nil
}

// Stats returns the counters accumulated since the last ResetStats.
func (r *EbitenRenderer) Stats() RenderStats { return r.stats }

// ResetStats zeroes the counters.
func (r *EbitenRenderer) ResetStats() { r.stats = RenderStats{} }

// NewBuffer implements Device.
func (r *EbitenRenderer) NewBuffer() Buffer {
	return &ebitenBuffer{stats: &r.stats}
}

// UseProgram implements Rasterizer.
func (r *EbitenRenderer) UseProgram(program int) int {
	prev := r.program
	if program < 0 || program > len(r.programs) {
		logger.Warn("unknown program, using default", "program", program)
		program = 0
	}
	r.program = program
	return prev
}

// BindTexture implements Rasterizer.
func (r *EbitenRenderer) BindTexture(unit int, tex TextureID) {
	if unit < 0 || unit >= len(r.bound) {
		panic(fmt.Sprintf("canopy: texture unit %d out of range", unit))
	}
	r.bound[unit] = r.Texture(tex)
}

// DrawQuads implements Rasterizer.
func (r *EbitenRenderer) DrawQuads(buf Buffer, quads int) {
	b, ok := buf.(*ebitenBuffer)
	if !ok {
		panic("canopy: buffer was not created by this renderer")
	}
	quads = min(quads, len(b.vertices)/4)
	if quads <= 0 || r.target == nil {
		return
	}

	src := r.bound[0]
	if src == nil {
		src = ensureWhiteImage()
	}
	r.fillTriangles(b, quads, src)

	if r.program == 0 {
		var op ebiten.DrawTrianglesOptions
		op.AntiAlias = r.antiAlias
		r.target.DrawTriangles32(r.verts, r.inds, src, &op)
	} else {
		var op ebiten.DrawTrianglesShaderOptions
		op.AntiAlias = r.antiAlias
		op.Images[0] = src
		if r.bound[1] != nil && r.bound[1].Bounds().Size() == src.Bounds().Size() {
			op.Images[1] = r.bound[1]
		}
		r.target.DrawTrianglesShader32(r.verts, r.inds, r.programs[r.program-1], &op)
	}
	r.stats.DrawCalls++
	r.stats.Quads += quads
}

// fillTriangles converts the first quads quads of b into r.verts and
// r.inds. Texture coordinates become texel positions in src.
func (r *EbitenRenderer) fillTriangles(b *ebitenBuffer, quads int, src *ebiten.Image) {
	size := src.Bounds().Size()
	w, h := float32(size.X), float32(size.Y)

	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for i := range quads * 4 {
		v := b.vertices[i]
		y := v.Position.Y
		if r.viewHeight > 0 {
			y = r.viewHeight - y
		}
		ev := ebiten.Vertex{
			DstX:   v.Position.X,
			DstY:   y,
			SrcX:   v.Texcoord.X * w,
			SrcY:   v.Texcoord.Y * h,
			ColorR: float32(v.Color.R) / 255,
			ColorG: float32(v.Color.G) / 255,
			ColorB: float32(v.Color.B) / 255,
			ColorA: float32(v.Color.A) / 255,
		}
		if i < len(b.normals) {
			ev.Custom0 = b.normals[i].X
			ev.Custom1 = b.normals[i].Y
		}
		r.verts = append(r.verts, ev)
	}

	// Corners run bottom-left, bottom-right, top-right, top-left.
	for q := range quads {
		base := uint32(q * 4)
		r.inds = append(r.inds,
			base+0, base+1, base+2,
			base+0, base+2, base+3,
		)
	}
}

// ebitenBuffer keeps the last uploaded vertex data on the CPU; Ebitengine
// takes vertices per draw call rather than as persistent buffers.
type ebitenBuffer struct {
	vertices []Vertex
	normals  []Vec2
	stats    *RenderStats
}

func (b *ebitenBuffer) Upload(vertices []Vertex) {
	b.vertices = append(b.vertices[:0], vertices...)
	b.stats.Uploads++
}

func (b *ebitenBuffer) UploadNormals(normals []Vec2) {
	b.normals = append(b.normals[:0], normals...)
	b.stats.Uploads++
}

// --- Lazy white image (no sync.Once, canopy is single-threaded) ---

var whiteImage *ebiten.Image

func ensureWhiteImage() *ebiten.Image {
	if whiteImage == nil {
		whiteImage = ebiten.NewImage(1, 1)
		whiteImage.Fill(ColorWhite.toNRGBA())
	}
	return whiteImage
}
