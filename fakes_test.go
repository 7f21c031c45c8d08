package canopy

import (
	"fmt"
	"testing"
)

// --- Recording fakes ---

type fakeBuffer struct {
	uploads       int
	normalUploads int
	vertices      []Vertex
	normals       []Vec2
}

func (b *fakeBuffer) Upload(vertices []Vertex) {
	b.uploads++
	b.vertices = append(b.vertices[:0], vertices...)
}

func (b *fakeBuffer) UploadNormals(normals []Vec2) {
	b.normalUploads++
	b.normals = append(b.normals[:0], normals...)
}

type fakeDevice struct {
	buffers []*fakeBuffer
}

func (d *fakeDevice) NewBuffer() Buffer {
	b := &fakeBuffer{}
	d.buffers = append(d.buffers, b)
	return b
}

// fakeRasterizer logs every call as a short string.
type fakeRasterizer struct {
	program int
	calls   []string
}

func (r *fakeRasterizer) UseProgram(program int) int {
	prev := r.program
	r.program = program
	r.calls = append(r.calls, fmt.Sprintf("program %d", program))
	return prev
}

func (r *fakeRasterizer) BindTexture(unit int, tex TextureID) {
	r.calls = append(r.calls, fmt.Sprintf("bind %d %d", unit, tex))
}

func (r *fakeRasterizer) DrawQuads(_ Buffer, quads int) {
	r.calls = append(r.calls, fmt.Sprintf("draw %d", quads))
}

// recordingDrawable appends "update name" and "draw name" to a shared log.
type recordingDrawable struct {
	name  string
	log   *[]string
	moved Vec2
}

func (d *recordingDrawable) Update(float64) { *d.log = append(*d.log, "update "+d.name) }
func (d *recordingDrawable) Draw(Rasterizer) { *d.log = append(*d.log, "draw "+d.name) }
func (d *recordingDrawable) Move(delta Vec2) { d.moved = d.moved.Add(delta) }

// fakeAtlas returns a distinct region per id: corner i of region id is
// (id + i, id).
type fakeAtlas struct {
	tex TextureID
}

func (a fakeAtlas) Texture() TextureID { return a.tex }

func (a fakeAtlas) Region(id int) Region {
	f := float32(id)
	return Region{{f, f}, {f + 1, f}, {f + 2, f}, {f + 3, f}}
}

// --- Helpers ---

// withDebug turns debug checks on for the duration of the test.
func withDebug(t *testing.T) {
	t.Helper()
	prev := globalDebug
	globalDebug = true
	t.Cleanup(func() { globalDebug = prev })
}

// expectPanic fails the test unless fn panics.
func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic, got none", name)
		}
	}()
	fn()
}

const floatTolerance = 1e-4

func approxEqual(a, b float32) bool {
	d := a - b
	return d < floatTolerance && d > -floatTolerance
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if !approxEqual(got.X, want.X) || !approxEqual(got.Y, want.Y) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// testFont is a 64x64 glyph texture with 8x10 glyphs for 'A'-'E' and ' ',
// each advancing 8 pixels, on a 10 pixel line.
func testFont() *BitmapFont {
	f := NewBitmapFont(7, 10, 8, 64, 64)
	for i, r := range "ABCDE " {
		f.AddGlyph(r, i*8, 0, 8, 10, 0, 0, 8)
	}
	return f
}
