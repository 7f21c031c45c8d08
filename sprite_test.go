package canopy

import (
	"math"
	"testing"
)

func updatedSprite(t *testing.T, w, h float32) (*Sprite, []Vertex) {
	t.Helper()
	s := newSprite(w, h)
	v := make([]Vertex, 4)
	if !s.update(v, fakeAtlas{}) {
		t.Fatal("first update wrote nothing")
	}
	return &s, v
}

func TestNewSpriteDefaults(t *testing.T) {
	s := newSprite(10, 20)
	if s.Pivot() != (Vec2{0.5, 0.5}) {
		t.Errorf("Pivot = %v, want (0.5, 0.5)", s.Pivot())
	}
	if s.Scale() != (Vec2{1, 1}) {
		t.Errorf("Scale = %v, want (1, 1)", s.Scale())
	}
	if s.Color() != ColorWhite {
		t.Errorf("Color = %v, want white", s.Color())
	}
	if !s.IsStale() {
		t.Error("new sprite should be stale")
	}
	if s.IsHidden() || s.IsFlipped() || s.IsMirrored() {
		t.Error("new sprite should not be hidden, flipped or mirrored")
	}
}

func TestSpriteUpdateCorners(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	want := [4]Vec2{{-5, -5}, {5, -5}, {5, 5}, {-5, 5}}
	for i := range want {
		assertVec(t, "corner", v[i].Position, want[i])
	}
	if s.IsStale() {
		t.Error("sprite still stale after update")
	}
	if s.update(v, fakeAtlas{}) {
		t.Error("second update should write nothing")
	}
}

func TestSpriteMoveTranslatesCorners(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	before := append([]Vertex(nil), v...)

	s.Move(Vec2{5, 0})
	if !s.update(v, fakeAtlas{}) {
		t.Fatal("update after Move wrote nothing")
	}
	for i := range v {
		assertVec(t, "moved corner", v[i].Position, before[i].Position.Add(Vec2{5, 0}))
	}
}

func TestSpriteRotation(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	s.SetRotation(math.Pi / 2)
	s.update(v, fakeAtlas{})

	// A quarter turn counter-clockwise moves bottom-left to bottom-right.
	want := [4]Vec2{{5, -5}, {5, 5}, {-5, 5}, {-5, -5}}
	for i := range want {
		assertVec(t, "rotated corner", v[i].Position, want[i])
	}
}

func TestSpriteScaleAndPositionTogether(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	s.SetScale(Vec2{2, 1})
	s.SetPosition(Vec2{100, 50})
	s.update(v, fakeAtlas{})

	want := [4]Vec2{{90, 45}, {110, 45}, {110, 55}, {90, 55}}
	for i := range want {
		assertVec(t, "corner", v[i].Position, want[i])
	}
}

func TestSpriteFlipTable(t *testing.T) {
	tests := []struct {
		name   string
		flip   bool
		mirror bool
		row    [4]int
	}{
		{"normal", false, false, [4]int{0, 1, 2, 3}},
		{"flipped", true, false, [4]int{3, 2, 1, 0}},
		{"mirrored", false, true, [4]int{1, 0, 3, 2}},
		{"both", true, true, [4]int{2, 3, 0, 1}},
	}
	atlas := fakeAtlas{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, v := updatedSprite(t, 10, 10)
			s.SetTexture(3)
			if tt.flip {
				s.Flip()
			}
			if tt.mirror {
				s.Mirror()
			}
			s.update(v, atlas)

			region := atlas.Region(3)
			for i := range region {
				if got := v[tt.row[i]].Texcoord; got != region[i] {
					t.Errorf("vertex %d texcoord = %v, want region corner %d %v",
						tt.row[i], got, i, region[i])
				}
			}
		})
	}
}

func TestSpriteFlipTwiceRestores(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	before := append([]Vertex(nil), v...)
	s.Flip()
	s.Flip()
	s.update(v, fakeAtlas{})
	if s.IsFlipped() {
		t.Error("IsFlipped = true after two flips")
	}
	for i := range v {
		if v[i].Texcoord != before[i].Texcoord {
			t.Errorf("vertex %d texcoord = %v, want %v", i, v[i].Texcoord, before[i].Texcoord)
		}
	}
}

func TestSpriteHideShow(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	before := append([]Vertex(nil), v...)

	s.Hide()
	if !s.update(v, fakeAtlas{}) {
		t.Fatal("update after Hide wrote nothing")
	}
	for i := range v {
		if v[i].Position != (Vec2{}) {
			t.Errorf("hidden corner %d = %v, want origin", i, v[i].Position)
		}
	}
	s.Hide()
	if s.update(v, fakeAtlas{}) {
		t.Error("Hide on a hidden sprite should not mark it stale")
	}

	s.Show()
	s.update(v, fakeAtlas{})
	for i := range v {
		assertVec(t, "shown corner", v[i].Position, before[i].Position)
	}
}

func TestSpriteSetPivotKeepsQuad(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	before := append([]Vertex(nil), v...)

	s.SetPivot(Vec2{0, 0})
	if s.IsStale() {
		t.Error("SetPivot should not mark the sprite stale")
	}
	assertVec(t, "Position", s.Position(), Vec2{-5, -5})

	// Moving after a pivot change must keep the corners rigid.
	s.Move(Vec2{1, 0})
	s.update(v, fakeAtlas{})
	for i := range v {
		assertVec(t, "corner", v[i].Position, before[i].Position.Add(Vec2{1, 0}))
	}

	// A full rebuild around the new pivot lands in the same place.
	s.SetRotation(0.5)
	s.SetRotation(0)
	s.update(v, fakeAtlas{})
	for i := range v {
		assertVec(t, "rebuilt corner", v[i].Position, before[i].Position.Add(Vec2{1, 0}))
	}
}

func TestSpriteSetPivotShift(t *testing.T) {
	tests := []struct {
		name     string
		angle    float32
		scale    Vec2
		from, to Vec2
		want     Vec2
	}{
		{"same pivot", 0, Vec2{2, 1}, Vec2{0.5, 0.5}, Vec2{0.5, 0.5}, Vec2{0, 0}},
		{"corner to corner", 0, Vec2{2, 1}, Vec2{0, 0}, Vec2{1, 1}, Vec2{20, 20}},
		{"rotated", 1, Vec2{2, 1}, Vec2{0, 0}, Vec2{1, 1}, Vec2{20, 20}},
		{"half scale", 0, Vec2{0.5, 0.5}, Vec2{1, 0}, Vec2{0, 1}, Vec2{-5, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, v := updatedSprite(t, 10, 20)
			s.SetScale(tt.scale)
			s.SetRotation(tt.angle)
			s.SetPivot(tt.from)
			s.update(v, fakeAtlas{})

			pos, center := s.Position(), s.center
			s.SetPivot(tt.to)
			assertVec(t, "position shift", s.Position().Sub(pos), tt.want)
			assertVec(t, "center shift", s.center.Sub(center), tt.want)

			// Setting the same pivot again changes nothing.
			pos, center = s.Position(), s.center
			s.SetPivot(tt.to)
			if s.Position() != pos || s.center != center {
				t.Errorf("repeated SetPivot moved position %v -> %v, center %v -> %v",
					pos, s.Position(), center, s.center)
			}
		})
	}
}

func TestSpriteColor(t *testing.T) {
	s, v := updatedSprite(t, 10, 10)
	red := Color{0xff, 0, 0, 0xff}
	s.SetColor(red)
	s.update(v, fakeAtlas{})
	for i := range v {
		if v[i].Color != red {
			t.Errorf("vertex %d color = %v, want %v", i, v[i].Color, red)
		}
	}
}

func TestSpriteDebugChecks(t *testing.T) {
	withDebug(t)
	s := newSprite(10, 10)
	expectPanic(t, "SetPivot out of range", func() { s.SetPivot(Vec2{1.5, 0}) })
	expectPanic(t, "SetScale zero", func() { s.SetScale(Vec2{0, 1}) })
	expectPanic(t, "SetScale negative", func() { s.SetScale(Vec2{1, -1}) })
}

func TestSpriteChecksOffWithoutDebug(t *testing.T) {
	s := newSprite(10, 10)
	s.SetScale(Vec2{0, 1})
	if s.Scale() != (Vec2{0, 1}) {
		t.Errorf("Scale = %v, want (0, 1)", s.Scale())
	}
}
