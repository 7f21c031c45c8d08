package canopy

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ErrNoRegions is returned by LoadAtlas when the JSON defines no frames.
var ErrNoRegions = errors.New("canopy: atlas defines no regions")

// Atlas is a texture plus a table of sub-rectangle regions, each
// addressable by an integer id and optionally by name.
type Atlas struct {
	texture TextureID
	width   int
	height  int
	regions []Region
	names   map[string]int
}

// NewAtlas creates an empty atlas for a texture of the given pixel size.
func NewAtlas(tex TextureID, width, height int) *Atlas {
	if width <= 0 || height <= 0 {
		panic("canopy: atlas dimensions must be positive")
	}
	return &Atlas{
		texture: tex,
		width:   width,
		height:  height,
		names:   make(map[string]int),
	}
}

// Texture returns the atlas texture.
func (a *Atlas) Texture() TextureID { return a.texture }

// Size returns the atlas texture size in pixels.
func (a *Atlas) Size() (width, height int) { return a.width, a.height }

// Len returns the number of defined regions.
func (a *Atlas) Len() int { return len(a.regions) }

// Define adds the pixel rectangle (x, y, w, h) as a region and returns its
// id. The rectangle is in image space with y pointing down and must lie
// within the texture.
func (a *Atlas) Define(x, y, w, h int) int {
	debugAssert(x >= 0 && x+w <= a.width && y >= 0 && y+h <= a.height,
		"invalid atlas region dimensions")

	x0 := float32(x) / float32(a.width)
	x1 := float32(x+w) / float32(a.width)
	y0 := float32(y) / float32(a.height)
	y1 := float32(y+h) / float32(a.height)

	// Image rows run downward; quad corners start at the bottom.
	a.regions = append(a.regions, Region{
		{x0, y1},
		{x1, y1},
		{x1, y0},
		{x0, y0},
	})
	return len(a.regions) - 1
}

// defineRotated adds the pixel rectangle (x, y, w, h) as a region holding
// an image stored 90 degrees clockwise, so the image is h wide and w tall.
func (a *Atlas) defineRotated(x, y, w, h int) int {
	u0 := float32(x) / float32(a.width)
	u1 := float32(x+w) / float32(a.width)
	v0 := float32(y) / float32(a.height)
	v1 := float32(y+h) / float32(a.height)

	a.regions = append(a.regions, Region{
		{u0, v0},
		{u0, v1},
		{u1, v1},
		{u1, v0},
	})
	return len(a.regions) - 1
}

// DefineNamed adds a region like Define and makes it reachable by name.
func (a *Atlas) DefineNamed(name string, x, y, w, h int) int {
	id := a.Define(x, y, w, h)
	a.names[name] = id
	return id
}

// Region returns the texture coordinates of region id. An unknown id yields
// the whole texture and, in debug mode, a warning.
func (a *Atlas) Region(id int) Region {
	if id >= 0 && id < len(a.regions) {
		return a.regions[id]
	}
	if globalDebug {
		logger.Warn("atlas region not found, using whole texture", "id", id, "regions", len(a.regions))
	}
	return Region{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
}

// Lookup returns the id of the named region.
func (a *Atlas) Lookup(name string) (int, bool) {
	id, ok := a.names[name]
	return id, ok
}

// LoadAtlas parses TexturePacker JSON data into an atlas over tex, which
// must be width x height pixels. Supports both the hash format (single
// "frames" object) and the array format ("textures" array); only the first
// page of the array format is used. Region ids follow the sorted frame
// names so that loading is deterministic.
func LoadAtlas(tex TextureID, width, height int, jsonData []byte) (*Atlas, error) {
	// Probe top-level keys to detect format.
	var probe struct {
		Frames   json.RawMessage `json:"frames"`
		Textures json.RawMessage `json:"textures"`
	}
	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("canopy: failed to parse atlas JSON: %w", err)
	}

	var frames map[string]jsonFrame
	switch {
	case probe.Textures != nil:
		var textures []jsonTexturePage
		if err := json.Unmarshal(probe.Textures, &textures); err != nil {
			return nil, fmt.Errorf("canopy: failed to parse atlas textures array: %w", err)
		}
		if len(textures) > 0 {
			frames = textures[0].Frames
		}
	case probe.Frames != nil:
		if err := json.Unmarshal(probe.Frames, &frames); err != nil {
			return nil, fmt.Errorf("canopy: failed to parse atlas frames: %w", err)
		}
	default:
		return nil, fmt.Errorf("canopy: atlas JSON has neither \"frames\" nor \"textures\" key")
	}
	if len(frames) == 0 {
		return nil, ErrNoRegions
	}

	names := make([]string, 0, len(frames))
	for name := range frames {
		names = append(names, name)
	}
	sort.Strings(names)

	atlas := NewAtlas(tex, width, height)
	for _, name := range names {
		frame := frames[name]
		f := frame.Frame
		// Rotated frames occupy h x w pixels in the texture.
		w, h := f.W, f.H
		if frame.Rotated {
			w, h = h, w
		}
		if f.X < 0 || f.Y < 0 || f.X+w > width || f.Y+h > height {
			return nil, fmt.Errorf("canopy: atlas frame %q (%d,%d %dx%d) outside %dx%d texture",
				name, f.X, f.Y, w, h, width, height)
		}
		if frame.Rotated {
			atlas.names[name] = atlas.defineRotated(f.X, f.Y, w, h)
		} else {
			atlas.DefineNamed(name, f.X, f.Y, w, h)
		}
	}
	return atlas, nil
}

// --- JSON structure types ---

type jsonRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type jsonFrame struct {
	Frame   jsonRect `json:"frame"`
	Rotated bool     `json:"rotated"`
}

type jsonTexturePage struct {
	Image  string               `json:"image"`
	Frames map[string]jsonFrame `json:"frames"`
}
