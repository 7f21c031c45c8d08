package canopy

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// fpsRefresh is how often, in seconds, an FPSCounter rewrites its text.
const fpsRefresh = 0.5

// FPSCounter is a Drawable label showing the measured frame and tick
// rates. Attach it with Scene.AddDrawable.
type FPSCounter struct {
	label   *Label
	elapsed float64

	// rates reports the current frame and tick rates.
	rates func() (fps, tps float64)
}

// NewFPSCounter creates a counter drawn with font at position.
func NewFPSCounter(dev Device, font FontAtlas, position Vec2) *FPSCounter {
	c := &FPSCounter{
		label: NewLabel(dev, font),
		rates: func() (float64, float64) { return ebiten.ActualFPS(), ebiten.ActualTPS() },
	}
	c.label.SetPosition(position)
	c.label.SetText("FPS: -\nTPS: -")
	return c
}

// Label returns the label the counter writes to.
func (c *FPSCounter) Label() *Label { return c.label }

// Update implements Drawable.
func (c *FPSCounter) Update(dt float64) {
	c.elapsed += dt
	if c.elapsed >= fpsRefresh {
		c.elapsed = 0
		fps, tps := c.rates()
		c.label.SetText(fmt.Sprintf("FPS: %.1f\nTPS: %.1f", fps, tps))
	}
	c.label.Update()
}

// Draw implements Drawable.
func (c *FPSCounter) Draw(r Rasterizer) { c.label.Draw(r) }

// Move implements Mover.
func (c *FPSCounter) Move(delta Vec2) { c.label.Move(delta) }
