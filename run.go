package canopy

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a window configured by cfg and drives scene until the window
// closes or update returns an error. Each tick calls update (if non-nil),
// then Scene.Update with the tick length; each frame calls Scene.Draw
// through r. Register textures and programs with r before calling Run.
//
// For full control, implement ebiten.Game yourself and call Scene.Update
// and Scene.Draw directly.
func Run(scene *Scene, r *EbitenRenderer, cfg Config, update func() error) error {
	cfg.Apply()
	scene.SetDebugMode(cfg.Debug)
	if cfg.FlipY {
		r.SetFlipY(float32(cfg.Height))
	}
	r.SetAntiAlias(cfg.MSAA > 0)
	r.SetScreenshotDir(cfg.ScreenshotDir)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetRunnableOnUnfocused(!cfg.SuspendOnFocusLost)

	logger.Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height,
		"debug", cfg.Debug, "msaa", cfg.MSAA)
	return ebiten.RunGame(&game{scene: scene, renderer: r, cfg: cfg, update: update})
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene    *Scene
	renderer *EbitenRenderer
	cfg      Config
	update   func() error
}

func (g *game) Update() error {
	if g.update != nil {
		if err := g.update(); err != nil {
			return err
		}
	}
	g.scene.Update(tickSeconds())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.renderer.SetTarget(screen)
	g.scene.Draw(g.renderer)
	g.renderer.flushScreenshots(screen)
	if g.cfg.Debug {
		st := g.renderer.Stats()
		logger.Debug("render", "draws", st.DrawCalls, "quads", st.Quads, "uploads", st.Uploads,
			"fps", ebiten.ActualFPS())
	}
	g.renderer.ResetStats()
}

func (g *game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// tickSeconds returns the length of one Update tick.
func tickSeconds() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}
