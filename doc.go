// Package canopy is a retained-mode 2D scene graph for [Ebitengine] that
// turns sprites and text into batched quad geometry.
//
// Every frame has two phases. [Scene.Update] walks the tree and lets each
// renderable rebuild only the vertex data that changed since the last frame,
// uploading it once. [Scene.Draw] then walks the tree again and issues one
// draw call per batch or label. Draw never touches vertex data.
//
// # Quick start
//
//	cfg, _ := canopy.LoadConfig("canopy.toml")
//	r := canopy.NewEbitenRenderer(nil)
//	tex := r.RegisterTexture(sheet)
//
//	atlas := canopy.NewAtlas(tex, 256, 256)
//	hero := atlas.Define(0, 0, 32, 32)
//
//	batch := canopy.NewSpriteBatch(r, 64)
//	batch.SetTexture(atlas)
//	s := batch.CreateSprite(32, 32)
//	s.Sprite().SetTexture(hero)
//	s.Sprite().SetPosition(canopy.Vec2{X: 100, Y: 100})
//
//	scene := canopy.NewScene()
//	scene.AddBatch(nil, batch)
//	canopy.Run(scene, r, cfg, nil)
//
// # Sprites
//
// A [SpriteBatch] owns its sprites and their vertices. Sprites are reached
// through a [SpriteRef]; removing a sprite shifts later sprites down and
// invalidates outstanding handles. Sprite mutators only set dirty bits, so
// changing many properties in one frame costs one rebuild.
//
// # Text
//
// A [Label] lays out UTF-8 text from a [FontAtlas] such as [BitmapFont],
// with left, center or right alignment per line. Color changes skip layout.
//
// # Scene graph
//
// Nodes are created through the [Scene] and carry at most one renderable: a
// batch, a label, an [Animation] or a user [Drawable]. Disabling a node skips
// its whole subtree. A node with an attached program switches the
// [Rasterizer] to it for its subtree and restores the previous one after.
// Node transforms are not composed; [Scene.Move] moves every renderable in
// a subtree instead.
//
// # Debug mode
//
// [Scene.SetDebugMode] turns contract violations into panics (removed
// nodes, invalid pivots or scales, stale sprite handles) and logs per-frame
// stats through [charmbracelet/log].
//
// [Ebitengine]: https://ebitengine.org
// [charmbracelet/log]: https://github.com/charmbracelet/log
package canopy
