package canopy

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Animation plays a sequence of atlas regions on a sprite. Attach it to a
// scene with Scene.AddAnimation; the scene advances it during Update, ahead
// of the sprite's batch if the animation node comes first.
//
// Frame timing is a tween over the frame index, linear by default, so an
// easing function can make a sequence speed up or slow down.
type Animation struct {
	sprite  SpriteRef
	frames  []int
	fps     float32
	easing  ease.TweenFunc
	tween   *gween.Tween
	left    float64 // seconds until the current tween ends
	frame   int
	loop    bool
	playing bool

	// OnComplete, if set, is called when a non-looping animation reaches its
	// last frame, or each time a looping one wraps.
	OnComplete func()
}

// NewAnimation creates a stopped, looping animation over frames at fps
// frames per second.
func NewAnimation(sprite SpriteRef, frames []int, fps float32) *Animation {
	if fps <= 0 {
		panic("canopy: animation frame rate must be positive")
	}
	return &Animation{
		sprite: sprite,
		frames: frames,
		fps:    fps,
		easing: ease.Linear,
		loop:   true,
	}
}

// Frame returns the index of the current frame.
func (a *Animation) Frame() int { return a.frame }

// IsPlaying reports whether the animation is running.
func (a *Animation) IsPlaying() bool { return a.playing }

// SetLoop sets whether the animation restarts after the last frame.
func (a *Animation) SetLoop(loop bool) { a.loop = loop }

// SetEasing sets the easing applied to frame timing.
func (a *Animation) SetEasing(fn ease.TweenFunc) {
	a.easing = fn
	if a.playing {
		a.restart(a.frame)
	}
}

// SetFrameRate sets the playback rate in frames per second.
func (a *Animation) SetFrameRate(fps float32) {
	if fps <= 0 {
		panic("canopy: animation frame rate must be positive")
	}
	a.fps = fps
	if a.playing {
		a.restart(a.frame)
	}
}

// SetSprite retargets the animation, for example after the old handle was
// invalidated by a batch removal.
func (a *Animation) SetSprite(sprite SpriteRef) { a.sprite = sprite }

// Start plays the animation from the first frame.
func (a *Animation) Start() {
	if len(a.frames) == 0 {
		return
	}
	a.playing = true
	a.restart(0)
}

// Stop halts the animation on its current frame.
func (a *Animation) Stop() {
	a.playing = false
}

// Update advances the animation by dt seconds.
func (a *Animation) Update(dt float64) {
	if !a.playing {
		return
	}
	if !a.advance(dt) {
		return
	}

	if a.OnComplete != nil {
		a.OnComplete()
	}
	if !a.loop {
		a.playing = false
		return
	}

	// Time past the end carries into the next pass. Whole passes skipped
	// in one tick are dropped.
	overshoot := -a.left
	a.restart(0)
	if overshoot > 0 {
		a.advance(math.Mod(overshoot, a.left))
	}
}

// advance moves the tween by dt seconds and reports whether it finished.
func (a *Animation) advance(dt float64) bool {
	a.left -= dt
	value, finished := a.tween.Update(float32(dt))
	frame := max(0, min(int(value), len(a.frames)-1))
	if frame != a.frame {
		a.setFrame(frame)
	}
	return finished
}

// restart begins a tween from frame to the end of the sequence.
func (a *Animation) restart(frame int) {
	n := len(a.frames)
	a.left = float64(n-frame) / float64(a.fps)
	a.tween = gween.New(float32(frame), float32(n), float32(a.left), a.easing)
	a.setFrame(frame)
}

func (a *Animation) setFrame(frame int) {
	a.frame = frame
	if a.sprite.IsValid() {
		a.sprite.Sprite().SetTexture(a.frames[frame])
	}
}
