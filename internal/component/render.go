package component

import (
	"image/color"
	"time"
)

// Sprite is what the renderer draws for an entity.
type Sprite struct {
	Sheet string
	Tint  color.RGBA
	FlipX bool
	W, H  float64
}

// White is the neutral tint.
var White = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Animation is the active clip of an entity, advanced by the animation system.
type Animation struct {
	Clip          string
	Frames        []int
	FrameDuration time.Duration

	// Cursor is the index into Frames currently shown.
	Cursor     int
	Elapsed    time.Duration
	Repetition uint32
}

// Frame returns the sheet frame index currently shown.
func (a *Animation) Frame() int {
	if len(a.Frames) == 0 {
		return 0
	}
	return a.Frames[a.Cursor]
}
