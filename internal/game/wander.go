package game

import (
	"github.com/noname-game/horde/internal/core/rng"
	"github.com/noname-game/horde/internal/system"
)

// WanderInput stands in for the keyboard in headless runs: it holds a random
// key combination for a fixed number of polls, then picks another.
type WanderInput struct {
	src   rng.Source
	every int
	polls int
	cur   system.Input
}

func NewWanderInput(src rng.Source, every int) *WanderInput {
	if every < 1 {
		every = 1
	}
	return &WanderInput{src: src, every: every}
}

func (in *WanderInput) Poll() system.Input {
	if in.polls%in.every == 0 {
		// Each axis independently: negative, none or positive.
		x, y := in.src.IntN(3)-1, in.src.IntN(3)-1
		in.cur = system.Input{Right: x > 0, Left: x < 0, Up: y > 0, Down: y < 0}
	}
	in.polls++
	return in.cur
}
