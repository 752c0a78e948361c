package component

import (
	"math"

	"github.com/noname-game/horde/internal/vmath"
)

// MovementDirection is the 8-way facing of an entity, or Idle.
type MovementDirection int

const (
	Idle MovementDirection = iota
	Up
	UpLeft
	Left
	DownLeft
	Down
	DownRight
	Right
	UpRight
)

var directionNames = [...]string{
	Idle:      "idle",
	Up:        "up",
	UpLeft:    "up_left",
	Left:      "left",
	DownLeft:  "down_left",
	Down:      "down",
	DownRight: "down_right",
	Right:     "right",
	UpRight:   "up_right",
}

func (d MovementDirection) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "unknown"
	}
	return directionNames[d]
}

// Classify maps a raw composed input vector to a direction by exact
// sign-pair match. Only the eight unit-axis combinations qualify; anything
// else, including partial magnitudes such as (0.5, 0.5), is Idle.
func Classify(v vmath.Vec2) MovementDirection {
	switch v {
	case vmath.V(0, 1):
		return Up
	case vmath.V(-1, 1):
		return UpLeft
	case vmath.V(-1, 0):
		return Left
	case vmath.V(-1, -1):
		return DownLeft
	case vmath.V(0, -1):
		return Down
	case vmath.V(1, -1):
		return DownRight
	case vmath.V(1, 0):
		return Right
	case vmath.V(1, 1):
		return UpRight
	}
	return Idle
}

// sectors runs counter-clockwise from +X in 45° steps.
var sectors = [8]MovementDirection{Right, UpRight, Up, UpLeft, Left, DownLeft, Down, DownRight}

// FromHeading classifies a continuous heading into the nearest of the eight
// 45° sectors. The zero vector is Idle.
func FromHeading(v vmath.Vec2) MovementDirection {
	if v.IsZero() {
		return Idle
	}
	sector := int(math.Round(math.Atan2(v.Y, v.X) / (math.Pi / 4)))
	return sectors[(sector%8+8)%8]
}

// FacesLeft reports whether a sprite drawn facing right must be mirrored.
func (d MovementDirection) FacesLeft() bool {
	return d == Left || d == UpLeft || d == DownLeft
}

// FacesRight is the counterpart of FacesLeft; Up, Down and Idle are neither.
func (d MovementDirection) FacesRight() bool {
	return d == Right || d == UpRight || d == DownRight
}
