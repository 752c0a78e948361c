package system

import (
	"time"

	coresys "github.com/noname-game/horde/internal/core/system"
	"github.com/noname-game/horde/internal/vmath"
)

// Input is one sample of the movement keys and the inspector toggle.
type Input struct {
	Up, Down, Left, Right bool
	// ToggleInspector is true on the tick the debug key went down.
	ToggleInspector bool
}

// InputSource is the keyboard (or a scripted stand-in).
type InputSource interface {
	Poll() Input
}

// InputState is the per-tick input resource read by movement and the HUD.
type InputState struct {
	// Axis is the raw composed direction: each component is -1, 0 or 1.
	Axis      vmath.Vec2
	Inspector bool
}

// InputSystem samples the input source. Phase 0 (Input).
type InputSystem struct {
	src   InputSource
	state *InputState
}

func NewInputSystem(src InputSource, state *InputState) *InputSystem {
	return &InputSystem{src: src, state: state}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	if s.src == nil {
		s.state.Axis = vmath.Vec2{}
		return
	}
	in := s.src.Poll()
	s.state.Axis = ComposeAxis(in)
	if in.ToggleInspector {
		s.state.Inspector = !s.state.Inspector
	}
}

// ComposeAxis folds the four movement keys into a raw vector. Opposite keys
// cancel on their axis.
func ComposeAxis(in Input) vmath.Vec2 {
	var v vmath.Vec2
	if in.Up {
		v.Y++
	}
	if in.Down {
		v.Y--
	}
	if in.Right {
		v.X++
	}
	if in.Left {
		v.X--
	}
	return v
}
