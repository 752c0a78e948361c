package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: sample input
	PhasePreUpdate               // 1: movement, steering, spawning
	PhaseUpdate                  // 2: transforms, proximity, collision, combat
	PhasePostUpdate              // 3: animation, death handshake, drops, pickup
	PhaseOutput                  // 4: reporting
	PhaseCleanup                 // 5: apply deferred commands, end the tick
)

var phaseNames = [...]string{"input", "pre_update", "update", "post_update", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// Conditional systems are skipped for a tick when ShouldRun returns false.
type Conditional interface {
	ShouldRun() bool
}
