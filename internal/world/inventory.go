package world

import (
	"github.com/noname-game/horde/internal/component"
)

// Inventory is the running resource tally of a play session.
// Accessed only from the game loop goroutine.
type Inventory struct {
	counts  [component.ResourceKindCount]uint32
	version uint64
}

func NewInventory() *Inventory {
	return &Inventory{}
}

// Add increments the tally of kind. Unknown kinds are ignored.
func (inv *Inventory) Add(kind component.ResourceKind, amount uint32) {
	if kind < 0 || kind >= component.ResourceKindCount || amount == 0 {
		return
	}
	inv.counts[kind] += amount
	inv.version++
}

func (inv *Inventory) Get(kind component.ResourceKind) uint32 {
	if kind < 0 || kind >= component.ResourceKindCount {
		return 0
	}
	return inv.counts[kind]
}

// Version changes every time the tally does.
func (inv *Inventory) Version() uint64 { return inv.version }

// Total returns the sum over every kind.
func (inv *Inventory) Total() uint64 {
	var n uint64
	for _, c := range inv.counts {
		n += uint64(c)
	}
	return n
}

// Reset zeroes every tally for a new session.
func (inv *Inventory) Reset() {
	inv.counts = [component.ResourceKindCount]uint32{}
	inv.version++
}

// Snapshot returns a copy of the tally indexed by kind.
func (inv *Inventory) Snapshot() [component.ResourceKindCount]uint32 {
	return inv.counts
}
