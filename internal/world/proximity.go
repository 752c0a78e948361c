package world

import (
	"math"
	"slices"

	"github.com/noname-game/horde/internal/core/ecs"
	"github.com/noname-game/horde/internal/vmath"
)

// ProximityGrid is a uniform cell grid over entity positions. It is rebuilt
// from scratch by the proximity system; between rebuilds it answers from the
// positions it was last given.
// Accessed only from the game loop goroutine; no locks.
type ProximityGrid struct {
	cellSize float64
	cells    map[cellKey][]ecs.EntityID
	pos      map[ecs.EntityID]vmath.Vec2
	builds   uint64
}

type cellKey struct {
	cx, cy int64
}

func NewProximityGrid(cellSize float64) *ProximityGrid {
	if cellSize <= 0 {
		cellSize = 64
	}
	return &ProximityGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]ecs.EntityID),
		pos:      make(map[ecs.EntityID]vmath.Vec2),
	}
}

// toCellCoord floors, so -0.5 lands in cell -1 rather than cell 0.
func (g *ProximityGrid) toCellCoord(v float64) int64 {
	return int64(math.Floor(v / g.cellSize))
}

func (g *ProximityGrid) key(p vmath.Vec2) cellKey {
	return cellKey{cx: g.toCellCoord(p.X), cy: g.toCellCoord(p.Y)}
}

// Reset empties the grid ahead of a rebuild.
func (g *ProximityGrid) Reset() {
	clear(g.cells)
	clear(g.pos)
	g.builds++
}

// Insert places an entity into the grid.
func (g *ProximityGrid) Insert(id ecs.EntityID, p vmath.Vec2) {
	if old, ok := g.pos[id]; ok {
		g.remove(id, old)
	}
	k := g.key(p)
	g.cells[k] = append(g.cells[k], id)
	g.pos[id] = p
}

func (g *ProximityGrid) remove(id ecs.EntityID, p vmath.Vec2) {
	k := g.key(p)
	cell := g.cells[k]
	for i, other := range cell {
		if other == id {
			cell = append(cell[:i], cell[i+1:]...)
			break
		}
	}
	if len(cell) == 0 {
		delete(g.cells, k)
	} else {
		g.cells[k] = cell
	}
	delete(g.pos, id)
}

// Within returns every indexed entity whose position is at most r from p,
// in ascending id order.
func (g *ProximityGrid) Within(p vmath.Vec2, r float64) []ecs.EntityID {
	if r < 0 {
		return nil
	}
	minX, maxX := g.toCellCoord(p.X-r), g.toCellCoord(p.X+r)
	minY, maxY := g.toCellCoord(p.Y-r), g.toCellCoord(p.Y+r)
	var result []ecs.EntityID
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for _, id := range g.cells[cellKey{cx: cx, cy: cy}] {
				if g.pos[id].Distance(p) <= r {
					result = append(result, id)
				}
			}
		}
	}
	slices.Sort(result)
	return result
}

// Position returns where id was indexed.
func (g *ProximityGrid) Position(id ecs.EntityID) (vmath.Vec2, bool) {
	p, ok := g.pos[id]
	return p, ok
}

// Len returns the number of indexed entities.
func (g *ProximityGrid) Len() int { return len(g.pos) }

// Builds returns how many times the grid has been rebuilt.
func (g *ProximityGrid) Builds() uint64 { return g.builds }
