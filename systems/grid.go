// Package systems provides the grid index and the species rules for the simulation.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wator/components"
)

// cell is one grid slot. kind == KindNone means empty.
type cell struct {
	entity ecs.Entity
	kind   components.Kind
}

// Grid is the spatial index and the sole owner of organism lifetime.
// Organisms are ECS entities; the grid stores their handles in a flat
// row-major slice and keeps each entity's Position in sync with its slot.
type Grid struct {
	rows  int
	cols  int
	cells []cell

	world      *ecs.World
	preyMapper *ecs.Map2[components.Position, components.Organism]
	predMapper *ecs.Map3[components.Position, components.Organism, components.Hunger]
	posMap     *ecs.Map[components.Position]
	orgMap     *ecs.Map[components.Organism]
	hungerMap  *ecs.Map[components.Hunger]
	orgFilter  *ecs.Filter2[components.Position, components.Organism]

	nextID uint32
	counts [3]int // indexed by Kind
}

// NewGrid creates an empty rows x cols grid whose organisms live in w.
// Callers must validate dimensions; NewGrid assumes rows, cols > 0.
func NewGrid(w *ecs.World, rows, cols int) *Grid {
	return &Grid{
		rows:       rows,
		cols:       cols,
		cells:      make([]cell, rows*cols),
		world:      w,
		preyMapper: ecs.NewMap2[components.Position, components.Organism](w),
		predMapper: ecs.NewMap3[components.Position, components.Organism, components.Hunger](w),
		posMap:     ecs.NewMap[components.Position](w),
		orgMap:     ecs.NewMap[components.Organism](w),
		hungerMap:  ecs.NewMap[components.Hunger](w),
		orgFilter:  ecs.NewFilter2[components.Position, components.Organism](w),
	}
}

// Rows returns the number of grid rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of grid columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the number of cells.
func (g *Grid) Size() int { return len(g.cells) }

// InBounds reports whether (row, col) lies on the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

func (g *Grid) index(row, col int) int {
	return row*g.cols + col
}

// IsEmpty reports whether (row, col) is in bounds and unoccupied.
// Out-of-bounds cells are never empty, which blocks movement off the edge.
func (g *Grid) IsEmpty(row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}
	return g.cells[g.index(row, col)].kind == components.KindNone
}

// OccupantKind returns what occupies (row, col). Out of bounds reads as KindNone.
func (g *Grid) OccupantKind(row, col int) components.Kind {
	if !g.InBounds(row, col) {
		return components.KindNone
	}
	return g.cells[g.index(row, col)].kind
}

// At returns the entity at (row, col), if any.
func (g *Grid) At(row, col int) (ecs.Entity, bool) {
	if !g.InBounds(row, col) {
		return ecs.Entity{}, false
	}
	c := g.cells[g.index(row, col)]
	return c.entity, c.kind != components.KindNone
}

// Count returns the number of organisms of the given kind on the grid.
func (g *Grid) Count(kind components.Kind) int {
	return g.counts[kind]
}

// Total returns the number of organisms on the grid.
func (g *Grid) Total() int {
	return g.counts[components.KindPrey] + g.counts[components.KindPredator]
}

// Spawn creates a new organism of kind at (row, col) with zeroed counters.
// Returns false without creating anything if the cell is not empty.
func (g *Grid) Spawn(kind components.Kind, row, col int, tick int32) (ecs.Entity, bool) {
	if !kind.IsOrganism() || !g.IsEmpty(row, col) {
		return ecs.Entity{}, false
	}

	g.nextID++
	pos := components.Position{Row: row, Col: col}
	org := components.Organism{ID: g.nextID, Kind: kind, BirthTick: tick}

	var e ecs.Entity
	if kind == components.KindPredator {
		e = g.predMapper.NewEntity(&pos, &org, &components.Hunger{})
	} else {
		e = g.preyMapper.NewEntity(&pos, &org)
	}

	g.cells[g.index(row, col)] = cell{entity: e, kind: kind}
	g.counts[kind]++
	return e, true
}

// Place puts an existing, unplaced organism at (row, col) and updates its Position.
// Returns false if the cell is not empty.
func (g *Grid) Place(e ecs.Entity, kind components.Kind, row, col int) bool {
	if !kind.IsOrganism() || !g.IsEmpty(row, col) {
		return false
	}
	g.cells[g.index(row, col)] = cell{entity: e, kind: kind}
	g.counts[kind]++
	*g.posMap.Get(e) = components.Position{Row: row, Col: col}
	return true
}

// Remove vacates (row, col) without destroying its occupant.
// The occupant must be placed again or destroyed before the tick ends.
func (g *Grid) Remove(row, col int) {
	if !g.InBounds(row, col) {
		return
	}
	idx := g.index(row, col)
	if g.cells[idx].kind != components.KindNone {
		g.counts[g.cells[idx].kind]--
	}
	g.cells[idx] = cell{}
}

// Move relocates the occupant of (fromRow, fromCol) onto an empty (toRow, toCol).
// Returns false and changes nothing if the source is empty or the target is not.
func (g *Grid) Move(fromRow, fromCol, toRow, toCol int) bool {
	e, ok := g.At(fromRow, fromCol)
	if !ok || !g.IsEmpty(toRow, toCol) {
		return false
	}
	kind := g.cells[g.index(fromRow, fromCol)].kind
	g.Remove(fromRow, fromCol)
	return g.Place(e, kind, toRow, toCol)
}

// Destroy vacates (row, col) and removes its occupant from the world.
// Returns the destroyed organism's final state.
func (g *Grid) Destroy(row, col int) (components.Organism, bool) {
	e, ok := g.At(row, col)
	if !ok {
		return components.Organism{}, false
	}
	org := *g.orgMap.Get(e)
	g.Remove(row, col)
	g.world.RemoveEntity(e)
	return org, true
}

// ForEachCell visits every cell in row-major order. Each cell is read at the
// moment it is visited, so changes made by earlier visits are observed.
// Returning false from visit stops the scan.
func (g *Grid) ForEachCell(visit func(row, col int) bool) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			if !visit(row, col) {
				return
			}
		}
	}
}

// Entities returns the organisms of kind in row-major order as of now.
func (g *Grid) Entities(kind components.Kind) []ecs.Entity {
	out := make([]ecs.Entity, 0, g.counts[kind])
	for _, c := range g.cells {
		if c.kind == kind {
			out = append(out, c.entity)
		}
	}
	return out
}

// Alive reports whether e still exists.
func (g *Grid) Alive(e ecs.Entity) bool {
	return g.world.Alive(e)
}

// Organism returns the organism component of e.
func (g *Grid) Organism(e ecs.Entity) *components.Organism {
	return g.orgMap.Get(e)
}

// Position returns the position component of e.
func (g *Grid) Position(e ecs.Entity) *components.Position {
	return g.posMap.Get(e)
}

// Hunger returns the hunger component of e, or nil for prey.
func (g *Grid) Hunger(e ecs.Entity) *components.Hunger {
	if !g.hungerMap.Has(e) {
		return nil
	}
	return g.hungerMap.Get(e)
}

// ResetMoved clears the per-tick processed flag on every organism.
func (g *Grid) ResetMoved() {
	query := g.orgFilter.Query()
	for query.Next() {
		_, org := query.Get()
		org.Moved = false
	}
}

// Kinds returns a row-major copy of the cell kinds.
func (g *Grid) Kinds() [][]components.Kind {
	out := make([][]components.Kind, g.rows)
	for row := range out {
		out[row] = make([]components.Kind, g.cols)
		for col := range out[row] {
			out[row][col] = g.cells[g.index(row, col)].kind
		}
	}
	return out
}

// CheckInvariants verifies that every occupied cell's entity is alive and
// reports its own cell as its position, and that the kind counts match.
// Returns the first violating cell and false, or (-1, -1, true).
func (g *Grid) CheckInvariants() (int, int, bool) {
	var counts [3]int
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			c := g.cells[g.index(row, col)]
			if c.kind == components.KindNone {
				continue
			}
			counts[c.kind]++
			if !g.world.Alive(c.entity) {
				return row, col, false
			}
			pos := g.posMap.Get(c.entity)
			org := g.orgMap.Get(c.entity)
			if pos.Row != row || pos.Col != col || org.Kind != c.kind {
				return row, col, false
			}
		}
	}
	if counts != g.counts {
		return -1, -1, false
	}
	return -1, -1, true
}
