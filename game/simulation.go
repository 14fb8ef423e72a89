package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wator/components"
	"github.com/pthm-cable/wator/config"
	"github.com/pthm-cable/wator/systems"
)

// Step advances the simulation by one tick: reset moved flags, run every
// doodlebug, run every ant, then record telemetry.
func (g *Game) Step() {
	now := g.tick + 1

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(systems.PhaseReset)
	g.grid.ResetMoved()

	g.perfCollector.StartPhase(systems.PhasePredators)
	g.runSpecies(components.KindPredator, now)

	g.perfCollector.StartPhase(systems.PhasePrey)
	g.runSpecies(components.KindPrey, now)

	g.tick = now

	g.perfCollector.StartPhase(systems.PhaseTelemetry)
	g.recordTick()

	g.perfCollector.EndTick()

	g.flushTelemetry()
}

// runSpecies gives every unmoved organism of kind its turn in row-major order.
func (g *Game) runSpecies(kind components.Kind, now int32) {
	if g.scanMode == config.ScanSnapshot {
		// Exactly the organisms present now; offspring wait for the next tick.
		for _, e := range g.grid.Entities(kind) {
			if !g.grid.Alive(e) || g.grid.Organism(e).Moved {
				continue
			}
			g.turn(kind, e, now)
		}
		return
	}

	// Live scan: each cell is read as the scan reaches it, so an offspring
	// placed later in scan order takes a turn this tick.
	g.grid.ForEachCell(func(row, col int) bool {
		if g.grid.OccupantKind(row, col) != kind {
			return true
		}
		e, _ := g.grid.At(row, col)
		if g.grid.Organism(e).Moved {
			return true
		}
		g.turn(kind, e, now)
		return true
	})
}

func (g *Game) turn(kind components.Kind, e ecs.Entity, now int32) {
	if kind == components.KindPredator {
		g.observe(g.rules.StepPredator(g.grid, e, g.src, now), now)
		return
	}
	g.observe(g.rules.StepPrey(g.grid, e, g.src, now), now)
}
