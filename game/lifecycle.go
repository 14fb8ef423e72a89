package game

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wator/components"
	"github.com/pthm-cable/wator/systems"
)

// validateLayout checks that the requested population fits the grid.
func validateLayout(rows, cols, numPrey, numPredators int) error {
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfiguration, rows, cols)
	}
	if rows > math.MaxInt/cols {
		return fmt.Errorf("%w: grid %dx%d is too large", ErrInvalidConfiguration, rows, cols)
	}
	if numPrey < 0 || numPredators < 0 {
		return fmt.Errorf("%w: population counts must be non-negative, got %d ants, %d doodlebugs",
			ErrInvalidConfiguration, numPrey, numPredators)
	}
	// Compared without summing, so huge counts cannot wrap past the check.
	if cells := rows * cols; numPrey > cells || numPredators > cells-numPrey {
		return fmt.Errorf("%w: %d ants and %d doodlebugs do not fit in %d cells",
			ErrInvalidConfiguration, numPrey, numPredators, cells)
	}
	return nil
}

// initialize builds the grid and places the starting population on distinct
// random cells, doodlebugs first.
func (g *Game) initialize(rows, cols, numPrey, numPredators int) error {
	if err := validateLayout(rows, cols, numPrey, numPredators); err != nil {
		return err
	}

	g.grid = systems.NewGrid(g.world, rows, cols)

	free := make([]int, rows*cols)
	for i := range free {
		free[i] = i
	}

	place := func(kind components.Kind, n int) {
		for i := 0; i < n; i++ {
			pick := g.rng.Intn(len(free))
			idx := free[pick]
			free[pick] = free[len(free)-1]
			free = free[:len(free)-1]

			g.spawnEntity(kind, idx/cols, idx%cols, 0)
		}
	}
	place(components.KindPredator, numPredators)
	place(components.KindPrey, numPrey)

	slog.Debug("population placed",
		"rows", rows,
		"cols", cols,
		"prey", numPrey,
		"predators", numPredators,
	)
	return nil
}

// spawnEntity places a fresh organism and registers it with the lifetime tracker.
func (g *Game) spawnEntity(kind components.Kind, row, col int, tick int32) (ecs.Entity, bool) {
	e, ok := g.grid.Spawn(kind, row, col, tick)
	if !ok {
		return e, false
	}
	org := g.grid.Organism(e)
	g.lifetimeTracker.Register(org.ID, kind, tick, 0)
	return e, true
}
