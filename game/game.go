// Package game runs the ant and doodlebug simulation tick by tick.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"strconv"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wator/components"
	"github.com/pthm-cable/wator/config"
	"github.com/pthm-cable/wator/systems"
	"github.com/pthm-cable/wator/telemetry"
)

// ErrInvalidConfiguration is returned by NewGame when the grid or population
// cannot be initialized.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Options configures a Game.
type Options struct {
	Seed   int64
	Config *config.Config // nil uses config.Cfg()

	// Source overrides the seeded RNG for rule decisions.
	Source systems.Source

	LogStats      bool
	StatsWindow   int    // ticks per stats window, 0 uses config
	OutputDir     string // empty disables CSV output
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	world *ecs.World
	grid  *systems.Grid
	rng   *rand.Rand
	src   systems.Source

	cfg      *config.Config
	rules    systems.Rules
	scanMode string
	phases   *systems.PhaseRegistry

	// State
	seed     int64
	tick     int32
	lastTick telemetry.TickRecord

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	perfCollector    *telemetry.PerfCollector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool
	lastStats        telemetry.WindowStats
	bookmarks        []telemetry.Bookmark
}

// NewGame creates a game and places the initial population from the config.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		statsWindow = opts.StatsWindow
	}

	g := &Game{
		world:    world,
		rng:      rng,
		src:      rng,
		cfg:      cfg,
		rules:    systems.RulesFromConfig(cfg),
		scanMode: cfg.Engine.ScanMode,
		phases:   systems.NewPhaseRegistry(),
		seed:     opts.Seed,

		collector:        telemetry.NewCollector(statsWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
	}
	if opts.Source != nil {
		g.src = opts.Source
	}

	if err := g.initialize(cfg.World.Rows, cfg.World.Cols, cfg.Population.Prey, cfg.Population.Predators); err != nil {
		return nil, err
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return g, nil
}

// Close releases output files.
func (g *Game) Close() error {
	return g.outputManager.Close()
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the RNG seed the game was created with.
func (g *Game) Seed() int64 {
	return g.seed
}

// Config returns the configuration the game runs with.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Rows returns the grid height.
func (g *Game) Rows() int { return g.grid.Rows() }

// Cols returns the grid width.
func (g *Game) Cols() int { return g.grid.Cols() }

// PreyCount returns the number of living ants.
func (g *Game) PreyCount() int {
	return g.grid.Count(components.KindPrey)
}

// PredCount returns the number of living doodlebugs.
func (g *Game) PredCount() int {
	return g.grid.Count(components.KindPredator)
}

// Extinct reports whether both species have died out.
func (g *Game) Extinct() bool {
	return g.grid.Total() == 0
}

// LastTick returns the counts and events of the most recent tick.
func (g *Game) LastTick() telemetry.TickRecord {
	return g.lastTick
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}

// Bookmarks returns the most recent bookmarks, newest last.
func (g *Game) Bookmarks() []telemetry.Bookmark {
	return g.bookmarks
}

// PerfStats returns timing aggregated over the recent ticks.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// Phases returns the tick phase registry.
func (g *Game) Phases() *systems.PhaseRegistry {
	return g.phases
}

// Snapshot is a read-only copy of the grid between ticks.
type Snapshot struct {
	Cells     [][]components.Kind // [row][col]
	Tick      int32
	Prey      int
	Predators int
}

// Snapshot copies the current grid state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Cells:     g.grid.Kinds(),
		Tick:      g.tick,
		Prey:      g.PreyCount(),
		Predators: g.PredCount(),
	}
}

// InspectRow is one labelled value for an inspected cell.
type InspectRow struct {
	Label string
	Value string
}

// Inspect describes the organism at (row, col). Returns false for empty or
// out-of-bounds cells.
func (g *Game) Inspect(row, col int) ([]InspectRow, bool) {
	e, ok := g.grid.At(row, col)
	if !ok {
		return nil, false
	}
	pos := *g.grid.Position(e)
	org := g.grid.Organism(e)
	hunger := g.grid.Hunger(e)

	var rows []InspectRow
	for _, fd := range components.OrganismFieldDescriptors() {
		if fd.Group == "predator" && hunger == nil {
			continue
		}
		rows = append(rows, InspectRow{
			Label: fd.Label,
			Value: components.FieldValue(fd.ID, pos, org, hunger, g.tick),
		})
	}
	if ls := g.lifetimeTracker.Get(org.ID); ls != nil {
		rows = append(rows, InspectRow{Label: "Children", Value: strconv.Itoa(ls.Children)})
		if org.Kind == components.KindPredator {
			rows = append(rows, InspectRow{Label: "Eaten", Value: strconv.Itoa(ls.PreyEaten)})
		}
	}
	return rows, true
}
