package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pthm-cable/wator/config"
	"github.com/pthm-cable/wator/game"
)

func newLineGame(t *testing.T) *game.Game {
	t.Helper()
	cfg := config.Default()
	cfg.World.Rows, cfg.World.Cols = 3, 4
	cfg.Population.Prey, cfg.Population.Predators = 4, 1

	g, err := game.NewGame(game.Options{Seed: 2, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

func TestRunLinesStepsPerLine(t *testing.T) {
	g := newLineGame(t)
	var out bytes.Buffer

	runLines(g, strings.NewReader("\n\n"), &out, 0)

	if g.Tick() != 2 {
		t.Errorf("tick = %d, want 2", g.Tick())
	}
	// three grids, three prompts: the last prompt hits EOF
	if n := strings.Count(out.String(), "Press Enter to continue..."); n != 3 {
		t.Errorf("prompts = %d, want 3", n)
	}
	if lines := strings.Split(strings.TrimSpace(out.String()), "\n"); len(lines) != 3*(3+1) {
		t.Errorf("output has %d lines, want 12", len(lines))
	}
}

func TestRunLinesStopsAtMaxTicks(t *testing.T) {
	g := newLineGame(t)
	var out bytes.Buffer

	runLines(g, strings.NewReader(strings.Repeat("\n", 10)), &out, 1)

	if g.Tick() != 1 {
		t.Errorf("tick = %d, want 1", g.Tick())
	}
	if n := strings.Count(out.String(), "Press Enter"); n != 1 {
		t.Errorf("prompts = %d, want 1", n)
	}
}

func TestRunHeadlessStops(t *testing.T) {
	g := newLineGame(t)
	runHeadless(g, 50)
	if g.Tick() > 50 {
		t.Errorf("tick = %d, want <= 50", g.Tick())
	}
	if g.Tick() < 50 && !g.Extinct() {
		t.Errorf("stopped at tick %d without extinction", g.Tick())
	}
}
