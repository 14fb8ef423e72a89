package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wator/config"
	"github.com/pthm-cable/wator/game"
	"github.com/pthm-cable/wator/renderer"
	"github.com/pthm-cable/wator/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without rendering until max ticks or extinction")
	tui := flag.Bool("tui", false, "Interactive terminal viewer")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	rows := flag.Int("rows", 0, "Grid rows (0 = use config)")
	cols := flag.Int("cols", 0, "Grid columns (0 = use config)")
	prey := flag.Int("prey", -1, "Initial ants (-1 = use config)")
	predators := flag.Int("predators", -1, "Initial doodlebugs (-1 = use config)")

	flag.Parse()

	// The terminal belongs to the grid outside headless mode, so logs go to stderr there.
	logOut := os.Stderr
	if *headless {
		logOut = os.Stdout
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg().Clone()
	if *rows > 0 {
		cfg.World.Rows = *rows
	}
	if *cols > 0 {
		cfg.World.Cols = *cols
	}
	if *prey >= 0 {
		cfg.Population.Prey = *prey
	}
	if *predators >= 0 {
		cfg.Population.Predators = *predators
	}
	cfg = cfg.Clone() // recompute derived values

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(game.Options{
		Seed:        rngSeed,
		Config:      cfg,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		OutputDir:   *outputDir,
	})
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	switch {
	case *headless:
		runHeadless(g, *maxTicks)
	case *tui:
		if err := runTUI(g); err != nil {
			slog.Error("terminal UI failed", "error", err)
			os.Exit(1)
		}
	default:
		runLines(g, os.Stdin, os.Stdout, *maxTicks)
	}
}

// runHeadless steps without rendering until maxTicks or both species die out.
func runHeadless(g *game.Game, maxTicks int) {
	slog.Info("starting headless simulation",
		"seed", g.Seed(),
		"rows", g.Rows(),
		"cols", g.Cols(),
		"prey", g.PreyCount(),
		"predators", g.PredCount(),
		"max_ticks", maxTicks,
	)

	for {
		g.Step()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "prey", g.PreyCount(), "predators", g.PredCount())
			return
		}
		if g.Extinct() {
			slog.Info("both species extinct", "tick", g.Tick())
			return
		}
	}
}

// runLines prints the grid and advances one tick per line of input.
func runLines(g *game.Game, in io.Reader, out io.Writer, maxTicks int) {
	text := renderer.NewText(renderer.GlyphsFromConfig(g.Config()))
	scanner := bufio.NewScanner(in)

	for {
		if err := text.Render(out, g.Snapshot()); err != nil {
			slog.Error("failed to render grid", "error", err)
			return
		}
		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			return
		}
		fmt.Fprintln(out, "Press Enter to continue...")
		if !scanner.Scan() {
			return
		}
		g.Step()
	}
}

func runTUI(g *game.Game) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ui.New(screen, g).Run()
	return nil
}
