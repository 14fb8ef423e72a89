package game

import (
	"log/slog"

	"github.com/pthm-cable/wator/systems"
	"github.com/pthm-cable/wator/telemetry"
)

// observe feeds one organism's turn into the collector and lifetime tracker.
func (g *Game) observe(out systems.Outcome, now int32) {
	subject := out.Subject

	if out.Ate {
		victim := out.Victim
		g.collector.Record(telemetry.NewEatenEvent(now, victim.ID, subject.ID, now-victim.BirthTick))
		g.lifetimeTracker.Remove(victim.ID)
		g.lifetimeTracker.RecordMeal(subject.ID)
	}

	if out.Bred {
		child := out.Offspring
		g.collector.Record(telemetry.NewBirthEvent(now, child.ID, subject.ID, child.Kind))
		g.lifetimeTracker.Register(child.ID, child.Kind, now, subject.ID)
		g.lifetimeTracker.RecordChild(subject.ID)
	}

	if out.Starved {
		g.collector.Record(telemetry.NewStarvedEvent(now, subject.ID, now-subject.BirthTick))
		g.lifetimeTracker.Remove(subject.ID)
	}
}

// recordTick closes the per-tick record and appends it to population.csv.
func (g *Game) recordTick() {
	g.lastTick = g.collector.EndTick(g.tick, g.PreyCount(), g.PredCount())

	if err := g.outputManager.WritePopulation(g.lastTick); err != nil {
		slog.Error("failed to write population", "error", err)
	}
}

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.PreyCount(), g.PredCount(), g.grid.Size())
	perfStats := g.perfCollector.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
		g.logWorldState()
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		g.rememberBookmark(bm)

		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// rememberBookmark keeps the most recent bookmarks for display.
func (g *Game) rememberBookmark(bm telemetry.Bookmark) {
	limit := g.cfg.Telemetry.BookmarkHistorySize
	if limit < 1 {
		limit = 1
	}
	g.bookmarks = append(g.bookmarks, bm)
	if len(g.bookmarks) > limit {
		g.bookmarks = g.bookmarks[len(g.bookmarks)-limit:]
	}
}
