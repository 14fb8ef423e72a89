package telemetry

import "github.com/pthm-cable/wator/components"

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	preyBirths  int
	predBirths  int
	preyEaten   int
	predStarved int

	// Ages at death within the window
	preyLifespans []float64
	predLifespans []float64

	// Per-tick population samples within the window
	preySeries []float64
	predSeries []float64

	// Events since the last EndTick
	current TickRecord
}

// NewCollector creates a new stats collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowDurationTicks: int32(windowTicks),
	}
}

// Record counts a single event in the current window.
func (c *Collector) Record(ev Event) {
	switch ev.Type {
	case EventBirth:
		if ev.Kind == components.KindPrey {
			c.preyBirths++
			c.current.PreyBirths++
		} else {
			c.predBirths++
			c.current.PredBirths++
		}
	case EventEaten:
		c.preyEaten++
		c.current.PreyEaten++
		c.preyLifespans = append(c.preyLifespans, float64(ev.Age))
	case EventStarved:
		c.predStarved++
		c.current.PredStarved++
		c.predLifespans = append(c.predLifespans, float64(ev.Age))
	}
}

// EndTick samples the populations after a tick and returns that tick's record.
func (c *Collector) EndTick(tick int32, preyCount, predCount int) TickRecord {
	c.preySeries = append(c.preySeries, float64(preyCount))
	c.predSeries = append(c.predSeries, float64(predCount))

	rec := c.current
	rec.Tick = tick
	rec.Prey = preyCount
	rec.Pred = predCount
	c.current = TickRecord{}
	return rec
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// cells is the grid size, used for the occupancy fraction.
func (c *Collector) Flush(currentTick int32, preyCount, predCount, cells int) WindowStats {
	ticks := currentTick - c.windowStartTick

	var eatRate float64
	if predMean := mean(c.predSeries); predMean > 0 && ticks > 0 {
		eatRate = float64(c.preyEaten) / (predMean * float64(ticks))
	}

	var occupancy float64
	if cells > 0 {
		occupancy = float64(preyCount+predCount) / float64(cells)
	}

	prey := SeriesStats(c.preySeries)
	pred := SeriesStats(c.predSeries)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		PreyCount: preyCount,
		PredCount: predCount,
		Occupancy: occupancy,

		PreyBirths:  c.preyBirths,
		PredBirths:  c.predBirths,
		PreyEaten:   c.preyEaten,
		PredStarved: c.predStarved,
		EatRate:     eatRate,

		PreyMean: prey.Mean,
		PreyStd:  prey.Std,
		PreyP10:  prey.P10,
		PreyP50:  prey.P50,
		PreyP90:  prey.P90,

		PredMean: pred.Mean,
		PredStd:  pred.Std,
		PredP10:  pred.P10,
		PredP50:  pred.P50,
		PredP90:  pred.P90,

		PreyLifespanMean: mean(c.preyLifespans),
		PredLifespanMean: mean(c.predLifespans),
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.preyBirths = 0
	c.predBirths = 0
	c.preyEaten = 0
	c.predStarved = 0
	c.preyLifespans = c.preyLifespans[:0]
	c.predLifespans = c.predLifespans[:0]
	c.preySeries = c.preySeries[:0]
	c.predSeries = c.predSeries[:0]

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
