package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"window_start"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population counts at window end
	PreyCount int     `csv:"prey"`
	PredCount int     `csv:"pred"`
	Occupancy float64 `csv:"occupancy"` // fraction of cells occupied

	// Events during window
	PreyBirths  int     `csv:"prey_births"`
	PredBirths  int     `csv:"pred_births"`
	PreyEaten   int     `csv:"prey_eaten"`
	PredStarved int     `csv:"pred_starved"`
	EatRate     float64 `csv:"eat_rate"` // prey eaten per predator per tick

	// Population distribution over the window's ticks
	PreyMean float64 `csv:"prey_mean"`
	PreyStd  float64 `csv:"prey_std"`
	PreyP10  float64 `csv:"prey_p10"`
	PreyP50  float64 `csv:"prey_p50"`
	PreyP90  float64 `csv:"prey_p90"`

	PredMean float64 `csv:"pred_mean"`
	PredStd  float64 `csv:"pred_std"`
	PredP10  float64 `csv:"pred_p10"`
	PredP50  float64 `csv:"pred_p50"`
	PredP90  float64 `csv:"pred_p90"`

	// Mean age at death, in ticks
	PreyLifespanMean float64 `csv:"prey_lifespan_mean"`
	PredLifespanMean float64 `csv:"pred_lifespan_mean"`
}

// TickRecord is one row of population.csv.
type TickRecord struct {
	Tick        int32 `csv:"tick"`
	Prey        int   `csv:"prey"`
	Pred        int   `csv:"pred"`
	PreyBirths  int   `csv:"prey_births"`
	PredBirths  int   `csv:"pred_births"`
	PreyEaten   int   `csv:"prey_eaten"`
	PredStarved int   `csv:"pred_starved"`
}

// Summary is the mean, population standard deviation and quantiles of a series.
type Summary struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// CV returns the coefficient of variation, or 0 for a zero mean.
func (s Summary) CV() float64 {
	if s.Mean == 0 {
		return 0
	}
	return s.Std / s.Mean
}

// SeriesStats summarises values. Returns the zero Summary for an empty slice.
func SeriesStats(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}

	m, std := stat.PopMeanStdDev(values, nil)

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return Summary{
		Mean: m,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Float64("occupancy", s.Occupancy),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_eaten", s.PreyEaten),
		slog.Int("pred_starved", s.PredStarved),
		slog.Float64("eat_rate", s.EatRate),
		slog.Float64("prey_mean", s.PreyMean),
		slog.Float64("prey_std", s.PreyStd),
		slog.Float64("pred_mean", s.PredMean),
		slog.Float64("pred_std", s.PredStd),
		slog.Float64("prey_lifespan_mean", s.PreyLifespanMean),
		slog.Float64("pred_lifespan_mean", s.PredLifespanMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"prey", s.PreyCount,
		"pred", s.PredCount,
		"occupancy", s.Occupancy,
		"prey_births", s.PreyBirths,
		"pred_births", s.PredBirths,
		"prey_eaten", s.PreyEaten,
		"pred_starved", s.PredStarved,
		"eat_rate", s.EatRate,
		"prey_mean", s.PreyMean,
		"prey_p10", s.PreyP10,
		"prey_p50", s.PreyP50,
		"prey_p90", s.PreyP90,
		"pred_mean", s.PredMean,
		"pred_p10", s.PredP10,
		"pred_p50", s.PredP50,
		"pred_p90", s.PredP90,
		"prey_lifespan_mean", s.PreyLifespanMean,
		"pred_lifespan_mean", s.PredLifespanMean,
	)
}
