package game

import (
	"log/slog"

	"github.com/pthm-cable/wator/components"
)

// logWorldState logs population and the most prolific living breeder of each species.
func (g *Game) logWorldState() {
	attrs := []any{
		"tick", g.tick,
		"prey", g.PreyCount(),
		"pred", g.PredCount(),
		"tracked", g.lifetimeTracker.Count(),
	}

	for _, kind := range []components.Kind{components.KindPrey, components.KindPredator} {
		best := g.lifetimeTracker.TopBreeder(kind)
		if best == nil {
			continue
		}
		prefix := kind.String()
		attrs = append(attrs,
			prefix+"_top_id", best.ID,
			prefix+"_top_children", best.Children,
			prefix+"_top_age", g.tick-best.BirthTick,
		)
		if kind == components.KindPredator {
			attrs = append(attrs, prefix+"_top_eaten", best.PreyEaten)
		}
	}

	slog.Info("world", attrs...)
}
