package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/wator/components"
	"github.com/pthm-cable/wator/config"
)

// Rules holds the species thresholds.
type Rules struct {
	PreyBreedTime     int
	PredatorBreedTime int
	StarveTime        int
}

// RulesFromConfig extracts rule thresholds from a loaded config.
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		PreyBreedTime:     cfg.Prey.BreedTime,
		PredatorBreedTime: cfg.Predator.BreedTime,
		StarveTime:        cfg.Predator.StarveTime,
	}
}

// BreedTime returns the breeding threshold for kind.
func (r Rules) BreedTime(kind components.Kind) int {
	if kind == components.KindPredator {
		return r.PredatorBreedTime
	}
	return r.PreyBreedTime
}

// Outcome describes what happened to one organism during its turn.
type Outcome struct {
	Subject components.Organism // state at the end of the turn
	From    components.Position
	To      components.Position

	Relocated bool

	Ate    bool
	Victim components.Organism

	Bred         bool
	Offspring    components.Organism
	OffspringPos components.Position

	Starved bool
}

// MoveAnt moves an ant to the first empty neighbour in a fresh shuffle, or
// leaves it in place. The breed counter advances either way.
func MoveAnt(g *Grid, e ecs.Entity, src Source) (from, to components.Position) {
	from = *g.Position(e)
	to = from

	for _, d := range Shuffled(src) {
		if n := from.Offset(d.DR, d.DC); g.IsEmpty(n.Row, n.Col) {
			g.Move(from.Row, from.Col, n.Row, n.Col)
			to = n
			break
		}
	}

	org := g.Organism(e)
	org.BreedCounter++
	org.Moved = true
	return from, to
}

// MoveDoodlebug moves a doodlebug onto the first neighbouring ant in a fresh
// shuffle, eating it. Failing that it takes the first empty neighbour in the
// same order, or stays put. Returns the eaten ant when ate is true.
func MoveDoodlebug(g *Grid, e ecs.Entity, src Source) (from, to components.Position, victim components.Organism, ate bool) {
	from = *g.Position(e)
	to = from
	dirs := Shuffled(src)

	for _, d := range dirs {
		n := from.Offset(d.DR, d.DC)
		if g.OccupantKind(n.Row, n.Col) != components.KindPrey {
			continue
		}
		victim, _ = g.Destroy(n.Row, n.Col)
		g.Move(from.Row, from.Col, n.Row, n.Col)
		to = n
		ate = true
		break
	}

	if !ate {
		for _, d := range dirs {
			if n := from.Offset(d.DR, d.DC); g.IsEmpty(n.Row, n.Col) {
				g.Move(from.Row, from.Col, n.Row, n.Col)
				to = n
				break
			}
		}
	}

	// Destroy may have shuffled component storage; fetch after it.
	org := g.Organism(e)
	org.BreedCounter++
	org.Moved = true
	hunger := g.Hunger(e)
	if ate {
		hunger.StarveCounter = 0
	} else {
		hunger.StarveCounter++
	}
	return from, to, victim, ate
}

// Breed places one offspring of e's kind on the first empty neighbour of a
// fresh shuffle once the breed counter reaches threshold, and resets the
// counter. With no room the counter keeps its value.
func Breed(g *Grid, e ecs.Entity, src Source, threshold int, tick int32) (child ecs.Entity, childPos components.Position, ok bool) {
	org := g.Organism(e)
	if org.BreedCounter < threshold {
		return ecs.Entity{}, components.Position{}, false
	}
	kind := org.Kind
	pos := *g.Position(e)

	for _, d := range Shuffled(src) {
		n := pos.Offset(d.DR, d.DC)
		if !g.IsEmpty(n.Row, n.Col) {
			continue
		}
		child, ok = g.Spawn(kind, n.Row, n.Col, tick)
		if !ok {
			continue
		}
		g.Organism(e).BreedCounter = 0
		return child, n, true
	}
	return ecs.Entity{}, components.Position{}, false
}

// IsStarving reports whether predator e has gone starveTime ticks without eating.
func IsStarving(g *Grid, e ecs.Entity, starveTime int) bool {
	hunger := g.Hunger(e)
	return hunger != nil && hunger.StarveCounter >= starveTime
}

// StepPrey runs one ant turn: move, then breed.
func (r Rules) StepPrey(g *Grid, e ecs.Entity, src Source, tick int32) Outcome {
	var out Outcome
	out.From, out.To = MoveAnt(g, e, src)
	out.Relocated = out.From != out.To

	r.breed(g, e, src, components.KindPrey, tick, &out)

	out.Subject = *g.Organism(e)
	return out
}

// StepPredator runs one doodlebug turn: move or eat, breed, then die if starving.
func (r Rules) StepPredator(g *Grid, e ecs.Entity, src Source, tick int32) Outcome {
	var out Outcome
	out.From, out.To, out.Victim, out.Ate = MoveDoodlebug(g, e, src)
	out.Relocated = out.From != out.To

	r.breed(g, e, src, components.KindPredator, tick, &out)

	out.Subject = *g.Organism(e)
	if IsStarving(g, e, r.StarveTime) {
		g.Destroy(out.To.Row, out.To.Col)
		out.Starved = true
	}
	return out
}

func (r Rules) breed(g *Grid, e ecs.Entity, src Source, kind components.Kind, tick int32, out *Outcome) {
	child, pos, ok := Breed(g, e, src, r.BreedTime(kind), tick)
	if !ok {
		return
	}
	out.Bred = true
	out.Offspring = *g.Organism(child)
	out.OffspringPos = pos
}
