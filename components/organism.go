package components

// Organism holds identity and per-individual counters shared by both species.
type Organism struct {
	ID           uint32
	Kind         Kind
	BirthTick    int32
	BreedCounter int  // ticks since creation or last successful breed
	Moved        bool // processed this tick; reset at tick start
}

// Hunger is carried by predators only.
type Hunger struct {
	StarveCounter int // ticks since last successful eat
}
