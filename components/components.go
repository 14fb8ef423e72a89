// Package components defines ECS components for the simulation.
package components

// Kind is the occupant tag of a grid cell: the organism variant, or none.
type Kind uint8

const (
	KindNone Kind = iota
	KindPrey
	KindPredator
)

// String returns the species name for the kind.
func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "ant"
	case KindPredator:
		return "doodlebug"
	default:
		return "empty"
	}
}

// IsOrganism reports whether the kind denotes a living organism.
func (k Kind) IsOrganism() bool {
	return k == KindPrey || k == KindPredator
}
