package components

// Position is an organism's grid cell. It must always agree with the grid slot holding it.
type Position struct {
	Row, Col int
}

// Offset returns the position displaced by (dr, dc). The result may be out of bounds.
func (p Position) Offset(dr, dc int) Position {
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}
