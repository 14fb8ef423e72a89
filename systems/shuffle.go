package systems

// Source supplies the randomness used by the species rules.
// *math/rand.Rand satisfies it; tests substitute scripted orders.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// Direction is an orthogonal unit offset on the grid.
type Direction struct {
	DR, DC int
}

// Directions lists the four orthogonal offsets in their canonical order:
// up, down, left, right.
var Directions = [4]Direction{
	{DR: -1, DC: 0},
	{DR: 1, DC: 0},
	{DR: 0, DC: -1},
	{DR: 0, DC: 1},
}

// Shuffled returns a uniformly permuted copy of Directions.
// Every movement or breeding decision draws its own permutation.
func Shuffled(src Source) [4]Direction {
	dirs := Directions
	src.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})
	return dirs
}
