// Package camera provides a scrolling viewport onto the grid.
package camera

// Camera is a window of ViewRows x ViewCols cells onto a bounded grid of
// WorldRows x WorldCols. Row and Col are the top-left visible cell.
type Camera struct {
	Row, Col int

	// Viewport dimensions in cells
	ViewRows, ViewCols int

	// World dimensions
	WorldRows, WorldCols int
}

// New creates a camera at the top-left corner of the world.
func New(viewRows, viewCols, worldRows, worldCols int) *Camera {
	c := &Camera{WorldRows: worldRows, WorldCols: worldCols}
	c.Resize(viewRows, viewCols)
	return c
}

// VisibleRows returns how many grid rows fit on screen.
func (c *Camera) VisibleRows() int {
	return min(c.ViewRows, c.WorldRows)
}

// VisibleCols returns how many grid columns fit on screen.
func (c *Camera) VisibleCols() int {
	return min(c.ViewCols, c.WorldCols)
}

// WorldToScreen converts a grid cell to a screen offset inside the viewport.
// Returns false if the cell is not visible.
func (c *Camera) WorldToScreen(row, col int) (y, x int, visible bool) {
	y, x = row-c.Row, col-c.Col
	visible = y >= 0 && y < c.VisibleRows() && x >= 0 && x < c.VisibleCols()
	return y, x, visible
}

// ScreenToWorld converts a viewport offset to a grid cell.
func (c *Camera) ScreenToWorld(y, x int) (row, col int) {
	return c.Row + y, c.Col + x
}

// Resize updates viewport dimensions and keeps the view inside the world.
func (c *Camera) Resize(viewRows, viewCols int) {
	c.ViewRows = max(viewRows, 1)
	c.ViewCols = max(viewCols, 1)
	c.clampPosition()
}

// Pan moves the view by the given number of cells.
func (c *Camera) Pan(dRows, dCols int) {
	c.Row += dRows
	c.Col += dCols
	c.clampPosition()
}

// Follow scrolls the minimum distance that brings (row, col) into view.
func (c *Camera) Follow(row, col int) {
	switch {
	case row < c.Row:
		c.Row = row
	case row >= c.Row+c.VisibleRows():
		c.Row = row - c.VisibleRows() + 1
	}
	switch {
	case col < c.Col:
		c.Col = col
	case col >= c.Col+c.VisibleCols():
		c.Col = col - c.VisibleCols() + 1
	}
	c.clampPosition()
}

// Reset returns the camera to the top-left corner.
func (c *Camera) Reset() {
	c.Row, c.Col = 0, 0
}

// VisibleWorldBounds returns the visible cells as a half-open range.
func (c *Camera) VisibleWorldBounds() (minRow, minCol, maxRow, maxCol int) {
	return c.Row, c.Col, c.Row + c.VisibleRows(), c.Col + c.VisibleCols()
}

func (c *Camera) clampPosition() {
	c.Row = clamp(c.Row, 0, max(c.WorldRows-c.ViewRows, 0))
	c.Col = clamp(c.Col, 0, max(c.WorldCols-c.ViewCols, 0))
}

// clamp restricts a value to a range.
func clamp(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
