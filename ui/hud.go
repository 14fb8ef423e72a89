package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wator/components"
)

// Theme holds the cell and panel styles.
type Theme struct {
	Empty    tcell.Style
	Prey     tcell.Style
	Predator tcell.Style
	Text     tcell.Style
	Dim      tcell.Style
	Accent   tcell.Style
}

// DefaultTheme returns the standard color scheme.
func DefaultTheme() Theme {
	return Theme{
		Empty:    tcell.StyleDefault.Foreground(tcell.ColorGray),
		Prey:     tcell.StyleDefault.Foreground(tcell.ColorGreen),
		Predator: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
		Text:     tcell.StyleDefault.Foreground(tcell.ColorWhite),
		Dim:      tcell.StyleDefault.Foreground(tcell.ColorGray),
		Accent:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
	}
}

func (t Theme) cell(kind components.Kind) tcell.Style {
	switch kind {
	case components.KindPrey:
		return t.Prey
	case components.KindPredator:
		return t.Predator
	default:
		return t.Empty
	}
}

const controlsHelp = "enter/space step  p autoplay  arrows/pgup/pgdn/home inspect  i hide  q quit"

// Draw renders the visible part of the grid with the HUD below and the inspector to the right.
func (u *UI) Draw() {
	u.screen.Clear()

	snap := u.game.Snapshot()
	minRow, minCol, maxRow, maxCol := u.cam.VisibleWorldBounds()
	for r := minRow; r < maxRow; r++ {
		for c := minCol; c < maxCol; c++ {
			k := snap.Cells[r][c]
			style := u.theme.cell(k)
			if u.inspecting && r == u.cursorRow && c == u.cursorCol {
				style = style.Reverse(true)
			}
			y, x, _ := u.cam.WorldToScreen(r, c)
			u.screen.SetContent(x, y, u.glyphs.For(k), nil, style)
		}
	}

	y := u.cam.VisibleRows() + 1
	y = u.drawHUD(0, y)
	u.drawText(0, y+1, u.theme.Dim, controlsHelp)

	if u.inspecting {
		u.drawInspector(u.cam.VisibleCols()+2, 0)
	}

	u.screen.Show()
}

func (u *UI) drawHUD(x, y int) int {
	g := u.game

	status := "paused"
	if u.autoplay {
		status = "running"
	}
	u.drawText(x, y, u.theme.Text, fmt.Sprintf("Tick: %d | Ants: %d | Doodlebugs: %d | %s",
		g.Tick(), g.PreyCount(), g.PredCount(), status))
	y++

	last := g.LastTick()
	u.drawText(x, y, u.theme.Dim, fmt.Sprintf("births %d/%d  eaten %d  starved %d",
		last.PreyBirths, last.PredBirths, last.PreyEaten, last.PredStarved))
	y++

	if stats := g.LastStats(); stats.WindowEndTick > 0 {
		u.drawText(x, y, u.theme.Dim, fmt.Sprintf("window %d-%d  occupancy %.2f  eat rate %.3f",
			stats.WindowStartTick, stats.WindowEndTick, stats.Occupancy, stats.EatRate))
		y++
	}

	perf := g.PerfStats()
	line := fmt.Sprintf("%.0f ticks/s", perf.TicksPerSecond)
	phases := g.Phases()
	for _, id := range phases.IDs() {
		line += fmt.Sprintf("  %s %.0f%%", phases.GetName(id), perf.PhasePct[id])
	}
	u.drawText(x, y, u.theme.Dim, line)
	y++

	for _, bm := range g.Bookmarks() {
		u.drawText(x, y, u.theme.Accent, fmt.Sprintf("[%d] %s", bm.Tick, bm.Description))
		y++
	}
	return y
}

func (u *UI) drawInspector(x, y int) {
	u.drawText(x, y, u.theme.Accent, fmt.Sprintf("Cell %d,%d", u.cursorRow, u.cursorCol))
	rows, ok := u.game.Inspect(u.cursorRow, u.cursorCol)
	if !ok {
		u.drawText(x, y+1, u.theme.Dim, "empty")
		return
	}
	for i, r := range rows {
		u.drawText(x, y+1+i, u.theme.Text, fmt.Sprintf("%-9s %s", r.Label, r.Value))
	}
}

// drawText writes s starting at (x, y), clipped to the screen width.
func (u *UI) drawText(x, y int, style tcell.Style, s string) {
	w, _ := u.screen.Size()
	for _, ch := range s {
		if x >= w {
			return
		}
		u.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
