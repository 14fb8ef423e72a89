// Package ui is the interactive terminal viewer for the simulation.
package ui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wator/camera"
	"github.com/pthm-cable/wator/game"
	"github.com/pthm-cable/wator/renderer"
)

// UI drives a Game from keyboard input and draws it on a tcell screen.
// All game access happens on the goroutine calling Run or HandleEvent.
type UI struct {
	screen tcell.Screen
	game   *game.Game
	glyphs renderer.Glyphs
	theme  Theme
	cam    *camera.Camera

	autoplay bool
	interval time.Duration

	cursorRow, cursorCol int
	inspecting           bool
}

// New creates a UI for g on an initialized screen.
func New(screen tcell.Screen, g *game.Game) *UI {
	interval := time.Duration(g.Config().UI.AutoplayIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	u := &UI{
		screen:   screen,
		game:     g,
		glyphs:   renderer.GlyphsFromConfig(g.Config()),
		theme:    DefaultTheme(),
		interval: interval,
		cam:      camera.New(1, 1, g.Rows(), g.Cols()),
	}
	u.fitViewport()
	return u
}

// Rows below the grid and columns to its right are kept for the HUD and inspector.
const (
	hudRows    = 8
	panelWidth = 24
)

// fitViewport sizes the camera to the screen.
func (u *UI) fitViewport() {
	w, h := u.screen.Size()
	u.cam.Resize(h-hudRows, w-panelWidth)
	u.cam.Follow(u.cursorRow, u.cursorCol)
}

// Autoplay reports whether the simulation advances on its own.
func (u *UI) Autoplay() bool {
	return u.autoplay
}

// Cursor returns the inspected cell.
func (u *UI) Cursor() (row, col int) {
	return u.cursorRow, u.cursorCol
}

// Run draws and processes events until the user quits.
func (u *UI) Run() {
	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return // screen finalized
			}
			select {
			case eventChan <- ev:
			case <-done:
				return
			}
		}
	}()

	u.Draw()
	for {
		select {
		case ev := <-eventChan:
			if !u.HandleEvent(ev) {
				return
			}
			u.Draw()

		case <-ticker.C:
			if u.autoplay {
				u.game.Step()
				u.Draw()
			}
		}
	}
}

// HandleEvent applies one input event. Returns false when the user quits.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyEnter:
			u.game.Step()
		case tcell.KeyUp:
			u.moveCursor(-1, 0)
		case tcell.KeyDown:
			u.moveCursor(1, 0)
		case tcell.KeyLeft:
			u.moveCursor(0, -1)
		case tcell.KeyRight:
			u.moveCursor(0, 1)
		case tcell.KeyPgDn:
			u.pageCursor(1)
		case tcell.KeyPgUp:
			u.pageCursor(-1)
		case tcell.KeyHome:
			u.cam.Reset()
			u.inspecting = true
			u.cursorRow, u.cursorCol = 0, 0
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ', 'n':
				u.game.Step()
			case 'p':
				u.autoplay = !u.autoplay
			case 'i':
				u.inspecting = !u.inspecting
			}
		}

	case *tcell.EventResize:
		u.fitViewport()
		u.screen.Sync()
	}

	return true
}

func (u *UI) moveCursor(dr, dc int) {
	u.inspecting = true
	u.cursorRow = clamp(u.cursorRow+dr, 0, u.game.Rows()-1)
	u.cursorCol = clamp(u.cursorCol+dc, 0, u.game.Cols()-1)
	u.cam.Follow(u.cursorRow, u.cursorCol)
}

// pageCursor scrolls one screen of rows and keeps the cursor on the same
// screen line. Rows the camera cannot scroll at an edge move the cursor instead.
func (u *UI) pageCursor(dir int) {
	page := dir * u.cam.VisibleRows()
	y, x, _ := u.cam.WorldToScreen(u.cursorRow, u.cursorCol)
	before := u.cam.Row
	u.cam.Pan(page, 0)

	row, col := u.cam.ScreenToWorld(y, x)
	row += page - (u.cam.Row - before)
	u.moveCursor(row-u.cursorRow, col-u.cursorCol)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
