package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/wator/config"
	"github.com/pthm-cable/wator/game"
	"github.com/pthm-cable/wator/renderer"
)

func newTestUI(t *testing.T) (*UI, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.World.Rows, cfg.World.Cols = 5, 8
	cfg.Population.Prey, cfg.Population.Predators = 10, 2

	g, err := game.NewGame(game.Options{Seed: 3, Config: cfg})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	t.Cleanup(func() { g.Close() })

	return New(screen, g), screen
}

// screenLine reads n cells of row y.
func screenLine(s tcell.Screen, y, n int) string {
	var sb strings.Builder
	for x := 0; x < n; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDrawGrid(t *testing.T) {
	u, screen := newTestUI(t)
	u.Draw()

	want := strings.Split(renderer.NewText(renderer.DefaultGlyphs).String(u.game.Snapshot()), "\n")
	for y := 0; y < u.game.Rows(); y++ {
		if got := screenLine(screen, y, u.game.Cols()); got != want[y] {
			t.Errorf("row %d = %q, want %q", y, got, want[y])
		}
	}

	hud := screenLine(screen, u.game.Rows()+1, 40)
	if !strings.HasPrefix(hud, "Tick: 0 | Ants: 10 | Doodlebugs: 2") {
		t.Errorf("hud = %q", hud)
	}
}

func TestHandleEventKeys(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		ch       rune
		wantTick int32
		wantQuit bool
	}{
		{"enter steps", tcell.KeyEnter, 0, 1, false},
		{"space steps", tcell.KeyRune, ' ', 1, false},
		{"n steps", tcell.KeyRune, 'n', 1, false},
		{"unbound key", tcell.KeyRune, 'z', 0, false},
		{"q quits", tcell.KeyRune, 'q', 0, true},
		{"escape quits", tcell.KeyEscape, 0, 0, true},
		{"ctrl-c quits", tcell.KeyCtrlC, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, _ := newTestUI(t)
			cont := u.HandleEvent(tcell.NewEventKey(tt.key, tt.ch, tcell.ModNone))
			if cont == tt.wantQuit {
				t.Errorf("HandleEvent returned %v, want quit=%v", cont, tt.wantQuit)
			}
			if u.game.Tick() != tt.wantTick {
				t.Errorf("tick = %d, want %d", u.game.Tick(), tt.wantTick)
			}
		})
	}
}

func TestAutoplayToggle(t *testing.T) {
	u, _ := newTestUI(t)
	p := tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)

	u.HandleEvent(p)
	if !u.Autoplay() {
		t.Error("p should start autoplay")
	}
	u.HandleEvent(p)
	if u.Autoplay() {
		t.Error("second p should pause")
	}
}

func TestCursorClampsAndInspects(t *testing.T) {
	u, screen := newTestUI(t)

	for i := 0; i < 3; i++ {
		u.HandleEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone))
		u.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	}
	if r, c := u.Cursor(); r != 0 || c != 0 {
		t.Errorf("cursor = %d,%d, want 0,0", r, c)
	}

	for i := 0; i < 20; i++ {
		u.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
		u.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	}
	if r, c := u.Cursor(); r != 4 || c != 7 {
		t.Errorf("cursor = %d,%d, want 4,7", r, c)
	}

	u.Draw()
	x := u.game.Cols() + 2
	header := screenLine(screen, 0, x+10)[x:]
	if !strings.HasPrefix(header, "Cell 4,7") {
		t.Errorf("inspector header = %q", header)
	}

	body := screenLine(screen, 1, x+20)[x:]
	if _, ok := u.game.Inspect(4, 7); ok {
		if !strings.HasPrefix(body, "Kind") {
			t.Errorf("inspector body = %q", body)
		}
	} else if !strings.HasPrefix(body, "empty") {
		t.Errorf("inspector body = %q", body)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	u, screen := newTestUI(t)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan struct{})
	go func() {
		u.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

// newScrollingTestUI builds a UI whose 60x100 grid overflows an 80x24 screen.
func newScrollingTestUI(t *testing.T) (*UI, tcell.SimulationScreen, *game.Game) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)

	cfg := config.Default()
	cfg.World.Rows, cfg.World.Cols = 60, 100
	cfg.Population.Prey, cfg.Population.Predators = 1500, 300

	g, err := game.NewGame(game.Options{Seed: 8, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { g.Close() })

	return New(screen, g), screen, g
}

func TestViewportFollowsCursor(t *testing.T) {
	u, screen, g := newScrollingTestUI(t)
	viewRows, viewCols := 24-hudRows, 80-panelWidth

	for i := 0; i < 30; i++ {
		u.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	}
	u.Draw()

	wantRow := 30 - viewRows + 1
	snap := g.Snapshot()
	var want strings.Builder
	for c := 0; c < viewCols; c++ {
		want.WriteRune(renderer.DefaultGlyphs.For(snap.Cells[wantRow][c]))
	}
	if got := screenLine(screen, 0, viewCols); got != want.String() {
		t.Errorf("top screen row = %q, want grid row %d %q", got, wantRow, want.String())
	}
}

func TestPageAndHomeKeys(t *testing.T) {
	u, _, _ := newScrollingTestUI(t)
	key := func(k tcell.Key) {
		u.HandleEvent(tcell.NewEventKey(k, 0, tcell.ModNone))
	}
	for i := 0; i < 3; i++ {
		key(tcell.KeyRight)
	}

	// The view holds 16 rows; the camera stops at row 44 of 60.
	steps := []struct {
		key       tcell.Key
		cursorRow int
		camRow    int
	}{
		{tcell.KeyPgDn, 16, 16},
		{tcell.KeyPgDn, 32, 32},
		{tcell.KeyPgDn, 48, 44},
		{tcell.KeyPgDn, 59, 44},
		{tcell.KeyPgUp, 43, 28},
		{tcell.KeyPgUp, 27, 12},
		{tcell.KeyPgUp, 11, 0},
		{tcell.KeyPgUp, 0, 0},
	}
	for i, st := range steps {
		key(st.key)
		row, col := u.Cursor()
		if row != st.cursorRow || col != 3 || u.cam.Row != st.camRow {
			t.Fatalf("step %d: cursor (%d,%d) camera row %d, want (%d,3) camera row %d",
				i, row, col, u.cam.Row, st.cursorRow, st.camRow)
		}
	}

	for i := 0; i < 70; i++ {
		key(tcell.KeyRight)
	}
	key(tcell.KeyPgDn)
	if u.cam.Col == 0 {
		t.Fatal("camera did not scroll right with the cursor")
	}

	key(tcell.KeyHome)
	if row, col := u.Cursor(); row != 0 || col != 0 {
		t.Errorf("Home cursor = (%d,%d), want (0,0)", row, col)
	}
	if u.cam.Row != 0 || u.cam.Col != 0 {
		t.Errorf("Home camera = (%d,%d), want (0,0)", u.cam.Row, u.cam.Col)
	}
	if !u.inspecting {
		t.Error("Home should show the inspector")
	}
}
