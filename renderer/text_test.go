package renderer

import (
	"bytes"
	"testing"

	"github.com/pthm-cable/wator/components"
	"github.com/pthm-cable/wator/config"
	"github.com/pthm-cable/wator/game"
)

func TestTextRender(t *testing.T) {
	snap := game.Snapshot{Cells: [][]components.Kind{
		{components.KindNone, components.KindPrey, components.KindPredator},
		{components.KindPredator, components.KindNone, components.KindNone},
	}}

	tests := []struct {
		name   string
		glyphs Glyphs
		want   string
	}{
		{"default", DefaultGlyphs, ".oX\nX..\n"},
		{"custom", Glyphs{Empty: ' ', Prey: 'a', Predator: 'D'}, " aD\nD  \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewText(tt.glyphs).Render(&buf, snap); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("Render = %q, want %q", buf.String(), tt.want)
			}
			if s := NewText(tt.glyphs).String(snap); s != tt.want {
				t.Errorf("String = %q, want %q", s, tt.want)
			}
		})
	}
}

func TestGlyphsFromConfig(t *testing.T) {
	if got := GlyphsFromConfig(config.Default()); got != DefaultGlyphs {
		t.Errorf("default config glyphs = %+v, want %+v", got, DefaultGlyphs)
	}
}

func TestRenderGameGrid(t *testing.T) {
	cfg := config.Default()
	cfg.World.Rows, cfg.World.Cols = 4, 6
	cfg.Population.Prey, cfg.Population.Predators = 5, 2

	g, err := game.NewGame(game.Options{Seed: 9, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}
	defer g.Close()

	out := NewText(DefaultGlyphs).String(g.Snapshot())
	if len(out) != 4*7 {
		t.Fatalf("rendered %d bytes, want %d", len(out), 4*7)
	}
	if n := bytes.Count([]byte(out), []byte("o")); n != 5 {
		t.Errorf("rendered %d ants, want 5", n)
	}
	if n := bytes.Count([]byte(out), []byte("X")); n != 2 {
		t.Errorf("rendered %d doodlebugs, want 2", n)
	}
}
