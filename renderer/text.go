// Package renderer draws simulation snapshots.
package renderer

import (
	"bufio"
	"io"
	"strings"

	"github.com/pthm-cable/wator/components"
	"github.com/pthm-cable/wator/config"
	"github.com/pthm-cable/wator/game"
)

// Glyphs maps each cell state to the rune drawn for it.
type Glyphs struct {
	Empty    rune
	Prey     rune
	Predator rune
}

// DefaultGlyphs is the classic '.', 'o', 'X' set.
var DefaultGlyphs = Glyphs{Empty: '.', Prey: 'o', Predator: 'X'}

// GlyphsFromConfig reads the glyph set from the render section.
func GlyphsFromConfig(cfg *config.Config) Glyphs {
	return Glyphs{
		Empty:    cfg.Derived.EmptyGlyph,
		Prey:     cfg.Derived.PreyGlyph,
		Predator: cfg.Derived.PredatorGlyph,
	}
}

// For returns the glyph for kind.
func (gl Glyphs) For(kind components.Kind) rune {
	switch kind {
	case components.KindPrey:
		return gl.Prey
	case components.KindPredator:
		return gl.Predator
	default:
		return gl.Empty
	}
}

// Text renders a snapshot as one line of glyphs per grid row.
type Text struct {
	Glyphs Glyphs
}

// NewText creates a text renderer with the given glyphs.
func NewText(glyphs Glyphs) *Text {
	return &Text{Glyphs: glyphs}
}

// Render writes the grid, one newline-terminated line per row.
func (t *Text) Render(w io.Writer, snap game.Snapshot) error {
	bw := bufio.NewWriter(w)
	for _, row := range snap.Cells {
		for _, k := range row {
			if _, err := bw.WriteRune(t.Glyphs.For(k)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the rendered grid.
func (t *Text) String(snap game.Snapshot) string {
	var sb strings.Builder
	t.Render(&sb, snap)
	return sb.String()
}
