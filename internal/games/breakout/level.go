// Package breakout implements the Breakout game: paddle, ball, block grid
// and the session state machine that drives them.
package breakout

import (
	"fmt"

	"github.com/vovakirdan/breakout/internal/config"
	"github.com/vovakirdan/breakout/internal/core"
)

// Block is a static target. It is removed when its health reaches zero.
type Block struct {
	Rect   core.Rect
	Color  core.Color
	Points int
	Health int
}

// Hit takes one point of health.
func (b *Block) Hit() {
	b.Health--
}

// Destroyed reports whether the block should be removed.
func (b *Block) Destroyed() bool {
	return b.Health <= 0
}

// PaletteEntry is a resolved block color and its point value.
type PaletteEntry struct {
	Color  core.Color
	Points int
}

// ParsePalette resolves config color names.
func ParsePalette(cfg []config.PaletteConfig) ([]PaletteEntry, error) {
	palette := make([]PaletteEntry, 0, len(cfg))
	for i, p := range cfg {
		c, err := core.ParseColor(p.Color)
		if err != nil {
			return nil, fmt.Errorf("breakout: palette[%d]: %w", i, err)
		}
		palette = append(palette, PaletteEntry{Color: c, Points: p.Points})
	}
	if len(palette) == 0 {
		return nil, fmt.Errorf("breakout: empty palette")
	}
	return palette, nil
}

// Layout describes the block grid.
type Layout struct {
	BlockW, BlockH float64
	GapX, GapY     float64
	FieldW         float64 // Columns start while x < FieldW
	FieldH         float64 // Rows start while y < FieldH
}

// GenerateBlocks fills the grid column by column from the top-left corner,
// picking each block's color uniformly from the palette.
func GenerateBlocks(l Layout, palette []PaletteEntry, rng *SimpleRNG) []*Block {
	stepX := l.BlockW + l.GapX
	stepY := l.BlockH + l.GapY
	if stepX <= 0 || stepY <= 0 || len(palette) == 0 {
		return nil
	}

	var blocks []*Block
	for x := 0.0; x < l.FieldW; x += stepX {
		for y := 0.0; y < l.FieldH; y += stepY {
			p := palette[rng.Intn(len(palette))]
			blocks = append(blocks, &Block{
				Rect:   core.NewRect(x, y, l.BlockW, l.BlockH),
				Color:  p.Color,
				Points: p.Points,
				Health: 1,
			})
		}
	}
	return blocks
}
