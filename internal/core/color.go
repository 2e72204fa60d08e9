package core

import (
	"fmt"
	"strings"
)

// Color names a palette entry. Platforms map it to ANSI codes (terminal)
// or RGBA (window).
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorWhite
	ColorRed
	ColorGreen
	ColorBlue
	ColorYellow
	ColorGray
)

var colorNames = map[Color]string{
	ColorDefault: "default",
	ColorBlack:   "black",
	ColorWhite:   "white",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorBlue:    "blue",
	ColorYellow:  "yellow",
	ColorGray:    "gray",
}

// String returns the lower-case color name used in config files.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor resolves a config color name (case-insensitive).
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown color %q", name)
}
