package core

import "image/color"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility; the windowed
// frontend maps the same names to RGB.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

type paletteEntry struct {
	ansi string
	rgba color.RGBA
}

// palette is indexed by Color. ColorDefault has no ANSI code.
var palette = [...]paletteEntry{
	ColorDefault:       {"", color.RGBA{0xd0, 0xd0, 0xd0, 0xff}},
	ColorRed:           {"1", color.RGBA{0xcd, 0x31, 0x31, 0xff}},
	ColorGreen:         {"2", color.RGBA{0x0d, 0xbc, 0x79, 0xff}},
	ColorYellow:        {"3", color.RGBA{0xe5, 0xe5, 0x10, 0xff}},
	ColorBlue:          {"4", color.RGBA{0x24, 0x72, 0xc8, 0xff}},
	ColorMagenta:       {"5", color.RGBA{0xbc, 0x3f, 0xbc, 0xff}},
	ColorCyan:          {"6", color.RGBA{0x11, 0xa8, 0xcd, 0xff}},
	ColorWhite:         {"7", color.RGBA{0xe5, 0xe5, 0xe5, 0xff}},
	ColorBrightRed:     {"9", color.RGBA{0xff, 0x3b, 0x5c, 0xff}},
	ColorBrightGreen:   {"10", color.RGBA{0x23, 0xd1, 0x8b, 0xff}},
	ColorBrightYellow:  {"11", color.RGBA{0xf5, 0xf5, 0x43, 0xff}},
	ColorBrightBlue:    {"12", color.RGBA{0x3b, 0x8e, 0xea, 0xff}},
	ColorBrightMagenta: {"13", color.RGBA{0xff, 0x4f, 0xd8, 0xff}},
	ColorBrightCyan:    {"14", color.RGBA{0x29, 0xf0, 0xff, 0xff}},
	ColorBrightWhite:   {"15", color.RGBA{0xff, 0xff, 0xff, 0xff}},
	ColorOrange:        {"208", color.RGBA{0xff, 0x87, 0x00, 0xff}},
	ColorGray:          {"245", color.RGBA{0x8a, 0x8a, 0x8a, 0xff}},
}

// ANSI returns the 256-color code of c, empty for the terminal default.
func (c Color) ANSI() string {
	if int(c) >= len(palette) {
		return ""
	}
	return palette[c].ansi
}

// RGBA returns the windowed rendition of c.
func (c Color) RGBA() color.RGBA {
	if int(c) >= len(palette) {
		return palette[ColorDefault].rgba
	}
	return palette[c].rgba
}
