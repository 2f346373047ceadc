package core

import (
	"image/color"
	"testing"
)

func TestColorPalette(t *testing.T) {
	if got := ColorDefault.ANSI(); got != "" {
		t.Errorf("ColorDefault.ANSI() = %q, expected empty", got)
	}
	if got := ColorOrange.ANSI(); got != "208" {
		t.Errorf("ColorOrange.ANSI() = %q, expected 208", got)
	}

	for c := ColorDefault; c <= ColorGray; c++ {
		if c.RGBA().A != 0xff {
			t.Errorf("color %d is not opaque", c)
		}
	}

	unknown := Color(200)
	if unknown.ANSI() != "" {
		t.Error("unknown colors should have no ANSI code")
	}
	if unknown.RGBA() != ColorDefault.RGBA() {
		t.Error("unknown colors should fall back to the default")
	}
	if (ColorBrightCyan.RGBA() == color.RGBA{}) {
		t.Error("palette entry missing")
	}
}
