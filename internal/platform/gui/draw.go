package gui

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/neometro/internal/config"
	"github.com/vovakirdan/neometro/internal/core"
	"github.com/vovakirdan/neometro/internal/games/runner"
)

// Debug font metrics of ebitenutil.DebugPrint.
const (
	charW = 6
	lineH = 16
)

var (
	skyColor     = color.RGBA{0x0b, 0x08, 0x1a, 0xff}
	groundColor  = color.RGBA{0x14, 0x10, 0x2a, 0xff}
	tileColor    = color.RGBA{0x2a, 0x1f, 0x4d, 0xff}
	shadowColor  = color.RGBA{0x00, 0x00, 0x00, 0x90}
	overlayColor = color.RGBA{0x05, 0x03, 0x10, 0xd0}
)

// drawWorld renders the road, obstacles and player in perspective.
func drawWorld(dst *ebiten.Image, p projection, s *runner.Session) {
	dst.Fill(skyColor)
	vector.DrawFilledRect(dst, 0, float32(p.horizon), float32(p.width), float32(p.height-p.horizon), groundColor, false)

	player := s.Player()
	pz := player.Position().Z
	laneDist := s.Config().Player.LaneDistance
	halfRoad := laneDist * (float64(runner.LaneCount) / 2)

	drawTiles(dst, p, s.Tiles(), pz, halfRoad)
	drawRoadLines(dst, p, s.Tiles(), pz, laneDist, halfRoad)
	drawObstacles(dst, p, s, pz)
	drawPlayer(dst, p, player, s.Config().Player)
}

// drawTiles shades alternate tile segments and marks their back edges.
func drawTiles(dst *ebiten.Image, p projection, tiles *runner.TileStreamer, pz, halfRoad float64) {
	length := tiles.Length()
	for _, seg := range tiles.Segments() {
		near, far := p.depth(seg.Z, pz), p.depth(seg.Z+length, pz)
		if !p.visible(far) {
			continue
		}
		near = max(near, 0.1)
		_, yNear := p.point(0, 0, near)
		_, yFar := p.point(0, 0, far)
		if seg.ID%2 == 0 {
			xl, _ := p.point(-halfRoad, 0, far)
			xr, _ := p.point(halfRoad, 0, far)
			vector.DrawFilledRect(dst, float32(xl), float32(yFar), float32(xr-xl), float32(yNear-yFar), tileColor, false)
		}
		xl, _ := p.point(-halfRoad, 0, near)
		xr, _ := p.point(halfRoad, 0, near)
		vector.StrokeLine(dst, float32(xl), float32(yNear), float32(xr), float32(yNear), 1, core.ColorGray.RGBA(), false)
	}
}

// drawRoadLines draws the road edges and the lane dividers up to the end of
// the streamed tiles.
func drawRoadLines(dst *ebiten.Image, p projection, tiles *runner.TileStreamer, pz, laneDist, halfRoad float64) {
	_, end := tiles.Span()
	near, far := 0.1, p.depth(end, pz)
	for i := range runner.LaneCount + 1 {
		x := -halfRoad + float64(i)*laneDist
		x0, y0 := p.point(x, 0, near)
		x1, y1 := p.point(x, 0, far)
		c, w := core.ColorBrightMagenta.RGBA(), float32(3)
		if i > 0 && i < runner.LaneCount {
			c, w = core.ColorMagenta.RGBA(), 1
		}
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), w, c, true)
	}
}

// drawObstacles paints obstacles back to front as lit blocks.
func drawObstacles(dst *ebiten.Image, p projection, s *runner.Session, pz float64) {
	cfg := s.Config().Obstacles
	active := s.Pool().Active()
	sort.Slice(active, func(i, j int) bool { return active[i].Pos.Z > active[j].Pos.Z })

	for _, o := range active {
		front := p.depth(o.Pos.Z-cfg.Length/2, pz)
		if !p.visible(front) {
			continue
		}
		x, y := p.point(o.Pos.X-cfg.Width/2, cfg.Height, front)
		w, h := p.size(cfg.Width, front), p.size(cfg.Height, front)
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), core.ColorRed.RGBA(), false)
		vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 2, core.ColorBrightRed.RGBA(), false)
	}
}

// drawPlayer draws the runner with a ground shadow that stays put while
// jumping.
func drawPlayer(dst *ebiten.Image, p projection, pl *runner.Player, cfg config.PlayerConfig) {
	pos := pl.Position()
	d := p.camBack

	sx, sy := p.point(pos.X, 0, d)
	vector.DrawFilledCircle(dst, float32(sx), float32(sy), float32(p.size(cfg.Width*0.6, d)), shadowColor, true)

	c := core.ColorBrightCyan.RGBA()
	if pl.Stumbling() {
		c = core.ColorBrightYellow.RGBA()
	}
	x, y := p.point(pos.X-cfg.Width/2, pos.Y+cfg.Height, d)
	w, h := p.size(cfg.Width, d), p.size(cfg.Height, d)
	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), c, true)
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 2, core.ColorBrightWhite.RGBA(), true)
}

// drawHUD prints the score line at the top of the window.
func drawHUD(dst *ebiten.Image, p projection, h *hud, s *runner.Session) {
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("SCORE %d   HI %d", h.score, max(h.score, s.Scorer().High())), 8, 6)
	right := fmt.Sprintf("%4.0fm  %4.1fm/s", s.Distance(), s.Player().Speed())
	ebitenutil.DebugPrintAt(dst, right, int(p.width)-len(right)*charW-8, 6)
}

// drawPanel darkens the window and prints lines centered in a box.
func drawPanel(dst *ebiten.Image, p projection, title string, lines []panelLine) {
	widest := len(title)
	for _, l := range lines {
		widest = max(widest, len(l.text))
	}
	w := float64(widest*charW + 32)
	h := float64((len(lines)+2)*lineH + 24)
	x, y := (p.width-w)/2, (p.height-h)/2

	vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h), overlayColor, false)
	vector.StrokeRect(dst, float32(x), float32(y), float32(w), float32(h), 2, core.ColorMagenta.RGBA(), false)

	if title != "" {
		ebitenutil.DebugPrintAt(dst, title, int(x)+12, int(y)+8)
	}
	for i, l := range lines {
		ly := int(y) + 8 + (i+2)*lineH
		lx := int(p.width/2) - len(l.text)*charW/2
		// DebugPrint has a single colour; strong lines get an underline.
		ebitenutil.DebugPrintAt(dst, l.text, lx, ly)
		if l.color != core.ColorBrightWhite && l.text != "" {
			vector.StrokeLine(dst, float32(lx), float32(ly+lineH-2), float32(lx+len(l.text)*charW), float32(ly+lineH-2), 1, l.color.RGBA(), false)
		}
	}
}

type panelLine struct {
	text  string
	color core.Color
}

// introLines wraps the revealed intro text to fit the window.
func introLines(in *runner.Intro, width float64) []panelLine {
	cols := max(int(width)/charW-10, 10)
	var out []panelLine
	for _, l := range in.Lines() {
		for _, t := range runner.Wrap(l.Text, cols) {
			out = append(out, panelLine{t, l.Style.Color()})
		}
	}
	return out
}

// gameOverLines are the lines of the game-over panel.
func gameOverLines(final, high int, improved bool) []panelLine {
	lines := []panelLine{
		{fmt.Sprintf("Score: %d", final), core.ColorBrightWhite},
		{fmt.Sprintf("High Score: %d", high), core.ColorBrightWhite},
	}
	if improved {
		lines = append(lines, panelLine{"NEW HIGH SCORE!", core.ColorBrightYellow})
	}
	return append(lines,
		panelLine{"", core.ColorBrightWhite},
		panelLine{"Press R or tap to restart", core.ColorGray},
	)
}
