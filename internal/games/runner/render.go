package runner

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/neometro/internal/core"
)

// Glyphs for the top-down terminal view.
const (
	RoadEdge      = '│'
	LaneMark      = '┊'
	TileMark      = '─'
	ObstacleChar  = '▓'
	PlayerGround  = '▲'
	PlayerAir     = '◆'
	PlayerShadow  = '·'
	PlayerStumble = '✖'
)

// view maps world coordinates to screen cells. The player sits near the
// bottom and the road scrolls towards them.
type view struct {
	w, h      int
	laneW     int
	roadX     int
	roadW     int
	playerRow int
	rowsPerM  float64
	refZ      float64
	laneDist  float64
}

func newView(dst *core.Screen, refZ, ahead, laneDist float64) view {
	w, h := dst.Width(), dst.Height()
	laneW := core.Clamp((w-4)/LaneCount, 3, 15)
	roadW := LaneCount*laneW + LaneCount + 1
	playerRow := h - 3
	return view{
		w:         w,
		h:         h,
		laneW:     laneW,
		roadX:     (w - roadW) / 2,
		roadW:     roadW,
		playerRow: playerRow,
		rowsPerM:  float64(playerRow-1) / ahead,
		refZ:      refZ,
		laneDist:  laneDist,
	}
}

// row returns the screen row of a travel-axis position.
func (v view) row(z float64) int {
	return v.playerRow - int(math.Round((z-v.refZ)*v.rowsPerM))
}

// z returns the travel-axis position shown on a row.
func (v view) z(row int) float64 {
	return v.refZ + float64(v.playerRow-row)/v.rowsPerM
}

// col returns the screen column of a lateral position.
func (v view) col(x float64) int {
	center := v.roadX + 1 + CenterLane*(v.laneW+1) + v.laneW/2
	return center + int(math.Round(x/v.laneDist*float64(v.laneW+1)))
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil || dst.Height() < 6 || dst.Width() < 20 {
		return
	}
	s := g.session
	v := newView(dst, s.Player().Position().Z, g.cfg.View.VisibleAhead, g.cfg.Player.LaneDistance)

	g.drawRoad(dst, v)
	g.drawObstacles(dst, v)
	g.drawPlayer(dst, v)

	if g.hud.visible {
		g.drawHUD(dst)
	}

	switch {
	case s.Phase() == PhaseIntro:
		g.drawIntro(dst)
	case g.hud.gameOver:
		g.drawGameOver(dst)
	case s.Phase() == PhaseStumbling:
		dst.DrawTextCenteredColored(v.playerRow-2, " STUMBLED! ", core.ColorBrightYellow)
	case s.Paused():
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawRoad(dst *core.Screen, v view) {
	left, right := v.roadX, v.roadX+v.roadW-1
	for y := 1; y < v.h; y++ {
		dst.SetColored(left, y, RoadEdge, core.ColorGray)
		dst.SetColored(right, y, RoadEdge, core.ColorGray)
		if int(math.Floor(v.z(y)/2))%2 == 0 {
			for lane := 1; lane < LaneCount; lane++ {
				dst.SetColored(v.roadX+lane*(v.laneW+1), y, LaneMark, core.ColorGray)
			}
		}
	}

	for _, seg := range g.session.Tiles().Segments() {
		y := v.row(seg.Z)
		if y < 1 || y >= v.h {
			continue
		}
		for x := left + 1; x < right; x++ {
			if dst.Get(x, y) == ' ' {
				dst.SetColored(x, y, TileMark, core.ColorGray)
			}
		}
		dst.DrawTextColored(right+2, y, fmt.Sprintf("%d", int(seg.Z)), core.ColorGray)
	}
}

func (g *Game) drawObstacles(dst *core.Screen, v view) {
	half := g.cfg.Obstacles.Length / 2
	for _, o := range g.session.Pool().Active() {
		top, bottom := v.row(o.Pos.Z+half), v.row(o.Pos.Z-half)
		if bottom < 1 || top >= v.h {
			continue
		}
		x0 := v.col(o.Pos.X) - v.laneW/2
		for y := max(top, 1); y <= bottom; y++ {
			for dx := 0; dx < v.laneW; dx++ {
				dst.SetColored(x0+dx, y, ObstacleChar, core.ColorBrightRed)
			}
		}
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v view) {
	p := g.session.Player()
	x := v.col(p.Position().X)
	switch {
	case p.Stumbling():
		dst.SetColored(x, v.playerRow, PlayerStumble, core.ColorBrightYellow)
	case p.Grounded():
		dst.SetColored(x, v.playerRow, PlayerGround, core.ColorBrightCyan)
	default:
		lift := 1 + int(p.Position().Y)
		dst.SetColored(x, v.playerRow, PlayerShadow, core.ColorGray)
		dst.SetColored(x, v.playerRow-lift, PlayerAir, core.ColorBrightCyan)
	}
}

func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	left := fmt.Sprintf(" Score: %d  Hi: %d ", g.hud.score, s.Scorer().High())
	dst.DrawTextColored(1, 0, left, core.ColorBrightWhite)

	right := fmt.Sprintf(" %dm  %.1f m/s  ♪%3d%% ",
		int(s.Distance()), s.Player().Speed(), int(math.Round(s.Music().Volume()*100)))
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, core.ColorGray)
}

func (g *Game) drawIntro(dst *core.Screen) {
	intro := g.session.Intro()
	boxW := core.Min(dst.Width()-4, 64)
	textW := boxW - 4

	type styled struct {
		text  string
		color core.Color
	}
	var rows []styled
	for _, l := range intro.Lines() {
		for _, t := range Wrap(l.Text, textW) {
			rows = append(rows, styled{t, l.Style.Color()})
		}
	}

	panel, total := intro.Panel()
	boxH := core.Min(len(rows)+4, dst.Height()-2)
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBoxColored(r, core.ColorMagenta)
	dst.DrawTextColored(r.X+2, r.Y, fmt.Sprintf(" %d/%d ", panel+1, total), core.ColorMagenta)

	for i, row := range rows {
		y := r.Y + 2 + i
		if y >= r.Bottom()-1 {
			break
		}
		dst.DrawTextColored(r.X+2, y, row.text, row.color)
	}
}

// Color is the palette entry both frontends use for a story line.
func (s LineStyle) Color() core.Color {
	switch s {
	case StyleStrong:
		return core.ColorBrightMagenta
	case StyleHint:
		return core.ColorGray
	default:
		return core.ColorBrightWhite
	}
}

func (g *Game) drawGameOver(dst *core.Screen) {
	lines := []string{
		"GAME OVER",
		"",
		fmt.Sprintf("Score: %d", g.hud.final),
		fmt.Sprintf("High Score: %d", g.hud.high),
	}
	if g.session.Result().Improved {
		lines = append(lines, "NEW HIGH SCORE!")
	}
	lines = append(lines, "", "Press R to restart")

	boxW := 0
	for _, l := range lines {
		boxW = core.Max(boxW, utf8.RuneCountInString(l))
	}
	boxW += 6
	boxH := len(lines) + 2
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)
	dst.FillRect(r, ' ', core.ColorDefault)
	dst.DrawBoxColored(r, core.ColorBrightRed)
	for i, l := range lines {
		c := core.ColorBrightWhite
		if i == 0 {
			c = core.ColorBrightRed
		}
		x := r.X + (boxW-utf8.RuneCountInString(l))/2
		dst.DrawTextColored(x, r.Y+1+i, l, c)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	r := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r)
	dst.DrawText(r.X+(boxW-len(title))/2, r.Y+1, title)
	dst.DrawText(r.X+(boxW-len(subtitle))/2, r.Y+3, subtitle)
}

// Wrap breaks text into lines of at most width runes on word boundaries.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 || width <= 0 {
		return []string{""}
	}
	var (
		lines []string
		cur   strings.Builder
	)
	for _, w := range words {
		n := utf8.RuneCountInString(cur.String())
		if n > 0 && n+1+utf8.RuneCountInString(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	return append(lines, cur.String())
}
