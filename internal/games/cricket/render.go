package cricket

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tapcricket/internal/core"
	"github.com/vovakirdan/tapcricket/internal/games/cricket/sim"
)

// Visual characters for rendering
const (
	BallChar    = '●'
	BounceChar  = '○'
	StumpChar   = '┃'
	CreaseChar  = '─'
	ContactChar = '┄'
	PitchEdge   = '│'
	BatIdle     = '/'
	BatSwing    = '═'
)

const (
	pitchHalfW   = 4
	hudRows      = 2
	footerRows   = 2
	panelPadding = 6
)

// pitch maps world positions onto screen rows.
type pitch struct {
	top, bottom int
	lo, hi      float64
	cx          int
}

func (g *Game) layout(dst *core.Screen) pitch {
	p := g.cfg.Pitch
	return pitch{
		top:    hudRows,
		bottom: dst.Height() - footerRows - 1,
		lo:     p.SpawnY - p.SpawnJitter - p.BounceHeight,
		hi:     p.TerminusY,
		cx:     dst.Width() / 3,
	}
}

func (p pitch) row(y float64) int {
	return core.Clamp(core.Remap(y, p.lo, p.hi, p.top, p.bottom), p.top, p.bottom)
}

// Render draws the pitch, the ball and the side panel.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	now := g.timeline.Now()
	pt := g.layout(dst)

	g.drawPitch(dst, pt)
	g.drawBatter(dst, pt)

	if d, ok := g.engine.Active(); ok {
		ch := BallChar
		color := core.ColorRed
		switch {
		case d.Trajectory.Phase(now-d.SpawnTime) == sim.PhaseBounce:
			ch = BounceChar
		case d.Hittable(now):
			color = core.ColorBrightRed
		}
		dst.SetColored(pt.cx, pt.row(d.Position(now)), ch, color)

		label := strings.ToUpper(string(d.Archetype.Label))
		dst.DrawTextColored(dst.Width()-len(label)-2, 0, label, labelColor(d.Archetype.Label))
	}

	g.drawHUD(dst)
	g.drawPanel(dst, pt)

	dst.DrawTextColored(2, dst.Height()-1, "SPACE swing  P pause  R restart  Q quit", core.ColorGray)

	if g.paused {
		dst.DrawMessageBox([]string{"PAUSED", "", "Press P to resume"}, core.ColorWhite)
	}
	if g.summary != nil {
		g.drawGameOver(dst)
	}
}

func (g *Game) drawPitch(dst *core.Screen, pt pitch) {
	p := g.cfg.Pitch
	height := pt.bottom - pt.top + 1
	dst.DrawVLine(pt.cx-pitchHalfW, pt.top, height, PitchEdge, core.ColorGray)
	dst.DrawVLine(pt.cx+pitchHalfW, pt.top, height, PitchEdge, core.ColorGray)

	// Bowler's stumps and crease
	spawnRow := pt.row(p.SpawnY)
	dst.DrawText(pt.cx-1, spawnRow, string([]rune{StumpChar, StumpChar, StumpChar}))
	dst.DrawHLine(pt.cx-pitchHalfW+1, spawnRow+1, 2*pitchHalfW-1, CreaseChar, core.ColorWhite)

	// Batting zone, contact line and the batter's crease
	zoneTop := pt.row(p.ContactY - p.ZoneBefore)
	zoneBottom := pt.row(p.ContactY + p.ZoneAfter)
	for y := zoneTop; y <= zoneBottom; y++ {
		dst.SetColored(pt.cx-pitchHalfW, y, '┆', core.ColorYellow)
		dst.SetColored(pt.cx+pitchHalfW, y, '┆', core.ColorYellow)
	}
	dst.DrawHLine(pt.cx-pitchHalfW+1, pt.row(p.ContactY), 2*pitchHalfW-1, ContactChar, core.ColorYellow)
	dst.DrawHLine(pt.cx-pitchHalfW+1, pt.row(p.CreaseY), 2*pitchHalfW-1, CreaseChar, core.ColorWhite)

	stumpRow := pt.row(p.PassY)
	for dx := -1; dx <= 1; dx++ {
		dst.SetColored(pt.cx+dx, stumpRow, StumpChar, core.ColorOrange)
	}
}

func (g *Game) drawBatter(dst *core.Screen, pt pitch) {
	row := pt.row(g.cfg.Pitch.ContactY)
	now := g.timeline.Now()
	if g.swung && now-g.lastSwing < swingFlash {
		dst.DrawHLine(pt.cx-2, row, 3, BatSwing, core.ColorBrightYellow)
		return
	}
	dst.SetColored(pt.cx+2, row, BatIdle, core.ColorYellow)
}

func (g *Game) drawHUD(dst *core.Screen) {
	st := g.engine.State()
	hud := fmt.Sprintf(" Score: %d  Balls: %d  Best: %d ", st.Score, st.AttemptsRemaining, st.HighScore)
	dst.DrawText(2, 0, hud)
}

func (g *Game) drawPanel(dst *core.Screen, pt pitch) {
	now := g.timeline.Now()
	x := pt.cx + pitchHalfW + panelPadding
	mid := dst.Height() / 2

	if g.message.visible(now) {
		dst.DrawTextColored(x, mid-2, g.message.text, g.message.color)
	}
	if g.feedback.visible(now) {
		dst.DrawTextColored(x, mid, g.feedback.text, g.feedback.color)
	}
	if g.lastShot != nil && g.lastShot.Outcome != sim.OutcomeUnplayed {
		acc := int(math.Round(g.lastShot.Accuracy * 100))
		dst.DrawTextColored(x, mid+2, fmt.Sprintf("Accuracy: %d%%", acc), core.ColorGray)
	}
	if g.engine.Phase() == sim.StateIdle || g.engine.Phase() == sim.StateResolved {
		dst.DrawTextColored(x, mid+4, "Next ball coming...", core.ColorGray)
	}
}

func (g *Game) drawGameOver(dst *core.Screen) {
	sum := *g.summary
	best := fmt.Sprintf("High Score: %d", sum.HighScore)
	if sum.IsNewHighScore {
		best = fmt.Sprintf("NEW HIGH SCORE: %d!", sum.HighScore)
	}
	dst.DrawMessageBox([]string{
		"GAME OVER",
		"",
		fmt.Sprintf("Final Score: %d", sum.FinalScore),
		best,
		"",
		"Press R to restart",
	}, core.ColorGold)
}
