package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/core"
)

const (
	hudHeight  = 2 // HUD line + separator
	cellWidth  = 2 // Screen columns per arena cell, keeps cells roughly square
	crashTicks = 4 // Movement ticks the crash banner stays up
)

// arenaBox returns the screen rectangle of the arena including its border.
func (g *Game) arenaBox() core.Rect {
	a := g.session.Arena()
	return core.CenterRect(g.screenW, hudHeight, a.Width*cellWidth+2, a.Height+2)
}

// fits reports whether the arena and HUD fit on the screen.
func (g *Game) fits() bool {
	box := g.arenaBox()
	return g.screenW >= box.W && g.screenH >= hudHeight+box.H
}

// cellToScreen maps an arena cell to the screen. Arena Y grows upwards,
// screen rows grow downwards.
func (g *Game) cellToScreen(p Position) (int, int) {
	inner := g.arenaBox().Inner()
	a := g.session.Arena()
	return inner.X + p.X*cellWidth, inner.Y + (a.Height - 1 - p.Y)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(g.arenaBox(), core.ColorGray)

	for _, f := range g.session.Food() {
		x, y := g.cellToScreen(f)
		dst.SetColored(x, y, '*', core.ColorBrightRed)
	}

	segments := g.session.Segments()
	for i := len(segments) - 1; i >= 1; i-- {
		x, y := g.cellToScreen(segments[i])
		dst.SetColored(x, y, 'o', core.ColorGreen)
	}
	hx, hy := g.cellToScreen(segments[0])
	dst.SetColored(hx, hy, headRune(g.session.Heading()), core.ColorBrightGreen)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// headRune points the head glyph along the heading.
func headRune(d Direction) rune {
	switch d {
	case DirLeft:
		return '<'
	case DirRight:
		return '>'
	case DirDown:
		return 'v'
	default:
		return '^'
	}
}

// renderHUD draws the top status bar and the crash banner.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s - Length: %d  Eaten: %d  Best: %d  Crashes: %d",
		g.Title(), g.session.Length(), g.session.Eaten(), g.best, g.crashes)
	dst.DrawText(0, 0, hud)

	if g.crashFrames > 0 {
		dst.DrawHLine(0, 1, dst.Width(), ' ')
		banner := fmt.Sprintf(" Crashed: %s ", describeCrash(g.lastCrash))
		x := (dst.Width() - len([]rune(banner))) / 2
		dst.DrawTextColored(x, 1, banner, core.ColorBrightRed)
		return
	}
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// describeCrash turns a game over event into a short sentence.
func describeCrash(ev Event) string {
	switch ev.Collision {
	case CollisionWall:
		return fmt.Sprintf("hit the wall at length %d", ev.Length)
	case CollisionSelf:
		return fmt.Sprintf("bit its own tail at length %d", ev.Length)
	default:
		return "game over"
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		dst.DrawHLine(box.X+1, y, box.W-2, ' ')
	}
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
