package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	BirdChar      = '●'
	BirdEyeChar   = '▶'
	GroundChar    = '▀'
	GroundFill    = '░'
)

// viewport maps world units onto screen cells. The whole world is
// stretched to the screen so the terminal size does not change gameplay.
type viewport struct {
	worldW, worldH float64
	w, h           int
}

func newViewport(dst *core.Screen, worldW, worldH float64) viewport {
	return viewport{
		worldW: worldW,
		worldH: worldH,
		w:      dst.Width(),
		h:      dst.Height(),
	}
}

func (v viewport) col(x float64) int { return int(math.Floor(x * float64(v.w) / v.worldW)) }
func (v viewport) row(y float64) int { return int(math.Floor(y * float64(v.h) / v.worldH)) }

// cols returns the cell range [from, to) covering world interval [a, b],
// at least one cell wide. rows is the vertical counterpart.
func (v viewport) cols(a, b float64) (int, int) {
	from, to := v.col(a), v.col(b)
	return from, max(to, from+1)
}

func (v viewport) rows(a, b float64) (int, int) {
	from, to := v.row(a), v.row(b)
	return from, max(to, from+1)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil || dst.Width() == 0 || dst.Height() == 0 {
		return
	}

	cfg := g.world.cfg
	vp := newViewport(dst, cfg.World.Width, cfg.World.Height)
	groundRow := min(vp.row(cfg.World.GroundY), vp.h-1)

	// Ground
	dst.DrawHLine(0, groundRow, vp.w, GroundChar, core.ColorGround)
	dst.FillRect(core.NewRect(0, groundRow+1, vp.w, vp.h-groundRow-1), GroundFill, core.ColorGround)

	for _, o := range g.world.obstacles {
		drawObstacle(dst, vp, o, cfg.Obstacles, groundRow)
	}

	drawBird(dst, vp, g.world)

	// HUD
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", g.world.score), core.ColorScore)
	if g.world.difficulty.Progressive() {
		speed := fmt.Sprintf(" x%.2f ", g.world.Speed()/cfg.Physics.BaseSpeed)
		dst.DrawTextColored(vp.w-len(speed)-2, 0, speed, core.ColorMuted)
	}

	switch {
	case g.world.phase == core.PhaseWaiting:
		drawCenteredMessage(dst, g.mode.Title, "Press SPACE to flap", core.ColorBanner)
	case g.world.phase == core.PhaseOver:
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.world.score), core.ColorDanger)
	case g.paused:
		drawCenteredMessage(dst, "PAUSED", "Press P to resume", core.ColorBanner)
	}
}

// drawObstacle renders one pipe pair clipped to the area above the ground.
func drawObstacle(dst *core.Screen, vp viewport, o Obstacle, c config.FlappyObstacles, groundRow int) {
	x0, x1 := vp.cols(o.X, o.Right(c))
	if x1 <= 0 || x0 >= vp.w {
		return
	}

	// Top pipe: from its top edge (usually off-screen) down to the gap
	topFrom := max(vp.row(o.Y), 0)
	topTo := core.Clamp(vp.row(o.GapTop(c)), 0, groundRow)
	if topTo > topFrom {
		dst.FillRect(core.NewRect(x0, topFrom, x1-x0, topTo-topFrom), PipeChar, core.ColorPipe)
		dst.DrawHLine(x0, topTo-1, x1-x0, PipeCapTop, core.ColorPipeCap)
	}

	// Bottom pipe: from the gap down to the ground
	botFrom := max(vp.row(o.GapBottom(c)), 0)
	if botFrom < groundRow {
		dst.FillRect(core.NewRect(x0, botFrom, x1-x0, groundRow-botFrom), PipeChar, core.ColorPipe)
		dst.DrawHLine(x0, botFrom, x1-x0, PipeCapBottom, core.ColorPipeCap)
	}
}

func drawBird(dst *core.Screen, vp viewport, w *World) {
	p := w.cfg.Player
	x0, x1 := vp.cols(p.X, p.X+p.Width)
	y0, y1 := vp.rows(w.birdY, w.birdY+p.Height)
	dst.FillRect(core.NewRect(x0, y0, x1-x0, y1-y0), BirdChar, core.ColorBird)
	dst.SetColored(x1-1, y0, BirdEyeChar, core.ColorBirdEye)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string, c core.Color) {
	titleW := len([]rune(title))
	subW := len([]rune(subtitle))

	boxW := min(max(titleW, subW)+4, dst.Width())
	boxH := 5
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, title, c)
	dst.DrawTextCentered(box.Y+3, subtitle, core.ColorMuted)
}
