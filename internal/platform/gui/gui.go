// Package gui is the windowed frame driver built on ebiten. It draws the
// world at its native resolution and takes mouse clicks as well as keys.
package gui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/driver"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	skyColor     = color.RGBA{0x70, 0xc5, 0xce, 0xff}
	pipeColor    = color.RGBA{0x2e, 0x8b, 0x57, 0xff}
	pipeCapColor = color.RGBA{0x3c, 0xb3, 0x71, 0xff}
	birdColor    = color.RGBA{0xff, 0xd7, 0x00, 0xff}
	eyeColor     = color.RGBA{0xff, 0x8c, 0x00, 0xff}
	groundColor  = color.RGBA{0xde, 0xb8, 0x87, 0xff}
	grassColor   = color.RGBA{0x8b, 0xc3, 0x4a, 0xff}
)

const capHeight = 16

// Options configures a windowed session.
type Options struct {
	Runtime  core.RuntimeConfig
	Name     string // submitted on game over when set
	Reporter driver.Reporter
	Logger   *log.Logger
}

// App implements ebiten.Game around one flappy game.
type App struct {
	game      *flappy.Game
	opts      Options
	fixedSeed bool
	logger    *log.Logger

	run      int // bumped on every reset
	reported bool
	reports  chan runReport
	status   string
}

// runReport ties a report to the run that produced it.
type runReport struct {
	run int
	rep driver.Report
}

// New creates the app and resets the game.
func New(game *flappy.Game, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}

	a := &App{
		game:      game,
		opts:      opts,
		fixedSeed: opts.Runtime.Seed != 0,
		logger:    logger.WithPrefix("gui"),
		reports:   make(chan runReport, 1),
	}
	a.reset()
	return a
}

func (a *App) reset() {
	if !a.fixedSeed {
		a.opts.Runtime.Seed = time.Now().UnixNano()
	}
	a.game.Reset(a.opts.Runtime)
	a.run++
	a.reported = false
	a.status = ""
}

// Update advances the game by one tick.
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	select {
	case r := <-a.reports:
		if r.run == a.run {
			a.status = reportStatus(r.rep)
		}
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.reset()
		return nil
	}

	in := core.NewInputFrame()
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) ||
		inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		in.Set(core.ActionFlap)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		in.Set(core.ActionPause)
	}

	res := a.game.Step(in)
	if res.Has(core.EventGameOver) {
		a.finish(res.State.Score)
	}
	return nil
}

// finish records the run once per game, off the update loop.
func (a *App) finish(score int) {
	if a.reported {
		return
	}
	a.reported = true
	a.logger.Info("game over", "mode", a.game.ID(), "score", score)

	if a.opts.Name != "" && a.opts.Reporter.Leaderboard != nil {
		a.status = "Submitting..."
	}
	reporter, mode, name, run := a.opts.Reporter, a.game.ID(), a.opts.Name, a.run
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		rep := reporter.Record(ctx, mode, name, score)
		select {
		case a.reports <- runReport{run: run, rep: rep}:
		default:
		}
	}()
}

func reportStatus(rep driver.Report) string {
	switch {
	case rep.Submitted && rep.Message != "":
		return "Score submitted: " + rep.Message
	case rep.Submitted:
		return "Score submitted"
	case rep.Err != nil:
		return "Could not submit score"
	case rep.RunID != 0:
		return "Saved locally"
	}
	return ""
}

// Draw renders the world.
func (a *App) Draw(screen *ebiten.Image) {
	w := a.game.World()
	cfg := w.Config()
	screen.Fill(skyColor)

	width := float32(cfg.World.Width)
	ground := float32(cfg.World.GroundY)
	pipeW := float32(cfg.Obstacles.PipeWidth)

	for _, o := range w.Obstacles() {
		x := float32(o.X)
		top := o.TopBox(cfg.Obstacles)
		bottom := o.BottomBox(cfg.Obstacles, cfg.World.GroundY)

		if top.Bottom() > 0 {
			vector.DrawFilledRect(screen, x, 0, pipeW, float32(top.Bottom()), pipeColor, false)
			vector.DrawFilledRect(screen, x-2, float32(top.Bottom())-capHeight, pipeW+4, capHeight, pipeCapColor, false)
		}
		if float32(bottom.Y) < ground {
			vector.DrawFilledRect(screen, x, float32(bottom.Y), pipeW, ground-float32(bottom.Y), pipeColor, false)
			vector.DrawFilledRect(screen, x-2, float32(bottom.Y), pipeW+4, capHeight, pipeCapColor, false)
		}
	}

	vector.DrawFilledRect(screen, 0, ground, width, float32(cfg.World.Height)-ground, groundColor, false)
	vector.DrawFilledRect(screen, 0, ground, width, 6, grassColor, false)

	snap := w.Snapshot()
	bx, by := float32(snap.BirdX), float32(snap.BirdY)
	bw, bh := float32(cfg.Player.Width), float32(cfg.Player.Height)
	vector.DrawFilledRect(screen, bx, by, bw, bh, birdColor, true)
	vector.DrawFilledRect(screen, bx+bw-10, by+5, 5, 5, eyeColor, true)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", snap.Score), 10, 10)

	cx, cy := int(width)/2-60, int(ground)/2-40
	switch {
	case snap.Phase == core.PhaseWaiting:
		ebitenutil.DebugPrintAt(screen, a.game.Title(), cx, cy)
		ebitenutil.DebugPrintAt(screen, "Click or press SPACE", cx, cy+16)
	case snap.Phase == core.PhaseOver:
		ebitenutil.DebugPrintAt(screen, "GAME OVER", cx, cy)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d  -  R to restart", snap.Score), cx, cy+16)
	case a.game.State().Paused:
		ebitenutil.DebugPrintAt(screen, "PAUSED", cx, cy)
	}
	if a.status != "" {
		ebitenutil.DebugPrintAt(screen, a.status, 10, int(cfg.World.Height)-20)
	}
}

// Layout keeps the logical screen at the world's size; ebiten scales it.
func (a *App) Layout(_, _ int) (int, int) {
	cfg := a.game.World().Config()
	return int(cfg.World.Width), int(cfg.World.Height)
}

// Run opens the window and blocks until it is closed.
func Run(game *flappy.Game, opts Options) error {
	app := New(game, opts)
	cfg := game.World().Config()

	ebiten.SetWindowSize(int(cfg.World.Width), int(cfg.World.Height))
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetTPS(app.opts.Runtime.TickRate)

	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("gui: %w", err)
	}
	return nil
}
