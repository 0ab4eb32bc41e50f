package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a top/bottom pipe pair sharing one horizontal position.
// X is the left edge; Y is the gap offset, i.e. the top edge of the top pipe.
// The top pipe spans [Y, Y+pipe_height], the bottom pipe starts at Y+bottom_offset.
type Obstacle struct {
	X float64
	Y float64
}

// GapTop returns the lower boundary of the top pipe.
func (o Obstacle) GapTop(c config.FlappyObstacles) float64 {
	return o.Y + c.PipeHeight
}

// GapBottom returns the upper boundary of the bottom pipe.
func (o Obstacle) GapBottom(c config.FlappyObstacles) float64 {
	return o.Y + c.BottomOffset
}

// Right returns the trailing edge used for scoring and retirement.
func (o Obstacle) Right(c config.FlappyObstacles) float64 {
	return o.X + c.PipeWidth
}

// TopBox returns the top pipe segment.
func (o Obstacle) TopBox(c config.FlappyObstacles) core.Box {
	return core.NewBox(o.X, o.Y, c.PipeWidth, c.PipeHeight)
}

// BottomBox returns the bottom pipe segment, extended down to groundY.
func (o Obstacle) BottomBox(c config.FlappyObstacles, groundY float64) core.Box {
	top := o.GapBottom(c)
	return core.NewBox(o.X, top, c.PipeWidth, max(groundY-top, c.PipeHeight))
}

// Collides reports whether the bird is inside this obstacle's column but
// outside its gap. Edges are inclusive: touching a pipe is a hit.
func (o Obstacle) Collides(bird core.Box, c config.FlappyObstacles) bool {
	column := core.NewBox(o.X, o.Y, c.PipeWidth, c.BottomOffset+c.PipeHeight)
	if !bird.OverlapsX(column) {
		return false
	}
	return bird.Y <= o.GapTop(c) || bird.Bottom() >= o.GapBottom(c)
}

// Obstacles returns a copy of the obstacle queue, leftmost first.
func (w *World) Obstacles() []Obstacle {
	out := make([]Obstacle, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// NextObstacle returns the first obstacle whose trailing edge is still at or
// right of the bird, i.e. the one the bird has to pass next.
func (w *World) NextObstacle() (Obstacle, bool) {
	return nextObstacle(w.obstacles, w.cfg, w.cfg.Player.X)
}
