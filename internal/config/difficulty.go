package config

// DifficultyManager maps a run's progress to a difficulty level in [0, 1]
// and to the obstacle speed at that level.
type DifficultyManager struct {
	progression ProgressionConfig
	multiplier  float64
	start       float64
	progressive bool
}

// NewDifficultyManager creates a manager from config.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	d := &DifficultyManager{
		progression: cfg.Progression,
		multiplier:  cfg.Scaling.SpeedMultiplier,
		progressive: cfg.Enabled && (cfg.Progression.Type == "score" || cfg.Progression.Type == "time"),
	}
	d.SetInitialLevel(cfg.InitialLevel)
	return d
}

// SetInitialLevel sets the level a run starts at, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.start = max(0, min(1, level))
}

// Progressive reports whether the level moves during a run.
func (d *DifficultyManager) Progressive() bool {
	return d.progressive
}

// Level interpolates from the initial level to 1 as the score or the
// playing ticks approach max_at.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.progressive {
		return d.start
	}

	done := score
	if d.progression.Type == "time" {
		done = ticks
	}
	progress := min(float64(done)/float64(max(d.progression.MaxAt, 1)), 1)
	return d.start + progress*(1-d.start)
}

// Speed returns the obstacle scroll speed for the current level.
// With progression off and a zero initial level this is exactly baseSpeed.
func (d *DifficultyManager) Speed(baseSpeed float64, score, ticks int) float64 {
	return baseSpeed * (1 + d.Level(score, ticks)*d.multiplier)
}
