package core

// Color is the foreground color of a screen cell.
// The platform layer decides how each value maps to terminal or window colors.
type Color uint8

// Palette used by the flappy renderer and HUD.
const (
	ColorDefault Color = iota
	ColorSky
	ColorPipe
	ColorPipeCap
	ColorBird
	ColorBirdEye
	ColorGround
	ColorScore
	ColorBanner
	ColorDanger
	ColorMuted
)

// String returns the palette name, mostly for debugging screenshots.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorSky:
		return "sky"
	case ColorPipe:
		return "pipe"
	case ColorPipeCap:
		return "pipe-cap"
	case ColorBird:
		return "bird"
	case ColorBirdEye:
		return "bird-eye"
	case ColorGround:
		return "ground"
	case ColorScore:
		return "score"
	case ColorBanner:
		return "banner"
	case ColorDanger:
		return "danger"
	case ColorMuted:
		return "muted"
	default:
		return "unknown"
	}
}
