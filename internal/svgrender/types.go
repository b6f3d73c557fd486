// Package svgrender draws a transit map for Map queries. It is a concrete,
// non-generic collaborator, kept separate from the core catalogue/router
// packages, which only need something that turns a catalogue snapshot into
// an SVG string.
package svgrender

// Settings configures map rendering. The core passes this through opaquely;
// svgrender is the one place that gives it concrete meaning.
type Settings struct {
	Width, Height   float64
	Padding         float64
	LineWidth       float64
	StopRadius      float64
	StopLabelFont   float64
	BusLabelFont    float64
	UnderlayerWidth float64
	UnderlayerColor string
	ColorPalette    []string
	BusLabelOffset  [2]float64
	StopLabelOffset [2]float64
}

// DefaultSettings returns the settings svgrender falls back to when the
// caller supplies the zero value (e.g. render_settings was omitted from the
// input blob).
func DefaultSettings() Settings {
	return Settings{
		Width: 600, Height: 400, Padding: 50,
		LineWidth: 14, StopRadius: 5,
		StopLabelFont: 20, BusLabelFont: 20,
		UnderlayerWidth: 3, UnderlayerColor: "white",
		ColorPalette:    []string{"green", "red", "blue"},
		BusLabelOffset:  [2]float64{7, 15},
		StopLabelOffset: [2]float64{7, -3},
	}
}

// IsZero reports whether s is the unset value (so callers know to fall back
// to DefaultSettings). Width/Height are always positive once declared, so
// both being zero is a reliable "never set" signal.
func (s Settings) IsZero() bool {
	return s.Width == 0 && s.Height == 0
}
