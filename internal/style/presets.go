package style

import (
	"image/color"
	"strings"

	"github.com/edward-ap/stepprogress/internal/progress"
)

// Preset is a named set of the four bar colors.
type Preset struct {
	Name       string
	Marker     color.NRGBA
	Progress   color.NRGBA
	Background color.NRGBA
	Text       color.NRGBA
}

var defaultPresets = []Preset{
	{
		Name:       "Classic",
		Marker:     progress.DefaultMarkerColor,
		Progress:   progress.DefaultProgressColor,
		Background: progress.DefaultBackgroundColor,
		Text:       progress.DefaultTextColor,
	},
	{
		Name:       "Night",
		Marker:     color.NRGBA{R: 0x1E, G: 0x1E, B: 0x2E, A: 0xFF},
		Progress:   color.NRGBA{R: 0x89, G: 0xB4, B: 0xFA, A: 0xFF},
		Background: color.NRGBA{R: 0x45, G: 0x47, B: 0x5A, A: 0xFF},
		Text:       color.NRGBA{R: 0xCD, G: 0xD6, B: 0xF4, A: 0xFF},
	},
	{
		Name:       "Ocean",
		Marker:     color.NRGBA{R: 0xE0, G: 0xF7, B: 0xFA, A: 0xFF},
		Progress:   color.NRGBA{R: 0x00, G: 0x83, B: 0x8F, A: 0xFF},
		Background: color.NRGBA{R: 0xB2, G: 0xDF, B: 0xDB, A: 0xFF},
		Text:       color.NRGBA{R: 0x00, G: 0x4D, B: 0x40, A: 0xFF},
	},
	{
		Name:       "Ember",
		Marker:     color.NRGBA{R: 0xFF, G: 0xF3, B: 0xE0, A: 0xFF},
		Progress:   color.NRGBA{R: 0xE6, G: 0x4A, B: 0x19, A: 0xFF},
		Background: color.NRGBA{R: 0x5D, G: 0x40, B: 0x37, A: 0xFF},
		Text:       color.NRGBA{R: 0xBF, G: 0x36, B: 0x0C, A: 0xFF},
	},
}

// DefaultPresets returns a copy of the bundled presets.
func DefaultPresets() []Preset {
	out := make([]Preset, len(defaultPresets))
	copy(out, defaultPresets)
	return out
}

// PresetNames lists the bundled preset names in order.
func PresetNames() []string {
	names := make([]string, len(defaultPresets))
	for i, p := range defaultPresets {
		names[i] = p.Name
	}
	return names
}

// FindPreset performs a case-insensitive lookup across the bundled presets.
func FindPreset(name string) (Preset, bool) {
	name = strings.TrimSpace(name)
	for _, p := range defaultPresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

// ApplyPreset writes the preset's colors into the view.
func ApplyPreset(p Preset, v *progress.View) {
	v.SetMarkerColor(p.Marker)
	v.SetProgressColor(p.Progress)
	v.SetBackgroundColor(p.Background)
	v.SetTextColor(p.Text)
}

// ExtractPreset captures the view's current colors under the given name.
func ExtractPreset(name string, v *progress.View) Preset {
	return Preset{
		Name:       name,
		Marker:     v.MarkerColor(),
		Progress:   v.ProgressColor(),
		Background: v.BackgroundColor(),
		Text:       v.TextColor(),
	}
}
