package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/edward-ap/stepprogress/internal/style"
)

// presetTheme wraps a theme so that the primary color follows the progress
// color of a bar preset, and shrinks the inline icon used for slider thumbs.
type presetTheme struct {
	fyne.Theme
	primary color.Color
}

func (t presetTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	if n == theme.ColorNamePrimary && t.primary != nil {
		return t.primary
	}
	return t.Theme.Color(n, v)
}

func (t presetTheme) Size(n fyne.ThemeSizeName) float32 {
	if n == theme.SizeNameInlineIcon {
		return t.Theme.Size(n) * 0.5
	}
	return t.Theme.Size(n)
}

// UsePresetTheme applies the preset's progress color as the app's primary
// color. Repeated calls replace the previous preset instead of stacking.
func UsePresetTheme(p style.Preset) {
	app := fyne.CurrentApp()
	if app == nil {
		return
	}
	base := app.Settings().Theme()
	if pt, ok := base.(presetTheme); ok {
		base = pt.Theme
	}
	app.Settings().SetTheme(presetTheme{Theme: base, primary: p.Progress})
}
