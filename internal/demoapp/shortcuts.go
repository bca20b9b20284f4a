package demoapp

import "fyne.io/fyne/v2"

// handleShortcutKey centralizes keyboard shortcuts regardless of which widget
// currently owns focus.
func (a *App) handleShortcutKey(ke *fyne.KeyEvent) {
	if ke == nil {
		return
	}
	cur := a.bar.View().CurrentProgress()
	switch ke.Name {
	case fyne.KeySpace, fyne.KeyN:
		a.nextStep()
	case fyne.KeyRight, fyne.KeyPlus:
		a.setProgress(cur + 1)
	case fyne.KeyLeft, fyne.KeyMinus:
		a.setProgress(cur - 1)
	case fyne.KeyUp:
		a.setProgress(cur + 10)
	case fyne.KeyDown:
		a.setProgress(cur - 10)
	case fyne.KeyHome:
		a.setProgress(0)
	case fyne.KeyEnd:
		a.setProgress(a.bar.View().TotalProgress())
	}
}
