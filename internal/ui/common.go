// Package ui contains the fyne widgets that show and drive a step progress bar.
package ui

import "fyne.io/fyne/v2"

type runOnMainDriver interface {
	RunOnMain(func())
}

type callOnMainDriver interface {
	CallOnMain(func())
}

// CallOnMain dispatches f onto the UI thread if the current Fyne driver
// supports it; otherwise executes f inline (best-effort fallback).
// Progress updates produced off the UI goroutine must go through here.
func CallOnMain(f func()) {
	if f == nil {
		return
	}
	app := fyne.CurrentApp()
	if app == nil {
		f()
		return
	}
	drv := app.Driver()
	if drv == nil {
		f()
		return
	}
	if r, ok := drv.(runOnMainDriver); ok {
		r.RunOnMain(f)
		return
	}
	if c, ok := drv.(callOnMainDriver); ok {
		c.CallOnMain(f)
		return
	}
	f()
}

// currentScale returns the current UI scale, defaulting to 1 when unavailable.
func currentScale() float64 {
	app := fyne.CurrentApp()
	if app == nil {
		return 1
	}
	set := app.Settings()
	if set == nil {
		return 1
	}
	if sc := set.Scale(); sc > 0 {
		return float64(sc)
	}
	return 1
}

// clampFloat64 constrains v to the [lo, hi] interval.
func clampFloat64(v, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return min(max(v, lo), hi)
}
