// Package demoapp wires the step progress widget, its scrubber and the
// persisted preferences together into a small fyne demo window.
package demoapp

import (
	"fmt"
	"log"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/stepprogress/internal/config"
	"github.com/edward-ap/stepprogress/internal/paint"
	"github.com/edward-ap/stepprogress/internal/progress"
	"github.com/edward-ap/stepprogress/internal/style"
	"github.com/edward-ap/stepprogress/internal/ui"
)

// Options are the command line choices that override stored preferences.
type Options struct {
	// StylePath names a style file; empty uses the last one saved.
	StylePath string
}

// App owns the fyne application, main window, widgets and preferences.
type App struct {
	fa     fyne.App
	w      fyne.Window
	config *config.Config

	bar       *ui.StepProgress
	scrub     *ui.Scrubber
	status    *widget.Label
	presetSel *widget.Select
	nextBtn   *widget.Button
	root      *fyne.Container

	// startErr is shown once the window is up.
	startErr error
}

// NewApp builds the demo window. Configuration problems fall back to
// defaults and are reported in a dialog after the window opens.
func NewApp(opts Options) *App {
	cfg, err := config.Load()
	if err != nil {
		log.Println("config load error:", err)
		cfg = &config.Config{Preset: config.DefaultPreset, WindowW: config.DefaultWidth, WindowH: config.DefaultHeight}
	}
	if cfg.Trace {
		progress.SetTraceLoggingEnabled(true)
	}
	return newApp(app.NewWithID(cfg.AppID()), cfg, opts)
}

func newApp(fa fyne.App, cfg *config.Config, opts Options) *App {
	if AppIcon != nil {
		fa.SetIcon(AppIcon)
	}
	w := fa.NewWindow("Step Progress")
	w.SetMaster()
	if AppIcon != nil {
		w.SetIcon(AppIcon)
	}

	a := &App{fa: fa, w: w, config: cfg}

	stylePath := strings.TrimSpace(opts.StylePath)
	if stylePath == "" {
		stylePath = cfg.StylePath
	}
	a.bar = a.buildBar(stylePath)
	if a.startErr == nil && stylePath != "" {
		cfg.StylePath = stylePath
	}

	a.buildUI()
	w.Resize(fyne.NewSize(float32(cfg.WindowW), float32(cfg.WindowH)))

	// window close handler: save size and progress
	w.SetCloseIntercept(func() {
		sz := w.Canvas().Size()
		cfg.WindowW = int(sz.Width)
		cfg.WindowH = int(sz.Height)
		cfg.CurrentProgress = a.bar.View().CurrentProgress()
		if err := cfg.Save(); err != nil {
			log.Println("config save error:", err)
		}
		w.Close()
		fa.Quit()
	})

	w.Canvas().SetOnTypedKey(a.handleShortcutKey)
	return a
}

// buildBar creates the widget from the style file, seeded with the stored
// preset and progress for anything the file leaves out.
func (a *App) buildBar(stylePath string) *ui.StepProgress {
	b, err := style.Load(stylePath)
	if err != nil {
		a.startErr = err
		b, _ = style.Load("")
	}
	if !b.IsSet(style.KeyPreset) {
		b.Set(style.KeyPreset, a.config.Preset)
	}
	if !b.IsSet(style.KeyCurrentProgress) {
		b.Set(style.KeyCurrentProgress, a.config.CurrentProgress)
	}
	bar, err := ui.NewStepProgress(b)
	if err != nil {
		a.startErr = fmt.Errorf("style %s: %w", stylePath, err)
		bar, err = ui.NewStepProgress(style.FromMap(map[string]any{style.KeyPreset: a.config.Preset}))
		if err != nil {
			log.Println("default style error:", err)
			bar, _ = ui.NewStepProgress(nil)
		}
	}
	return bar
}

// Run shows the window, reports deferred start-up errors and enters the
// fyne event loop.
func (a *App) Run() {
	if a.startErr != nil {
		log.Println("style error:", a.startErr)
		err := a.startErr
		ui.CallOnMain(func() { dialog.ShowError(err, a.w) })
	}
	a.w.ShowAndRun()
}

func (a *App) buildUI() {
	v := a.bar.View()

	a.scrub = ui.NewScrubber(v.TotalProgress(), v.Markers())
	a.scrub.Value = v.CurrentProgress()
	a.scrub.OnChanged = a.setProgress

	a.status = widget.NewLabel("")
	a.status.Alignment = fyne.TextAlignTrailing

	a.presetSel = widget.NewSelect(style.PresetNames(), a.applyPreset)
	// SetSelected would re-apply the preset over the style's colors.
	a.presetSel.Selected = a.currentPresetName()
	if p, ok := style.FindPreset(a.presetSel.Selected); ok {
		ui.UsePresetTheme(p)
	}

	a.nextBtn = widget.NewButtonWithIcon("Next step", theme.MediaSkipNextIcon(), a.nextStep)
	resetBtn := widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() { a.setProgress(0) })
	exportBtn := widget.NewButtonWithIcon("", theme.DocumentSaveIcon(), a.exportPNG)

	controls := container.NewHBox(a.presetSel, layout.NewSpacer(), resetBtn, a.nextBtn, exportBtn, a.status)
	a.root = container.NewVBox(container.NewCenter(a.bar), a.scrub, controls)
	a.bar.OnMinSizeChanged = func() {
		a.root.Refresh()
		a.scrub.SetRange(v.TotalProgress(), v.Markers())
	}
	a.w.SetContent(container.NewPadded(a.root))
	a.refreshStatus()
}

// setProgress moves the bar, scrubber and status label together. The scrubber
// snaps only its own input, so its value is assigned directly.
func (a *App) setProgress(n int) {
	v := a.bar.View()
	n = min(max(n, 0), v.TotalProgress())
	a.bar.SetCurrentProgress(n)
	if a.scrub.Value != n {
		a.scrub.Value = n
		a.scrub.Refresh()
	}
	a.refreshStatus()
}

// nextStep advances to the next marker, or to the end after the last one.
func (a *App) nextStep() {
	v := a.bar.View()
	next, ok := progress.NextMarker(v.Markers(), v.TotalProgress(), v.CurrentProgress())
	if !ok {
		next = v.TotalProgress()
	}
	a.setProgress(next)
}

func (a *App) applyPreset(name string) {
	p, ok := style.FindPreset(name)
	if !ok {
		return
	}
	style.ApplyPreset(p, a.bar.View())
	ui.UsePresetTheme(p)
	a.config.Preset = p.Name
}

func (a *App) currentPresetName() string {
	v := a.bar.View()
	for _, p := range style.DefaultPresets() {
		if style.ExtractPreset(p.Name, v) == p {
			return p.Name
		}
	}
	return ""
}

func (a *App) refreshStatus() {
	v := a.bar.View()
	a.status.SetText(fmt.Sprintf("%d / %d", v.CurrentProgress(), v.TotalProgress()))
	_, ok := progress.NextMarker(v.Markers(), v.TotalProgress(), v.CurrentProgress())
	if ok || v.CurrentProgress() < v.TotalProgress() {
		a.nextBtn.Enable()
	} else {
		a.nextBtn.Disable()
	}
}

// exportPNG saves the bar as it is shown, at twice its size.
func (a *App) exportPNG() {
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.w)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := paint.WritePNG(wc, a.bar.View(), 2, paint.BackendGG); err != nil {
			dialog.ShowError(fmt.Errorf("export: %w", err), a.w)
			return
		}
		// WritePNG lays the view out at its natural size; restore the on-screen layout.
		a.bar.RequestLayout()
	}, a.w)
	d.SetFileName("progress.png")
	d.Show()
}
