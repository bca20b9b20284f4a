package ui

import (
	"image"
	"log"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/paint"
	"github.com/edward-ap/stepprogress/internal/progress"
	"github.com/edward-ap/stepprogress/internal/style"
	"github.com/edward-ap/stepprogress/internal/typeface"
)

// StepProgress is a fyne widget showing a step progress bar. It hosts a
// progress.View and paints it through a canvas.Raster at device resolution.
// Configure it through View(); changes trigger a refresh or, when the size
// may change, a refresh plus OnMinSizeChanged.
type StepProgress struct {
	widget.BaseWidget

	// OnMinSizeChanged is called after a change that may alter MinSize, so
	// the owner can refresh the enclosing container.
	OnMinSizeChanged func()

	view        *progress.View
	layoutDirty bool
}

// NewStepProgress builds the widget from a style bundle; nil means defaults.
// Unless the bundle names a font, labels use the current theme's text font.
func NewStepProgress(b *style.Bundle) (*StepProgress, error) {
	s := &StepProgress{layoutDirty: true}
	v, err := progress.New(s, func(v *progress.View) error {
		if b != nil {
			if err := b.Apply(v); err != nil {
				return err
			}
			if b.IsSet(style.KeyTextFont) {
				return nil
			}
		}
		if f := themeFace(v.TextSize()); f != nil {
			v.SetFont(f)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.view = v
	s.ExtendBaseWidget(s)
	return s, nil
}

// View exposes the bar configuration. Call its setters from the UI goroutine.
func (s *StepProgress) View() *progress.View { return s.view }

// SetCurrentProgress is a shortcut for View().SetCurrentProgress.
func (s *StepProgress) SetCurrentProgress(n int) { s.view.SetCurrentProgress(n) }

// RequestLayout implements progress.Host.
func (s *StepProgress) RequestLayout() {
	s.layoutDirty = true
	s.Refresh()
	if s.OnMinSizeChanged != nil {
		s.OnMinSizeChanged()
	}
}

// RequestRepaint implements progress.Host.
func (s *StepProgress) RequestRepaint() { s.Refresh() }

// MinSize is the bar's measured size with no constraint.
func (s *StepProgress) MinSize() fyne.Size {
	w, h := s.view.Measure(progress.Unbounded(), progress.Unbounded())
	return fyne.NewSize(float32(w), float32(h))
}

func (s *StepProgress) CreateRenderer() fyne.WidgetRenderer {
	r := &stepProgressRenderer{s: s}
	r.raster = canvas.NewRaster(s.render)
	r.raster.ScaleMode = canvas.ImageScaleSmooth
	r.objs = []fyne.CanvasObject{r.raster}
	return r
}

// render paints the bar into a w by h device pixel image.
func (s *StepProgress) render(w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	size := s.Size()
	if size.Width <= 0 || size.Height <= 0 {
		size = s.MinSize()
	}
	scale := currentScale()
	if size.Width > 0 && w > 0 {
		scale = float64(w) / float64(size.Width)
	}
	if s.layoutDirty {
		s.layout(size)
	}
	s.view.Paint(paint.NewRaster(dst, scale))
	return dst
}

func (s *StepProgress) layout(size fyne.Size) {
	s.view.Layout(rect.Rect{URx: float64(size.Width), URy: float64(size.Height)})
	s.layoutDirty = false
}

type stepProgressRenderer struct {
	s      *StepProgress
	raster *canvas.Raster
	objs   []fyne.CanvasObject
}

func (r *stepProgressRenderer) Layout(sz fyne.Size) {
	r.raster.Move(fyne.NewPos(0, 0))
	r.raster.Resize(sz)
	r.s.layout(sz)
}

func (r *stepProgressRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *stepProgressRenderer) Refresh() {
	if r.s.layoutDirty {
		r.Layout(r.s.Size())
	}
	canvas.Refresh(r.raster)
}

func (r *stepProgressRenderer) Destroy() {}

func (r *stepProgressRenderer) Objects() []fyne.CanvasObject { return r.objs }

// themeFace loads the current theme's text font at size pixels. It returns nil
// when the theme font cannot be parsed, leaving the view's default face.
func themeFace(size float64) *typeface.Face {
	res := theme.TextFont()
	if res == nil {
		return nil
	}
	data := res.Content()
	if len(data) == 0 {
		return nil
	}
	f, err := typeface.Parse(data, math.Max(size, 1))
	if err != nil {
		log.Printf("ui: theme font %s: %v", res.Name(), err)
		return nil
	}
	return f
}
