package ui

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/edward-ap/stepprogress/internal/progress"
)

// Scrubber is a compact horizontal slider over the integer range [0, Total].
// Values that land within Snap of a marker jump onto it, so dragging stops
// on the same steps the progress bar shows.
type Scrubber struct {
	widget.BaseWidget
	Total     int
	Value     int
	Markers   []int
	Snap      float64
	OnChanged func(int)
}

// NewScrubber creates a scrubber over [0, total] snapping to markers.
func NewScrubber(total int, markers []int) *Scrubber {
	s := &Scrubber{Total: total, Markers: markers, Snap: 2}
	s.ExtendBaseWidget(s)
	return s
}

func (s *Scrubber) CreateRenderer() fyne.WidgetRenderer {
	r := &scrubberRenderer{
		s:     s,
		track: canvas.NewRectangle(theme.ShadowColor()),
		fill:  canvas.NewRectangle(theme.PrimaryColor()),
		thumb: canvas.NewCircle(theme.ForegroundColor()),
	}
	r.rebuild()
	return r
}

// SetValue sets the scrubber value and triggers refresh and callback.
func (s *Scrubber) SetValue(v int) {
	if s.Total <= 0 {
		return
	}
	newValue := normalizeScrubValue(s.Total, s.Markers, s.Snap, float64(v))
	if newValue == s.Value {
		return
	}
	s.Value = newValue
	s.Refresh()
	if s.OnChanged != nil {
		s.OnChanged(newValue)
	}
}

// SetRange replaces the total and markers, keeping the value in range.
func (s *Scrubber) SetRange(total int, markers []int) {
	s.Total = total
	s.Markers = markers
	if s.Value > total {
		s.Value = max(total, 0)
	}
	s.Refresh()
}

// normalizeScrubValue clamps value to [0, total], rounds it to an integer and
// snaps it onto the nearest drawable marker within snap.
func normalizeScrubValue(total int, markers []int, snap, value float64) int {
	if total <= 0 {
		return 0
	}
	v := clampFloat64(value, 0, float64(total))
	n := int(math.Round(v))
	if snap <= 0 {
		return n
	}
	best, bestDist := n, snap
	for _, m := range markers {
		if !progress.InRange(m, total) {
			continue
		}
		if d := math.Abs(float64(m) - v); d <= bestDist {
			best, bestDist = m, d
		}
	}
	return best
}

// Dragged updates the value based on pointer drag position.
func (s *Scrubber) Dragged(e *fyne.DragEvent) {
	s.updateFromPos(e.Position.X, s.Size().Width)
}

func (s *Scrubber) DragEnd() {}

// Tapped moves the thumb to the tapped position.
func (s *Scrubber) Tapped(e *fyne.PointEvent) {
	s.updateFromPos(e.Position.X, s.Size().Width)
}

// Scrolled moves one unit per wheel notch, ignoring snapping so every value
// stays reachable.
func (s *Scrubber) Scrolled(ev *fyne.ScrollEvent) {
	if ev == nil || s.Total <= 0 {
		return
	}
	next := s.Value
	if ev.Scrolled.DY > 0 {
		next++
	} else if ev.Scrolled.DY < 0 {
		next--
	}
	next = min(max(next, 0), s.Total)
	if next == s.Value {
		return
	}
	s.Value = next
	s.Refresh()
	if s.OnChanged != nil {
		s.OnChanged(next)
	}
}

func (s *Scrubber) updateFromPos(px float32, w float32) {
	if w <= 0 || s.Total <= 0 {
		return
	}
	frac := clampFloat64(float64(px/w), 0, 1)
	s.SetValue(int(math.Round(frac * float64(s.Total))))
}

// MinSize provides a reasonable touch target height.
func (s *Scrubber) MinSize() fyne.Size {
	return fyne.NewSize(100, theme.IconInlineSize())
}

type scrubberRenderer struct {
	s     *Scrubber
	track *canvas.Rectangle
	fill  *canvas.Rectangle
	thumb *canvas.Circle
	ticks []*canvas.Rectangle
	objs  []fyne.CanvasObject
}

// rebuild recreates the tick objects when the marker count changes.
func (r *scrubberRenderer) rebuild() {
	r.ticks = r.ticks[:0]
	for _, m := range r.s.Markers {
		if progress.InRange(m, r.s.Total) {
			r.ticks = append(r.ticks, canvas.NewRectangle(theme.ForegroundColor()))
		}
	}
	r.objs = []fyne.CanvasObject{r.track, r.fill}
	for _, t := range r.ticks {
		r.objs = append(r.objs, t)
	}
	r.objs = append(r.objs, r.thumb)
}

func (r *scrubberRenderer) Layout(sz fyne.Size) {
	trackH := float32(4)
	y := (sz.Height - trackH) / 2
	r.track.Move(fyne.NewPos(0, y))
	r.track.Resize(fyne.NewSize(sz.Width, trackH))

	frac := float32(0)
	if r.s.Total > 0 {
		frac = float32(clampFloat64(float64(r.s.Value)/float64(r.s.Total), 0, 1))
	}
	fillW := sz.Width * frac
	r.fill.Move(fyne.NewPos(0, y))
	r.fill.Resize(fyne.NewSize(fillW, trackH))

	i := 0
	for _, m := range r.s.Markers {
		if !progress.InRange(m, r.s.Total) || i >= len(r.ticks) {
			continue
		}
		x := sz.Width * float32(m) / float32(r.s.Total)
		r.ticks[i].Move(fyne.NewPos(x-1, y-2))
		r.ticks[i].Resize(fyne.NewSize(2, trackH+4))
		i++
	}

	thumbR := theme.IconInlineSize() / 4
	cx := min(max(fillW, thumbR), sz.Width-thumbR)
	cy := sz.Height / 2
	r.thumb.Resize(fyne.NewSize(thumbR*2, thumbR*2))
	r.thumb.Move(fyne.NewPos(cx-thumbR, cy-thumbR))
}

func (r *scrubberRenderer) MinSize() fyne.Size { return r.s.MinSize() }

func (r *scrubberRenderer) Refresh() {
	want := 0
	for _, m := range r.s.Markers {
		if progress.InRange(m, r.s.Total) {
			want++
		}
	}
	if want != len(r.ticks) {
		r.rebuild()
	}
	r.track.FillColor = theme.ShadowColor()
	r.fill.FillColor = theme.PrimaryColor()
	r.thumb.FillColor = theme.ForegroundColor()
	for _, t := range r.ticks {
		t.FillColor = theme.ForegroundColor()
	}
	r.Layout(r.s.Size())
	for _, o := range r.objs {
		canvas.Refresh(o)
	}
}

func (r *scrubberRenderer) Destroy() {}

func (r *scrubberRenderer) Objects() []fyne.CanvasObject { return r.objs }
