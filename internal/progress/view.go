// Package progress implements a step progress bar: a rounded horizontal bar
// split into a filled and an unfilled part, with optional marker ticks and
// numeric labels at fixed progress values. It computes the widget's size,
// lays out its geometry and paints it onto an immediate-mode Canvas supplied
// by the host UI toolkit.
package progress

import (
	"errors"
	"fmt"
	"image/color"
	"slices"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/typeface"
)

// ErrInvalidConfig is returned by setters given a value the bar cannot be
// drawn with.
var ErrInvalidConfig = errors.New("invalid progress configuration")

// Host receives change notifications from a View. Implementations are
// usually the UI toolkit's widget wrapper.
type Host interface {
	// RequestLayout asks the host to measure and lay out the view again.
	RequestLayout()
	// RequestRepaint asks the host to paint the view again at its current size.
	RequestRepaint()
}

// View is the step progress bar renderer. The zero value is not usable; build
// one with New. A View is not safe for concurrent use: the host calls its
// setters, Measure, Layout and Paint from a single UI thread.
type View struct {
	props Props
	face  *typeface.Face
	host  Host
	ready bool

	// set by Layout
	bounds     rect.Rect
	track      rect.Rect
	extraLeft  float64
	extraRight float64
	textHeight float64
	baseline   float64

	// scratch buffers reused by every paint
	silhouette path.Data
	piece      path.Data
}

// New builds a View with default configuration, runs init to apply the
// initial configuration without notifying host, and only then starts
// forwarding changes. An error from init aborts construction.
func New(host Host, init func(v *View) error) (*View, error) {
	v := &View{
		props: DefaultProps(),
		face:  typeface.Default(DefaultTextSize),
		host:  host,
	}
	if init != nil {
		if err := init(v); err != nil {
			return nil, err
		}
	}
	v.ready = true
	return v, nil
}

// changed forwards a property change to the host.
func (v *View) changed(p Prop) {
	if !v.ready || v.host == nil {
		return
	}
	switch EffectOf(p) {
	case EffectRelayout:
		tracef("%s changed, requesting layout", p)
		v.host.RequestLayout()
	default:
		tracef("%s changed, requesting repaint", p)
		v.host.RequestRepaint()
	}
}

// Props returns a copy of the current configuration.
func (v *View) Props() Props { return v.props.clone() }

// Face returns the label face at the configured text size.
func (v *View) Face() *typeface.Face { return v.face }

// TotalProgress returns the progress value that fills the whole bar.
func (v *View) TotalProgress() int { return v.props.TotalProgress }

// SetTotalProgress sets the value that fills the whole bar. It must be positive.
func (v *View) SetTotalProgress(total int) error {
	if total <= 0 {
		return fmt.Errorf("%w: total progress %d must be positive", ErrInvalidConfig, total)
	}
	if total == v.props.TotalProgress {
		return nil
	}
	v.props.TotalProgress = total
	v.changed(PropTotalProgress)
	return nil
}

// CurrentProgress returns the current progress value.
func (v *View) CurrentProgress() int { return v.props.CurrentProgress }

// SetCurrentProgress sets the current progress. Values outside
// [0, TotalProgress] are kept and drawn as an empty or full bar.
func (v *View) SetCurrentProgress(current int) {
	if current == v.props.CurrentProgress {
		return
	}
	v.props.CurrentProgress = current
	v.changed(PropCurrentProgress)
}

// Markers returns a copy of the marker values.
func (v *View) Markers() []int { return slices.Clone(v.props.Markers) }

// SetMarkers replaces the marker values. The slice is copied.
func (v *View) SetMarkers(markers []int) {
	if slices.Equal(markers, v.props.Markers) {
		return
	}
	v.props.Markers = slices.Clone(markers)
	v.changed(PropMarkers)
}

// MarkerWidth returns the width of a marker tick.
func (v *View) MarkerWidth() float64 { return v.props.MarkerWidth }

// SetMarkerWidth sets the width of marker ticks; negative widths become 0.
func (v *View) SetMarkerWidth(w float64) {
	w = max(w, 0)
	if w == v.props.MarkerWidth {
		return
	}
	v.props.MarkerWidth = w
	v.changed(PropMarkerWidth)
}

// CornerRadius returns the horizontal radius of the bar's rounded ends.
func (v *View) CornerRadius() float64 { return v.props.CornerRadius }

// SetCornerRadius sets the horizontal radius of the bar's rounded ends;
// negative values become 0.
func (v *View) SetCornerRadius(r float64) {
	r = max(r, 0)
	if r == v.props.CornerRadius {
		return
	}
	v.props.CornerRadius = r
	v.changed(PropCornerRadius)
}

// TextMargin returns the gap between the bar and the label glyphs.
func (v *View) TextMargin() float64 { return v.props.TextMargin }

// SetTextMargin sets the gap between the bar and the labels; negative values
// become 0.
func (v *View) SetTextMargin(m float64) {
	m = max(m, 0)
	if m == v.props.TextMargin {
		return
	}
	v.props.TextMargin = m
	v.changed(PropTextMargin)
}

// BarHeight returns the height of the bar.
func (v *View) BarHeight() float64 { return v.props.BarHeight }

// SetBarHeight sets the height of the bar. It must be positive.
func (v *View) SetBarHeight(h float64) error {
	if h <= 0 {
		return fmt.Errorf("%w: bar height %v must be positive", ErrInvalidConfig, h)
	}
	if h == v.props.BarHeight {
		return nil
	}
	v.props.BarHeight = h
	v.changed(PropBarHeight)
	return nil
}

// BarWidth returns the intrinsic width of the bar.
func (v *View) BarWidth() float64 { return v.props.BarWidth }

// SetBarWidth sets the intrinsic width of the bar. It must be positive.
func (v *View) SetBarWidth(w float64) error {
	if w <= 0 {
		return fmt.Errorf("%w: bar width %v must be positive", ErrInvalidConfig, w)
	}
	if w == v.props.BarWidth {
		return nil
	}
	v.props.BarWidth = w
	v.changed(PropBarWidth)
	return nil
}

// TextSize returns the label size in pixels.
func (v *View) TextSize() float64 { return v.props.TextSize }

// SetTextSize sets the label size in pixels. It must be positive.
func (v *View) SetTextSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("%w: text size %v must be positive", ErrInvalidConfig, size)
	}
	if size == v.props.TextSize {
		return nil
	}
	v.props.TextSize = size
	v.face = v.face.WithSize(size)
	v.changed(PropTextSize)
	return nil
}

// SetFont replaces the label font. The face is resized to the configured text
// size; nil restores the default font.
func (v *View) SetFont(f *typeface.Face) {
	if f == nil {
		f = typeface.Default(v.props.TextSize)
	}
	f = f.WithSize(v.props.TextSize)
	if f == v.face {
		return
	}
	v.face = f
	v.changed(PropFont)
}

// MarkerColor returns the color of marker ticks.
func (v *View) MarkerColor() color.NRGBA { return v.props.MarkerColor }

// SetMarkerColor sets the color of marker ticks.
func (v *View) SetMarkerColor(c color.Color) {
	v.setColor(&v.props.MarkerColor, c, PropMarkerColor)
}

// ProgressColor returns the color of the filled part.
func (v *View) ProgressColor() color.NRGBA { return v.props.ProgressColor }

// SetProgressColor sets the color of the filled part.
func (v *View) SetProgressColor(c color.Color) {
	v.setColor(&v.props.ProgressColor, c, PropProgressColor)
}

// BackgroundColor returns the color of the unfilled track.
func (v *View) BackgroundColor() color.NRGBA { return v.props.BackgroundColor }

// SetBackgroundColor sets the color of the unfilled track.
func (v *View) SetBackgroundColor(c color.Color) {
	v.setColor(&v.props.BackgroundColor, c, PropBackgroundColor)
}

// TextColor returns the color of marker labels.
func (v *View) TextColor() color.NRGBA { return v.props.TextColor }

// SetTextColor sets the color of marker labels.
func (v *View) SetTextColor(c color.Color) {
	v.setColor(&v.props.TextColor, c, PropTextColor)
}

func (v *View) setColor(dst *color.NRGBA, c color.Color, p Prop) {
	if c == nil {
		return
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n == *dst {
		return
	}
	*dst = n
	v.changed(p)
}
