package progress

import (
	"math"
	"strconv"

	"seehuhn.de/go/geom/rect"
)

// MeasureMode says how a Constraint limits one dimension.
type MeasureMode int

const (
	// Unspecified lets the view take its desired size.
	Unspecified MeasureMode = iota
	// AtMost caps the desired size at Size.
	AtMost
	// Exactly forces Size.
	Exactly
)

// Constraint is the host's limit on one dimension during measurement.
type Constraint struct {
	Mode MeasureMode
	Size int
}

// Unbounded returns a constraint that accepts any size.
func Unbounded() Constraint { return Constraint{Mode: Unspecified} }

// UpTo returns a constraint capping the size at n.
func UpTo(n int) Constraint { return Constraint{Mode: AtMost, Size: n} }

// ExactSize returns a constraint forcing the size to n.
func ExactSize(n int) Constraint { return Constraint{Mode: Exactly, Size: n} }

// Resolve picks the final size for a desired size.
func (c Constraint) Resolve(desired int) int {
	switch c.Mode {
	case Exactly:
		return max(c.Size, 0)
	case AtMost:
		return max(min(desired, c.Size), 0)
	default:
		return desired
	}
}

// labelReference is the digit whose ink height sets the label line height.
const labelReference = "8"

// Measure returns the view's size under the given constraints. The desired
// width is the bar width plus whatever the first and last marker labels stick
// out beyond the bar ends; the desired height adds one label line when any
// marker is drawn.
func (v *View) Measure(w, h Constraint) (int, int) {
	v.updateExtents()
	desiredW := int(math.Ceil(v.props.BarWidth + v.extraLeft + v.extraRight))
	desiredH := int(math.Ceil(v.props.BarHeight + v.labelBlockHeight()))
	return w.Resolve(desiredW), h.Resolve(desiredH)
}

// Layout fixes the view's bounds. The track starts after the left label
// overflow and keeps the configured width unless the bounds are narrower. Bounds
// too narrow for the label overflow leave an empty track, which paints nothing.
func (v *View) Layout(bounds rect.Rect) {
	v.bounds = bounds
	v.updateExtents()

	trackW := min(v.props.BarWidth, max(width(bounds)-v.extraLeft-v.extraRight, 0))
	v.track = rect.Rect{
		LLx: v.extraLeft,
		LLy: 0,
		URx: v.extraLeft + trackW,
		URy: v.props.BarHeight,
	}
	v.textHeight = v.face.InkHeight(labelReference)
	v.baseline = v.props.BarHeight + v.props.TextMargin + v.textHeight
}

// Track returns the bar rectangle in local coordinates, as fixed by Layout.
func (v *View) Track() rect.Rect { return v.track }

// Baseline returns the y coordinate of the marker labels' baseline.
func (v *View) Baseline() float64 { return v.baseline }

// Overflow returns the space reserved left and right of the bar for marker
// labels wider than the distance to the bar end.
func (v *View) Overflow() (left, right float64) { return v.extraLeft, v.extraRight }

func (v *View) labelBlockHeight() float64 {
	if _, _, ok := markerExtremes(v.props.Markers, v.props.TotalProgress); !ok {
		return 0
	}
	return v.face.InkHeight(labelReference) + v.props.TextMargin
}

// updateExtents recomputes the label overflow at both bar ends.
func (v *View) updateExtents() {
	v.extraLeft, v.extraRight = 0, 0
	first, last, ok := markerExtremes(v.props.Markers, v.props.TotalProgress)
	if !ok {
		return
	}
	barW := v.props.BarWidth
	total := v.props.TotalProgress

	half := v.face.Advance(strconv.Itoa(first)) / 2
	if x := MarkerOffset(first, total, barW); x-half < 0 {
		v.extraLeft = half - x
	}
	half = v.face.Advance(strconv.Itoa(last)) / 2
	if x := MarkerOffset(last, total, barW); x+half > barW {
		v.extraRight = x + half - barW
	}
}
