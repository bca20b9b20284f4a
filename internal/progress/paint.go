package progress

import (
	"image/color"
	"strconv"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/typeface"
)

// Canvas is the immediate-mode drawing surface a View paints onto. All
// coordinates are in the view's local pixel space with y growing downwards.
// Paths passed to a Canvas are scratch buffers owned by the View and are only
// valid during the call.
type Canvas interface {
	// FillPath fills p with the nonzero winding rule.
	FillPath(p *path.Data, c color.Color)
	// FillRect fills an axis-aligned rectangle.
	FillRect(r rect.Rect, c color.Color)
	// Save pushes the current clip.
	Save()
	// ClipPath intersects the current clip with the inside of p.
	ClipPath(p *path.Data)
	// Restore pops the clip pushed by the matching Save.
	Restore()
	// DrawText draws text horizontally centred on x with its baseline at y.
	DrawText(text string, x, y float64, face *typeface.Face, c color.Color)
}

// Paint draws the bar for the bounds fixed by the last Layout. Nothing is
// drawn before the first Layout. Painting does not change the view, so
// painting twice emits the same operations.
func (v *View) Paint(c Canvas) {
	tr := v.track
	if width(tr) <= 0 || height(tr) <= 0 {
		return
	}
	p := &v.props
	rad := min(p.CornerRadius, width(tr)/2)

	resetPath(&v.silhouette)
	resetPath(&v.piece)

	switch {
	case p.CurrentProgress <= 0:
		appendTrack(&v.silhouette, tr, rad)
		c.FillPath(&v.silhouette, p.BackgroundColor)

	case p.CurrentProgress >= p.TotalProgress:
		appendTrack(&v.silhouette, tr, rad)
		c.FillPath(&v.silhouette, p.ProgressColor)

	default:
		fx := tr.LLx + FillOffset(p.CurrentProgress, p.TotalProgress, width(tr))
		if fx-tr.LLx <= rad {
			// The boundary sits inside the left end: paint the empty bar and
			// overdraw a plain rectangle kept inside the rounded outline.
			appendTrack(&v.silhouette, tr, rad)
			c.FillPath(&v.silhouette, p.BackgroundColor)
			c.Save()
			c.ClipPath(&v.silhouette)
			c.FillRect(rect.Rect{LLx: tr.LLx, LLy: tr.LLy, URx: fx, URy: tr.URy}, p.ProgressColor)
			c.Restore()
			break
		}

		appendRightRounded(&v.piece, max(fx-seamBias, tr.LLx), tr.LLy, tr.URx, tr.URy, rad)
		c.FillPath(&v.piece, p.BackgroundColor)
		appendPath(&v.silhouette, &v.piece)

		inRightEnd := fx > tr.URx-rad
		right := fx
		if inRightEnd {
			right = tr.URx - rad
		}
		resetPath(&v.piece)
		appendLeftRounded(&v.piece, tr.LLx, tr.LLy, right, tr.URy, rad)
		c.FillPath(&v.piece, p.ProgressColor)
		appendPath(&v.silhouette, &v.piece)

		if inRightEnd {
			c.Save()
			c.ClipPath(&v.silhouette)
			c.FillRect(rect.Rect{LLx: tr.URx - rad, LLy: tr.LLy, URx: fx, URy: tr.URy}, p.ProgressColor)
			c.Restore()
		}
	}

	v.paintMarkers(c, rad)
}

func (v *View) paintMarkers(c Canvas, rad float64) {
	p := &v.props
	tr := v.track
	if _, _, ok := markerExtremes(p.Markers, p.TotalProgress); !ok {
		for _, m := range p.Markers {
			tracef("marker %d outside [1, %d], skipped", m, p.TotalProgress)
		}
		return
	}

	if p.MarkerWidth > 0 {
		resetPath(&v.piece)
		appendTrack(&v.piece, tr, rad)
		c.Save()
		c.ClipPath(&v.piece)
		half := p.MarkerWidth / 2
		for _, m := range p.Markers {
			if !InRange(m, p.TotalProgress) {
				continue
			}
			x := tr.LLx + MarkerOffset(m, p.TotalProgress, width(tr))
			c.FillRect(rect.Rect{LLx: x - half, LLy: tr.LLy, URx: x + half, URy: tr.URy}, p.MarkerColor)
		}
		c.Restore()
	}

	// Labels go in a separate pass with no clip active.
	for _, m := range p.Markers {
		if !InRange(m, p.TotalProgress) {
			tracef("marker %d outside [1, %d], skipped", m, p.TotalProgress)
			continue
		}
		x := tr.LLx + MarkerOffset(m, p.TotalProgress, width(tr))
		c.DrawText(strconv.Itoa(m), x, v.baseline, v.face, p.TextColor)
	}
}
