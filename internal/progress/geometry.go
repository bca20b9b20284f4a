package progress

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// kappa places cubic Bézier control points for a quarter ellipse.
const kappa = 0.5522847498

// seamBias extends the unfilled piece under the filled one so anti-aliased
// edges do not leave a hairline gap between them.
const seamBias = 1

// FillOffset returns how far the progress boundary lies from the left edge of
// a track of the given width. The result is clamped to [0, trackWidth].
func FillOffset(current, total int, trackWidth float64) float64 {
	if total <= 0 || trackWidth <= 0 {
		return 0
	}
	f := float64(current) / float64(total)
	return min(max(f, 0), 1) * trackWidth
}

// MarkerOffset returns how far a marker lies from the left edge of the track.
// It is not clamped; use InRange to decide whether a marker is drawn.
func MarkerOffset(value, total int, trackWidth float64) float64 {
	if total <= 0 {
		return 0
	}
	return float64(value) / float64(total) * trackWidth
}

// InRange reports whether a marker value is drawn for the given total.
func InRange(value, total int) bool {
	return value >= 1 && value <= total
}

// MarkerPositions returns the offsets of the drawable markers in input order.
func MarkerPositions(markers []int, total int, trackWidth float64) []float64 {
	out := make([]float64, 0, len(markers))
	for _, m := range markers {
		if InRange(m, total) {
			out = append(out, MarkerOffset(m, total, trackWidth))
		}
	}
	return out
}

// NextMarker returns the smallest drawable marker greater than current.
func NextMarker(markers []int, total, current int) (int, bool) {
	next, ok := 0, false
	for _, m := range markers {
		if !InRange(m, total) || m <= current {
			continue
		}
		if !ok || m < next {
			next, ok = m, true
		}
	}
	return next, ok
}

// markerExtremes returns the smallest and largest drawable markers.
func markerExtremes(markers []int, total int) (first, last int, ok bool) {
	for _, m := range markers {
		if !InRange(m, total) {
			continue
		}
		if !ok {
			first, last, ok = m, m, true
			continue
		}
		first = min(first, m)
		last = max(last, m)
	}
	return first, last, ok
}

func width(r rect.Rect) float64  { return r.URx - r.LLx }
func height(r rect.Rect) float64 { return r.URy - r.LLy }

func resetPath(p *path.Data) {
	p.Cmds = p.Cmds[:0]
	p.Coords = p.Coords[:0]
}

func moveTo(p *path.Data, x, y float64) {
	p.Cmds = append(p.Cmds, path.CmdMoveTo)
	p.Coords = append(p.Coords, vec.Vec2{X: x, Y: y})
}

func lineTo(p *path.Data, x, y float64) {
	p.Cmds = append(p.Cmds, path.CmdLineTo)
	p.Coords = append(p.Coords, vec.Vec2{X: x, Y: y})
}

func cubeTo(p *path.Data, x1, y1, x2, y2, x3, y3 float64) {
	p.Cmds = append(p.Cmds, path.CmdCubeTo)
	p.Coords = append(p.Coords, vec.Vec2{X: x1, Y: y1}, vec.Vec2{X: x2, Y: y2}, vec.Vec2{X: x3, Y: y3})
}

func closePath(p *path.Data) {
	p.Cmds = append(p.Cmds, path.CmdClose)
}

func appendPath(dst, src *path.Data) {
	dst.Cmds = append(dst.Cmds, src.Cmds...)
	dst.Coords = append(dst.Coords, src.Coords...)
}

// All shapes below are wound clockwise on screen (y grows downwards), so
// filling their union with the nonzero rule never cancels overlaps.

func appendRect(p *path.Data, l, t, r, b float64) {
	if r <= l || b <= t {
		return
	}
	moveTo(p, l, t)
	lineTo(p, r, t)
	lineTo(p, r, b)
	lineTo(p, l, b)
	closePath(p)
}

// appendLeftCap adds the half ellipse bulging left of x=cx with horizontal
// radius rad spanning [t, b].
func appendLeftCap(p *path.Data, cx, t, b, rad float64) {
	cy := (t + b) / 2
	ry := (b - t) / 2
	moveTo(p, cx, t)
	lineTo(p, cx, b)
	cubeTo(p, cx-kappa*rad, b, cx-rad, cy+kappa*ry, cx-rad, cy)
	cubeTo(p, cx-rad, cy-kappa*ry, cx-kappa*rad, t, cx, t)
	closePath(p)
}

// appendRightCap adds the half ellipse bulging right of x=cx.
func appendRightCap(p *path.Data, cx, t, b, rad float64) {
	cy := (t + b) / 2
	ry := (b - t) / 2
	moveTo(p, cx, t)
	cubeTo(p, cx+kappa*rad, t, cx+rad, cy-kappa*ry, cx+rad, cy)
	cubeTo(p, cx+rad, cy+kappa*ry, cx+kappa*rad, b, cx, b)
	closePath(p)
}

// appendLeftRounded adds a rectangle whose left end is a half ellipse of
// horizontal radius rad and whose right corners are square.
func appendLeftRounded(p *path.Data, l, t, r, b, rad float64) {
	if rad <= 0 {
		appendRect(p, l, t, r, b)
		return
	}
	appendLeftCap(p, l+rad, t, b, rad)
	appendRect(p, l+rad, t, r, b)
}

// appendRightRounded adds a rectangle with square left corners and a half
// ellipse on the right. The straight part is dropped when the piece is no
// wider than rad.
func appendRightRounded(p *path.Data, l, t, r, b, rad float64) {
	if rad <= 0 {
		appendRect(p, l, t, r, b)
		return
	}
	if r-l > rad {
		appendRect(p, l, t, r-rad, b)
	}
	appendRightCap(p, r-rad, t, b, rad)
}

// appendTrack adds the full bar outline: both ends rounded like the pieces
// above so every progress state shares one silhouette.
func appendTrack(p *path.Data, tr rect.Rect, rad float64) {
	l, t, r, b := tr.LLx, tr.LLy, tr.URx, tr.URy
	if rad <= 0 {
		appendRect(p, l, t, r, b)
		return
	}
	cy := (t + b) / 2
	ry := (b - t) / 2
	moveTo(p, l+rad, t)
	lineTo(p, r-rad, t)
	cubeTo(p, r-rad+kappa*rad, t, r, cy-kappa*ry, r, cy)
	cubeTo(p, r, cy+kappa*ry, r-rad+kappa*rad, b, r-rad, b)
	lineTo(p, l+rad, b)
	cubeTo(p, l+rad-kappa*rad, b, l, cy+kappa*ry, l, cy)
	cubeTo(p, l, cy-kappa*ry, l+rad-kappa*rad, t, l+rad, t)
	closePath(p)
}

// PathBounds returns the bounding box of every point of p, control points
// included. An empty path yields the zero rectangle.
func PathBounds(p *path.Data) rect.Rect {
	if len(p.Coords) == 0 {
		return rect.Rect{}
	}
	out := rect.Rect{LLx: math.Inf(1), LLy: math.Inf(1), URx: math.Inf(-1), URy: math.Inf(-1)}
	for _, c := range p.Coords {
		out.LLx = min(out.LLx, c.X)
		out.LLy = min(out.LLy, c.Y)
		out.URx = max(out.URx, c.X)
		out.URy = max(out.URy, c.Y)
	}
	return out
}
