// Package paint provides progress.Canvas implementations that draw into
// in-memory images.
package paint

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/progress"
	"github.com/edward-ap/stepprogress/internal/typeface"
)

var _ progress.Canvas = (*Raster)(nil)

// Raster is an anti-aliased canvas backed by an *image.RGBA. Logical
// coordinates are multiplied by scale before drawing, so one View can be
// rendered crisply at any device pixel ratio.
type Raster struct {
	dst   *image.RGBA
	scale float64

	ras   *vector.Rasterizer
	cov   *image.Alpha
	clip  *image.Alpha
	stack []*image.Alpha
}

// NewRaster returns a canvas drawing onto dst. A non-positive scale means 1.
func NewRaster(dst *image.RGBA, scale float64) *Raster {
	if scale <= 0 {
		scale = 1
	}
	b := dst.Bounds()
	return &Raster{
		dst:   dst,
		scale: scale,
		ras:   vector.NewRasterizer(b.Dx(), b.Dy()),
		cov:   image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy())),
	}
}

// Image returns the destination image.
func (r *Raster) Image() *image.RGBA { return r.dst }

// Scale returns the logical to device pixel ratio.
func (r *Raster) Scale() float64 { return r.scale }

func (r *Raster) FillPath(p *path.Data, c color.Color) {
	r.rasterize(p)
	r.composite(c)
}

func (r *Raster) FillRect(rc rect.Rect, c color.Color) {
	if rc.URx <= rc.LLx || rc.URy <= rc.LLy {
		return
	}
	r.begin()
	s := r.scale
	r.ras.MoveTo(float32(rc.LLx*s), float32(rc.LLy*s))
	r.ras.LineTo(float32(rc.URx*s), float32(rc.LLy*s))
	r.ras.LineTo(float32(rc.URx*s), float32(rc.URy*s))
	r.ras.LineTo(float32(rc.LLx*s), float32(rc.URy*s))
	r.ras.ClosePath()
	r.cover()
	r.composite(c)
}

func (r *Raster) Save() {
	r.stack = append(r.stack, r.clip)
}

func (r *Raster) ClipPath(p *path.Data) {
	r.rasterize(p)
	next := image.NewAlpha(r.cov.Rect)
	copy(next.Pix, r.cov.Pix)
	if r.clip != nil {
		intersect(next, r.clip)
	}
	r.clip = next
}

func (r *Raster) Restore() {
	n := len(r.stack)
	if n == 0 {
		r.clip = nil
		return
	}
	r.clip = r.stack[n-1]
	r.stack = r.stack[:n-1]
}

func (r *Raster) DrawText(text string, x, y float64, face *typeface.Face, c color.Color) {
	if text == "" || face == nil {
		return
	}
	scaled := face.WithSize(face.Size() * r.scale)
	x = x*r.scale - scaled.Advance(text)/2
	y *= r.scale

	d := &font.Drawer{
		Src:  image.NewUniform(c),
		Face: scaled.FontFace(),
		Dot:  fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)},
	}
	if r.clip == nil {
		d.Dst = r.dst
		d.DrawString(text)
		return
	}
	b := r.dst.Bounds()
	tmp := image.NewRGBA(b)
	d.Dst = tmp
	d.DrawString(text)
	draw.DrawMask(r.dst, b, tmp, b.Min, r.clip, image.Point{}, draw.Over)
}

func (r *Raster) begin() {
	b := r.dst.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
}

// rasterize leaves the coverage of p in r.cov.
func (r *Raster) rasterize(p *path.Data) {
	r.begin()
	s := r.scale
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			c := p.Coords[i]
			r.ras.MoveTo(float32(c.X*s), float32(c.Y*s))
			i++
		case path.CmdLineTo:
			c := p.Coords[i]
			r.ras.LineTo(float32(c.X*s), float32(c.Y*s))
			i++
		case path.CmdQuadTo:
			c1, c2 := p.Coords[i], p.Coords[i+1]
			r.ras.QuadTo(float32(c1.X*s), float32(c1.Y*s), float32(c2.X*s), float32(c2.Y*s))
			i += 2
		case path.CmdCubeTo:
			c1, c2, c3 := p.Coords[i], p.Coords[i+1], p.Coords[i+2]
			r.ras.CubeTo(float32(c1.X*s), float32(c1.Y*s), float32(c2.X*s), float32(c2.Y*s), float32(c3.X*s), float32(c3.Y*s))
			i += 3
		case path.CmdClose:
			r.ras.ClosePath()
		}
	}
	r.cover()
}

func (r *Raster) cover() {
	clear(r.cov.Pix)
	r.ras.DrawOp = draw.Src
	r.ras.Draw(r.cov, r.cov.Rect, image.Opaque, image.Point{})
}

// composite paints c through the coverage in r.cov and the active clip.
func (r *Raster) composite(c color.Color) {
	if r.clip != nil {
		intersect(r.cov, r.clip)
	}
	b := r.dst.Bounds()
	draw.DrawMask(r.dst, b, image.NewUniform(c), image.Point{}, r.cov, image.Point{}, draw.Over)
}

// intersect multiplies dst's coverage by m's.
func intersect(dst, m *image.Alpha) {
	for i, a := range dst.Pix {
		if i >= len(m.Pix) {
			break
		}
		dst.Pix[i] = uint8(uint16(a) * uint16(m.Pix[i]) / 255)
	}
}
