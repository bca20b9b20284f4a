package paint

import (
	"image"
	"image/color"
	"io"
	"log"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/progress"
	"github.com/edward-ap/stepprogress/internal/typeface"
)

var _ progress.Canvas = (*GG)(nil)

// GG is a canvas backed by a gg context. It is used for offline rendering
// to PNG.
type GG struct {
	dc    *gg.Context
	scale float64

	clip  *image.Alpha
	stack []*image.Alpha
	faces map[*typeface.Face]font.Face
}

// NewGG returns a canvas of w by h device pixels with a transparent
// background. A non-positive scale means 1.
func NewGG(w, h int, scale float64) *GG {
	if scale <= 0 {
		scale = 1
	}
	return &GG{
		dc:    gg.NewContext(w, h),
		scale: scale,
		faces: map[*typeface.Face]font.Face{},
	}
}

// Context exposes the underlying gg context.
func (g *GG) Context() *gg.Context { return g.dc }

// Image returns the rendered image.
func (g *GG) Image() image.Image { return g.dc.Image() }

// EncodePNG writes the rendered image as PNG.
func (g *GG) EncodePNG(w io.Writer) error { return g.dc.EncodePNG(w) }

func (g *GG) FillPath(p *path.Data, c color.Color) {
	g.trace(g.dc, p)
	g.dc.SetColor(c)
	g.dc.Fill()
}

func (g *GG) FillRect(rc rect.Rect, c color.Color) {
	s := g.scale
	g.dc.DrawRectangle(rc.LLx*s, rc.LLy*s, (rc.URx-rc.LLx)*s, (rc.URy-rc.LLy)*s)
	g.dc.SetColor(c)
	g.dc.Fill()
}

// Save pushes the clip. gg's own Push/Pop keep the current mask on Pop, so
// the clip stack is tracked here.
func (g *GG) Save() {
	g.dc.Push()
	g.stack = append(g.stack, g.clip)
}

func (g *GG) ClipPath(p *path.Data) {
	m := gg.NewContext(g.dc.Width(), g.dc.Height())
	g.trace(m, p)
	m.SetColor(color.White)
	m.Fill()
	mask := m.AsMask()
	if g.clip != nil {
		intersect(mask, g.clip)
	}
	if err := g.dc.SetMask(mask); err != nil {
		log.Printf("paint: clip: %v", err)
		return
	}
	g.clip = mask
}

func (g *GG) Restore() {
	n := len(g.stack)
	if n == 0 {
		g.clip = nil
		g.dc.ResetClip()
		return
	}
	g.dc.Pop()
	g.clip = g.stack[n-1]
	g.stack = g.stack[:n-1]
	if g.clip == nil {
		g.dc.ResetClip()
		return
	}
	_ = g.dc.SetMask(g.clip)
}

func (g *GG) DrawText(text string, x, y float64, face *typeface.Face, c color.Color) {
	if text == "" || face == nil {
		return
	}
	g.dc.SetFontFace(g.fontFace(face))
	g.dc.SetColor(c)
	g.dc.DrawStringAnchored(text, x*g.scale, y*g.scale, 0.5, 0)
}

// fontFace returns a freetype face for f at the canvas scale. Faces without
// font data, such as the bitmap fallback, are used as they are.
func (g *GG) fontFace(f *typeface.Face) font.Face {
	if ff, ok := g.faces[f]; ok {
		return ff
	}
	ff := f.FontFace()
	if src := f.Source(); src != nil {
		if ttf, err := truetype.Parse(src); err == nil {
			ff = truetype.NewFace(ttf, &truetype.Options{
				Size:    f.Size() * g.scale,
				Hinting: font.HintingFull,
			})
		} else {
			log.Printf("paint: truetype: %v", err)
		}
	}
	g.faces[f] = ff
	return ff
}

func (g *GG) trace(dc *gg.Context, p *path.Data) {
	s := g.scale
	dc.ClearPath()
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			c := p.Coords[i]
			dc.MoveTo(c.X*s, c.Y*s)
			i++
		case path.CmdLineTo:
			c := p.Coords[i]
			dc.LineTo(c.X*s, c.Y*s)
			i++
		case path.CmdQuadTo:
			c1, c2 := p.Coords[i], p.Coords[i+1]
			dc.QuadraticTo(c1.X*s, c1.Y*s, c2.X*s, c2.Y*s)
			i += 2
		case path.CmdCubeTo:
			c1, c2, c3 := p.Coords[i], p.Coords[i+1], p.Coords[i+2]
			dc.CubicTo(c1.X*s, c1.Y*s, c2.X*s, c2.Y*s, c3.X*s, c3.Y*s)
			i += 3
		case path.CmdClose:
			dc.ClosePath()
		}
	}
}
