package paint

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/progress"
)

// Backend selects the canvas used for offline rendering.
type Backend string

const (
	BackendGG     Backend = "gg"
	BackendRaster Backend = "raster"
)

// ParseBackend validates a backend name. The empty string selects gg.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", BackendGG:
		return BackendGG, nil
	case BackendRaster:
		return BackendRaster, nil
	}
	return "", fmt.Errorf("unknown backend %q (want %s or %s)", s, BackendGG, BackendRaster)
}

// Render measures v without constraints, lays it out at that size and paints
// it at scale device pixels per unit.
func Render(v *progress.View, scale float64, backend Backend) image.Image {
	pw, ph, scale := layoutForExport(v, scale)
	if backend == BackendRaster {
		dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
		v.Paint(NewRaster(dst, scale))
		return dst
	}
	c := NewGG(pw, ph, scale)
	v.Paint(c)
	return c.Image()
}

// WritePNG renders v like Render and encodes the result as PNG.
func WritePNG(out io.Writer, v *progress.View, scale float64, backend Backend) error {
	if backend == BackendRaster {
		return png.Encode(out, Render(v, scale, backend))
	}
	pw, ph, scale := layoutForExport(v, scale)
	c := NewGG(pw, ph, scale)
	v.Paint(c)
	return c.EncodePNG(out)
}

func layoutForExport(v *progress.View, scale float64) (pw, ph int, s float64) {
	if scale <= 0 {
		scale = 1
	}
	w, h := v.Measure(progress.Unbounded(), progress.Unbounded())
	v.Layout(rect.Rect{URx: float64(w), URy: float64(h)})
	pw = max(int(math.Ceil(float64(w)*scale)), 1)
	ph = max(int(math.Ceil(float64(h)*scale)), 1)
	return pw, ph, scale
}
