package demoapp

import (
	"bytes"
	"image/color"
	"log"

	"fyne.io/fyne/v2"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/paint"
	"github.com/edward-ap/stepprogress/internal/progress"
)

// AppIcon is the default icon used for the app and window: a half-filled bar
// on a dark rounded tile, rendered at start-up.
var AppIcon fyne.Resource

const iconSize = 64

func init() {
	b, err := renderIcon(iconSize)
	if err != nil {
		log.Println("icon render error:", err)
		return
	}
	AppIcon = fyne.NewStaticResource("stepprogress.png", b)
}

func renderIcon(size int) ([]byte, error) {
	c := paint.NewGG(size, size, 1)
	dc := c.Context()
	dc.DrawRoundedRectangle(0, 0, float64(size), float64(size), float64(size)/6)
	dc.SetColor(color.NRGBA{R: 0x26, G: 0x32, B: 0x38, A: 0xFF})
	dc.Fill()

	s := float64(size)
	v, err := progress.New(nil, func(v *progress.View) error {
		if err := v.SetTotalProgress(4); err != nil {
			return err
		}
		if err := v.SetBarWidth(s * 0.75); err != nil {
			return err
		}
		if err := v.SetBarHeight(s / 4); err != nil {
			return err
		}
		v.SetCornerRadius(s / 8)
		v.SetCurrentProgress(2)
		v.SetMarkerWidth(s / 32)
		return nil
	})
	if err != nil {
		return nil, err
	}
	// No markers: labels would not fit on the tile.
	left := s * 0.125
	top := (s - s/4) / 2
	dc.Push()
	dc.Translate(left, top)
	v.Layout(rect.Rect{URx: s * 0.75, URy: s / 4})
	v.Paint(c)
	dc.Pop()

	var buf bytes.Buffer
	if err := c.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
