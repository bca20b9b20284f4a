package progress

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/typeface"
)

type countingHost struct {
	layouts  int
	repaints int
}

func (h *countingHost) RequestLayout()  { h.layouts++ }
func (h *countingHost) RequestRepaint() { h.repaints++ }

func TestConstructionDoesNotNotify(t *testing.T) {
	h := &countingHost{}
	v, err := New(h, func(v *View) error {
		if err := v.SetTotalProgress(100); err != nil {
			return err
		}
		v.SetCurrentProgress(30)
		v.SetMarkers([]int{20, 40})
		v.SetProgressColor(color.NRGBA{B: 0xFF, A: 0xFF})
		return v.SetBarHeight(20)
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	if h.layouts != 0 || h.repaints != 0 {
		t.Fatalf("construction notified host: %d layouts, %d repaints", h.layouts, h.repaints)
	}
	if v.TotalProgress() != 100 || v.CurrentProgress() != 30 || v.BarHeight() != 20 {
		t.Fatalf("initial configuration not applied: %+v", v.Props())
	}

	v.SetCurrentProgress(31)
	if h.repaints != 1 || h.layouts != 0 {
		t.Fatalf("after ready: %d layouts, %d repaints; want 0, 1", h.layouts, h.repaints)
	}
}

func TestConstructionError(t *testing.T) {
	_, err := New(nil, func(v *View) error { return v.SetTotalProgress(0) })
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("New error = %v, want ErrInvalidConfig", err)
	}
}

func TestSetterEffects(t *testing.T) {
	tests := []struct {
		name   string
		set    func(v *View)
		layout bool
	}{
		{name: "total progress", set: func(v *View) { _ = v.SetTotalProgress(10) }, layout: true},
		{name: "current progress", set: func(v *View) { v.SetCurrentProgress(5) }},
		{name: "markers", set: func(v *View) { v.SetMarkers([]int{1, 2}) }, layout: true},
		{name: "marker width", set: func(v *View) { v.SetMarkerWidth(6) }},
		{name: "corner radius", set: func(v *View) { v.SetCornerRadius(2) }},
		{name: "text margin", set: func(v *View) { v.SetTextMargin(4) }, layout: true},
		{name: "bar height", set: func(v *View) { _ = v.SetBarHeight(30) }, layout: true},
		{name: "bar width", set: func(v *View) { _ = v.SetBarWidth(120) }, layout: true},
		{name: "text size", set: func(v *View) { _ = v.SetTextSize(20) }, layout: true},
		{name: "font", set: func(v *View) { v.SetFont(typeface.Fallback()) }, layout: true},
		{name: "marker color", set: func(v *View) { v.SetMarkerColor(color.Black) }},
		{name: "progress color", set: func(v *View) { v.SetProgressColor(color.White) }},
		{name: "background color", set: func(v *View) { v.SetBackgroundColor(color.White) }},
		{name: "text color", set: func(v *View) { v.SetTextColor(color.White) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &countingHost{}
			v, err := New(h, nil)
			if err != nil {
				t.Fatalf("New error: %v", err)
			}
			tt.set(v)
			wantLayouts, wantRepaints := 0, 1
			if tt.layout {
				wantLayouts, wantRepaints = 1, 0
			}
			if h.layouts != wantLayouts || h.repaints != wantRepaints {
				t.Fatalf("got %d layouts, %d repaints; want %d, %d", h.layouts, h.repaints, wantLayouts, wantRepaints)
			}
			tt.set(v)
			if h.layouts+h.repaints != 1 {
				t.Fatalf("setting the same value again notified the host")
			}
		})
	}
}

func TestEveryPropClassified(t *testing.T) {
	for p := Prop(0); p < numProps; p++ {
		if p.String() == "" || p.String() == "unknown" {
			t.Fatalf("prop %d has no name", int(p))
		}
	}
}

func TestInvalidValuesRejected(t *testing.T) {
	h := &countingHost{}
	v, _ := New(h, nil)
	checks := []struct {
		name string
		err  error
	}{
		{name: "zero total", err: v.SetTotalProgress(0)},
		{name: "negative total", err: v.SetTotalProgress(-3)},
		{name: "zero height", err: v.SetBarHeight(0)},
		{name: "negative width", err: v.SetBarWidth(-1)},
		{name: "zero text size", err: v.SetTextSize(0)},
	}
	for _, c := range checks {
		if !errors.Is(c.err, ErrInvalidConfig) {
			t.Errorf("%s: error = %v, want ErrInvalidConfig", c.name, c.err)
		}
	}
	if v.TotalProgress() != DefaultTotalProgress || v.BarHeight() != DefaultBarHeight {
		t.Fatalf("rejected values changed the view: %+v", v.Props())
	}
	if h.layouts != 0 || h.repaints != 0 {
		t.Fatalf("rejected values notified the host")
	}

	v.SetMarkerWidth(-2)
	v.SetCornerRadius(-2)
	v.SetTextMargin(-2)
	if v.MarkerWidth() != 0 || v.CornerRadius() != 0 || v.TextMargin() != 0 {
		t.Fatalf("negative lengths not clamped: %+v", v.Props())
	}
}

func TestPropsIsACopy(t *testing.T) {
	v, _ := New(nil, func(v *View) error {
		v.SetMarkers([]int{10, 20})
		return nil
	})
	p := v.Props()
	p.Markers[0] = 99
	if v.Markers()[0] != 10 {
		t.Fatal("Props exposed the view's marker slice")
	}
}

func TestTextSizeResizesFace(t *testing.T) {
	v, _ := New(nil, nil)
	small := v.Face().InkHeight("8")
	if err := v.SetTextSize(24); err != nil {
		t.Fatalf("SetTextSize error: %v", err)
	}
	if v.Face().Size() != 24 || v.Face().InkHeight("8") <= small {
		t.Fatalf("face not resized: size %v", v.Face().Size())
	}
}

func TestMeasureWithoutMarkers(t *testing.T) {
	v, _ := New(nil, nil)
	w, h := v.Measure(Unbounded(), Unbounded())
	if w != DefaultBarWidth || h != DefaultBarHeight {
		t.Fatalf("Measure = %dx%d, want %dx%d", w, h, DefaultBarWidth, DefaultBarHeight)
	}
}

func TestMeasureWithMarkers(t *testing.T) {
	v, _ := New(nil, func(v *View) error {
		v.SetMarkers([]int{10, 80, 112, 136, 152})
		return nil
	})
	w, h := v.Measure(Unbounded(), Unbounded())
	if w != DefaultBarWidth {
		t.Fatalf("width = %d, want %d (labels fit inside the bar)", w, DefaultBarWidth)
	}
	want := int(math.Ceil(DefaultBarHeight + v.Face().InkHeight("8") + DefaultTextMargin))
	if h != want {
		t.Fatalf("height = %d, want %d", h, want)
	}
}

func TestMeasureOnlyOutOfRangeMarkers(t *testing.T) {
	v, _ := New(nil, func(v *View) error {
		v.SetMarkers([]int{0, 400})
		return nil
	})
	if _, h := v.Measure(Unbounded(), Unbounded()); h != DefaultBarHeight {
		t.Fatalf("height = %d, want bar height only", h)
	}
}

func TestMeasureReservesLabelOverflow(t *testing.T) {
	v, _ := New(nil, func(v *View) error {
		v.SetMarkers([]int{1, 184})
		return nil
	})
	w, _ := v.Measure(Unbounded(), Unbounded())
	left, right := v.Overflow()
	if left <= 0 || right <= 0 {
		t.Fatalf("overflow = %v, %v; want both positive", left, right)
	}
	if want := int(math.Ceil(DefaultBarWidth + left + right)); w != want {
		t.Fatalf("width = %d, want %d", w, want)
	}

	v.Layout(rect.Rect{URx: float64(w), URy: 40})
	tr := v.Track()
	if tr.LLx != left || math.Abs(width(tr)-DefaultBarWidth) > 1e-9 {
		t.Fatalf("track = %+v, want to start at %v with width %v", tr, left, DefaultBarWidth)
	}
}

func TestConstraintResolve(t *testing.T) {
	tests := []struct {
		name string
		c    Constraint
		want int
	}{
		{name: "unspecified", c: Unbounded(), want: 120},
		{name: "at most, roomy", c: UpTo(500), want: 120},
		{name: "at most, tight", c: UpTo(80), want: 80},
		{name: "exactly", c: ExactSize(640), want: 640},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Resolve(120); got != tt.want {
				t.Fatalf("Resolve(120) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLayoutShrinksTrackToBounds(t *testing.T) {
	v, _ := New(nil, nil)
	v.Layout(rect.Rect{URx: 200, URy: 15})
	if got := width(v.Track()); got != 200 {
		t.Fatalf("track width = %v, want 200", got)
	}
	v.Layout(rect.Rect{URx: 800, URy: 15})
	if got := width(v.Track()); got != DefaultBarWidth {
		t.Fatalf("track width = %v, want %d", got, DefaultBarWidth)
	}

	// Bounds that cannot even hold the end labels leave no room for the bar.
	v.SetMarkers([]int{1, 184})
	v.Measure(Unbounded(), Unbounded())
	left, right := v.Overflow()
	bounds := rect.Rect{URx: left + right, URy: 40}
	v.Layout(bounds)
	tr := v.Track()
	if got := width(tr); got != 0 {
		t.Fatalf("track width = %v, want 0 in bounds %v wide", got, width(bounds))
	}
	if tr.URx > bounds.URx {
		t.Fatalf("track %v extends past bounds %v", tr, bounds)
	}
	rec := &Recorder{}
	v.Paint(rec)
	if len(rec.Ops) != 0 {
		t.Fatalf("painted %d ops into an empty track", len(rec.Ops))
	}
}
