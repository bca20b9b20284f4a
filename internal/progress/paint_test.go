package progress

import (
	"math"
	"reflect"
	"testing"

	"seehuhn.de/go/geom/rect"
)

func laidOut(t *testing.T, init func(v *View) error) *View {
	t.Helper()
	v, err := New(nil, init)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	w, h := v.Measure(Unbounded(), Unbounded())
	v.Layout(rect.Rect{URx: float64(w), URy: float64(h)})
	return v
}

func near(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func kinds(ops []Op) []OpKind {
	out := make([]OpKind, len(ops))
	for i, op := range ops {
		out[i] = op.Kind
	}
	return out
}

func TestPaintScenario(t *testing.T) {
	v := laidOut(t, func(v *View) error {
		v.SetCurrentProgress(60)
		return nil
	})
	var rec Recorder
	v.Paint(&rec)

	if got, want := kinds(rec.Ops), []OpKind{OpFillPath, OpFillPath}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ops = %v, want %v", got, want)
	}
	fx := 60.0 / 184 * 300
	bg, fill := rec.Ops[0], rec.Ops[1]
	if bg.Color != DefaultBackgroundColor || !near(bg.Bounds.LLx, fx-seamBias) || !near(bg.Bounds.URx, 300) {
		t.Fatalf("background piece = %v, want [%.2f, 300]", bg, fx-seamBias)
	}
	if fill.Color != DefaultProgressColor || !near(fill.Bounds.LLx, 0) || !near(fill.Bounds.URx, fx) {
		t.Fatalf("fill piece = %v, want [0, %.2f]", fill, fx)
	}
	if fill.Bounds.LLy != 0 || fill.Bounds.URy != DefaultBarHeight {
		t.Fatalf("fill piece spans y [%v, %v]", fill.Bounds.LLy, fill.Bounds.URy)
	}
}

func TestPaintProgressStates(t *testing.T) {
	tests := []struct {
		name    string
		current int
		want    []OpKind
		check   func(t *testing.T, ops []Op)
	}{
		{
			name:    "empty",
			current: 0,
			want:    []OpKind{OpFillPath},
			check: func(t *testing.T, ops []Op) {
				if ops[0].Color != DefaultBackgroundColor || !near(ops[0].Bounds.URx, 300) {
					t.Fatalf("empty bar = %v", ops[0])
				}
			},
		},
		{
			name:    "negative",
			current: -20,
			want:    []OpKind{OpFillPath},
			check: func(t *testing.T, ops []Op) {
				if ops[0].Color != DefaultBackgroundColor {
					t.Fatalf("negative progress drew %v", ops[0])
				}
			},
		},
		{
			name:    "full",
			current: 184,
			want:    []OpKind{OpFillPath},
			check: func(t *testing.T, ops []Op) {
				if ops[0].Color != DefaultProgressColor || ops[0].Subpaths != 1 {
					t.Fatalf("full bar = %v", ops[0])
				}
			},
		},
		{
			name:    "beyond total",
			current: 999,
			want:    []OpKind{OpFillPath},
			check: func(t *testing.T, ops []Op) {
				if ops[0].Color != DefaultProgressColor {
					t.Fatalf("overfull bar = %v", ops[0])
				}
			},
		},
		{
			name:    "inside left end",
			current: 3,
			want:    []OpKind{OpFillPath, OpSave, OpClip, OpFillRect, OpRestore},
			check: func(t *testing.T, ops []Op) {
				r := ops[3]
				if r.Color != DefaultProgressColor || r.Bounds.LLx != 0 || !near(r.Bounds.URx, 3.0/184*300) {
					t.Fatalf("fill rect = %v", r)
				}
				if !near(ops[2].Bounds.URx, 300) {
					t.Fatalf("clip = %v, want the whole track", ops[2])
				}
			},
		},
		{
			name:    "inside right end",
			current: 182,
			want:    []OpKind{OpFillPath, OpFillPath, OpSave, OpClip, OpFillRect, OpRestore},
			check: func(t *testing.T, ops []Op) {
				bg, fill, r := ops[0], ops[1], ops[4]
				if bg.Subpaths != 1 || !near(bg.Bounds.LLx, 295) {
					t.Fatalf("background = %v, want only the end cap", bg)
				}
				if !near(fill.Bounds.URx, 295) {
					t.Fatalf("fill = %v, want to stop where the end cap starts", fill)
				}
				if !near(r.Bounds.LLx, 295) || !near(r.Bounds.URx, 182.0/184*300) {
					t.Fatalf("fill rect = %v", r)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := laidOut(t, func(v *View) error {
				v.SetCurrentProgress(tt.current)
				return nil
			})
			var rec Recorder
			v.Paint(&rec)
			if got := kinds(rec.Ops); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ops = %v, want %v", got, tt.want)
			}
			tt.check(t, rec.Ops)
		})
	}
}

func TestPaintZeroRadius(t *testing.T) {
	v := laidOut(t, func(v *View) error {
		v.SetCornerRadius(0)
		v.SetCurrentProgress(92)
		return nil
	})
	var rec Recorder
	v.Paint(&rec)
	for _, op := range rec.Filter(OpFillPath) {
		if op.Subpaths != 1 {
			t.Fatalf("square piece has %d subpaths: %v", op.Subpaths, op)
		}
	}
}

func TestPaintTinyProgressStaysInTrack(t *testing.T) {
	v := laidOut(t, func(v *View) error {
		v.SetCornerRadius(0)
		if err := v.SetBarWidth(100); err != nil {
			return err
		}
		v.SetMarkers([]int{1, 184})
		v.SetCurrentProgress(1)
		return nil
	})
	tr := v.Track()
	var rec Recorder
	v.Paint(&rec)
	pieces := rec.Filter(OpFillPath)
	if len(pieces) != 2 {
		t.Fatalf("fill paths = %v, want background and fill pieces", pieces)
	}
	for _, op := range pieces {
		if op.Bounds.LLx < tr.LLx || op.Bounds.URx > tr.URx {
			t.Fatalf("piece %v outside track %v", op, tr)
		}
	}
}

func TestPaintMarkers(t *testing.T) {
	v := laidOut(t, func(v *View) error {
		v.SetCurrentProgress(60)
		v.SetMarkers([]int{0, 10, 80, 200, -3})
		return nil
	})
	var rec Recorder
	v.Paint(&rec)

	texts := rec.Filter(OpText)
	if len(texts) != 2 || texts[0].Text != "10" || texts[1].Text != "80" {
		t.Fatalf("labels = %v, want 10 and 80", texts)
	}
	for _, op := range texts {
		if op.Y != v.Baseline() || op.Color != DefaultTextColor {
			t.Fatalf("label %v not on baseline %v", op, v.Baseline())
		}
	}
	if want := 10.0 / 184 * 300; !near(texts[0].X, want) {
		t.Fatalf("label 10 at x %v, want %v", texts[0].X, want)
	}

	ticks := rec.Filter(OpFillRect)
	if len(ticks) != 2 {
		t.Fatalf("got %d ticks, want 2", len(ticks))
	}
	for i, tick := range ticks {
		if tick.Color != DefaultMarkerColor || !near(tick.Bounds.URx-tick.Bounds.LLx, DefaultMarkerWidth) {
			t.Fatalf("tick %d = %v", i, tick)
		}
		if !near((tick.Bounds.LLx+tick.Bounds.URx)/2, texts[i].X) {
			t.Fatalf("tick %d not centred under its label", i)
		}
	}

	// Ticks are clipped, labels are not.
	lastRestore := -1
	firstText := -1
	for i, op := range rec.Ops {
		if op.Kind == OpRestore {
			lastRestore = i
		}
		if op.Kind == OpText && firstText < 0 {
			firstText = i
		}
	}
	if lastRestore < 0 || firstText < lastRestore {
		t.Fatalf("labels drawn inside the clip: %v", kinds(rec.Ops))
	}
}

func TestPaintWithoutTicks(t *testing.T) {
	v := laidOut(t, func(v *View) error {
		v.SetMarkers([]int{50})
		v.SetMarkerWidth(0)
		return nil
	})
	var rec Recorder
	v.Paint(&rec)
	if n := len(rec.Filter(OpFillRect)) + len(rec.Filter(OpClip)); n != 0 {
		t.Fatalf("zero marker width still drew ticks: %v", kinds(rec.Ops))
	}
	if len(rec.Filter(OpText)) != 1 {
		t.Fatal("label missing")
	}
}

func TestPaintIsIdempotent(t *testing.T) {
	v := laidOut(t, func(v *View) error {
		v.SetCurrentProgress(182)
		v.SetMarkers([]int{10, 80, 112, 136, 152})
		return nil
	})
	var first, second Recorder
	v.Paint(&first)
	v.Paint(&second)
	if !reflect.DeepEqual(first.Ops, second.Ops) {
		t.Fatalf("second paint differs:\n%v\n%v", first.Ops, second.Ops)
	}
}

func TestPaintBeforeLayout(t *testing.T) {
	v, _ := New(nil, nil)
	var rec Recorder
	v.Paint(&rec)
	if len(rec.Ops) != 0 {
		t.Fatalf("painted %v before layout", kinds(rec.Ops))
	}
}
