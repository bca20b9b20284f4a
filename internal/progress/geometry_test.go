package progress

import (
	"math"
	"testing"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

func TestFillOffsetStaysOnTrack(t *testing.T) {
	widths := []float64{1, 37.5, 300, 1080}
	for total := 1; total <= 60; total++ {
		for current := 0; current <= total; current++ {
			for _, w := range widths {
				fx := FillOffset(current, total, w)
				if fx < 0 || fx > w {
					t.Fatalf("FillOffset(%d, %d, %v) = %v, outside [0, %v]", current, total, w, fx, w)
				}
			}
		}
	}
}

func TestFillOffsetClamps(t *testing.T) {
	tests := []struct {
		name    string
		current int
		total   int
		want    float64
	}{
		{name: "negative progress", current: -5, total: 184, want: 0},
		{name: "beyond total", current: 400, total: 184, want: 300},
		{name: "zero total", current: 10, total: 0, want: 0},
		{name: "scenario", current: 60, total: 184, want: 60.0 / 184 * 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FillOffset(tt.current, tt.total, 300)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestMarkerPositionsScenario(t *testing.T) {
	got := MarkerPositions([]int{10, 80, 112, 136, 152}, 184, 300)
	want := []float64{16.3, 130.4, 182.6, 221.7, 247.8}
	if len(got) != len(want) {
		t.Fatalf("got %d positions, want %d", len(got), len(want))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 0.05 {
			t.Errorf("marker %d at %.2f, want about %.1f", i, got[i], want[i])
		}
		if i > 0 && got[i] <= got[i-1] {
			t.Errorf("marker %d at %.2f not right of previous %.2f", i, got[i], got[i-1])
		}
	}
}

func TestMarkerOffsetMonotonic(t *testing.T) {
	for _, total := range []int{1, 7, 184, 1000} {
		prev := -1.0
		for v := 1; v <= total; v++ {
			x := MarkerOffset(v, total, 300)
			if x <= prev {
				t.Fatalf("total %d: marker %d at %v not after %v", total, v, x, prev)
			}
			if x < 0 || x > 300 {
				t.Fatalf("total %d: marker %d at %v off the track", total, v, x)
			}
			prev = x
		}
	}
}

func TestMarkerPositionsDropOutOfRange(t *testing.T) {
	got := MarkerPositions([]int{0, -4, 50, 185, 184}, 184, 184)
	if len(got) != 2 || math.Abs(got[0]-50) > 1e-9 || math.Abs(got[1]-184) > 1e-9 {
		t.Fatalf("got %v, want [50 184]", got)
	}
}

func TestNextMarker(t *testing.T) {
	markers := []int{80, 10, 152, 500, 112}
	tests := []struct {
		name    string
		current int
		want    int
		ok      bool
	}{
		{name: "before all", current: 0, want: 10, ok: true},
		{name: "on a marker", current: 80, want: 112, ok: true},
		{name: "unsorted input", current: 11, want: 80, ok: true},
		{name: "past the last drawable", current: 152, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NextMarker(markers, 184, tt.current)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("NextMarker(%d) = %d, %v; want %d, %v", tt.current, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestPiecesWindClockwise(t *testing.T) {
	shapes := map[string]func(p *path.Data){
		"rect":          func(p *path.Data) { appendRect(p, 0, 0, 10, 5) },
		"left rounded":  func(p *path.Data) { appendLeftRounded(p, 0, 0, 40, 15, 5) },
		"right rounded": func(p *path.Data) { appendRightRounded(p, 0, 0, 40, 15, 5) },
		"track":         func(p *path.Data) { appendTrack(p, rect.Rect{URx: 300, URy: 15}, 5) },
	}
	for name, build := range shapes {
		t.Run(name, func(t *testing.T) {
			var p path.Data
			build(&p)
			for i, a := range subpathAreas(&p) {
				if a <= 0 {
					t.Fatalf("subpath %d has signed area %v, want positive", i, a)
				}
			}
		})
	}
}

func TestRightRoundedDropsNarrowBody(t *testing.T) {
	var p path.Data
	appendRightRounded(&p, 296, 0, 300, 15, 5)
	if n := countSubpaths(&p); n != 1 {
		t.Fatalf("got %d subpaths, want only the end cap", n)
	}
	b := PathBounds(&p)
	if b.LLx != 295 || b.URx != 300 {
		t.Fatalf("cap spans [%v, %v], want [295, 300]", b.LLx, b.URx)
	}
}

// subpathAreas returns the shoelace area of each subpath's polygon of on-curve
// and control points. Positive means clockwise on screen.
func subpathAreas(p *path.Data) []float64 {
	var areas []float64
	var pts [][2]float64
	flush := func() {
		if len(pts) < 3 {
			pts = pts[:0]
			return
		}
		a := 0.0
		for i := range pts {
			j := (i + 1) % len(pts)
			a += pts[i][0]*pts[j][1] - pts[j][0]*pts[i][1]
		}
		areas = append(areas, a/2)
		pts = pts[:0]
	}
	i := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			flush()
			pts = append(pts, [2]float64{p.Coords[i].X, p.Coords[i].Y})
			i++
		case path.CmdLineTo:
			pts = append(pts, [2]float64{p.Coords[i].X, p.Coords[i].Y})
			i++
		case path.CmdQuadTo:
			for k := 0; k < 2; k++ {
				pts = append(pts, [2]float64{p.Coords[i+k].X, p.Coords[i+k].Y})
			}
			i += 2
		case path.CmdCubeTo:
			for k := 0; k < 3; k++ {
				pts = append(pts, [2]float64{p.Coords[i+k].X, p.Coords[i+k].Y})
			}
			i += 3
		}
	}
	flush()
	return areas
}
