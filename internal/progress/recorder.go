package progress

import (
	"fmt"
	"image/color"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/typeface"
)

// OpKind identifies a recorded canvas call.
type OpKind int

const (
	OpFillPath OpKind = iota
	OpFillRect
	OpSave
	OpClip
	OpRestore
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpFillPath:
		return "fill-path"
	case OpFillRect:
		return "fill-rect"
	case OpSave:
		return "save"
	case OpClip:
		return "clip"
	case OpRestore:
		return "restore"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded canvas call. Paths are summarised by their bounds and
// subpath count.
type Op struct {
	Kind     OpKind
	Bounds   rect.Rect
	Subpaths int
	Color    color.NRGBA
	Text     string
	X, Y     float64
}

func (o Op) String() string {
	switch o.Kind {
	case OpFillPath, OpClip:
		return fmt.Sprintf("%s %d subpaths [%.1f,%.1f]-[%.1f,%.1f] %v", o.Kind, o.Subpaths,
			o.Bounds.LLx, o.Bounds.LLy, o.Bounds.URx, o.Bounds.URy, o.Color)
	case OpFillRect:
		return fmt.Sprintf("%s [%.1f,%.1f]-[%.1f,%.1f] %v", o.Kind,
			o.Bounds.LLx, o.Bounds.LLy, o.Bounds.URx, o.Bounds.URy, o.Color)
	case OpText:
		return fmt.Sprintf("%s %q at (%.1f,%.1f) %v", o.Kind, o.Text, o.X, o.Y, o.Color)
	}
	return o.Kind.String()
}

// Recorder is a Canvas that records calls instead of drawing. It is used to
// inspect the geometry a View produces.
type Recorder struct {
	Ops []Op
}

// Reset drops every recorded op.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

func (r *Recorder) FillPath(p *path.Data, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPath, Bounds: PathBounds(p), Subpaths: countSubpaths(p), Color: toNRGBA(c)})
}

func (r *Recorder) FillRect(rc rect.Rect, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Bounds: rc, Color: toNRGBA(c)})
}

func (r *Recorder) Save() { r.Ops = append(r.Ops, Op{Kind: OpSave}) }

func (r *Recorder) ClipPath(p *path.Data) {
	r.Ops = append(r.Ops, Op{Kind: OpClip, Bounds: PathBounds(p), Subpaths: countSubpaths(p)})
}

func (r *Recorder) Restore() { r.Ops = append(r.Ops, Op{Kind: OpRestore}) }

func (r *Recorder) DrawText(text string, x, y float64, _ *typeface.Face, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Text: text, X: x, Y: y, Color: toNRGBA(c)})
}

// Filter returns the recorded ops of one kind.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func countSubpaths(p *path.Data) int {
	n := 0
	for _, cmd := range p.Cmds {
		if cmd == path.CmdMoveTo {
			n++
		}
	}
	return n
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
