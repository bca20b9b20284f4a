package cli

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"seehuhn.de/go/geom/rect"

	"github.com/edward-ap/stepprogress/internal/paint"
	"github.com/edward-ap/stepprogress/internal/progress"
)

var (
	inspectStyle   string
	inspectCurrent int
	inspectColumns int
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the bar geometry and a terminal preview",
	Long:  "Lays the bar out at its natural size, lists the drawing calls of one paint and previews the result in the terminal.",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectStyle, "style", "", "style file (json, yaml or toml)")
	f.IntVar(&inspectCurrent, "current", 0, "current progress, overrides the style")
	f.IntVar(&inspectColumns, "columns", 60, "preview width in terminal cells")
}

func runInspect(cmd *cobra.Command, args []string) error {
	if inspectColumns < 2 {
		return fmt.Errorf("--columns must be at least 2, got %d", inspectColumns)
	}
	v, err := loadView(inspectStyle, "", inspectCurrent, cmd.Flags().Changed("current"))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	r := lipgloss.NewRenderer(out)
	writeReport(out, r, v)
	writePreview(out, r, v, inspectColumns)
	return nil
}

func writeReport(out io.Writer, r *lipgloss.Renderer, v *progress.View) {
	heading := r.NewStyle().Bold(true).Foreground(lipgloss.Color("#89b4fa"))
	label := r.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	muted := r.NewStyle().Faint(true)

	w, h := v.Measure(progress.Unbounded(), progress.Unbounded())
	v.Layout(rectOf(w, h))
	tr := v.Track()
	left, right := v.Overflow()

	row := func(k, val string) {
		fmt.Fprintf(out, "%s %s\n", label.Render(fmt.Sprintf("%-10s", k)), val)
	}
	fmt.Fprintln(out, heading.Render("Step progress"))
	row("progress", fmt.Sprintf("%d / %d", v.CurrentProgress(), v.TotalProgress()))
	row("markers", orNone(progress.FormatMarkers(v.Markers())))
	row("size", fmt.Sprintf("%d x %d", w, h))
	row("track", fmt.Sprintf("[%.1f,%.1f]-[%.1f,%.1f]", tr.LLx, tr.LLy, tr.URx, tr.URy))
	row("overflow", fmt.Sprintf("left %.1f right %.1f", left, right))
	row("fill", fmt.Sprintf("%.1f", progress.FillOffset(v.CurrentProgress(), v.TotalProgress(), tr.URx-tr.LLx)))

	rec := &progress.Recorder{}
	v.Paint(rec)
	fmt.Fprintln(out, heading.Render(fmt.Sprintf("Paint (%d ops)", len(rec.Ops))))
	for i, op := range rec.Ops {
		fmt.Fprintf(out, "%s %s\n", muted.Render(fmt.Sprintf("%3d", i)), op)
	}
}

// writePreview samples the rasterized bar along its centre line, one sample
// per terminal cell, and prints it as colored cells with marker labels below.
func writePreview(out io.Writer, r *lipgloss.Renderer, v *progress.View, columns int) {
	w, _ := v.Measure(progress.Unbounded(), progress.Unbounded())
	scale := float64(columns) / float64(w)
	img := paint.Render(v, scale, paint.BackendRaster)
	tr := v.Track()
	y := int(math.Floor((tr.LLy + tr.URy) / 2 * scale))

	bounds := img.Bounds()
	var bar strings.Builder
	for x := 0; x < columns && x < bounds.Dx(); x++ {
		bar.WriteString(cell(r, img, x, y))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, bar.String())
	fmt.Fprintln(out, labelLine(v, scale, columns))
}

func cell(r *lipgloss.Renderer, img image.Image, x, y int) string {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	if c.A < 0x80 {
		return " "
	}
	hex := fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	return r.NewStyle().Foreground(lipgloss.Color(hex)).Render("█")
}

func rectOf(w, h int) rect.Rect {
	return rect.Rect{URx: float64(w), URy: float64(h)}
}

// labelLine places each in-range marker label centred under its column.
func labelLine(v *progress.View, scale float64, columns int) string {
	line := []rune(strings.Repeat(" ", columns))
	tr := v.Track()
	total := v.TotalProgress()
	for _, m := range v.Markers() {
		if !progress.InRange(m, total) {
			continue
		}
		x := (tr.LLx + progress.MarkerOffset(m, total, tr.URx-tr.LLx)) * scale
		text := []rune(fmt.Sprint(m))
		start := int(math.Round(x)) - len(text)/2
		start = min(max(start, 0), columns-len(text))
		if start < 0 {
			continue
		}
		copy(line[start:], text)
	}
	return strings.TrimRight(string(line), " ")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
