package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/san-kum/armtorque/internal/analysis"
	"github.com/san-kum/armtorque/internal/statics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const DefaultDPI = 150

var linkRGBA = [3]color.RGBA{
	{0, 0, 255, 255},
	{0, 160, 0, 255},
	{220, 0, 0, 255},
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Padding = vg.Points(10)
	p.Y.Padding = vg.Points(10)

	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.Add(plotter.NewGrid())
}

func writePNG(w io.Writer, p *plot.Plot, widthIn, heightIn float64, dpi int) error {
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	pngc := vgimg.PngCanvas{Canvas: c}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// PosePNG renders a three-link chain in millimeters with labelled joints.
func PosePNG(w io.Writer, joints [4]statics.Vec2, title string, widthIn, heightIn float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x (mm)"
	p.Y.Label.Text = "y (mm)"
	stylePlot(p)

	pts := make(plotter.XYs, len(joints))
	labels := make([]string, len(joints))
	for i, j := range joints {
		pts[i].X, pts[i].Y = j.X*1000, j.Y*1000
		labels[i] = JointLabel(i, j)
	}

	for i := 0; i < 3; i++ {
		line, err := plotter.NewLine(pts[i : i+2])
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(4)
		line.LineStyle.Color = linkRGBA[i]
		p.Add(line)
	}

	dots, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	dots.GlyphStyle.Shape = draw.CircleGlyph{}
	dots.GlyphStyle.Radius = vg.Points(4)
	dots.GlyphStyle.Color = color.Black
	p.Add(dots)

	names, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: labels})
	if err != nil {
		return err
	}
	for i := range names.TextStyle {
		names.TextStyle[i].Color = linkRGBA[0]
		names.TextStyle[i].Font.Size = vg.Points(8)
	}
	names.Offset = vg.Point{X: vg.Points(6), Y: vg.Points(6)}
	p.Add(names)

	// Keep x and y to the same scale around the shoulder.
	lo, hi := 0.0, 0.0
	for _, pt := range pts {
		lo = min(lo, pt.X, pt.Y)
		hi = max(hi, pt.X, pt.Y)
	}
	pad := (hi - lo) * 0.15
	p.X.Min, p.X.Max = lo-pad, hi+pad
	p.Y.Min, p.Y.Max = lo-pad, hi+pad

	return writePNG(w, p, widthIn, heightIn, DefaultDPI)
}

// SweepPNG plots max reach in millimeters against the swept value.
func SweepPNG(w io.Writer, sw *analysis.Sweep, widthIn, heightIn float64) error {
	if sw == nil || len(sw.Points) == 0 {
		return fmt.Errorf("sweep has no points")
	}

	p := plot.New()
	p.Title.Text = "max reach vs " + sw.Name
	p.X.Label.Text = sw.Name
	p.Y.Label.Text = "max x (mm)"
	stylePlot(p)

	pts := make(plotter.XYs, len(sw.Points))
	for i, sp := range sw.Points {
		pts[i].X = sp.Value
		pts[i].Y = sp.MaxX * 1000
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = linkRGBA[0]
	p.Add(line)

	marks, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	marks.GlyphStyle.Shape = draw.CircleGlyph{}
	marks.GlyphStyle.Radius = vg.Points(2.5)
	p.Add(marks)

	return writePNG(w, p, widthIn, heightIn, DefaultDPI)
}
