package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/armtorque/internal/statics"
)

var jointNames = [4]string{"O", "A", "B", "E"}

// DrawPose draws a three-link chain, given in meters in drawing order, with
// the world axes through the shoulder origin.
func DrawPose(joints [4]statics.Vec2, w, h int) *Canvas {
	axes, links := poseLayers(joints, w, h)
	c := NewCanvas(w, h)
	for _, layer := range append([]*Canvas{axes}, links[:]...) {
		for row := range c.Grid {
			for col := range c.Grid[row] {
				c.Grid[row][col] |= layer.Grid[row][col]
			}
		}
	}
	return c
}

// poseLayers draws the axes and each link, with the joint disc at its far
// end, on separate canvases sharing one viewport.
func poseLayers(joints [4]statics.Vec2, w, h int) (*Canvas, [3]*Canvas) {
	axes := NewCanvas(w, h)
	bounds := append(joints[:], statics.Vec2{})
	vp := Fit(axes, bounds, 3)

	ox, oy := vp.Project(statics.Vec2{})
	for x := 0; x < w*2; x += 2 {
		axes.Set(x, oy)
	}
	for y := 0; y < h*4; y += 2 {
		axes.Set(ox, y)
	}

	var links [3]*Canvas
	for i := range links {
		c := NewCanvas(w, h)
		x0, y0 := vp.Project(joints[i])
		x1, y1 := vp.Project(joints[i+1])
		c.DrawLine(x0, y0, x1, y1)
		if i == 0 {
			c.DrawDisc(x0, y0, 1)
		}
		c.DrawDisc(x1, y1, 1)
		links[i] = c
	}
	return axes, links
}

// ColorPose renders DrawPose with each cell colored by the last link that
// touches it. Cells holding only axis dots use axis.
func ColorPose(joints [4]statics.Vec2, w, h int, colors [3]lipgloss.Color, axis lipgloss.Color) string {
	axes, links := poseLayers(joints, w, h)
	merged := DrawPose(joints, w, h)

	var b strings.Builder
	for row := range merged.Grid {
		for col, r := range merged.Grid[row] {
			style := lipgloss.NewStyle().Foreground(axis)
			owned := axes.Grid[row][col] != blank
			for i, l := range links {
				if l.Grid[row][col] != blank {
					style = lipgloss.NewStyle().Foreground(colors[i])
					owned = true
				}
			}
			if !owned {
				b.WriteRune(r)
				continue
			}
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// PoseLegend lists each joint with its coordinates in millimeters.
func PoseLegend(joints [4]statics.Vec2) string {
	lines := make([]string, len(joints))
	for i, j := range joints {
		lines[i] = fmt.Sprintf("%s (%.1fmm, %.1fmm)", jointNames[i], j.X*1000, j.Y*1000)
	}
	return strings.Join(lines, "\n")
}
