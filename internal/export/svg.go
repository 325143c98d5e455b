package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/armtorque/internal/statics"
	"github.com/san-kum/armtorque/internal/viz"
)

// JointLabels name the chain points: shoulder origin, elbow, wrist, end.
var JointLabels = [4]string{"O", "A", "B", "E"}

// LinkColors are the stroke colors of links 1, 2 and 3.
var LinkColors = [3]string{"blue", "green", "red"}

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<g fill="#000000">
`, width, height, width, height)

	dotRadius := scale * 0.4
	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if !canvas.IsSet(col*2+dx, row*4+dy) {
						continue
					}
					cx := float64(col*2+dx)*scale + scale/2
					cy := float64(row*4+dy)*scale + scale/2
					fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// frame maps meters onto an image with equal x and y scale and y up.
type frame struct {
	minX, maxY, scale float64
	offX, offY        float64
}

func newFrame(points []statics.Vec2, width, height int, margin float64) frame {
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	innerW := float64(width) * (1 - 2*margin)
	innerH := float64(height) * (1 - 2*margin)
	scale := math.Min(innerW/rangeX, innerH/rangeY)

	return frame{
		minX:  minX,
		maxY:  maxY,
		scale: scale,
		offX:  float64(width)*margin + (innerW-rangeX*scale)/2,
		offY:  float64(height)*margin + (innerH-rangeY*scale)/2,
	}
}

func (f frame) project(p statics.Vec2) (float64, float64) {
	return f.offX + (p.X-f.minX)*f.scale, f.offY + (f.maxY-p.Y)*f.scale
}

// JointLabel formats a chain point the way the pose drawings label it.
func JointLabel(i int, p statics.Vec2) string {
	return fmt.Sprintf("%s (%.1fmm, %.1fmm)", JointLabels[i], p.X*1000, p.Y*1000)
}

// PoseSVG draws a three-link chain with its world axes. Joints are given in
// meters in drawing order.
func PoseSVG(joints [4]statics.Vec2, width, height int, title string) string {
	bounds := append(joints[:], statics.Vec2{})
	f := newFrame(bounds, width, height, 0.15)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
`, width, height, width, height)

	ox, oy := f.project(statics.Vec2{})
	fmt.Fprintf(&sb, "<line x1=\"0\" y1=\"%.1f\" x2=\"%d\" y2=\"%.1f\" stroke=\"#000000\" stroke-width=\"2\"/>\n", oy, width, oy)
	fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"0\" x2=\"%.1f\" y2=\"%d\" stroke=\"#000000\" stroke-width=\"2\"/>\n", ox, ox, height)
	fmt.Fprintf(&sb, "<text x=\"%d\" y=\"%.1f\">X</text>\n", width-15, oy-8)
	fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"15\">Y</text>\n", ox+8)

	for i := 0; i < 3; i++ {
		x1, y1 := f.project(joints[i])
		x2, y2 := f.project(joints[i+1])
		fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\" stroke=\"%s\" stroke-width=\"4\"/>\n",
			x1, y1, x2, y2, LinkColors[i])
	}

	for i, j := range joints {
		x, y := f.project(j)
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"5\" fill=\"black\"/>\n", x, y)
		fmt.Fprintf(&sb, "<text x=\"%.1f\" y=\"%.1f\" fill=\"blue\" font-size=\"10\">%s</text>\n", x+10, y-10, JointLabel(i, j))
	}

	if title != "" {
		fmt.Fprintf(&sb, "<text x=\"10\" y=\"20\" font-weight=\"bold\">%s</text>\n", title)
	}

	sb.WriteString("</svg>")
	return sb.String()
}
