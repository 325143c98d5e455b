package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/san-kum/armtorque/internal/experiment"
	"github.com/san-kum/armtorque/internal/optim"
)

// ReferenceLine is the one-line summary of the fixed-pose torques.
func ReferenceLine(ref *experiment.Reference) string {
	return fmt.Sprintf("Scenario 1: Shoulder Torque = %.3f Nm   |   Elbow Torque = %.3f Nm",
		math.Abs(ref.Shoulder), math.Abs(ref.Elbow))
}

// ReachLine is the one-line summary of the reach search: reach in
// millimeters and unsigned joint angles in degrees.
func ReachLine(res *optim.ReachResult) string {
	return fmt.Sprintf("Scenario 2 (Max X): X = %.1f mm   |   Angles = (%.1f°, %.1f°)",
		res.MaxX*1000, math.Abs(res.Theta1Deg), math.Abs(res.Theta2Deg))
}

func loadRow(label string, torque, limit float64) string {
	frac := 1.0
	if limit > 0 {
		frac = math.Abs(torque) / limit
	} else if torque == 0 {
		frac = 0
	}
	return fmt.Sprintf("%s %s %s",
		Label.Render(fmt.Sprintf("%-9s", label)),
		LoadBar(frac, 20),
		Value.Render(fmt.Sprintf("%7.3f / %.1f N·m", math.Abs(torque), limit)),
	)
}

// RenderReport formats every scenario present in r as a styled panel.
func RenderReport(r *experiment.Report) string {
	var b strings.Builder

	b.WriteString(Header.Render(fmt.Sprintf("arm statics  %.3f kg total", r.Masses.Total())) + "\n\n")

	if ref := r.Reference; ref != nil {
		b.WriteString(ReferenceLine(ref) + "\n")
		b.WriteString(loadRow("shoulder", ref.Shoulder, r.Limits.Shoulder) + "\n")
		b.WriteString(loadRow("elbow", ref.Elbow, r.Limits.Elbow) + "\n")
	}

	if res := r.Reach; res != nil {
		if r.Reference != nil {
			b.WriteString("\n")
		}
		b.WriteString(ReachLine(res) + "\n")
		if res.Found {
			b.WriteString(loadRow("shoulder", res.Shoulder, r.Limits.Shoulder) + "\n")
			b.WriteString(loadRow("elbow", res.Elbow, r.Limits.Elbow) + "\n")
		} else {
			b.WriteString(Warn.Render("no feasible pose within limits") + "\n")
		}
		b.WriteString(Note.Render(fmt.Sprintf("%d poses, %d at height, %d feasible, %s",
			res.Evaluated, res.PositionFeasible, res.Feasible, res.Elapsed.Round(time.Microsecond))) + "\n")
	}

	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}
