package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel frames the report. The control surface derives its own styles
// from the active Theme.
var Panel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#445566")).
	Padding(0, 1)

var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#eeeeee")).
	BorderStyle(lipgloss.NormalBorder()).
	BorderBottom(true).
	BorderForeground(lipgloss.Color("#445566"))

var (
	Label = lipgloss.NewStyle().Foreground(lipgloss.Color("#8899aa"))
	Value = lipgloss.NewStyle().Foreground(lipgloss.Color("#33ccff")).Bold(true)
	Note  = lipgloss.NewStyle().Foreground(lipgloss.Color("#667788"))
	Warn  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaa00")).Bold(true)

	// Load bar colors by share of the torque limit used.
	LoadLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88"))
	LoadMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00"))
	LoadHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

// GradientText colors each rune of text along a linear blend from one
// "#rrggbb" color to another.
func GradientText(text string, from, to lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) < 2 {
		return lipgloss.NewStyle().Foreground(from).Render(text)
	}
	fr, fg, fb := rgb(from)
	tr, tg, tb := rgb(to)

	var b strings.Builder
	last := float64(len(runes) - 1)
	for i, c := range runes {
		t := float64(i) / last
		col := fmt.Sprintf("#%02x%02x%02x", blend(fr, tr, t), blend(fg, tg, t), blend(fb, tb, t))
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(col)).Render(string(c)))
	}
	return b.String()
}

// rgb parses "#rrggbb"; anything else is white.
func rgb(c lipgloss.Color) (r, g, b int) {
	if _, err := fmt.Sscanf(string(c), "#%2x%2x%2x", &r, &g, &b); err != nil {
		return 255, 255, 255
	}
	return r, g, b
}

func blend(a, b int, t float64) int {
	return int(float64(a) + t*float64(b-a))
}

// LoadBar renders how much of a torque limit is used. Fractions above one
// fill the bar and render it in the high color.
func LoadBar(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	switch {
	case fraction > 0.9:
		return LoadHigh.Render(bar)
	case fraction > 0.6:
		return LoadMid.Render(bar)
	}
	return LoadLow.Render(bar)
}

// Separator is a horizontal rule of width cells with a marker in the middle.
func Separator(width int, style lipgloss.Style) string {
	left := max(width/2-2, 0)
	right := max(width-left-3, 0)
	return style.Render(strings.Repeat("─", left) + " ◆ " + strings.Repeat("─", right))
}
