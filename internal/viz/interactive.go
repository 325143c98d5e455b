package viz

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/armtorque/internal/config"
	"github.com/san-kum/armtorque/internal/experiment"
	"github.com/san-kum/armtorque/internal/physics"
	"github.com/san-kum/armtorque/internal/statics"
	"github.com/san-kum/armtorque/internal/storage"
)

// SnapshotSaver persists the inputs and results of the current report.
type SnapshotSaver interface {
	Append(context.Context, storage.Snapshot) error
}

var paramInfo = map[string]string{
	physics.RolePayload: "payload (kg)",
	physics.RoleLink1:   "link 1 (kg)",
	physics.RoleLink2:   "link 2 (kg)",
	physics.RoleLink3:   "link 3 (kg)",
	physics.RoleElbow:   "elbow (kg)",
	physics.RoleWrist:   "wrist (kg)",
	"shoulder_limit":    "shoulder (N·m)",
	"elbow_limit":       "elbow (N·m)",
}

type reportMsg struct {
	seq    int
	report *experiment.Report
	err    error
}

type savedMsg struct {
	id  string
	err error
}

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

// ControlSurface is a Bubble Tea model that edits the masses and torque
// limits and re-runs both scenarios after every change.
type ControlSurface struct {
	ctx    context.Context
	cfg    *config.Config
	store  SnapshotSaver
	params []string

	cursor  int
	editing bool
	editBuf string

	seq         int
	report      *experiment.Report
	err         error
	status      string
	statusLevel statusLevel

	theme         Theme
	width, height int
}

func NewControlSurface(ctx context.Context, cfg *config.Config, store SnapshotSaver) ControlSurface {
	params := append([]string{}, physics.Roles...)
	params = append(params, "shoulder_limit", "elbow_limit")
	return ControlSurface{
		ctx:    ctx,
		cfg:    cfg.Clone(),
		store:  store,
		params: params,
		theme:  ThemeClassic,
		width:  80,
		height: 24,
	}
}

func (m ControlSurface) Init() tea.Cmd { return m.recompute() }

// Config returns the inputs currently shown.
func (m ControlSurface) Config() *config.Config { return m.cfg.Clone() }

// Report returns the latest completed report, or nil.
func (m ControlSurface) Report() *experiment.Report { return m.report }

func (m ControlSurface) recompute() tea.Cmd {
	ctx, cfg, seq := m.ctx, m.cfg.Clone(), m.seq
	return func() tea.Msg {
		report, err := experiment.Run(ctx, cfg)
		return reportMsg{seq: seq, report: report, err: err}
	}
}

func (m ControlSurface) save() tea.Cmd {
	ctx, report, store := m.ctx, m.report, m.store
	return func() tea.Msg {
		snap := storage.FromReport(report)
		return savedMsg{id: snap.ID, err: store.Append(ctx, snap)}
	}
}

func (m ControlSurface) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.editKey(msg)
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case reportMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.report, m.err = msg.report, msg.err
	case savedMsg:
		if msg.err != nil {
			m = m.setStatus(statusError, "save failed: "+msg.err.Error())
		} else {
			m = m.setStatus(statusInfo, "saved "+msg.id)
		}
	}
	return m, nil
}

func (m ControlSurface) handleKey(msg tea.KeyMsg) (ControlSurface, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.params)-1 {
			m.cursor++
		}
	case "left", "h":
		return m.adjust(-1)
	case "right", "l":
		return m.adjust(1)
	case "H":
		return m.adjust(-10)
	case "L":
		return m.adjust(10)
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.value(), 'f', -1, 64)
	case "r":
		m.cfg = config.DefaultConfig()
		m = m.setStatus(statusInfo, "")
		return m.changed()
	case "t":
		m.theme = nextTheme(m.theme)
	case "s":
		if m.store == nil {
			return m.setStatus(statusWarn, "no snapshot store"), nil
		}
		if m.report == nil {
			return m.setStatus(statusWarn, "nothing to save yet"), nil
		}
		return m, m.save()
	}
	return m, nil
}

func (m ControlSurface) editKey(msg tea.KeyMsg) (ControlSurface, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.editing = false
		v, err := strconv.ParseFloat(m.editBuf, 64)
		m.editBuf = ""
		if err != nil {
			return m.setStatus(statusError, "invalid input"), nil
		}
		return m.set(v)
	case "esc":
		m.editing, m.editBuf = false, ""
	case "backspace":
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	default:
		if s := msg.String(); len(s) == 1 {
			c := s[0]
			if (c >= '0' && c <= '9') || c == '.' {
				m.editBuf += s
			}
		}
	}
	return m, nil
}

func (m ControlSurface) value() float64 {
	return m.cfg.Params()[m.params[m.cursor]]
}

func stepFor(name string) float64 {
	if strings.HasSuffix(name, "_limit") {
		return 1.0
	}
	return 0.1
}

func (m ControlSurface) adjust(steps float64) (ControlSurface, tea.Cmd) {
	name := m.params[m.cursor]
	v := m.value() + steps*stepFor(name)
	// keep values on a 0.01 grid
	v = math.Round(v*100) / 100
	return m.set(v)
}

func (m ControlSurface) set(v float64) (ControlSurface, tea.Cmd) {
	name := m.params[m.cursor]
	lo, hi := config.Bounds(name)
	v = math.Max(lo, math.Min(hi, v))

	cfg := m.cfg.Clone()
	if err := cfg.SetParam(name, v); err != nil {
		return m.setStatus(statusError, err.Error()), nil
	}
	m.cfg = cfg
	m = m.setStatus(statusInfo, "")
	return m.changed()
}

func (m ControlSurface) setStatus(level statusLevel, text string) ControlSurface {
	m.status, m.statusLevel = text, level
	return m
}

func (m ControlSurface) statusStyle() lipgloss.Style {
	switch m.statusLevel {
	case statusWarn:
		return lipgloss.NewStyle().Foreground(m.theme.Warning).Bold(true)
	case statusError:
		return lipgloss.NewStyle().Foreground(m.theme.Error).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(m.theme.Success).Bold(true)
}

func (m ControlSurface) changed() (ControlSurface, tea.Cmd) {
	m.seq++
	return m, m.recompute()
}

func (m ControlSurface) View() string {
	th := m.theme
	title := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)
	sel := lipgloss.NewStyle().Foreground(th.Text).Bold(true)
	val := lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
	dim := lipgloss.NewStyle().Foreground(th.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(th.Primary).Bold(true)

	var left strings.Builder
	left.WriteString(GradientText("ARMTORQUE", th.Primary, th.Accent) + "\n")
	left.WriteString(dim.Render("static joint torques") + "\n\n")

	params := m.cfg.Params()
	for i, name := range m.params {
		v := params[name]
		_, hi := config.Bounds(name)
		valStr := fmt.Sprintf("%7.2f", v)
		if m.editing && i == m.cursor {
			valStr = fmt.Sprintf("%7s", m.editBuf+"_")
		}
		bar := LoadBar(v/hi, 10)
		if i == m.cursor {
			left.WriteString(fmt.Sprintf("%s %s %s %s\n", title.Render("▸"), sel.Render(fmt.Sprintf("%-15s", paramInfo[name])), val.Render(valStr), bar))
		} else {
			left.WriteString(fmt.Sprintf("  %s %s %s\n", dim.Render(fmt.Sprintf("%-15s", paramInfo[name])), dim.Render(valStr), bar))
		}
	}

	var right strings.Builder
	switch {
	case m.err != nil:
		right.WriteString(lipgloss.NewStyle().Foreground(th.Error).Bold(true).Render("Invalid Input") + "\n" + dim.Render(m.err.Error()))
	case m.report == nil:
		right.WriteString(dim.Render("computing..."))
	default:
		right.WriteString(RenderReport(m.report) + "\n")
		right.WriteString(Separator(lipgloss.Width(right.String())-1, dim) + "\n")
		right.WriteString(m.poses())
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, left.String(), "    ", right.String())

	hints := []string{"j/k", "select", "h/l", "adjust", "enter", "edit", "s", "save", "t", "theme", "r", "reset", "q", "quit"}
	var hb strings.Builder
	for i := 0; i < len(hints); i += 2 {
		hb.WriteString(keyStyle.Render(hints[i]) + dim.Render(" "+hints[i+1]+"  "))
	}

	out := "\n" + body + "\n\n" + hb.String() + "\n"
	if m.status != "" {
		out += m.statusStyle().Render(m.status) + "\n"
	}
	return out
}

const poseW, poseH = 24, 8

// poses draws the reference pose and the reach optimum side by side.
func (m ControlSurface) poses() string {
	th := m.theme
	caption := lipgloss.NewStyle().Foreground(th.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(th.Muted)

	pane := func(name string, joints [4]statics.Vec2) string {
		return caption.Render(name) + "\n" +
			ColorPose(joints, poseW, poseH, th.Links, th.Muted) +
			dim.Render(PoseLegend(joints))
	}

	var panes []string
	if ref := m.report.Reference; ref != nil {
		panes = append(panes, pane("reference", ref.Points.Joints()), "  ")
	}
	if res := m.report.Reach; res != nil {
		name := "max reach"
		if !res.Found {
			name += " (none)"
		}
		panes = append(panes, pane(name, m.cfg.Arm().Resolve(res.Pose).Joints()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panes...)
}

// RunControlSurface starts the control surface in the alternate screen.
func RunControlSurface(ctx context.Context, cfg *config.Config, store SnapshotSaver) error {
	_, err := tea.NewProgram(NewControlSurface(ctx, cfg, store), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
