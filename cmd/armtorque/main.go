package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/armtorque/internal/analysis"
	"github.com/san-kum/armtorque/internal/config"
	"github.com/san-kum/armtorque/internal/experiment"
	"github.com/san-kum/armtorque/internal/export"
	"github.com/san-kum/armtorque/internal/optim"
	"github.com/san-kum/armtorque/internal/statics"
	"github.com/san-kum/armtorque/internal/storage"
	"github.com/san-kum/armtorque/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	workers    int
	// Input overrides
	payload       float64
	shoulderLimit float64
	elbowLimit    float64
	// report
	asJSON bool
	save   bool
	// reach
	listAll bool
	// sweep
	sweepFrom float64
	sweepTo   float64
	sweepN    int
	pngOut    string
	// render
	format  string
	outFile string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if errors.Is(err, optim.ErrInterrupted) {
		os.Exit(130)
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "armtorque",
		Short:        "static joint torques and reach search for a planar arm",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := newLogger(cmd.ErrOrStderr(), logLevel(verbose))
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, logger))
		},
		RunE: runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.IntVar(&workers, "workers", 0, "search workers (0 or 1 runs sequentially)")
	pf.Float64Var(&payload, "payload", 0, "payload mass (kg)")
	pf.Float64Var(&shoulderLimit, "shoulder-limit", 0, "shoulder torque limit (N·m)")
	pf.Float64Var(&elbowLimit, "elbow-limit", 0, "elbow torque limit (N·m)")

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "run both scenarios",
		Args:  cobra.NoArgs,
		RunE:  runReport,
	}
	reportCmd.Flags().BoolVar(&asJSON, "json", false, "print the report as json")
	reportCmd.Flags().BoolVar(&save, "save", false, "append a snapshot row")

	referenceCmd := &cobra.Command{
		Use:   "reference",
		Short: "torques of the fixed reference pose",
		Args:  cobra.NoArgs,
		RunE:  runReference,
	}

	reachCmd := &cobra.Command{
		Use:   "reach",
		Short: "search for the pose with maximum horizontal reach",
		Args:  cobra.NoArgs,
		RunE:  runReach,
	}
	reachCmd.Flags().BoolVar(&listAll, "all", false, "list every feasible pose")

	sweepCmd := &cobra.Command{
		Use:       "sweep [shoulder|elbow|tolerance]",
		Short:     "max reach over a range of one input",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"shoulder", "elbow", "tolerance"},
		RunE:      runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 60, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 31, "number of values")
	sweepCmd.Flags().StringVar(&pngOut, "png", "", "also write a png plot")

	saveCmd := &cobra.Command{
		Use:   "save",
		Short: "run both scenarios and append a snapshot row",
		Args:  cobra.NoArgs,
		RunE:  runSave,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}

	renderCmd := &cobra.Command{
		Use:       "render [reference|reach]",
		Short:     "draw a scenario pose",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"reference", "reach"},
		RunE:      runRender,
	}
	renderCmd.Flags().StringVar(&format, "format", "term", "output format (term, svg, dots, png)")
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout; required for png)")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive control surface",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the effective configuration to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(reportCmd, referenceCmd, reachCmd, sweepCmd, saveCmd, listCmd, renderCmd, tuiCmd, presetsCmd, initCmd)
	return rootCmd
}

// loadConfig resolves the effective configuration: preset, then config file,
// then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("workers") {
		cfg.Search.Workers = workers
	}
	if flags.Changed("payload") {
		cfg.Masses.Payload = payload
	}
	if flags.Changed("shoulder-limit") {
		cfg.Limits.Shoulder = shoulderLimit
	}
	if flags.Changed("elbow-limit") {
		cfg.Limits.Elbow = elbowLimit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.FromContext(cmd.Context()).Debug("config",
		"payload", cfg.Masses.Payload,
		"shoulder_limit", cfg.Limits.Shoulder,
		"elbow_limit", cfg.Limits.Elbow,
		"workers", cfg.Search.Workers,
	)
	return cfg, nil
}

func appendSnapshot(cmd *cobra.Command, cfg *config.Config, report *experiment.Report) (string, error) {
	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return "", err
	}
	snap := storage.FromReport(report)
	if err := st.Append(cmd.Context(), snap); err != nil {
		return "", err
	}
	log.FromContext(cmd.Context()).Info("saved snapshot", "id", snap.ID, "file", st.Path())
	return snap.ID, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report, err := experiment.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		if err := storage.ExportJSON(out, report); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(out, viz.RenderReport(report))
	}

	if save {
		if _, err := appendSnapshot(cmd, cfg, report); err != nil {
			return err
		}
	}
	return nil
}

func runReference(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report, err := experiment.NewRegistry().Run(cmd.Context(), "reference", cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.ReferenceLine(report.Reference))
	fmt.Fprintln(out, viz.PoseLegend(report.Reference.Points.Joints()))
	return nil
}

func runReach(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	logger := log.FromContext(ctx)

	prog := newProgress(logger)
	report, err := experiment.NewRegistry().Run(ctx, "reach", cfg)
	if err != nil {
		return err
	}
	res := report.Reach
	prog.done(fmt.Sprintf("Searched %d poses", res.Evaluated))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.ReachLine(res))
	if !res.Found {
		fmt.Fprintln(out, "no feasible pose within limits")
	} else {
		fmt.Fprintf(out, "theta1=%.1f° theta2=%.1f°  shoulder=%.3f N·m  elbow=%.3f N·m\n",
			res.Theta1Deg, res.Theta2Deg, math.Abs(res.Shoulder), math.Abs(res.Elbow))
	}
	fmt.Fprintf(out, "evaluated=%d at_height=%d feasible=%d\n", res.Evaluated, res.PositionFeasible, res.Feasible)

	if !listAll {
		return nil
	}

	poses, err := cfg.ReachSearch().FeasiblePoses(ctx, cfg.Arm(), cfg.Limits)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "THETA1\tTHETA2\tX (mm)\tSHOULDER\tELBOW")
	for _, c := range poses {
		fmt.Fprintf(w, "%.1f\t%.1f\t%.1f\t%.3f\t%.3f\n",
			c.Theta1Deg, c.Theta2Deg, c.Reach*1000, math.Abs(c.Shoulder), math.Abs(c.Elbow))
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if sweepN < 1 {
		return fmt.Errorf("--n must be at least 1")
	}
	values := analysis.LinearValues(sweepFrom, sweepTo, sweepN)

	prog := newProgress(log.FromContext(ctx))
	var sw *analysis.Sweep
	if args[0] == "tolerance" {
		if !cmd.Flags().Changed("from") && !cmd.Flags().Changed("to") {
			values = analysis.LinearValues(0.002, 0, sweepN)
		}
		sw, err = analysis.SweepTolerance(ctx, cfg.ReachSearch(), cfg.Arm(), cfg.Limits, values)
	} else {
		joint, perr := analysis.ParseJoint(args[0])
		if perr != nil {
			return perr
		}
		sw, err = analysis.SweepLimit(ctx, cfg.ReachSearch(), cfg.Arm(), cfg.Limits, joint, values)
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Swept %d values of %s", len(values), sw.Name))

	series, caption := sw.Reaches(), "max x (mm) vs "+sw.Name
	if args[0] == "tolerance" {
		series, caption = sw.FeasibleCounts(), "poses at height vs tolerance"
	} else {
		for i := range series {
			series[i] *= 1000
		}
	}

	out := cmd.OutOrStdout()
	if len(series) > 1 {
		fmt.Fprintln(out, asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		))
		fmt.Fprintln(out)
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tX (mm)\tTHETA1\tTHETA2\tAT HEIGHT\tFEASIBLE\n", strings.ToUpper(sw.Name))
	for _, p := range sw.Points {
		fmt.Fprintf(w, "%g\t%.1f\t%.1f\t%.1f\t%d\t%d\n",
			p.Value, p.MaxX*1000, p.Theta1Deg, p.Theta2Deg, p.PositionFeasible, p.Feasible)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if pngOut == "" {
		return nil
	}
	f, err := os.Create(pngOut)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.SweepPNG(f, sw, 8, 6); err != nil {
		return err
	}
	return f.Close()
}

func runSave(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	report, err := experiment.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	id, err := appendSnapshot(cmd, cfg, report)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), id)
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	snaps, err := storage.New(cfg.DataDir).List(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(snaps) == 0 {
		fmt.Fprintln(out, "no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPAYLOAD\tLIMITS\tTS\tTE\tX (mm)\tANGLES")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.0f/%.0f\t%.3f\t%.3f\t%.1f\t(%.1f°, %.1f°)\n",
			s.ID,
			s.Timestamp.Local().Format("2006-01-02 15:04:05"),
			s.RockMass,
			s.ShoulderLimit, s.ElbowLimit,
			math.Abs(s.ShoulderTorque), math.Abs(s.ElbowTorque),
			s.MaxX*1000,
			math.Abs(s.Theta1Deg), math.Abs(s.Theta2Deg),
		)
	}
	return w.Flush()
}

func scenarioJoints(cmd *cobra.Command, cfg *config.Config, name string) ([4]statics.Vec2, string, error) {
	report, err := experiment.NewRegistry().Run(cmd.Context(), name, cfg)
	if err != nil {
		return [4]statics.Vec2{}, "", err
	}
	if name == "reference" {
		return report.Reference.Points.Joints(), viz.ReferenceLine(report.Reference), nil
	}
	return cfg.Arm().Resolve(report.Reach.Pose).Joints(), viz.ReachLine(report.Reach), nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	joints, title, err := scenarioJoints(cmd, cfg, args[0])
	if err != nil {
		return err
	}

	var content string
	switch format {
	case "term":
		content = viz.DrawPose(joints, 60, 15).String() + viz.PoseLegend(joints) + "\n" + title + "\n"
	case "svg":
		content = export.PoseSVG(joints, 550, 400, title)
	case "dots":
		content = export.CanvasToSVG(viz.DrawPose(joints, 60, 15), 4)
	case "png":
		if outFile == "" {
			return fmt.Errorf("png output requires --out")
		}
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.PosePNG(f, joints, title, 6, 5); err != nil {
			return err
		}
		log.FromContext(cmd.Context()).Info("wrote", "file", outFile)
		return f.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if outFile == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(outFile, []byte(content), 0644); err != nil {
		return err
	}
	log.FromContext(cmd.Context()).Info("wrote", "file", outFile)
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	// Debug lines would tear the alternate screen.
	quiet := withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), log.WarnLevel))
	return viz.RunControlSurface(quiet, cfg, st)
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPAYLOAD\tSHOULDER\tELBOW\tGRID")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.1f\t%.1f\t%dx%d\n",
			name, cfg.Masses.Payload, cfg.Limits.Shoulder, cfg.Limits.Elbow,
			cfg.Search.Theta1.Len(), cfg.Search.Theta2.Len())
	}
	return w.Flush()
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	path := args[0]
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	log.FromContext(cmd.Context()).Info("wrote config", "file", path)
	return nil
}
