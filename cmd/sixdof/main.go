package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sixdof/internal/analysis"
	"github.com/san-kum/sixdof/internal/config"
	"github.com/san-kum/sixdof/internal/dynamo"
	"github.com/san-kum/sixdof/internal/experiment"
	"github.com/san-kum/sixdof/internal/quantity"
	"github.com/san-kum/sixdof/internal/storage"
	"github.com/san-kum/sixdof/internal/store"
	"github.com/san-kum/sixdof/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	dt         float64
	duration   float64
	integrator string
	controller string
	kp         float64
	ki         float64
	kd         float64
	limit      float64
	// Phase plot channels
	xChannel string
	yChannel string
	// Poincaré section
	crossChannel string
	threshold    float64
	// Ensemble size and spread for bench
	copies int
	spread float64
	seed   int64
	output string

	logger = zap.NewNop()

	runInteractive = viz.RunInteractive
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sixdof",
		Short: "rigid body simulation lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(verbose)
			if err != nil {
				return err
			}
			logger = l
			return nil
		},
		RunE: runMenu,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".sixdof", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "development logging")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of two channels",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xChannel, "x", "bx", "channel for the x-axis ("+strings.Join(analysis.ChannelNames, ", ")+")")
	phaseCmd.Flags().StringVar(&yChannel, "y", "by", "channel for the y-axis")

	poincareCmd := &cobra.Command{
		Use:   "poincare [preset]",
		Short: "Poincaré section of a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  poincarePlot,
	}
	addScenarioFlags(poincareCmd)
	poincareCmd.Flags().StringVar(&crossChannel, "cross", "bz", "channel whose rising crossing is recorded")
	poincareCmd.Flags().Float64Var(&threshold, "threshold", 0, "crossing level")
	poincareCmd.Flags().StringVar(&xChannel, "x", "bx", "recorded channel for the x-axis")
	poincareCmd.Flags().StringVar(&yChannel, "y", "by", "recorded channel for the y-axis")

	lyapunovCmd := &cobra.Command{
		Use:   "lyapunov [preset]",
		Short: "estimate the largest Lyapunov exponent from each body-axis nudge",
		Args:  cobra.MaximumNArgs(1),
		RunE:  lyapunov,
	}
	addScenarioFlags(lyapunovCmd)

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "benchmark a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)
	benchCmd.Flags().IntVar(&copies, "copies", 64, "ensemble size")
	benchCmd.Flags().Float64Var(&spread, "spread", 0.01, "relative spread of the ensemble's angular momentum")
	benchCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTEG\tCTRL\tDT\tDURATION\tPANELS")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				s, err := cfg.BuildState()
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.4fs\t%.1fs\t%d\n", name, cfg.Integrator, cfg.Controller, cfg.Dt, cfg.Duration, len(s.Panels))
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, phaseCmd, poincareCmd, lyapunovCmd, exportCmd, exportJSONCmd, benchCmd, compareCmd, presetsCmd)

	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	cmd.Flags().StringVar(&controller, "controller", "none", "controller")
	cmd.Flags().Float64Var(&kp, "kp", 1.0, "controller proportional gain")
	cmd.Flags().Float64Var(&ki, "ki", 0.0, "controller integral gain")
	cmd.Flags().Float64Var(&kd, "kd", 0.0, "controller derivative gain")
	cmd.Flags().Float64Var(&limit, "limit", 0.0, "controller torque limit (0 for none)")
}

// loadScenario resolves the scenario from --config or a preset name, then
// applies the flags the user set explicitly.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("controller") {
		cfg.Controller = controller
	}
	if flags.Changed("kp") {
		cfg.ControllerParams.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.ControllerParams.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.ControllerParams.Kd = kd
	}
	if flags.Changed("limit") {
		cfg.ControllerParams.Limit = limit
	}
	return cfg, nil
}

func setupScenario(cmd *cobra.Command, args []string) (*experiment.Experiment, error) {
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return nil, err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry(), logger); err != nil {
		return nil, err
	}
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := setupScenario(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", zap.String("run_id", runID), zap.Duration("elapsed", elapsed))

	final := result.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("stopped: %v\n", e)
	}
	fmt.Printf("final position: %.4f %.4f %.4f\n", final.Transform.Translation[0], final.Transform.Translation[1], final.Transform.Translation[2])
	axis, angle := final.Transform.Rotation.AxisAngle()
	fmt.Printf("final attitude: %.2f° about (%.3f, %.3f, %.3f)\n", mgl64.RadToDeg(angle), axis[0], axis[1], axis[2])
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runMenu(cmd *cobra.Command, args []string) error {
	return runInteractive(experiment.NewRegistry(), logger)
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := setupScenario(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(viz.FromExperiment(exp))
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tINTEG\tCTRL\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\t%.2e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Controller,
			run.EnergyDrift,
		)
	}

	return w.Flush()
}

var plotChannels = []string{"tz", "wx", "wy", "wz", "energy"}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	if len(result.Snapshots) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(result.Snapshots))

	series := make([][]float64, len(plotChannels))
	for _, sn := range result.Snapshots {
		c := analysis.Channels(sn.State(result.Body))
		for i, name := range plotChannels {
			idx, _ := analysis.ChannelIndex(name)
			series[i] = append(series[i], c[idx])
		}
	}

	for i, name := range plotChannels {
		graph := asciigraph.Plot(series[i],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	xIdx, err := analysis.ChannelIndex(xChannel)
	if err != nil {
		return err
	}
	yIdx, err := analysis.ChannelIndex(yChannel)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	portrait := analysis.FromSeries(result.Body, result.Snapshots, xIdx, yIdx)
	if portrait == nil || len(portrait.Points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", xChannel, yChannel)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func poincarePlot(cmd *cobra.Command, args []string) error {
	exp, err := setupScenario(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	idx := make([]int, 3)
	for i, name := range []string{crossChannel, xChannel, yChannel} {
		if idx[i], err = analysis.ChannelIndex(name); err != nil {
			return err
		}
	}

	section := analysis.GeneratePoincareSection(exp.InitialState(), exp.GetSimulator().Integrator(), cfg.ExternalMoment(),
		idx[0], threshold, idx[1], idx[2], cfg.Dt, cfg.Duration)
	fmt.Printf("poincaré section: %s, %s rising through %g\n\n", cfg.Name, crossChannel, threshold)
	fmt.Println(analysis.PoincareSectionToASCII(section, 70, 20))
	return nil
}

func lyapunov(cmd *cobra.Command, args []string) error {
	exp, err := setupScenario(cmd, args)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	s0 := exp.InitialState()

	byAxis := analysis.LyapunovByAxis(s0, exp.GetSimulator().Integrator(), cfg.ExternalMoment(), cfg.Dt, cfg.Duration, 1e-8)
	rate := analysis.BodyRate(s0)

	fmt.Printf("largest lyapunov exponent by seed axis: %s\n", cfg.Name)
	fmt.Printf("body rate: %.4f %.4f %.4f rad/s\n\n", rate[0], rate[1], rate[2])
	for i, l := range byAxis {
		verdict := "stable"
		if l > experiment.StabilityThreshold {
			verdict = "unstable"
		}
		fmt.Printf("  seed %c: λ = %8.4f /s  %s\n", 'x'+rune(i), l, verdict)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(append(data, '\n'))
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	data := store.NewExportData(meta.Name, meta.Integrator, meta.Controller, meta.Dt, meta.Duration, result)
	if output != "" {
		return store.ExportJSON(output, data)
	}
	return store.ExportJSONStdout(data)
}

func benchScenario(cmd *cobra.Command, args []string) error {
	base, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	reg := experiment.NewRegistry()

	dts := []float64{0.001, 0.01, 0.1}
	fmt.Printf("benchmarking %s\n\n", base.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tTIME\tSTEPS/SEC\tDRIFT")

	for _, step := range dts {
		cfg := base.Clone()
		cfg.Dt = step
		exp := experiment.New(cfg)
		if err := exp.Setup(reg, logger); err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%.4fs\t%d\t%v\t%.0f\t%.2e\n",
			step, result.StepsTaken, elapsed, float64(result.StepsTaken)/elapsed.Seconds(), result.EnergyDrift)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if copies <= 0 {
		return nil
	}

	exp := experiment.New(base)
	if err := exp.Setup(reg, logger); err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(seed))
	nudges := make([]quantity.AngMom, copies)
	for i := range nudges {
		nudges[i] = quantity.AngMom{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()}
	}
	perturb := func(i int, s *dynamo.State) {
		scale := spread * math.Max(s.Momentum.Angular.Len(), 1e-3)
		s.Momentum.Angular = s.Momentum.Angular.Add(nudges[i].Scale(scale))
	}

	start := time.Now()
	results, err := exp.RunEnsemble(context.Background(), copies, perturb)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var steps int
	worst := 0.0
	for _, r := range results {
		steps += r.StepsTaken
		worst = math.Max(worst, r.EnergyDrift)
	}
	fmt.Printf("\nensemble: %d copies, %d steps in %v (%.0f steps/sec), worst drift %.2e\n",
		copies, steps, elapsed, float64(steps)/elapsed.Seconds(), worst)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base := config.GetPreset(args[0])
	if base == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
	}
	if cmd.Flags().Changed("dt") {
		base.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		base.Duration = duration
	}
	reg := experiment.NewRegistry()

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", base.Name, base.Dt, base.Duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "final_|ω|", "energy_drift", "norm_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 66))

	for _, name := range args[1:] {
		cfg := base.Clone()
		cfg.Integrator = name
		exp := experiment.New(cfg)
		if err := exp.Setup(reg, logger); err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		rate := result.Final().Velocity().Angular.Len()
		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2e  %12.2f\n",
			name, rate, result.EnergyDrift, result.Metrics["norm_drift"], float64(elapsed.Microseconds())/1000)
	}

	return nil
}
