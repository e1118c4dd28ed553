package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/astroglia/casim/internal/analysis"
	"github.com/astroglia/casim/internal/bifurcation"
	"github.com/astroglia/casim/internal/config"
	"github.com/astroglia/casim/internal/experiment"
	"github.com/astroglia/casim/internal/models"
	"github.com/astroglia/casim/internal/odesys"
	"github.com/astroglia/casim/internal/storage"
	"github.com/astroglia/casim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	param      float64
	integrator string
	initState  []float64
	configFile string
	preset     string

	// Sweep flags
	parStart     float64
	parStop      float64
	parTot       int
	relax        int
	stateIndex   int
	continuation bool
	strict       bool
	workers      int

	// Plot axes
	xAxis int
	yAxis int

	// Nullcline window
	cStart float64
	cStop  float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "casim",
		Short: "astrocyte calcium signaling lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".casim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 100.0, "duration")
	runCmd.Flags().Float64Var(&param, "param", 0.3, "bifurcation parameter value")
	runCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	runCmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state (defaults to model's)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	bifCmd := &cobra.Command{
		Use:   "bifurcation [model]",
		Short: "sweep the bifurcation parameter and collect asymptotic extrema",
		Args:  cobra.ExactArgs(1),
		RunE:  runBifurcation,
	}
	bifCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	bifCmd.Flags().Float64Var(&duration, "time", 400.0, "duration per parameter value")
	bifCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	bifCmd.Flags().Float64Var(&parStart, "par-start", 0.1, "first parameter value")
	bifCmd.Flags().Float64Var(&parStop, "par-stop", 0.7, "last parameter value")
	bifCmd.Flags().IntVar(&parTot, "par-tot", 50, "number of parameter values")
	bifCmd.Flags().IntVar(&relax, "relax", -10000, "samples kept after the transient (negative counts from the end)")
	bifCmd.Flags().IntVar(&stateIndex, "state-index", 0, "analyzed state component")
	bifCmd.Flags().BoolVar(&continuation, "continuation", false, "seed each value from the previous final state")
	bifCmd.Flags().BoolVar(&strict, "strict", false, "abort on first integration failure")
	bifCmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = NumCPU)")
	bifCmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state (defaults to model's)")
	bifCmd.Flags().StringVar(&preset, "preset", "", "use preset sweep window")

	nullclinesCmd := &cobra.Command{
		Use:   "nullclines [model]",
		Short: "plot the C-h nullclines at a fixed parameter value",
		Args:  cobra.ExactArgs(1),
		RunE:  plotNullclines,
	}
	nullclinesCmd.Flags().Float64Var(&param, "param", 0.3, "bifurcation parameter value")
	nullclinesCmd.Flags().Float64Var(&cStart, "c-start", 0.0, "calcium window start")
	nullclinesCmd.Flags().Float64Var(&cStop, "c-stop", 0.8, "calcium window stop")

	phaseCmd := &cobra.Command{
		Use:   "phase [model]",
		Short: "phase plane portrait at a fixed parameter value",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	phaseCmd.Flags().Float64Var(&duration, "time", 100.0, "duration")
	phaseCmd.Flags().Float64Var(&param, "param", 0.3, "bifurcation parameter value")
	phaseCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	phaseCmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state (defaults to model's)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "live concentration trace with interactive tuning",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	liveCmd.Flags().Float64Var(&param, "param", 0.3, "bifurcation parameter value")
	liveCmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator")
	liveCmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state (defaults to model's)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trace to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, bifCmd, nullclinesCmd, phaseCmd, analyzeCmd,
		liveCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyPreset(cmd *cobra.Command, model string) error {
	if preset == "" {
		return nil
	}
	cfg := config.GetPreset(model, preset)
	if cfg == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("integrator") {
		integrator = cfg.Integrator
	}
	if !cmd.Flags().Changed("param") {
		param = cfg.Param
	}
	if !cmd.Flags().Changed("init") {
		initState = cfg.InitState
	}
	if cfg.Sweep != nil {
		if !cmd.Flags().Changed("par-start") {
			parStart = cfg.Sweep.ParStart
		}
		if !cmd.Flags().Changed("par-stop") {
			parStop = cfg.Sweep.ParStop
		}
		if !cmd.Flags().Changed("par-tot") {
			parTot = cfg.Sweep.ParTot
		}
		if !cmd.Flags().Changed("relax") {
			relax = cfg.Sweep.Relax
		}
		if !cmd.Flags().Changed("state-index") {
			stateIndex = cfg.Sweep.StateIndex
		}
	}
	return nil
}

func applyConfigFile(cmd *cobra.Command) error {
	if configFile == "" {
		return nil
	}
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("dt") {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("integrator") {
		integrator = cfg.Integrator
	}
	if !cmd.Flags().Changed("param") {
		param = cfg.Param
	}
	if !cmd.Flags().Changed("init") {
		initState = cfg.InitState
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	if err := applyPreset(cmd, model); err != nil {
		return err
	}
	if err := applyConfigFile(cmd); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	grid := odesys.Grid{T0: 0, TStop: duration, Dt: dt}
	exp, err := experiment.New(model, integrator, grid, odesys.State(initState), param)
	if err != nil {
		return err
	}

	fmt.Printf("running %s at param=%.4f...\n", model, param)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	metricVals := map[string]float64{
		"peak":   result.Peak,
		"mean":   result.Mean,
		"events": result.Events,
	}
	runID, err := st.SaveRun(model, integrator, dt, duration, param, result.Trajectory, metricVals)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.Trajectory.Len())
	fmt.Println("\nmetrics:")
	for name, val := range metricVals {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runBifurcation(cmd *cobra.Command, args []string) error {
	model := args[0]

	if err := applyPreset(cmd, model); err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	grid := odesys.Grid{T0: 0, TStop: duration, Dt: dt}
	exp, err := experiment.New(model, integrator, grid, odesys.State(initState), parStart)
	if err != nil {
		return err
	}

	spec := bifurcation.Spec{
		ParStart:     parStart,
		ParStop:      parStop,
		ParTot:       parTot,
		Grid:         grid,
		Relax:        relax,
		StateIndex:   stateIndex,
		X0:           exp.X0,
		Continuation: continuation,
		Strict:       strict,
		Workers:      workers,
	}

	fmt.Printf("sweeping %s over [%.4f, %.4f] with %d values...\n",
		model, parStart, parStop, parTot)
	start := time.Now()

	diagram, err := exp.Sweep(context.Background(), spec)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.SaveDiagram(model, integrator, dt, duration, diagram)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("succeeded: %d/%d parameter values\n", diagram.Succeeded, parTot)
	for _, f := range diagram.Failures {
		fmt.Printf("  skipped par=%.4f: %v\n", f.Param, f.Err)
	}
	fmt.Printf("extrema: %d\n\n", len(diagram.Values))
	fmt.Println(diagram.ToASCII(80, 24))

	return nil
}

func plotNullclines(cmd *cobra.Command, args []string) error {
	model := args[0]

	var sys *models.LiRinzel
	switch model {
	case "lirinzel":
		sys = models.NewLiRinzel()
	case "lirinzel-fm":
		sys = models.NewLiRinzelFM()
	default:
		return fmt.Errorf("nullclines are defined for lirinzel models, not %q", model)
	}

	c, h1, h2 := sys.Nullclines(param, cStart, cStop, 400)

	series := []analysis.Series{
		{X: c, Y: h1, Glyph: '·'},
		{X: c, Y: h2, Glyph: '+'},
	}

	fmt.Printf("%s nullclines at param=%.4f\n", model, param)
	fmt.Printf("x: C (calcium), y: h (gating)   · = dC/dt=0, + = dh/dt=0\n\n")
	fmt.Println(analysis.RenderScatter(series, 80, 24))

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	model := args[0]

	grid := odesys.Grid{T0: 0, TStop: duration, Dt: dt}
	exp, err := experiment.New(model, integrator, grid, odesys.State(initState), param)
	if err != nil {
		return err
	}

	sys := exp.Model.New()
	if xAxis >= sys.StateDim() || yAxis >= sys.StateDim() {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	traj, err := analysis.GeneratePortrait(context.Background(), sys,
		exp.Integrator.Factory(), exp.X0, grid, param, xAxis, yAxis)
	if err != nil {
		return err
	}

	series := []analysis.Series{traj}

	// Overlay nullclines for the calcium phase plane.
	if lr, ok := sys.(*models.LiRinzel); ok && xAxis == 0 && yAxis == 1 {
		c, h1, h2 := lr.Nullclines(param, 0, 0.8, 400)
		series = []analysis.Series{
			{X: c, Y: h1, Glyph: '·'},
			{X: c, Y: h2, Glyph: '+'},
			traj,
		}
	}

	labels := stateLabels(model)
	fmt.Printf("%s phase portrait at param=%.4f\n", model, param)
	fmt.Printf("x: %s, y: %s\n\n", label(labels, xAxis), label(labels, yAxis))
	fmt.Println(analysis.RenderScatter(series, 80, 24))

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data")
	}

	data := traj.Component(0)

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]
	fmt.Println(viz.PlotTrace(plotData, "power spectrum (x0)", 80, 15))

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("\ndominant frequency: %.4f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	exp, err := experiment.New(model, integrator,
		odesys.Grid{T0: 0, TStop: 1, Dt: dt}, odesys.State(initState), param)
	if err != nil {
		return err
	}

	m := viz.NewModel(exp.Model.New(), exp.Integrator.Factory(),
		exp.X0, dt, param, model, stateLabels(model))

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
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
	fmt.Fprintln(w, "ID\tMODEL\tKIND\tTIME\tDURATION\tDT\tINTEG\tPARAM")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%.4f\n",
			run.ID,
			run.Model,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Param,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if meta.Kind == "diagram" {
		d, err := st.LoadDiagram(runID)
		if err != nil {
			return err
		}
		fmt.Printf("run: %s\nmodel: %s\nextrema: %d\n\n", meta.ID, meta.Model, len(d.Values))
		fmt.Println(d.ToASCII(80, 24))
		return nil
	}

	traj, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", traj.Len())

	labels := stateLabels(meta.Model)
	for i := range traj.States[0] {
		fmt.Println(viz.PlotTrace(traj.Component(i), label(labels, i)+" vs time", 80, 10))
		fmt.Println()
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if meta.Kind == "diagram" {
		d, err := st.LoadDiagram(runID)
		if err != nil {
			return err
		}
		if err := w.Write([]string{"param", "value"}); err != nil {
			return err
		}
		for i := range d.Params {
			row := []string{
				strconv.FormatFloat(d.Params[i], 'f', 6, 64),
				strconv.FormatFloat(d.Values[i], 'f', 6, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	traj, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to export")
	}

	header := []string{"time"}
	for i := range traj.States[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 6, 64)}
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	if meta.Kind == "diagram" {
		d, err := st.LoadDiagram(runID)
		if err != nil {
			return err
		}
		return storage.ExportDiagramJSON("", meta.Model, meta.Integrator, meta.Dt, meta.Duration, d)
	}

	traj, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON("", meta.Model, meta.Integrator, meta.Dt, meta.Duration, meta.Param, traj, meta.Metrics)
}

func stateLabels(model string) []string {
	switch model {
	case "lirinzel", "lirinzel-fm":
		return []string{"C", "h"}
	case "chi":
		return []string{"C", "h", "IP3"}
	case "tmsynapse":
		return []string{"u", "x", "Y"}
	case "vanderpol":
		return []string{"x", "y"}
	default:
		return nil
	}
}

func label(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return fmt.Sprintf("x%d", i)
}
