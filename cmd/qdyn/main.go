package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/qdyn/internal/analysis"
	"github.com/san-kum/qdyn/internal/config"
	"github.com/san-kum/qdyn/internal/experiment"
	"github.com/san-kum/qdyn/internal/logging"
	"github.com/san-kum/qdyn/internal/report"
	"github.com/san-kum/qdyn/internal/store"
)

var (
	dataDir      string
	debug        bool
	dt           float64
	duration     float64
	sampleEvery  int
	integrator   string
	adaptive     bool
	tolerance    float64
	obsNames     []string
	paramFlags   []string
	cavityLevels int
	configFile   string
	preset       string
	noFigure     bool
	writeCSV     bool
	// phase plot axes
	xSeries string
	ySeries string
	svgOut  string
	// figure output
	figureOut   string
	figurePanel string
	// analyze target
	analyzeObs string
	// export-json output
	jsonOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "qdyn",
		Short: "open quantum system dynamics lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".qdyn", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate the master equation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", config.DefaultSampleEvery, "record every n-th step")
	runCmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator, "integrator")
	runCmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive stepping")
	runCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive error tolerance")
	runCmd.Flags().StringSliceVar(&obsNames, "obs", nil, "observables to record")
	runCmd.Flags().StringSliceVar(&paramFlags, "set", nil, "model parameter overrides (name=value)")
	runCmd.Flags().IntVar(&cavityLevels, "cavity-levels", 0, "bosonic truncation override")
	runCmd.Flags().BoolVar(&writeCSV, "csv", true, "write observables.csv")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&noFigure, "no-figure", false, "skip figure rendering")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models and integrators",
		RunE:  listModels,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot observable series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	figureCmd := &cobra.Command{
		Use:   "figure [run_id]",
		Short: "re-render the four-panel figure",
		Args:  cobra.ExactArgs(1),
		RunE:  renderFigure,
	}
	figureCmd.Flags().StringVar(&figureOut, "out", "", "output path (default figure.png in the run dir)")
	figureCmd.Flags().StringVar(&figurePanel, "panel", "", "render a single observable instead of the grid")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of two observables",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&xSeries, "x", "coherence_re", "series for x-axis")
	phaseCmd.Flags().StringVar(&ySeries, "y", "coherence_im", "series for y-axis")
	phaseCmd.Flags().StringVar(&svgOut, "svg", "", "also write the portrait as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of an observable",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeObs, "obs", "population", "observable to analyze")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run data as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&jsonOut, "out", "", "output path (default stdout)")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark model",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
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

	rootCmd.AddCommand(runCmd, listCmd, modelsCmd, plotCmd, figureCmd, phaseCmd,
		analyzeCmd, exportCSVCmd, exportJSONCmd, compareCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func logger() logging.Config {
	cfg := logging.Config{Level: "warn", Pretty: true}
	if debug {
		cfg.Level = "debug"
	}
	return cfg
}

func parseParams(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad parameter %q, want name=value", pair)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("bad parameter %q: %w", pair, err)
		}
		params[name] = v
	}
	return params, nil
}

// runConfig merges preset, config file and flags. Flags the user set
// explicitly win over both.
func runConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Model = model
		*cfg = *loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("sample-every") {
		cfg.SampleEvery = sampleEvery
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if cmd.Flags().Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if cmd.Flags().Changed("obs") {
		cfg.Observables = obsNames
	}
	if cmd.Flags().Changed("no-figure") {
		cfg.Figure.Disable = noFigure
	}
	if cmd.Flags().Changed("csv") {
		cfg.CSV = writeCSV
	}

	overrides, err := parseParams(paramFlags)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("cavity-levels") {
		if overrides == nil {
			overrides = make(map[string]float64, 1)
		}
		overrides["cavity_levels"] = float64(cavityLevels)
	}
	if len(overrides) > 0 {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64, len(overrides))
		}
		for name, value := range overrides {
			cfg.Params[name] = value
		}
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	log := logging.Setup(logger())

	cfg, err := runConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Model:       cfg.Model,
		Integrator:  cfg.Integrator,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		SampleEvery: cfg.SampleEvery,
		Adaptive:    cfg.Adaptive,
		Tolerance:   cfg.Tolerance,
		Observables: cfg.Observables,
		Params:      cfg.Params,
	}).WithLogger(log)

	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("running %s (dim %d)...\n", cfg.Model, exp.Model().Space().Dim())
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := store.RunMetadata{
		Model:       cfg.Model,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		SampleEvery: cfg.SampleEvery,
		Integrator:  cfg.Integrator,
		Observables: exp.ObservableNames(),
		Params:      cfg.Params,
		Metrics:     result.Metrics,
		TraceDrift:  result.TraceDrift,
		StepsTaken:  result.StepsTaken,
	}

	series := result.Series
	if !cfg.CSV {
		series = nil
	}
	runID, err := st.Save(meta, result.Times, series)
	if err != nil {
		return err
	}
	meta.ID = runID

	if !cfg.Figure.Disable {
		names := figurePanels(meta.Observables)
		if names == nil {
			fmt.Println("fewer than 4 observables, skipping figure")
		} else {
			figPath := filepath.Join(st.RunDir(runID), "figure.png")
			if err := report.RenderFigure(figPath, result.Times, result.Series, names, cfg.Figure.Width, cfg.Figure.Height); err != nil {
				log.Warn().Err(err).Msg("figure rendering failed")
			} else {
				fmt.Printf("figure: %s\n", figPath)
			}
		}
	}

	fmt.Printf("completed in %v (%d steps)\n\n", elapsed, result.StepsTaken)
	fmt.Println(report.Summary(&meta))

	return nil
}

// figurePanels picks the four panel series in reading order.
func figurePanels(names []string) []string {
	if len(names) < 4 {
		return nil
	}
	return names[:4]
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tINTEG\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%s\t%.2e\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.TraceDrift,
		)
	}

	return w.Flush()
}

func listModels(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	fmt.Println("models:")
	for _, name := range registry.ListModels() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("integrators:")
	for _, name := range registry.ListIntegrators() {
		fmt.Printf("  %s\n", name)
	}

	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\nmodel: %s\n\n", meta.ID, meta.Model)
	fmt.Println(report.PlotAll(series, 80, 12))

	return nil
}

func renderFigure(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if figurePanel != "" {
		values, ok := series[figurePanel]
		if !ok {
			return fmt.Errorf("run %s has no series %s", runID, figurePanel)
		}
		out := figureOut
		if out == "" {
			out = filepath.Join(st.RunDir(runID), figurePanel+".png")
		}
		if err := report.SavePanel(out, figurePanel, times, values); err != nil {
			return err
		}
		fmt.Printf("figure: %s\n", out)
		return nil
	}

	names := figurePanels(meta.Observables)
	if names == nil {
		return fmt.Errorf("run %s recorded fewer than 4 observables", runID)
	}

	out := figureOut
	if out == "" {
		out = filepath.Join(st.RunDir(runID), "figure.png")
	}

	if err := report.RenderFigure(out, times, series, names, 10, 8); err != nil {
		return err
	}

	fmt.Printf("figure: %s\n", out)
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	_, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	xs, ok := series[xSeries]
	if !ok {
		return fmt.Errorf("run %s has no series %s", runID, xSeries)
	}
	ys, ok := series[ySeries]
	if !ok {
		return fmt.Errorf("run %s has no series %s", runID, ySeries)
	}

	fmt.Printf("phase portrait: %s\nmodel: %s\nx: %s, y: %s\n\n", meta.ID, meta.Model, xSeries, ySeries)

	canvas := report.PhasePortrait(xs, ys, 70, 20)
	fmt.Println(canvas.String())

	if svgOut != "" {
		svg := report.CanvasToSVG(canvas, 4)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", svgOut)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	values, ok := series[analyzeObs]
	if !ok {
		return fmt.Errorf("run %s has no series %s", runID, analyzeObs)
	}
	if len(times) < 2 {
		return fmt.Errorf("not enough samples")
	}

	sampleDt := times[1] - times[0]

	fmt.Printf("frequency analysis: %s\nmodel: %s\nobservable: %s\n\n", meta.ID, meta.Model, analyzeObs)

	sp := analysis.PowerSpectrum(values, sampleDt)
	if len(sp.Power) == 0 {
		return fmt.Errorf("spectrum is empty")
	}

	plotData := sp.Power
	if len(plotData) > 4 {
		plotData = plotData[:len(plotData)/4]
	}

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, power := analysis.DominantFrequency(values, sampleDt)
	fmt.Printf("dominant frequency: %.4f (power %.4g)\n", freq, power)
	if freq > 0 {
		fmt.Printf("period: %.4f\n", 1/freq)
	}

	if rate := analysis.OscillationDecay(times, values); rate > 0 {
		fmt.Printf("decay rate: %.4f\n", rate)
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)

	f, err := os.Open(filepath.Join(st.RunDir(args[0]), "observables.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(os.Stdout, f)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if err := store.ExportJSONFile(jsonOut, *meta, times, series); err != nil {
		return err
	}
	if jsonOut != "" {
		fmt.Printf("json: %s\n", jsonOut)
	}
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	model := args[0]
	names := args[1:]

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1f)\n\n", model, dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_POP\tTRACE_DRIFT\tSTEPS\tTIME")

	for _, name := range names {
		exp := experiment.New(experiment.Config{
			Model:       model,
			Integrator:  name,
			Dt:          dt,
			Duration:    duration,
			SampleEvery: 1,
			Observables: []string{"population"},
		})
		if err := exp.Setup(experiment.NewRegistry()); err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		pop := result.Series["population"]
		finalPop := 0.0
		if len(pop) > 0 {
			finalPop = pop[len(pop)-1]
		}

		fmt.Fprintf(w, "%s\t%.6f\t%.2e\t%d\t%v\n",
			name, finalPop, result.TraceDrift, result.StepsTaken, elapsed)
	}

	return w.Flush()
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	durations := []float64{1.0, 2.0, 5.0}
	dts := []float64{0.001, 0.005, 0.01}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			exp := experiment.New(experiment.Config{
				Model:       model,
				Integrator:  "rk4",
				Dt:          step,
				Duration:    dur,
				SampleEvery: 100,
				Observables: []string{"purity"},
			})
			if err := exp.Setup(experiment.NewRegistry()); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1f\t%.4f\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}
