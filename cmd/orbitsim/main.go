package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/scale"
	"github.com/san-kum/orbitsim/internal/scenario"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/san-kum/orbitsim/internal/stream"
	"github.com/san-kum/orbitsim/internal/telemetry"
	"github.com/san-kum/orbitsim/internal/tui"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string
	logger   = log.New(io.Discard)

	scheme        string
	speed         float64
	subSteps      int
	frameDt       float64
	duration      float64
	metersPerUnit float64
	selected      string
	recordEvery   int
	configFile    string
	preset        string

	// plot
	plotBody string
	// export-json, export-svg
	outFile   string
	svgWidth  int
	svgHeight int
	// bench
	benchFrames int
	// serve
	addr          string
	broadcastRate float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "orbitsim",
		Short:        "gravitational n-body simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = log.NewWithOptions(os.Stderr, log.Options{
				Level:           lvl,
				ReportTimestamp: true,
				Prefix:          "orbitsim",
			})
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "record the trajectory every n frames")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot distance to parent over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotBody, "body", "", "plot only this body")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render recorded orbits to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "write to file instead of stdout")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 800, "image height")

	compareCmd := &cobra.Command{
		Use:   "compare [scenario] [scheme] ...",
		Short: "compare integration schemes on the same scenario",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareSchemes,
	}
	addRunFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark frame throughput per scheme and sub-step count",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames per measurement")

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE:  listScenarios,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve [scenario]",
		Short: "stream a scenario over websocket",
		Args:  cobra.MaximumNArgs(1),
		RunE:  serve,
	}
	addRunFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().Float64Var(&broadcastRate, "rate", stream.DefaultOptions().BroadcastRate, "max snapshots per second")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, compareCmd, benchCmd, presetsCmd, scenariosCmd, liveCmd, serveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	cmd.Flags().StringVar(&scheme, "scheme", def.Scheme, "integration scheme ("+strings.Join(integrators.Names(), ", ")+")")
	cmd.Flags().Float64Var(&speed, "speed", def.Speed, "simulated seconds per wall-clock second")
	cmd.Flags().IntVar(&subSteps, "substeps", def.SubSteps, "integration steps per frame")
	cmd.Flags().Float64Var(&frameDt, "frame-dt", def.FrameDt, "wall-clock seconds per frame")
	cmd.Flags().Float64Var(&duration, "duration", def.Duration, "simulated seconds to run")
	cmd.Flags().Float64Var(&metersPerUnit, "meters-per-unit", def.MetersPerUnit, "render scale")
	cmd.Flags().StringVar(&selected, "select", "", "body to keep at the render origin")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}
	name := cfg.Scenario

	if preset != "" {
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
		if len(args) == 0 {
			name = cfg.Scenario
		}
	}
	cfg.Scenario = name

	flags := cmd.Flags()
	if flags.Changed("scheme") {
		cfg.Scheme = scheme
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("substeps") {
		cfg.SubSteps = subSteps
	}
	if flags.Changed("frame-dt") {
		cfg.FrameDt = frameDt
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("meters-per-unit") {
		cfg.MetersPerUnit = metersPerUnit
	}
	if flags.Changed("select") {
		cfg.Selected = selected
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newSimulation builds the scenario and an engine configured from cfg.
func newSimulation(cfg *config.Config, l *log.Logger) (*engine.Simulation, error) {
	store := orbit.NewStore()
	follow, err := scenario.Build(cfg.Scenario, store)
	if err != nil {
		return nil, err
	}

	conv, err := scale.New(cfg.MetersPerUnit)
	if err != nil {
		return nil, err
	}

	ctl := engine.DefaultControls()
	ctl.SetSpeed(cfg.Speed)
	ctl.SetSubSteps(cfg.SubSteps)
	ctl.SetScheme(cfg.ParsedScheme())
	ctl.Select(follow)
	if cfg.Selected != "" {
		id, ok := store.Lookup(cfg.Selected)
		if !ok {
			return nil, &orbit.BodyError{Name: cfg.Selected, Wrapped: orbit.ErrUnknownBody}
		}
		ctl.Select(id)
	}

	return engine.New(store,
		engine.WithScale(conv),
		engine.WithControls(ctl),
		engine.WithLogger(l),
	), nil
}

// withApsisMetrics adds eccentricity and period metrics for every body
// that orbits a parent.
func withApsisMetrics(set *metrics.Set, store *orbit.Store) *metrics.Set {
	for _, b := range store.Bodies() {
		if b.Parent == orbit.None {
			continue
		}
		set.Add(metrics.NewEccentricity(b.Name, b.ID))
		set.Add(metrics.NewPeriod(b.Name, b.ID))
	}
	return set
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sim, err := newSimulation(cfg, logger)
	if err != nil {
		return err
	}
	store := sim.Store()

	set := withApsisMetrics(metrics.Default(false), store)
	set.Observe(store.Bodies(), 0)
	rec := storage.NewRecorder(cfg.RecordEvery)
	rec.Record(store.Bodies(), 0)
	sim.AddObserver(set)
	sim.AddObserver(rec)

	frames := cfg.Frames()
	logger.Info("running", "scenario", cfg.Scenario, "scheme", cfg.Scheme, "frames", frames, "substeps", cfg.SubSteps)

	start := time.Now()
	last, err := sim.Run(cmd.Context(), cfg.FrameDt, frames)
	elapsed := time.Since(start)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("interrupted, saving partial run", "frames", sim.Frames())
	}
	if last.Invalid {
		logger.Error("simulation produced non-finite state", "frame", last.Frame)
	}

	run := &storage.Run{
		Meta: storage.RunMetadata{
			Scenario: cfg.Scenario,
			Scheme:   sim.Controls().Scheme.String(),
			Speed:    cfg.Speed,
			SubSteps: cfg.SubSteps,
			FrameDt:  cfg.FrameDt,
			Duration: cfg.Duration,
			Frames:   sim.Frames(),
			SimTime:  sim.SimTime(),
			Bodies:   storage.BodyNames(store.Bodies()),
			Metrics:  set.Values(),
		},
		Trajectory: rec.Samples(),
		Apsides:    storage.Apsides(store),
	}

	runID, err := st.Save(run)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  simulated: %s  wall: %v\n", sim.Frames(), formatSeconds(sim.SimTime()), elapsed.Round(time.Millisecond))
	fmt.Printf("\nmetrics:\n")
	names := make([]string, 0, len(run.Meta.Metrics))
	for name := range run.Meta.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-28s %.6g\n", name, run.Meta.Metrics[name])
	}

	if len(run.Apsides) > 0 {
		fmt.Println()
		if err := printApsides(run.Apsides); err != nil {
			return err
		}
	}
	return nil
}

func printApsides(entries []storage.ApsisEntry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPARENT\tPERIAPSIS\tAPOAPSIS\tA\tE\tPERIOD")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%.4gm\t%.4gm\t%.4gm\t%.4f\t%s\n",
			e.Body,
			e.Parent,
			e.Periapsis,
			e.Apoapsis,
			e.SemiMajorAxis,
			e.Eccentricity,
			formatSeconds(e.Period),
		)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSIMULATED\tSCHEME\tSUBSTEPS\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			formatSeconds(run.SimTime),
			run.Scheme,
			run.SubSteps,
			run.Metrics["energy_drift"],
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

	samples, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	apsides, err := st.LoadApsides(runID)
	if err != nil {
		return err
	}
	parents := make(map[string]string, len(apsides))
	for _, e := range apsides {
		parents[e.Body] = e.Parent
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples)/max(len(meta.Bodies), 1))

	series := distanceSeries(samples, parents)
	plotted := 0
	for _, name := range meta.Bodies {
		if plotBody != "" && name != plotBody {
			continue
		}
		data := series[name]
		if len(data) < 2 {
			continue
		}

		caption := fmt.Sprintf("%s distance to barycenter (m)", name)
		if p, ok := parents[name]; ok {
			caption = fmt.Sprintf("%s distance to %s (m)", name, p)
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
		plotted++
	}

	if plotted == 0 && plotBody != "" {
		return &orbit.BodyError{Name: plotBody, Wrapped: orbit.ErrUnknownBody}
	}
	return nil
}

// distanceSeries returns, per body, the distance to its parent at each
// recorded time, or to the origin for bodies without one.
func distanceSeries(samples []storage.Sample, parents map[string]string) map[string][]float64 {
	type key struct {
		t    float64
		body string
	}
	pos := make(map[key]mgl64.Vec3, len(samples))
	for _, s := range samples {
		pos[key{s.Time, s.Body}] = s.Position
	}

	out := make(map[string][]float64)
	for _, s := range samples {
		origin := mgl64.Vec3{}
		if p, ok := parents[s.Body]; ok {
			pp, ok := pos[key{s.Time, p}]
			if !ok {
				continue
			}
			origin = pp
		}
		out[s.Body] = append(out[s.Body], s.Position.Sub(origin).Len())
	}
	return out
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return storage.ExportJSON(outFile, run)
	}
	return storage.ExportJSONStdout(run)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	samples, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	svg := export.Orbits(run, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}
	if outFile != "" {
		return os.WriteFile(outFile, []byte(svg), 0644)
	}
	_, err = fmt.Println(svg)
	return err
}

func compareSchemes(cmd *cobra.Command, args []string) error {
	schemes := args[1:]
	if len(schemes) == 0 {
		schemes = integrators.Names()
	}

	cfg, err := loadConfig(cmd, args[:1])
	if err != nil {
		return err
	}

	fmt.Printf("comparing schemes for %s (substeps=%d, simulated=%s)\n\n", cfg.Scenario, cfg.SubSteps, formatSeconds(cfg.Duration))
	fmt.Printf("%-10s  %-12s  %-12s  %-12s  %-12s\n", "scheme", "energy_drift", "momentum", "ang_momentum", "time_ms")
	fmt.Println(strings.Repeat("-", 66))

	for _, name := range schemes {
		s, err := integrators.ParseScheme(name)
		if err != nil {
			fmt.Printf("%-10s  error: %v\n", name, err)
			continue
		}

		c := *cfg
		c.Scheme = s.String()
		sim, err := newSimulation(&c, logger)
		if err != nil {
			return err
		}

		set := metrics.Default(false)
		set.Observe(sim.Store().Bodies(), 0)
		sim.AddObserver(set)

		start := time.Now()
		if _, err := sim.Run(cmd.Context(), c.FrameDt, c.Frames()); err != nil {
			return err
		}
		elapsed := time.Since(start)

		v := set.Values()
		fmt.Printf("%-10s  %12.2e  %12.2e  %12.2e  %12.2f\n",
			s, v["energy_drift"], v["momentum_drift"], v["angular_momentum_drift"], float64(elapsed.Microseconds())/1000)
	}

	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	name := config.DefaultScenario
	if len(args) > 0 {
		name = args[0]
	}
	if _, err := scenario.Get(name); err != nil {
		return err
	}

	subStepCounts := []int{1, 8, 64, 512}

	fmt.Printf("benchmarking %s (%d frames)\n\n", name, benchFrames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tSUBSTEPS\tFRAMES\tTIME\tFRAMES/SEC\tFORCE EVALS/SEC")

	for _, s := range []integrators.Scheme{integrators.Euler, integrators.Verlet} {
		for _, n := range subStepCounts {
			cfg := config.DefaultConfig()
			cfg.Scenario = name
			cfg.Scheme = s.String()
			cfg.SubSteps = n

			sim, err := newSimulation(cfg, logger)
			if err != nil {
				return err
			}

			var evals int
			sim.AddObserver(engine.ObserverFunc(func(_ *engine.Simulation, r engine.Report) {
				evals += r.ForceEvaluations
			}))

			start := time.Now()
			if _, err := sim.Run(cmd.Context(), cfg.FrameDt, benchFrames); err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.0f\n",
				s, n, sim.Frames(), elapsed.Round(time.Microsecond),
				float64(sim.Frames())/elapsed.Seconds(),
				float64(evals)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	names := scenario.Names()
	if len(args) > 0 {
		names = args
	}
	for _, name := range names {
		presets := config.ListPresets(name)
		if len(presets) == 0 {
			fmt.Printf("no presets for scenario: %s\n", name)
			continue
		}
		fmt.Printf("presets for %s:\n", name)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFOLLOW\tDESCRIPTION")
	for _, name := range scenario.Names() {
		sc, err := scenario.Get(name)
		if err != nil {
			return err
		}
		follow := sc.Follow
		if follow == "" {
			follow = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", sc.Name, follow, sc.Description)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	// stderr output would tear the alternate screen
	sim, err := newSimulation(cfg, log.New(io.Discard))
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(sim, cfg.Scenario), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	sim, err := newSimulation(cfg, logger)
	if err != nil {
		return err
	}

	collector := telemetry.NewCollector()
	sim.AddObserver(collector)

	opts := stream.DefaultOptions()
	opts.FrameInterval = time.Duration(cfg.FrameDt * float64(time.Second))
	opts.BroadcastRate = broadcastRate
	srv := stream.New(sim, logger, opts)

	mux := http.NewServeMux()
	mux.Handle("/ws", srv.Handler())
	mux.Handle("/metrics", collector.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	simDone := make(chan error, 1)
	go func() { simDone <- srv.Run(ctx) }()

	httpDone := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", addr, "scenario", cfg.Scenario)
		httpDone <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
	case err := <-httpDone:
		if !errors.Is(err, http.ErrServerClosed) {
			cancel()
			<-simDone
			return err
		}
	}

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "err", err)
	}

	if err := <-simDone; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func formatSeconds(s float64) string {
	const day = 86400.0
	switch {
	case s >= 365.25*day:
		return fmt.Sprintf("%.2fyr", s/(365.25*day))
	case s >= day:
		return fmt.Sprintf("%.2fd", s/day)
	case s >= 3600:
		return fmt.Sprintf("%.2fh", s/3600)
	default:
		return fmt.Sprintf("%.2fs", s)
	}
}
