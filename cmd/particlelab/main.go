package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particlelab/internal/config"
	"github.com/san-kum/particlelab/internal/engine"
	"github.com/san-kum/particlelab/internal/integrators"
	"github.com/san-kum/particlelab/internal/particle"
	"github.com/san-kum/particlelab/internal/rules"
	"github.com/san-kum/particlelab/internal/spatial"
	"github.com/san-kum/particlelab/internal/storage"
	"github.com/san-kum/particlelab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	seed       int64
	count      int
	types      int
	maxCount   int
	worldSize  float64
	fixedStep  float64
	timeScale  float64
	scheme     string
	boundary   string
	damping    float64
	subSteps   int
	elasticity float64
	rulePreset string
	strength   float64
	activation float64
	gravityY   float64
	drag       float64
	vortex     float64
	// run options
	duration   float64
	sampleEach int
	outFile    string
	// live options
	palette string
	offload bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "particlelab",
		Short: "particle life simulation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, []string{"soup"})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".particlelab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run headless simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated seconds")
	runCmd.Flags().IntVar(&sampleEach, "sample", 10, "record series every n steps")
	runCmd.Flags().StringVar(&outFile, "out", "", "also export final state as json")

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&palette, "palette", "neon", "color palette")
	liveCmd.Flags().BoolVar(&offload, "offload", false, "step on a worker goroutine")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListScenarios() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list rule matrix presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range rules.PresetNames() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rulesCmd := &cobra.Command{
		Use:   "rules [preset]",
		Short: "print a preset's rule matrix",
		Args:  cobra.ExactArgs(1),
		RunE:  printRules,
	}
	rulesCmd.Flags().IntVar(&types, "types", 5, "particle types")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput",
		RunE:  benchSteps,
	}
	benchCmd.Flags().Int64Var(&seed, "seed", 42, "random seed")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, scenariosCmd, presetsCmd, rulesCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&count, "particles", config.DefaultCount, "initial particle count")
	cmd.Flags().IntVar(&types, "types", config.DefaultTypeCount, "particle types")
	cmd.Flags().IntVar(&maxCount, "max", config.DefaultMaxParticles, "store capacity")
	cmd.Flags().Float64Var(&worldSize, "world", config.DefaultWorldSize, "world width and height")
	cmd.Flags().Float64Var(&fixedStep, "step", config.DefaultFixedStepMS, "fixed step (ms)")
	cmd.Flags().Float64Var(&timeScale, "speed", 1.0, "time scale")
	cmd.Flags().StringVar(&scheme, "scheme", "euler", "integration scheme")
	cmd.Flags().StringVar(&boundary, "boundary", "wrap", "boundary policy")
	cmd.Flags().Float64Var(&damping, "damping", config.DefaultDamping, "velocity damping")
	cmd.Flags().IntVar(&subSteps, "substeps", 1, "sub-steps per fixed step")
	cmd.Flags().Float64Var(&elasticity, "elasticity", config.DefaultElasticity, "reflect bounce factor")
	cmd.Flags().StringVar(&rulePreset, "preset", "random", "rule preset (or random)")
	cmd.Flags().Float64Var(&strength, "strength", 1.0, "random rule strength")
	cmd.Flags().Float64Var(&activation, "activation", 60, "random rule activation distance")
	cmd.Flags().Float64Var(&gravityY, "gravity", 0, "downward gravity")
	cmd.Flags().Float64Var(&drag, "drag", 0, "velocity drag")
	cmd.Flags().Float64Var(&vortex, "vortex", 0, "vortex strength at world center")
}

// buildConfig resolves scenario, config file, and flags in that order;
// explicitly set flags win.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	scenario := ""
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		scenario = args[0]
		sc := config.GetScenario(scenario)
		if sc == nil {
			return nil, "", fmt.Errorf("unknown scenario: %s (available: %v)", scenario, config.ListScenarios())
		}
		cfg = sc
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if scenario == "" {
			scenario = "custom"
		}
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Count = count
	}
	if flags.Changed("types") {
		cfg.TypeCount = types
	}
	if flags.Changed("max") {
		cfg.MaxParticles = maxCount
	}
	if flags.Changed("world") {
		cfg.World = config.WorldConfig{Width: worldSize, Height: worldSize}
	}
	if flags.Changed("step") {
		cfg.FixedStepMS = fixedStep
	}
	if flags.Changed("speed") {
		cfg.TimeScale = timeScale
	}
	if flags.Changed("scheme") {
		cfg.Integrator.Scheme = scheme
	}
	if flags.Changed("boundary") {
		cfg.Integrator.Boundary = boundary
	}
	if flags.Changed("damping") {
		cfg.Integrator.Damping = damping
	}
	if flags.Changed("substeps") {
		cfg.Integrator.SubSteps = subSteps
	}
	if flags.Changed("elasticity") {
		cfg.Integrator.Elasticity = elasticity
	}
	if flags.Changed("preset") {
		cfg.Rules.Preset = rulePreset
	}
	if flags.Changed("strength") {
		cfg.Rules.RandomStrength = strength
	}
	if flags.Changed("activation") {
		cfg.Rules.ActivationDistance = activation
	}
	if flags.Changed("gravity") {
		cfg.Forces.GravityY = gravityY
	}
	if flags.Changed("drag") {
		cfg.Forces.Drag = drag
	}
	if flags.Changed("vortex") {
		cfg.Forces.Vortex = vortex
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if scenario == "" {
		scenario = "default"
	}
	return cfg, scenario, nil
}

// buildEngine wires a configured engine: integrator settings, rule
// matrix, global forces, and randomly placed particles.
func buildEngine(cfg *config.Config) (*engine.Engine, error) {
	if cfg.MaxParticles <= 0 || cfg.TypeCount <= 0 {
		return nil, fmt.Errorf("max_particles and type_count must be positive")
	}
	bounds := spatial.Rect{X: cfg.World.X, Y: cfg.World.Y, Width: cfg.World.Width, Height: cfg.World.Height}
	icfg := integrators.Config{
		Scheme:     integrators.ParseScheme(cfg.Integrator.Scheme),
		Boundary:   integrators.ParseBoundary(cfg.Integrator.Boundary),
		Damping:    cfg.Integrator.Damping,
		SubSteps:   cfg.Integrator.SubSteps,
		Elasticity: cfg.Integrator.Elasticity,
	}
	eng := engine.New(bounds, cfg.MaxParticles, cfg.TypeCount, icfg)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Rules.Preset == "random" || cfg.Rules.Preset == "" {
		eng.Rules().Randomize(rng, cfg.Rules.RandomStrength, cfg.Rules.ActivationDistance)
	} else if !eng.Rules().ApplyPreset(cfg.Rules.Preset) {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", cfg.Rules.Preset, rules.PresetNames())
	}

	globals := &eng.Solver().Globals
	if cfg.Forces.GravityY != 0 {
		globals.GravityEnabled = true
		globals.GravityY = cfg.Forces.GravityY
	}
	if cfg.Forces.Drag != 0 {
		globals.DragEnabled = true
		globals.Drag = cfg.Forces.Drag
	}
	if cfg.Forces.Vortex != 0 {
		globals.VortexEnabled = true
		globals.VortexX = bounds.X + bounds.Width/2
		globals.VortexY = bounds.Y + bounds.Height/2
		globals.VortexStrength = cfg.Forces.Vortex
	}

	n := cfg.Count
	if n > cfg.MaxParticles {
		n = cfg.MaxParticles
	}
	eng.Store().CreateBatch(n, func(i int) particle.Params {
		return particle.Params{
			X:    bounds.X + rng.Float64()*bounds.Width,
			Y:    bounds.Y + rng.Float64()*bounds.Height,
			VX:   (rng.Float64() - 0.5) * 10,
			VY:   (rng.Float64() - 0.5) * 10,
			Type: rng.Intn(cfg.TypeCount),
			Size: 1 + rng.Float64(),
		}
	})
	return eng, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	steps := int(duration * 1000 / cfg.FixedStepMS)
	dt := cfg.FixedStepMS / 1000

	fmt.Printf("running %s: %d particles, %d steps...\n", scenario, eng.Store().ActiveCount(), steps)
	start := time.Now()

	series := make([][]float64, 0, steps/max(sampleEach, 1)+1)
	for i := 0; i < steps; i++ {
		eng.Step(dt)
		if sampleEach > 0 && i%sampleEach == 0 {
			series = append(series, []float64{
				float64(i) * cfg.FixedStepMS,
				float64(eng.Store().ActiveCount()),
				kineticEnergy(eng.Store()),
			})
		}
	}
	elapsed := time.Since(start)

	snap := eng.Capture()
	meta := storage.RunMetadata{
		Scenario:    scenario,
		Seed:        cfg.Seed,
		FixedStepMS: cfg.FixedStepMS,
		Scheme:      cfg.Integrator.Scheme,
		Boundary:    cfg.Integrator.Boundary,
		Steps:       eng.StepCount(),
		Particles:   eng.Store().ActiveCount(),
		Metrics: map[string]float64{
			"steps_per_second": float64(steps) / elapsed.Seconds(),
			"kinetic_energy":   kineticEnergy(eng.Store()),
		},
	}
	runID, err := st.Save(meta, snap.Particles, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps/sec: %.0f\n", float64(steps)/elapsed.Seconds())
	fmt.Printf("particles remaining: %d\n", eng.Store().ActiveCount())

	if outFile != "" {
		if err := storage.ExportJSON(outFile, scenario, cfg.Integrator.Scheme, cfg.Integrator.Boundary, snap, eng.StepCount()); err != nil {
			return err
		}
		fmt.Printf("exported: %s\n", outFile)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, scenario, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	clock := engine.NewClock(eng, cfg.FixedStepMS)
	clock.SetTimeScale(cfg.TimeScale)
	if offload {
		exec := engine.NewExecutor(engine.New(eng.Bounds(), cfg.MaxParticles, cfg.TypeCount, integrators.Config{
			Scheme:     integrators.ParseScheme(cfg.Integrator.Scheme),
			Boundary:   integrators.ParseBoundary(cfg.Integrator.Boundary),
			Damping:    cfg.Integrator.Damping,
			SubSteps:   cfg.Integrator.SubSteps,
			Elasticity: cfg.Integrator.Elasticity,
		}), eng.Capture())
		off := engine.NewOffloader(exec)
		defer off.Close()
		clock.SetOffloader(off)
	}
	clock.Start()

	m := viz.NewModel(eng, clock, scenario, palette, cfg.Seed)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tPARTICLES\tSCHEME\tBOUNDARY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Particles,
			run.Scheme,
			run.Boundary,
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
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(series))

	captions := []string{"active particles", "kinetic energy"}
	for col := 1; col < len(series[0]) && col <= len(captions); col++ {
		data := make([]float64, len(series))
		for i := range series {
			if col < len(series[i]) {
				data[i] = series[i][col]
			}
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[col-1]),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func printRules(cmd *cobra.Command, args []string) error {
	table := rules.NewTable(types)
	if !table.ApplyPreset(args[0]) {
		return fmt.Errorf("unknown preset: %s (available: %v)", args[0], rules.PresetNames())
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tTARGET\tATTRACT\tREPEL\tRANGE\tFALLOFF\tASYM")
	for a := 0; a < types; a++ {
		for b := 0; b < types; b++ {
			r, ok := table.Rule(a, b)
			if !ok || !r.Active {
				continue
			}
			fmt.Fprintf(w, "%d\t%d\t%.2f\t%.2f\t%.1f\t%s\t%.2f\n",
				a, b, r.Attraction, r.Repulsion, r.ActivationDistance, r.Falloff, r.Asymmetry)
		}
	}
	return w.Flush()
}

func benchSteps(cmd *cobra.Command, args []string) error {
	counts := []int{200, 1000, 4000}
	stepCounts := []int{100, 500}

	fmt.Println("benchmarking step throughput")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tSTEPS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		for _, steps := range stepCounts {
			cfg := config.DefaultConfig()
			cfg.Count = n
			cfg.MaxParticles = n
			cfg.Seed = seed
			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			dt := cfg.FixedStepMS / 1000
			start := time.Now()
			for i := 0; i < steps; i++ {
				eng.Step(dt)
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n",
				n, steps, elapsed, float64(steps)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func kineticEnergy(st *particle.Store) float64 {
	total := 0.0
	for i := 0; i < st.Count(); i++ {
		if !st.Active[i] {
			continue
		}
		total += 0.5 * st.Mass[i] * (st.VX[i]*st.VX[i] + st.VY[i]*st.VY[i])
	}
	return total
}
