package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mwinther/hfvm/internal/config"
	"github.com/mwinther/hfvm/internal/diagnostics"
	"github.com/mwinther/hfvm/internal/plasma"
	"github.com/mwinther/hfvm/internal/solver"
	"github.com/mwinther/hfvm/internal/storage"
	"github.com/mwinther/hfvm/internal/viz"
)

var (
	dataDir    string
	configFile string

	nx, ny, nzDim  int
	nn, nm, np, ns int

	tMax      float64
	dt        float64
	samples   int
	nu        float64
	diffusion float64
	dn1       float64
	tolerance float64
	maxSteps  int
	integName string

	plotDir string
	outPath string
	sweepNu string
	workers int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hfvm",
		Short: "Hermite-Fourier Vlasov-Maxwell spectral solver",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hfvm", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&plotDir, "plot-dir", "", "write energy/fluctuation PNGs to this directory")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a simulation with a live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a collision-frequency sweep",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepNu, "nu-values", "1,5,10", "comma-separated collision frequencies")
	sweepCmd.Flags().IntVar(&workers, "workers", 2, "concurrent runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored energy traces in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render stored energy traces to PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outPath, "out", "energy.png", "output image path")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export stored energy traces as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of stored energy traces",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, renderCmd, analyzeCmd, exportCmd, exportCSVCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&nx, "nx", config.DefaultNx, "Fourier modes in x")
	cmd.Flags().IntVar(&ny, "ny", 1, "Fourier modes in y")
	cmd.Flags().IntVar(&nzDim, "nz", 1, "Fourier modes in z")
	cmd.Flags().IntVar(&nn, "nn", config.DefaultNn, "Hermite moments in vx")
	cmd.Flags().IntVar(&nm, "nm", 1, "Hermite moments in vy")
	cmd.Flags().IntVar(&np, "np", 1, "Hermite moments in vz")
	cmd.Flags().IntVar(&ns, "ns", config.DefaultNs, "number of species")
	cmd.Flags().Float64Var(&tMax, "time", 0, "simulation end time")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "initial integrator step")
	cmd.Flags().IntVar(&samples, "samples", config.DefaultTimesteps, "output samples")
	cmd.Flags().Float64Var(&nu, "nu", 0, "collision frequency")
	cmd.Flags().Float64Var(&diffusion, "d", 0, "spatial diffusion coefficient")
	cmd.Flags().Float64Var(&dn1, "dn1", 0, "initial density perturbation amplitude")
	cmd.Flags().Float64Var(&tolerance, "tol", 0, "adaptive step tolerance")
	cmd.Flags().IntVar(&maxSteps, "max-steps", 0, "internal step budget")
	cmd.Flags().StringVar(&integName, "integrator", "rk45", "integrator (rk45, rk4, euler)")
}

// buildConfig layers preset, config file and changed CLI flags, in that
// order of increasing precedence.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	preset := ""

	if len(args) > 0 {
		preset = args[0]
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("nx") {
		cfg.Grid.Nx = nx
	}
	if flags.Changed("ny") {
		cfg.Grid.Ny = ny
	}
	if flags.Changed("nz") {
		cfg.Grid.Nz = nzDim
	}
	if flags.Changed("nn") {
		cfg.Grid.Nn = nn
	}
	if flags.Changed("nm") {
		cfg.Grid.Nm = nm
	}
	if flags.Changed("np") {
		cfg.Grid.Np = np
	}
	if flags.Changed("ns") {
		cfg.Grid.Ns = ns
	}
	if flags.Changed("time") {
		cfg.Physics.TMax = tMax
	}
	if flags.Changed("nu") {
		cfg.Physics.Nu = nu
	}
	if flags.Changed("d") {
		cfg.Physics.D = diffusion
	}
	if flags.Changed("dn1") {
		cfg.Physics.Dn1 = dn1
	}
	if flags.Changed("tol") {
		cfg.Solver.Tolerance = tolerance
	}
	if flags.Changed("dt") {
		cfg.Solver.Dt = dt
	}
	if flags.Changed("samples") {
		cfg.Solver.Timesteps = samples
	}
	if flags.Changed("max-steps") {
		cfg.Solver.MaxSteps = maxSteps
	}
	if flags.Changed("integrator") {
		cfg.Solver.Integrator = integName
	}
	return cfg, preset, nil
}

func integratorByName(name string) (solver.AdaptiveIntegrator, error) {
	switch name {
	case "", "rk45":
		return solver.NewRK45(), nil
	case "rk4":
		return solver.FixedStep(solver.NewRK4()), nil
	case "euler":
		return solver.FixedStep(solver.NewEuler()), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, preset, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	integ, err := integratorByName(cfg.Solver.Integrator)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	par := cfg.Parameters()
	opts := cfg.RunOptions()
	opts.Integrator = integ

	fmt.Printf("running %dx%dx%d grid, %d moments, %d species...\n",
		cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz,
		cfg.Grid.Nn*cfg.Grid.Nm*cfg.Grid.Np, cfg.Grid.Ns)
	start := time.Now()

	out, err := plasma.Simulate(context.Background(), par, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	series := diagnostics.Energies(out)
	runID, err := st.Save(preset, cfg.Solver.Integrator, out, series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("internal steps: %d\n", out.Steps)
	fmt.Printf("energy drift: %.3e\n", diagnostics.RelativeDrift(series.Total))

	if plotDir != "" {
		if err := os.MkdirAll(plotDir, 0755); err != nil {
			return err
		}
		if err := viz.SaveEnergyPlot(series, filepath.Join(plotDir, "energy.png")); err != nil {
			return err
		}
		trace := diagnostics.DensityFluctuation(out, 0, 1, 0, 0)
		if err := viz.SaveFluctuationPlot(out.Time, trace, filepath.Join(plotDir, "fluctuation.png")); err != nil {
			return err
		}
		fmt.Printf("plots written to %s\n", plotDir)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, preset, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	integ, err := integratorByName(cfg.Solver.Integrator)
	if err != nil {
		return err
	}

	par := cfg.Parameters()
	opts := cfg.RunOptions()
	opts.Integrator = integ

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan viz.Sample, 64)
	opts.OnSample = func(i int, t float64, y []complex128) {
		em, kin, err := diagnostics.InstantEnergies(par, y)
		if err != nil {
			return
		}
		select {
		case ch <- viz.Sample{Index: i, Time: t, EM: em, Kinetic: kin}:
		case <-ctx.Done():
		}
	}

	title := preset
	if title == "" {
		title = "vlasov-maxwell"
	}
	m := viz.NewMonitor(title, par.TMax, opts.Timesteps, ch, cancel)
	p := tea.NewProgram(m)

	errCh := make(chan error, 1)
	go func() {
		_, err := plasma.Simulate(ctx, par, opts)
		errCh <- err
		close(ch)
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	if err := <-errCh; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	integ, err := integratorByName(cfg.Solver.Integrator)
	if err != nil {
		return err
	}

	var nus []float64
	for _, field := range strings.Split(sweepNu, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("bad nu value %q: %w", field, err)
		}
		nus = append(nus, v)
	}

	type sweepResult struct {
		nu      float64
		drift   float64
		finalEM float64
		steps   int
		elapsed time.Duration
	}
	results := make([]sweepResult, len(nus))

	err = solver.Parallel(context.Background(), len(nus), workers, func(ctx context.Context, i int) error {
		par := cfg.Parameters()
		par.Nu = nus[i]
		opts := cfg.RunOptions()
		opts.Integrator = integ

		start := time.Now()
		out, err := plasma.Simulate(ctx, par, opts)
		if err != nil {
			return fmt.Errorf("nu=%g: %w", nus[i], err)
		}
		series := diagnostics.Energies(out)
		results[i] = sweepResult{
			nu:      nus[i],
			drift:   diagnostics.RelativeDrift(series.Total),
			finalEM: series.EM[len(series.EM)-1],
			steps:   out.Steps,
			elapsed: time.Since(start),
		}
		return nil
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NU\tENERGY_DRIFT\tFINAL_EM\tSTEPS\tTIME")
	for _, r := range results {
		fmt.Fprintf(w, "%.3g\t%.3e\t%.6e\t%d\t%v\n", r.nu, r.drift, r.finalEM, r.steps, r.elapsed)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tMOMENTS\tT_MAX\tINTEG\tSTEPS\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%dx%d\t%d\t%.1f\t%s\t%d\t%.2e\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Shape.Nx, run.Shape.Ny, run.Shape.Nz,
			run.Shape.Moments(),
			run.TMax,
			run.Integrator,
			run.Steps,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Time) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(series.Time))
	fmt.Println(viz.EnergyChart(series, 80, 10))
	return nil
}

func renderRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Time) == 0 {
		return fmt.Errorf("no data to render")
	}
	if err := viz.SaveEnergyPlot(series, outPath); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Time) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRACE\tDOMINANT_FREQ\tPERIOD")
	for _, tr := range []struct {
		name string
		data []float64
	}{
		{"em", series.EM},
		{"kinetic", series.Kinetic},
	} {
		freq := diagnostics.DominantFrequency(series.Time, tr.data)
		if freq > 0 {
			fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", tr.name, freq, 1.0/freq)
		} else {
			fmt.Fprintf(w, "%s\t-\t-\n", tr.name)
		}
	}
	return w.Flush()
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

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Time) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "em", "kinetic", "total"}
	for sp := range series.Species {
		header = append(header, fmt.Sprintf("kinetic_s%d", sp))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range series.Time {
		row := []string{
			strconv.FormatFloat(series.Time[i], 'g', 10, 64),
			strconv.FormatFloat(series.EM[i], 'g', 10, 64),
			strconv.FormatFloat(series.Kinetic[i], 'g', 10, 64),
			strconv.FormatFloat(series.Total[i], 'g', 10, 64),
		}
		for sp := range series.Species {
			row = append(row, strconv.FormatFloat(series.Species[sp][i], 'g', 10, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}
