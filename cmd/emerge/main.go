package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/emerge/internal/config"
	"github.com/san-kum/emerge/internal/entropy"
	"github.com/san-kum/emerge/internal/integrators"
	"github.com/san-kum/emerge/internal/metrics"
	"github.com/san-kum/emerge/internal/model"
	"github.com/san-kum/emerge/internal/regime"
	"github.com/san-kum/emerge/internal/sim"
	"github.com/san-kum/emerge/internal/storage"
	"github.com/san-kum/emerge/internal/sweep"
	"github.com/san-kum/emerge/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	integrator string
	threshold  float64
	coupling   float64
	configFile string
	preset     string
	// Sweep options
	sweepRegime string
	valuesArg   string
	workers     int
	outFile     string
	// Timepoint sampling for table
	timesArg string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "emerge",
		Short: "dual entropy meaning-formation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".emerge", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [regime]",
		Short: "run one regime and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegime,
	}
	addRunFlags(runCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sensitivity sweep over one model parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepRegime, "regime", "routine", "regime to sweep")
	sweepCmd.Flags().StringVar(&valuesArg, "values", "", "comma-separated grid values")
	sweepCmd.Flags().IntVar(&workers, "workers", 1, "parallel workers")
	sweepCmd.Flags().StringVar(&outFile, "out", "", "write the sweep table to a CSV file")

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

	tableCmd := &cobra.Command{
		Use:   "table [run_id]",
		Short: "sample a stored run at fixed timepoints",
		Args:  cobra.ExactArgs(1),
		RunE:  tableRun,
	}
	tableCmd.Flags().StringVar(&timesArg, "times", "", "comma-separated sample times (defaults to quarters of the run)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [regime]",
		Short: "run a regime with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [regime]",
		Short: "list available presets for a regime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for regime: %s\n", args[0])
				return nil
			}
			sort.Strings(names)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, plotCmd, tableCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides config)")
	cmd.Flags().Float64Var(&duration, "time", 0, "duration (overrides config)")
	cmd.Flags().StringVar(&integrator, "integrator", "", "integration scheme: "+strings.Join(integrators.Names, ", "))
	cmd.Flags().Float64Var(&threshold, "threshold", 0, "meaning-entropy crossing threshold")
	cmd.Flags().Float64Var(&coupling, "coupling", 0, "harvest coupling (overrides config)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
}

// loadConfig resolves the effective configuration: preset, then config
// file, then CLI flags, each layer overriding the previous one.
func loadConfig(cmd *cobra.Command, regimeName string) (*config.Config, error) {
	cfg, err := config.Default(regimeName)
	if err != nil {
		return nil, err
	}

	if preset != "" {
		cfg = config.GetPreset(regimeName, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(regimeName))
		}
	}

	if configFile != "" {
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if cfg.Regime != regimeName {
			return nil, fmt.Errorf("config file is for regime %q, requested %q", cfg.Regime, regimeName)
		}
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = threshold
	}
	if cmd.Flags().Changed("coupling") {
		cfg.Model.Coupling = coupling
	}

	return cfg, nil
}

func buildSystem(cfg *config.Config) (*model.DualEntropy, entropy.State, entropy.Config, error) {
	switch cfg.Regime {
	case "routine":
		return regime.BuildRoutine(cfg.RoutineSpec())
	case "transformative":
		return regime.BuildTransformative(cfg.TransformativeSpec())
	default:
		return nil, entropy.State{}, entropy.Config{}, fmt.Errorf("unknown regime: %s", cfg.Regime)
	}
}

func runRegime(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sys, x0, runCfg, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(sys, integ)
	peak := metrics.NewPeakConstruction()
	crossing := metrics.NewThresholdCrossing(cfg.Threshold)
	s.AddMetric(peak)
	s.AddMetric(crossing)

	fmt.Printf("running %s regime...\n", cfg.Regime)
	start := time.Now()

	tr, err := s.Run(context.Background(), x0, runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.SaveRun(cfg.Regime, cfg.Integrator, runCfg, tr)
	if err != nil {
		return err
	}

	final := tr.Final()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n\n", len(tr.Times))
	fmt.Printf("final informational entropy:  %.6f\n", final.Info)
	fmt.Printf("final meaning entropy:        %.6f\n", final.Meaning)
	fmt.Printf("peak construction signal:     %.6f at t=%.2f\n", peak.Value(), peak.At())
	if crossing.Reached() {
		fmt.Printf("threshold %.2f crossed at:    t=%.2f\n", cfg.Threshold, crossing.Value())
	} else {
		fmt.Printf("threshold %.2f:               %s\n", cfg.Threshold, storage.NotReached)
	}

	return nil
}

func parseFloats(arg string) ([]float64, error) {
	fields := strings.Split(arg, ",")
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", f, err)
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("no values given")
	}
	return vals, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	param := args[0]

	values, err := parseFloats(valuesArg)
	if err != nil {
		return fmt.Errorf("--values: %w", err)
	}

	cfg, err := loadConfig(cmd, sweepRegime)
	if err != nil {
		return err
	}

	base, x0, runCfg, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	if _, err := integrators.New(cfg.Integrator); err != nil {
		return err
	}

	res, err := sweep.Run(context.Background(), base, sweep.Options{
		Param:     param,
		Values:    values,
		Init:      x0,
		Config:    runCfg,
		Threshold: cfg.Threshold,
		NewIntegrator: func() entropy.Integrator {
			integ, _ := integrators.New(cfg.Integrator)
			return integ
		},
		Workers: workers,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL_INFO\tFINAL_MEANING\tPEAK_CONSTRUCTION\tCROSSING\n", strings.ToUpper(param))
	for _, p := range res.Points {
		if p.Err != nil {
			fmt.Fprintf(w, "%.4f\terror: %v\n", p.Value, p.Err)
			continue
		}
		crossing := storage.NotReached
		if p.Summary.ThresholdReached {
			crossing = fmt.Sprintf("%.4f", p.Summary.ThresholdTime)
		}
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%.6f\t%s\n",
			p.Value,
			p.Summary.FinalInfo,
			p.Summary.FinalMeaning,
			p.Summary.PeakConstruction,
			crossing,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if outFile != "" {
		if err := storage.New(dataDir).SaveSweep(outFile, res); err != nil {
			return err
		}
		fmt.Printf("\nsweep table written to %s\n", outFile)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tREGIME\tTIME\tDURATION\tDT\tINTEG\tFINAL_MEANING")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%.4f\t%s\t%.4f\n",
			run.ID,
			run.Regime,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.FinalMeaning,
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

	se, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(se.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("regime: %s\n", meta.Regime)
	fmt.Printf("samples: %d\n\n", len(se.Times))

	for _, col := range se.Columns {
		data := se.Column(col)
		if data == nil {
			continue
		}
		fmt.Println(viz.PlotSeries(strings.ReplaceAll(col, "_", " "), data))
		fmt.Println()
	}

	return nil
}

func tableRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	se, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(se.Times) == 0 {
		return fmt.Errorf("no data to sample")
	}

	var sampleTimes []float64
	if timesArg != "" {
		sampleTimes, err = parseFloats(timesArg)
		if err != nil {
			return fmt.Errorf("--times: %w", err)
		}
	} else {
		for q := 0; q <= 4; q++ {
			sampleTimes = append(sampleTimes, meta.Duration*float64(q)/4)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "T")
	for _, col := range se.Columns {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(col))
	}
	fmt.Fprintln(w)

	for _, t := range sampleTimes {
		i := se.NearestIndex(t)
		fmt.Fprintf(w, "%.2f", se.Times[i])
		for _, v := range se.Rows[i] {
			fmt.Fprintf(w, "\t%.6f", v)
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args[0])
	if err != nil {
		return err
	}

	sys, x0, runCfg, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	integ, err := integrators.New(cfg.Integrator)
	if err != nil {
		return err
	}

	return viz.RunLive(sys, integ, x0, runCfg, cfg.Regime)
}
