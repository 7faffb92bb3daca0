package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/muesli/termenv"
	"github.com/san-kum/springbar/internal/colors"
	"github.com/san-kum/springbar/internal/config"
	"github.com/san-kum/springbar/internal/logger"
	"github.com/san-kum/springbar/internal/progress"
	"github.com/san-kum/springbar/internal/tui"
	"github.com/san-kum/springbar/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	dataDir    string
	profile    string
	dt         float64
	duration   float64
	every      int
	saveAs     string
	useKV      bool
	exitOnDone bool
	// plot
	springName string
	frequency  float64
	damping    float64
	method     string
	from       float64
	to         float64
	exportPath string
	storeRun   bool
	plotDt     float64
	plotTime   float64

	log = logger.FromEnv("springbar:")
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn("failed to read .env: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:          "springbar",
		Short:        "spring-animated gradient progress bars",
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "snapshot directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "color profile: truecolor, ansi256, ansi16, ascii or auto")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "animate the configured bars headlessly and print frames",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "seconds per frame (default from config)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "seconds to simulate (default from config)")
	runCmd.Flags().IntVar(&every, "every", 0, "print every n-th frame, 0 prints only the last")
	runCmd.Flags().StringVar(&saveAs, "save", "", "save the final state under this name")
	runCmd.Flags().BoolVar(&useKV, "kv", false, "save into the pebble key-value store instead of files")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view of the configured bars",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "seconds per frame (default from config)")
	liveCmd.Flags().BoolVar(&exitOnDone, "exit", false, "quit when every bar completes")
	rootCmd.Flags().AddFlagSet(liveCmd.Flags())

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot a single spring response and its settling metrics",
		Args:  cobra.NoArgs,
		RunE:  plotSpring,
	}
	plotCmd.Flags().StringVar(&springName, "spring", "default", "spring preset")
	plotCmd.Flags().Float64Var(&frequency, "frequency", 0, "override preset frequency (Hz)")
	plotCmd.Flags().Float64Var(&damping, "damping", -1, "override preset damping ratio")
	plotCmd.Flags().StringVar(&method, "method", "analytic", "integration method: analytic or rk4")
	plotCmd.Flags().Float64Var(&from, "from", 0, "start position")
	plotCmd.Flags().Float64Var(&to, "to", 1, "target position")
	plotCmd.Flags().Float64Var(&plotDt, "dt", config.DefaultDt, "timestep")
	plotCmd.Flags().Float64Var(&plotTime, "time", 1, "seconds to simulate")
	plotCmd.Flags().StringVar(&exportPath, "export", "", "write the trajectory to a .json, .yaml or .csv file, - for stdout")
	plotCmd.Flags().BoolVar(&storeRun, "store", false, "save the trajectory in the snapshot directory")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list spring presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFREQUENCY\tDAMPING")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", name, p.Frequency, p.Damping)
			}
			return w.Flush()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "preview themes, gradients and glyph sets",
		Args:  cobra.NoArgs,
		RunE:  previewThemes,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "springbar.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, presetsCmd, themesCmd, initCmd, snapshotCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads --config when given and applies persistent flag
// overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	switch profile {
	case "":
	case "auto":
		cfg.Profile = colors.FromTermenv(termenv.EnvColorProfile()).String()
	default:
		cfg.Profile = profile
	}
	if dataDir != "" {
		cfg.StoreDir = dataDir
	}
	if dt > 0 {
		cfg.Dt = dt
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	return cfg, cfg.Validate()
}

// styleLookup returns the configured style for a bar name, or the default
// style for names the config does not know.
func styleLookup(cfg *config.Config, elapsed func() time.Duration) func(string) viz.Style {
	return func(name string) viz.Style {
		for _, bc := range cfg.Bars {
			if bc.Name != name {
				continue
			}
			if s, err := cfg.StyleFor(bc, elapsed); err == nil {
				return s
			}
		}
		s := viz.DefaultStyle()
		if p, err := cfg.ColorProfile(); err == nil {
			s.Profile = p
		}
		return s
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	start := time.Now()
	group, err := cfg.BuildGroup(func() time.Duration { return time.Since(start) }, progress.WithLogger(log))
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithDt(cfg.Dt), tui.WithLogger(log)}
	if exitOnDone {
		opts = append(opts, tui.ExitOnComplete())
	}
	return tui.Run(group, opts...)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var clock time.Duration
	group, err := cfg.BuildGroup(func() time.Duration { return clock }, progress.WithLogger(log))
	if err != nil {
		return err
	}
	for _, name := range group.Names() {
		b, _ := group.Get(name)
		b.EnableMetrics()
	}

	frames := int(cfg.Duration/cfg.Dt + 0.5)
	step := time.Duration(cfg.Dt * float64(time.Second))
	out := termenv.NewOutput(os.Stdout)
	log.Debug("running %d frames at dt=%.4f", frames, cfg.Dt)

	for i := 1; i <= frames; i++ {
		if _, err := group.TickAll(cfg.Dt); err != nil {
			log.Warn("frame %d: %v", i, err)
		}
		clock += step
		if every > 0 && i%every == 0 {
			fmt.Fprintf(out, "frame %d (%.2fs)\n", i, clock.Seconds())
			printGroup(out, group)
		}
		if group.IsAllComplete() {
			log.Debug("settled after %d frames", i)
			break
		}
	}

	if every == 0 {
		printGroup(out, group)
	}
	fmt.Println()
	printStates(group)

	if saveAs == "" {
		return nil
	}
	return saveGroup(cfg, saveAs, group)
}

func printGroup(out *termenv.Output, group *progress.Group) {
	for _, r := range group.RenderAll() {
		fmt.Fprintf(out, "%-10s %s\n", r.Name, r.Line.ANSI())
	}
}

func printStates(group *progress.Group) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTATE\tPOSITION\tTARGET\tFRAMES\tAVG RENDER")
	for _, name := range group.Names() {
		b, _ := group.Get(name)
		var stats string
		var rendered int
		if m := b.Metrics(); m != nil {
			s := m.Stats()
			rendered = s.FramesRendered
			stats = s.Average.String()
		}
		fmt.Fprintf(w, "%s\t%s\t%.4f\t%.2f\t%d\t%s\n",
			name, b.State(), b.Position(), b.Target(), rendered, stats)
	}
	w.Flush()
}
