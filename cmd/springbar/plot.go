package main

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/springbar/internal/config"
	"github.com/san-kum/springbar/internal/dynamo"
	"github.com/san-kum/springbar/internal/metrics"
	"github.com/san-kum/springbar/internal/physics"
	"github.com/san-kum/springbar/internal/progress"
	"github.com/san-kum/springbar/internal/storage"
	"github.com/san-kum/springbar/internal/viz"
	"github.com/spf13/cobra"
)

const settleTolerance = 0.01

func plotSpring(cmd *cobra.Command, args []string) error {
	preset := config.GetPreset(springName)
	if preset == nil {
		return fmt.Errorf("unknown spring preset: %s (available: %v)", springName, config.ListPresets())
	}
	if frequency > 0 {
		preset.Frequency = frequency
	}
	if damping >= 0 {
		preset.Damping = damping
	}
	m, err := physics.ParseMethod(method)
	if err != nil {
		return err
	}

	tr, set, final, err := simulate(*preset, m, from, to, plotDt, plotTime)
	if err != nil {
		return err
	}

	if exportPath == "-" {
		return storage.ExportTrajectoryStdout(tr)
	}

	fmt.Printf("spring: %s (%.2f Hz, damping %.2f, %s)\n", springName, tr.Frequency, tr.Damping, tr.Method)
	fmt.Printf("samples: %d\n\n", tr.Steps)

	graph := asciigraph.PlotMany([][]float64{tr.Positions, tr.Targets},
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.DarkGray),
		asciigraph.Caption(fmt.Sprintf("position %.2f → %.2f over %.2fs", from, to, plotTime)),
	)
	fmt.Println(graph)
	fmt.Println()

	fmt.Println(asciigraph.Plot(tr.Velocities,
		asciigraph.Height(6),
		asciigraph.Width(72),
		asciigraph.Caption("velocity"),
	))

	fmt.Println("\nmetrics:")
	values := set.Values()
	for _, name := range set.Names() {
		fmt.Printf("  %s: %s\n", name, formatMetric(values[name]))
	}
	fmt.Println()
	fmt.Println(previewBar(tr.Positions[len(tr.Positions)-1]))

	if exportPath != "" {
		var err error
		if strings.HasSuffix(exportPath, ".csv") {
			err = writeCSVFile(exportPath, tr)
		} else {
			err = storage.ExportTrajectory(exportPath, tr)
		}
		if err != nil {
			return err
		}
		fmt.Printf("exported to %s\n", exportPath)
	}

	if storeRun {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		enc, err := storage.ParseEncoding(cfg.Encoding)
		if err != nil {
			return err
		}
		st := storage.New(cfg.StoreDir, enc)
		if err := st.Init(); err != nil {
			return err
		}
		id, err := st.Save(storage.Document{
			Name:    springName,
			Dt:      plotDt,
			Group:   progress.GroupSnapshot{Bars: []progress.NamedSnapshot{{Name: springName, Snapshot: final}}},
			Metrics: tr.Metrics,
		})
		if err != nil {
			return err
		}
		if err := st.SaveTrajectory(id, tr); err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", id)
	}
	return nil
}

// simulate steps a lone spring from start toward target, records every
// step and returns the final state as a bar snapshot.
func simulate(p config.SpringPreset, m physics.Method, start, target, dt, duration float64) (*storage.Trajectory, metrics.Set, progress.Snapshot, error) {
	var final progress.Snapshot
	if !dynamo.IsFinite(dt) || dt <= 0 {
		return nil, nil, final, dynamo.InvalidArgument("plot", "dt", dt, "must be > 0")
	}
	if !dynamo.IsFinite(duration) || duration < 0 {
		return nil, nil, final, dynamo.InvalidArgument("plot", "time", duration, "must be >= 0")
	}
	spring, err := physics.NewSpring(p.Frequency, p.Damping)
	if err != nil {
		return nil, nil, final, err
	}
	spring.Method = m
	if err := spring.SetState(start, 0, target); err != nil {
		return nil, nil, final, err
	}

	set := metrics.Standard(settleTolerance)
	tr := &storage.Trajectory{
		Name:      springName,
		Method:    m.String(),
		Frequency: p.Frequency,
		Damping:   p.Damping,
		Dt:        dt,
	}

	record := func(t float64) {
		tr.Append(t, spring.Position(), spring.Velocity(), spring.Target())
		set.Observe(metrics.Sample{Position: spring.Position(), Velocity: spring.Velocity(), Target: spring.Target(), T: t})
	}

	record(0)
	steps := int(duration/dt + 0.5)
	for i := 1; i <= steps; i++ {
		if err := spring.Step(dt); err != nil {
			return nil, nil, final, err
		}
		record(float64(i) * dt)
	}
	tr.Metrics = set.Finite()

	final = progress.Snapshot{
		Position:  spring.Position(),
		Velocity:  spring.Velocity(),
		Target:    spring.Target(),
		Frequency: spring.Frequency(),
		Damping:   spring.Damping(),
		State:     progress.Animating,
	}
	if spring.AtEquilibrium() {
		final.State = progress.Idle
		if spring.Target() >= 1 {
			final.State = progress.Completed
		}
	}
	return tr, set, final, nil
}

func formatMetric(v float64) string {
	if math.IsInf(v, 1) {
		return "not settled"
	}
	return fmt.Sprintf("%.6f", v)
}

func previewBar(position float64) string {
	style := viz.DefaultStyle()
	style.Profile = outputProfile()
	line, err := viz.Render(position, style)
	if err != nil {
		return err.Error()
	}
	return line.ANSI()
}

func writeCSVFile(path string, tr *storage.Trajectory) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return storage.WriteCSV(f, tr)
}
