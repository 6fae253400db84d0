package main

import (
	"fmt"

	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/internal/server"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/export"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/layout"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/params"
	"github.com/GTR1701/projekt-symulacja-komputerowa-buspas/pkg/sim"
)

type runOptions struct {
	seed          int64
	duration      float64
	greenDuration float64
	scenario      string
	outDir        string
}

// loadParameters resolves the run parameters from the scenario file (or
// defaults) and applies command-line overrides.
func loadParameters(opts *runOptions) (params.Parameters, error) {
	p := params.Default()
	if opts.scenario != "" {
		loaded, err := params.Load(opts.scenario)
		if err != nil {
			return p, err
		}
		p = *loaded
	}
	if opts.duration > 0 {
		p.DurationS = opts.duration
	}
	return p, nil
}

// resolveLayout maps the variant id onto a layout, deriving signal timing
// from --green-duration when given: the cycle is the optimal cycle for that
// green time, clamped to the configured green range.
func resolveLayout(variant string, p params.Parameters, opts *runOptions) layout.RoadLayout {
	l := layout.ForVariant(variant, p)
	if opts.greenDuration > 0 {
		green := opts.greenDuration
		if rng := p.GreenDuration; rng.Max > 0 {
			if green < rng.Min {
				green = rng.Min
			}
			if green > rng.Max {
				green = rng.Max
			}
		}
		cycle := sim.OptimalCycle(green)
		l.CycleOverrideS = cycle
		l.GreenRatio = green / cycle
	}
	return l
}

func executeRun(variant string, p params.Parameters, l layout.RoadLayout, opts *runOptions) (*sim.Engine, sim.Summary, error) {
	engine, err := sim.New(p, l, opts.seed)
	if err != nil {
		return nil, sim.Summary{}, fmt.Errorf("variant %s: %w", variant, err)
	}
	summary, err := engine.Run(p.Steps())
	if err != nil {
		return nil, sim.Summary{}, fmt.Errorf("variant %s: %w", variant, err)
	}
	return engine, summary, nil
}

func runRun(variant string, opts *runOptions) error {
	p, err := loadParameters(opts)
	if err != nil {
		return err
	}
	l := resolveLayout(variant, p, opts)

	engine, summary, err := executeRun(variant, p, l, opts)
	if err != nil {
		return err
	}

	printSummary(variant, summary, engine.Statistics())
	printUtilization(engine.Utilization())

	if opts.outDir != "" {
		run := export.Snapshot(engine, "")
		dir, err := export.Write(run, opts.outDir)
		if err != nil {
			// The run itself succeeded; surface the export failure distinctly.
			return fmt.Errorf("run completed but export failed: %w", err)
		}
		fmt.Printf("\nExported tables to %s\n", dir)
	}
	return nil
}

func runCompare(opts *runOptions) error {
	p, err := loadParameters(opts)
	if err != nil {
		return err
	}

	var rows []compareRow
	for _, variant := range layout.Variants() {
		l := layout.ForVariant(variant, p)
		engine, summary, err := executeRun(variant, p, l, opts)
		if err != nil {
			return err
		}
		rows = append(rows, compareRow{
			Variant: variant,
			Short:   l.ShortDescription(),
			Summary: summary,
			Stats:   engine.Statistics(),
		})

		if opts.outDir != "" {
			run := export.Snapshot(engine, "variant_"+variant)
			if _, err := export.Write(run, opts.outDir); err != nil {
				return fmt.Errorf("variant %s completed but export failed: %w", variant, err)
			}
		}
	}

	printComparison(rows)
	return nil
}

func runVariants() error {
	p := params.Default()
	fmt.Println("Infrastructure variant catalog")
	fmt.Println("==============================")
	for _, variant := range layout.Variants() {
		l := layout.ForVariant(variant, p)
		fmt.Printf("  %s  %-8s %s\n", variant, l.ShortDescription(), l.Description(p))
	}
	fmt.Printf("  *  %-8s %s (any unknown id)\n",
		layout.ForVariant("", p).ShortDescription(), "default layout")
	return nil
}

func runServe(variant string, opts *runOptions, port int) error {
	p, err := loadParameters(opts)
	if err != nil {
		return err
	}
	l := resolveLayout(variant, p, opts)

	engine, summary, err := executeRun(variant, p, l, opts)
	if err != nil {
		return err
	}

	run := export.Snapshot(engine, "")
	return server.New(run, summary, port).Start()
}
