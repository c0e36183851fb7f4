// Package main sweeps learning rates over the field presets and reports how
// far fixed-length descents get towards each preset's reference minimum.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/descent/config"
	"github.com/pthm-cable/descent/field"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	presetName := flag.String("preset", "", "Preset to sweep (empty = all)")
	ticks := flag.Int("ticks", 500, "Descent steps per run")
	rates := flag.Int("rates", 25, "Number of log-spaced learning rates")
	minLR := flag.Float64("min-lr", 0, "Lowest learning rate (0 = config min_learning_rate)")
	maxLR := flag.Float64("max-lr", 0, "Highest learning rate (0 = config max_learning_rate)")
	refineEvals := flag.Int("refine-evals", 0, "Nelder-Mead evaluations refining the best rate (0 = off)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *ticks < 1 {
		log.Fatal("--ticks must be at least 1")
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg := config.Cfg()

	lo, hi := cfg.Descent.MinLearningRate, cfg.Descent.MaxLearningRate
	if *minLR > 0 {
		lo = *minLR
	}
	if *maxLR > 0 {
		hi = *maxLR
	}
	if lo > hi {
		log.Fatalf("learning rate range [%g, %g] is empty", lo, hi)
	}

	presets := field.Presets()
	if *presetName != "" {
		p, err := field.Lookup(*presetName)
		if err != nil {
			log.Fatal(err)
		}
		presets = []field.Preset{p}
	}

	lrs := LearningRates(lo, hi, *rates)
	total := len(presets) * len(lrs)

	fmt.Printf("Sweeping %d presets x %d learning rates in [%g, %g], %d ticks per run\n",
		len(presets), len(lrs), lo, hi, *ticks)

	var results, best []RunResult
	runCount := 0
	startTime := time.Now()

	for _, p := range presets {
		sw := NewSweeper(p, *ticks, cfg.Descent.GradientStep)
		if ref := sw.Reference(); ref.Valid {
			fmt.Printf("%s: reference minimum (%.4f, %.4f) = %.6g\n", p.Name, ref.Point.X, ref.Point.Y, ref.Value)
		} else {
			fmt.Printf("%s: no reference minimum in domain, scoring by height\n", p.Name)
		}

		var presetResults []RunResult
		for _, lr := range lrs {
			r, err := sw.Run(lr)
			if err != nil {
				log.Fatalf("%s: %v", p.Name, err)
			}
			runCount++
			presetResults = append(presetResults, r)

			elapsed := time.Since(startTime)
			avgPerRun := elapsed / time.Duration(runCount)
			remaining := time.Duration(total-runCount) * avgPerRun
			fmt.Printf("Run %d/%d: %s lr=%.5g height=%.5g dist=%.4g diverged=%v | elapsed: %s, ETA: %s\n",
				runCount, total, p.Name, lr, r.Height, r.DistToMin, r.Diverged,
				formatDuration(elapsed), formatDuration(remaining))
		}
		results = append(results, presetResults...)

		b, ok := Best(presetResults)
		if !ok {
			continue
		}
		if *refineEvals > 0 && !b.Diverged {
			refined, err := sw.Refine(b, lo, hi, *refineEvals)
			if err != nil {
				log.Printf("%s: refinement ended: %v", p.Name, err)
			}
			b = refined
		}
		best = append(best, b)
	}

	if err := writeCSV(filepath.Join(*outputDir, "sweep.csv"), results); err != nil {
		log.Fatalf("failed to write sweep results: %v", err)
	}
	if err := writeCSV(filepath.Join(*outputDir, "best.csv"), best); err != nil {
		log.Fatalf("failed to write best rates: %v", err)
	}

	fmt.Printf("\nSweep complete after %d runs in %s\n", runCount, formatDuration(time.Since(startTime)))
	fmt.Println("\nBest learning rates:")
	for _, b := range best {
		fmt.Printf("  %s: %.6g (fitness %.6g, refined=%v)\n", b.Preset, b.LearningRate, b.Fitness(), b.Refined)
	}

	// A single-preset sweep also produces a config with the winning rate.
	if len(best) == 1 {
		bestCfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("failed to reload config: %v", err)
		}
		bestCfg.Preset = best[0].Preset
		bestCfg.Descent.LearningRate = bestCfg.Descent.ClampLearningRate(best[0].LearningRate)

		configOutPath := filepath.Join(*outputDir, "best_config.yaml")
		if err := bestCfg.WriteYAML(configOutPath); err != nil {
			log.Printf("failed to write best config: %v", err)
		} else {
			fmt.Printf("\nBest config saved to: %s\n", configOutPath)
		}
	}
}

func writeCSV(path string, rows []RunResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
