// Package main provides CMA-ES tuning of enemy weapon parameters so that a
// scenario's parked ship lasts a target number of seconds.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/skirmish/config"
)

type options struct {
	configPath string
	scenario   string
	targetSec  float64
	maxTicks   uint64
	seeds      int
	maxEvals   int
	population int
	outputDir  string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.StringVar(&opts.scenario, "scenario", "crab_pair", "Scenario to replay for each evaluation")
	flag.Float64Var(&opts.targetSec, "target-sec", 60, "Desired ship survival time in seconds")
	flag.Uint64Var(&opts.maxTicks, "max-ticks", 36000, "Tick cap per replay")
	flag.IntVar(&opts.seeds, "seeds", 3, "Seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return errors.New("--output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// A bad base config should fail before any replay starts.
	baseCfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	params := NewParamVector()
	start, err := params.ExtractFromConfig(baseCfg)
	if err != nil {
		return fmt.Errorf("reading parameters from config: %w", err)
	}

	seeds := make([]int64, opts.seeds)
	for i := range seeds {
		seeds[i] = 42 + 1000*int64(i)
	}
	evaluator := NewFitnessEvaluator(params, opts.configPath, opts.scenario, opts.maxTicks, opts.targetSec, seeds)

	evals, err := newEvalLog(filepath.Join(opts.outputDir, "optimize_log.csv"), params, opts.maxEvals)
	if err != nil {
		return err
	}
	defer evals.Close()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Clamped values are the ones the replay actually used.
			values := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(values)
			evals.Record(values, fitness, evaluator.LastQuality())
			return fitness
		},
	}

	popSize := opts.population
	if popSize == 0 {
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}
	method := &optimize.CmaEsChol{InitStepSize: 0.3, Population: popSize}
	// Evaluations run one at a time; each fans its seeds out in parallel.
	settings := &optimize.Settings{FuncEvaluations: opts.maxEvals}

	fmt.Printf("Tuning %q: %d parameters, population=%d, max_evals=%d\n",
		opts.scenario, params.Dim(), popSize, opts.maxEvals)
	fmt.Printf("%d seeds per evaluation, target survival %.0fs, tick cap %d\n",
		opts.seeds, opts.targetSec, opts.maxTicks)

	result, err := optimize.Minimize(problem, params.Normalize(params.Clamp(start)), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := evals.best
	if best == nil && result != nil {
		best = params.Clamp(params.Denormalize(result.X))
	}
	if best == nil {
		return errors.New("no evaluations completed")
	}

	fmt.Printf("\nDone: %d evaluations in %s, best fitness %.4f\n",
		evals.count, formatDuration(time.Since(evals.started)), evals.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-18s %-42s %.4f\n", spec.Name, spec.Path, best[i])
	}

	if err := params.ApplyToConfig(baseCfg, best); err != nil {
		return fmt.Errorf("applying best parameters: %w", err)
	}
	out := filepath.Join(opts.outputDir, "best_config.yaml")
	if err := baseCfg.WriteYAML(out); err != nil {
		return fmt.Errorf("writing best config: %w", err)
	}
	fmt.Printf("\nBest config saved to %s\n", out)
	return nil
}

// formatDuration formats d as 1h02m03s, or 2m03s under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h, m, s := int(d.Hours()), int(d.Minutes())%60, int(d.Seconds())%60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
