package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"time"
)

// evalLog appends one CSV row per evaluation, tracks the best parameters,
// and prints progress.
type evalLog struct {
	f        *os.File
	w        *csv.Writer
	maxEvals int

	count       int
	started     time.Time
	bestFitness float64
	best        []float64
}

func newEvalLog(path string, params *ParamVector, maxEvals int) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating eval log: %w", err)
	}
	header := []string{"eval", "fitness", "quality"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing eval log header: %w", err)
	}
	return &evalLog{
		f:           f,
		w:           w,
		maxEvals:    maxEvals,
		started:     time.Now(),
		bestFitness: math.Inf(1),
	}, nil
}

// Record logs one evaluation. Rows are flushed immediately so an interrupted
// run keeps its history.
func (l *evalLog) Record(values []float64, fitness, quality float64) {
	l.count++
	if fitness < l.bestFitness {
		l.bestFitness = fitness
		l.best = values
	}

	row := []string{
		strconv.Itoa(l.count),
		strconv.FormatFloat(fitness, 'f', 6, 64),
		strconv.FormatFloat(quality, 'f', 4, 64),
	}
	for _, v := range values {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err == nil {
		l.w.Flush()
	}

	elapsed := time.Since(l.started)
	eta := time.Duration(l.maxEvals-l.count) * (elapsed / time.Duration(l.count))
	fmt.Printf("Eval %d/%d: fitness=%.4f quality=%.2f (best=%.4f) | elapsed %s, ETA %s\n",
		l.count, l.maxEvals, fitness, quality, l.bestFitness,
		formatDuration(elapsed), formatDuration(eta))
}

// Close flushes and closes the log file.
func (l *evalLog) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.f.Close()
		return err
	}
	return l.f.Close()
}
