// Command batch runs one instance under many seeds and writes a summary
// row per run as CSV and, optionally, every snapshot as JSON.
package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TPeterdi/async-apf-swarm-sub000/internal/config"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/core"
	"github.com/TPeterdi/async-apf-swarm-sub000/internal/sim"
)

// Batch describes the runs to make.
type Batch struct {
	Instance  *core.Instance
	Options   []sim.Option
	FirstSeed uint64
	Runs      int
	Parallel  int
	Timeout   time.Duration // per run, 0 for none
}

// Run makes every run and returns the snapshots in seed order.
func (b Batch) Run(ctx context.Context, logger *log.Logger) ([]sim.Snapshot, error) {
	results := make([]sim.Snapshot, b.Runs)
	errs := make([]error, b.Runs)
	jobs := make(chan int)

	var wg sync.WaitGroup
	for range max(b.Parallel, 1) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i], errs[i] = b.runOne(ctx, b.FirstSeed+uint64(i))
				logger.Debug("run finished", "seed", results[i].Seed, "completed", results[i].Completed,
					"activations", results[i].TotalActivations())
			}
		}()
	}
	for i := range b.Runs {
		if ctx.Err() != nil {
			break
		}
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, ctx.Err()
}

func (b Batch) runOne(ctx context.Context, seed uint64) (sim.Snapshot, error) {
	opts := append(append([]sim.Option(nil), b.Options...), sim.WithSeed(seed), sim.WithDelay(0))
	s, err := sim.New(b.Instance.Configuration, b.Instance.Pattern, opts...)
	if err != nil {
		return sim.Snapshot{}, err
	}
	if b.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, b.Timeout)
		defer cancel()
	}
	// A timed out run still has statistics worth keeping.
	_ = s.Run(ctx)
	return s.Statistics(), nil
}

// WriteCSV writes a header and one row per snapshot.
func WriteCSV(w io.Writer, snaps []sim.Snapshot) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(sim.CSVHeader); err != nil {
		return err
	}
	for _, s := range snaps {
		if err := writer.Write(s.CSVRecord()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// Summary aggregates a batch.
type Summary struct {
	Runs, Completed  int
	MeanActivations  float64
	MeanSteps        float64
	MaxSERW, MaxSERH int
	TotalFailures    int
}

// Summarize aggregates snapshots. Means are over completed runs.
func Summarize(snaps []sim.Snapshot) Summary {
	var sum Summary
	sum.Runs = len(snaps)
	for _, s := range snaps {
		sum.TotalFailures += s.Failures
		sum.MaxSERW = max(sum.MaxSERW, s.MaxSERWidth)
		sum.MaxSERH = max(sum.MaxSERH, s.MaxSERHeight)
		if !s.Completed {
			continue
		}
		sum.Completed++
		sum.MeanActivations += float64(s.TotalActivations())
		sum.MeanSteps += float64(s.TotalSteps())
	}
	if sum.Completed > 0 {
		sum.MeanActivations /= float64(sum.Completed)
		sum.MeanSteps /= float64(sum.Completed)
	}
	return sum
}

func main() {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)
	flags := config.NewFlags(fs)
	runs := fs.Int("runs", 100, "number of seeds to run")
	firstSeed := fs.Uint64("first-seed", 1, "seed of the first run")
	parallel := fs.Int("parallel", runtime.NumCPU(), "concurrent runs")
	timeout := fs.Duration("timeout", time.Minute, "limit per run")
	output := fs.String("output", "evidence/batch.csv", "CSV output file")
	jsonOut := fs.String("json", "", "also write every snapshot as a JSON array")
	fs.Parse(os.Args[1:])

	if err := run(flags, Batch{
		FirstSeed: *firstSeed, Runs: *runs, Parallel: *parallel, Timeout: *timeout,
	}, *output, *jsonOut); err != nil {
		fmt.Fprintln(os.Stderr, "batch:", err)
		os.Exit(1)
	}
}

func run(flags *config.Flags, b Batch, output, jsonOut string) error {
	conf, err := flags.Resolve()
	if err != nil {
		return err
	}
	logger, err := conf.Logger(os.Stderr, "batch")
	if err != nil {
		return err
	}
	if b.Instance, err = conf.Instance(); err != nil {
		return err
	}
	if b.Options, err = conf.Options(); err != nil {
		return err
	}

	logger.Info("running", "runs", b.Runs, "robots", b.Instance.RobotCount(), "parallel", b.Parallel)
	snaps, err := b.Run(context.Background(), logger)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := WriteCSV(f, snaps); err != nil {
		return err
	}
	logger.Info("results written", "file", output)

	if jsonOut != "" {
		data, err := json.MarshalIndent(snaps, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(jsonOut, data, 0644); err != nil {
			return err
		}
	}

	s := Summarize(snaps)
	fmt.Printf("%-10s %8s %12s %10s %8s %9s\n", "Runs", "Formed", "Activations", "Steps", "SER", "Failures")
	fmt.Printf("%-10d %8d %12.1f %10.1f %4dx%-3d %9d\n",
		s.Runs, s.Completed, s.MeanActivations, s.MeanSteps, s.MaxSERW, s.MaxSERH, s.TotalFailures)
	return nil
}
