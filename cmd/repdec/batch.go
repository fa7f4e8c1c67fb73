// Package main batch command.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/remeh/sizedwaitgroup"
	"github.com/spf13/cobra"

	"repdec/internal/config"
	"repdec/internal/logging"
	"repdec/internal/render"
	"repdec/internal/replay"
)

// batchResult is one file's outcome in a batch run.
type batchResult struct {
	File        string  `json:"file"`
	MapName     string  `json:"map_name,omitempty"`
	Commands    int     `json:"commands"`
	Reliability string  `json:"reliability,omitempty"`
	TopAPM      float64 `json:"top_apm,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func batchCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "batch <pattern>...",
		Short: "Decode many replays in parallel",
		Long: `Decode every file matching the glob patterns (doublestar
syntax, e.g. 'replays/**/*.rep') with bounded parallelism. Each file is
decoded independently; failures are reported and do not stop the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if workers <= 0 {
				workers = config.Get().Workers
			}

			files, err := expandPatterns(args)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no files match %v", args)
			}

			results := runBatch(files, workers)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}
			printBatch(results)
			return nil
		},
	}

	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel decode workers (default REPDEC_WORKERS)")
	return cmd
}

// expandPatterns resolves globs to a sorted, de-duplicated file list.
func expandPatterns(patterns []string) ([]string, error) {
	seen := map[string]bool{}
	var files []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	sort.Strings(files)
	return files, nil
}

// runBatch decodes files with at most workers decodes in flight. Decoding
// is a pure function, so the only shared state is the results slice.
func runBatch(files []string, workers int) []batchResult {
	log := logging.New("batch")
	results := make([]batchResult, len(files))

	swg := sizedwaitgroup.New(workers)
	for i, file := range files {
		swg.Add()
		go func(i int, file string) {
			defer swg.Done()
			results[i] = decodeForBatch(file, log)
		}(i, file)
	}
	swg.Wait()
	return results
}

func decodeForBatch(file string, log *logging.Logger) batchResult {
	buf, err := os.ReadFile(file)
	if err != nil {
		return batchResult{File: file, Error: err.Error()}
	}

	start := time.Now()
	res, err := replay.Decode(buf)
	if err != nil {
		logging.DecodeEvent(log, file, "", 0, start, err)
		return batchResult{File: file, Error: err.Error()}
	}
	logging.DecodeEvent(log, file, res.Stats.Reliability, res.Stats.CommandCount, start, nil)

	out := batchResult{
		File:        file,
		MapName:     res.Header.MapName,
		Commands:    res.Stats.CommandCount,
		Reliability: res.Stats.Reliability,
	}
	for _, s := range res.Summaries {
		if s.APM > out.TopAPM {
			out.TopAPM = s.APM
		}
	}
	return out
}

func printBatch(results []batchResult) {
	w := render.Stdout()
	ok, failed := 0, 0

	for _, r := range results {
		if r.Error != "" {
			failed++
			w.Println("✗ %s: %s", r.File, r.Error)
			continue
		}
		ok++
		w.Println("%s %s  map=%q commands=%d apm=%.0f",
			render.ReliabilityIcon(r.Reliability), r.File, r.MapName, r.Commands, r.TopAPM)
	}

	w.Line()
	w.Println("%d decoded, %d failed", ok, failed)
}
