// Package bench provides benchmarking primitives for the linetok bench command.
package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/example/go-linetok/internal/tokenizer"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and volume of a single pass over the corpus.
type RunResult struct {
	Index       int
	Cold        bool // true for the first run
	Duration    time.Duration
	Lines       int
	Tokens      int
	LinesPerSec float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// CalcRate returns count per second. Returns 0 for a non-positive duration.
func CalcRate(count int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(count) / d.Seconds()
}

// Run tokenizes every line runs times and reports each pass.
func Run(ctx context.Context, tok tokenizer.Tokenizer, lines []string, runs int) ([]RunResult, error) {
	results := make([]RunResult, 0, runs)

	for i := 0; i < runs; i++ {
		start := time.Now()
		tokens := 0
		for n, line := range lines {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			toks, err := tok.Tokenize(line)
			if err != nil {
				return nil, fmt.Errorf("run %d line %d: %w", i+1, n+1, err)
			}
			tokens += len(toks)
		}
		dur := time.Since(start)

		results = append(results, RunResult{
			Index:       i,
			Cold:        i == 0,
			Duration:    dur,
			Lines:       len(lines),
			Tokens:      tokens,
			LinesPerSec: CalcRate(len(lines), dur),
		})
	}

	return results, nil
}

// ---------------------------------------------------------------------------
// Throughput gate
// ---------------------------------------------------------------------------

// MeanLinesPerSec averages LinesPerSec over runs.
func MeanLinesPerSec(runs []RunResult) float64 {
	if len(runs) == 0 {
		return 0
	}
	var total float64
	for _, r := range runs {
		total += r.LinesPerSec
	}
	return total / float64(len(runs))
}

// CheckMinRate returns an error if mean < minimum.
// A minimum of 0 disables the gate.
func CheckMinRate(mean, minimum float64) error {
	if minimum <= 0 {
		return nil
	}
	if mean < minimum {
		return fmt.Errorf("mean throughput %.1f lines/s below minimum %.1f", mean, minimum)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %8s  %9s  %12s\n", "Run", "Cold", "MS", "Lines", "Tokens", "Lines/s")
	fmt.Fprintln(sb, strings.Repeat("-", 58))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.1f  %8d  %9d  %12.1f\n",
			r.Index+1,
			cold,
			ms(r.Duration),
			r.Lines,
			r.Tokens,
			r.LinesPerSec,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 58))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  (min)\n", "", "", ms(stats.Min))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  (mean)\n", "", "", ms(stats.Mean))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.1f  (max)\n", "", "", ms(stats.Max))

	fmt.Fprint(w, sb.String())
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index       int     `json:"index"`
	Cold        bool    `json:"cold"`
	DurationMS  float64 `json:"duration_ms"`
	Lines       int     `json:"lines"`
	Tokens      int     `json:"tokens"`
	LinesPerSec float64 `json:"lines_per_sec"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) error {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  ms(stats.Min),
			MeanMS: ms(stats.Mean),
			MaxMS:  ms(stats.Max),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:       r.Index,
			Cold:        r.Cold,
			DurationMS:  ms(r.Duration),
			Lines:       r.Lines,
			Tokens:      r.Tokens,
			LinesPerSec: r.LinesPerSec,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jr)
}
