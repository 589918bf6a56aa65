package bench_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/example/go-linetok/internal/bench"
)

type fieldsTokenizer struct{ fail bool }

func (f fieldsTokenizer) Tokenize(s string) ([]string, error) {
	if f.fail {
		return nil, errors.New("boom")
	}
	return strings.Fields(s), nil
}

// ---------------------------------------------------------------------------
// Aggregation
// ---------------------------------------------------------------------------

func TestStats_MinMaxMean(t *testing.T) {
	durations := []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
	}
	s := bench.ComputeStats(durations)

	if s.Min != 100*time.Millisecond {
		t.Errorf("want min=100ms, got %v", s.Min)
	}

	if s.Max != 300*time.Millisecond {
		t.Errorf("want max=300ms, got %v", s.Max)
	}

	if s.Mean != 200*time.Millisecond {
		t.Errorf("want mean=200ms, got %v", s.Mean)
	}
}

func TestStats_Empty(t *testing.T) {
	if s := bench.ComputeStats(nil); s != (bench.Stats{}) {
		t.Errorf("empty stats = %+v", s)
	}
}

func TestCalcRate(t *testing.T) {
	if got := bench.CalcRate(500, 250*time.Millisecond); got < 1999 || got > 2001 {
		t.Errorf("want 2000 lines/s, got %.2f", got)
	}

	if got := bench.CalcRate(10, 0); got != 0 {
		t.Errorf("zero duration: want 0, got %.2f", got)
	}
}

// ---------------------------------------------------------------------------
// Runs
// ---------------------------------------------------------------------------

func TestRun_CountsLinesAndTokens(t *testing.T) {
	lines := []string{"a b c", "", "d e"}

	results, err := bench.Run(context.Background(), fieldsTokenizer{}, lines, 3)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}

	for i, r := range results {
		if r.Lines != 3 || r.Tokens != 5 {
			t.Errorf("run %d: lines=%d tokens=%d; want 3/5", i, r.Lines, r.Tokens)
		}

		if r.Cold != (i == 0) {
			t.Errorf("run %d: cold=%v", i, r.Cold)
		}
	}
}

func TestRun_PropagatesTokenizerError(t *testing.T) {
	if _, err := bench.Run(context.Background(), fieldsTokenizer{fail: true}, []string{"x"}, 1); err == nil {
		t.Fatal("expected error")
	}
}

// ---------------------------------------------------------------------------
// Throughput gate
// ---------------------------------------------------------------------------

func TestCheckMinRate(t *testing.T) {
	tests := []struct {
		mean, minimum float64
		wantErr       bool
	}{
		{100, 0, false},
		{100, 50, false},
		{100, 100, false},
		{10, 50, true},
	}

	for _, tt := range tests {
		err := bench.CheckMinRate(tt.mean, tt.minimum)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckMinRate(%v, %v) err = %v; wantErr %v", tt.mean, tt.minimum, err, tt.wantErr)
		}
	}
}

func TestMeanLinesPerSec(t *testing.T) {
	runs := []bench.RunResult{{LinesPerSec: 100}, {LinesPerSec: 300}}
	if got := bench.MeanLinesPerSec(runs); got != 200 {
		t.Errorf("want 200, got %v", got)
	}

	if got := bench.MeanLinesPerSec(nil); got != 0 {
		t.Errorf("want 0 for no runs, got %v", got)
	}
}

// ---------------------------------------------------------------------------
// Formatters
// ---------------------------------------------------------------------------

func sampleRuns() ([]bench.RunResult, bench.Stats) {
	runs := []bench.RunResult{
		{Index: 0, Cold: true, Duration: 120 * time.Millisecond, Lines: 10, Tokens: 40, LinesPerSec: 83.3},
		{Index: 1, Duration: 80 * time.Millisecond, Lines: 10, Tokens: 40, LinesPerSec: 125},
	}
	return runs, bench.ComputeStats([]time.Duration{runs[0].Duration, runs[1].Duration})
}

func TestFormatTable(t *testing.T) {
	runs, stats := sampleRuns()

	var buf bytes.Buffer
	bench.FormatTable(runs, stats, &buf)

	out := buf.String()
	for _, want := range []string{"Run", "Lines/s", "yes", "(min)", "(mean)", "(max)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	runs, stats := sampleRuns()

	var buf bytes.Buffer
	if err := bench.FormatJSON(runs, stats, &buf); err != nil {
		t.Fatalf("FormatJSON: %v", err)
	}

	var report struct {
		Runs []struct {
			Cold   bool `json:"cold"`
			Tokens int  `json:"tokens"`
		} `json:"runs"`
		Stats struct {
			MeanMS float64 `json:"mean_ms"`
		} `json:"stats"`
	}
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(report.Runs) != 2 || !report.Runs[0].Cold || report.Runs[1].Tokens != 40 {
		t.Errorf("unexpected runs: %+v", report.Runs)
	}

	if report.Stats.MeanMS != 100 {
		t.Errorf("mean_ms = %v; want 100", report.Stats.MeanMS)
	}
}
