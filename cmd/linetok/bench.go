package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/go-linetok/internal/bench"
	"github.com/example/go-linetok/internal/config"
	"github.com/example/go-linetok/internal/pipeline"
	"github.com/example/go-linetok/internal/text"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		input   string
		runs    int
		format  string
		minRate float64
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark tokenization throughput over the input files or --text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			lines, err := benchLines(cfg, input)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return fmt.Errorf("no input lines to benchmark in %s", cfg.Paths.InputDir)
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			results, err := bench.Run(cmd.Context(), tok, lines, runs)
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				if err := bench.FormatJSON(results, stats, cmd.OutOrStdout()); err != nil {
					return err
				}
			default:
				bench.FormatTable(results, stats, cmd.OutOrStdout())
			}

			return bench.CheckMinRate(bench.MeanLinesPerSec(results), minRate)
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to tokenize on each run (default: lines of the input files)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of passes")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().Float64Var(&minRate, "min-lines-per-sec", 0, "Exit non-zero if mean throughput falls below this value (0 = disabled)")

	return cmd
}

// benchLines returns the normalized lines of input, or of every input file
// when input is empty.
func benchLines(cfg config.Config, input string) ([]string, error) {
	norm, err := text.NewNormalizer(cfg.Tokenizer.Normalize)
	if err != nil {
		return nil, err
	}

	var lines []string
	collect := func(sc *bufio.Scanner) error {
		for sc.Scan() {
			lines = append(lines, norm(sc.Text()))
		}
		return sc.Err()
	}

	if input != "" {
		if err := collect(text.NewLineScanner(strings.NewReader(input), cfg.Pipeline.MaxLineBytes)); err != nil {
			return nil, err
		}
		return lines, nil
	}

	files, err := pipeline.ListInputs(cfg.Paths.InputDir, cfg.Pipeline.Suffix, cfg.Pipeline.SortFiles)
	if err != nil {
		return nil, err
	}

	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", pipeline.ErrFileRead, err)
		}
		err = collect(text.NewLineScanner(f, cfg.Pipeline.MaxLineBytes))
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", pipeline.ErrFileRead, path, err)
		}
	}

	return lines, nil
}
