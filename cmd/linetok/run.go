package main

import (
	"context"
	"io"

	"github.com/example/go-linetok/internal/config"
	"github.com/example/go-linetok/internal/pipeline"
	"github.com/example/go-linetok/internal/text"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Tokenize every input file into the combined output file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

// runBatch loads the model before touching the input directory, so a bad
// model fails the run without creating the output file.
func runBatch(ctx context.Context, cfg config.Config, progress io.Writer) error {
	tok, err := loadTokenizer(cfg)
	if err != nil {
		return err
	}

	streamOpts, err := streamOptions(cfg)
	if err != nil {
		return err
	}

	_, err = pipeline.Run(ctx, tok, pipeline.Options{
		InputDir:        cfg.Paths.InputDir,
		OutputPath:      cfg.Paths.OutputPath,
		Suffix:          cfg.Pipeline.Suffix,
		SortFiles:       cfg.Pipeline.SortFiles,
		Workers:         cfg.Pipeline.Workers,
		SkipFailedFiles: cfg.Pipeline.SkipFailedFiles,
		Stream:          streamOpts,
		Progress:        progress,
	})
	return err
}

func streamOptions(cfg config.Config) (pipeline.StreamOptions, error) {
	norm, err := text.NewNormalizer(cfg.Tokenizer.Normalize)
	if err != nil {
		return pipeline.StreamOptions{}, err
	}
	return pipeline.StreamOptions{
		Normalize:    norm,
		Terminator:   cfg.Output.Terminator(),
		MaxLineBytes: cfg.Pipeline.MaxLineBytes,
	}, nil
}
