package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/go-linetok/internal/config"
	"github.com/example/go-linetok/internal/doctor"
	"github.com/example/go-linetok/internal/pipeline"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run local model and filesystem checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			result := doctor.Run(doctorConfig(cfg), cmd.OutOrStdout())

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(cmd.ErrOrStderr(), "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "doctor checks passed")

			return nil
		},
	}

	return cmd
}

func doctorConfig(cfg config.Config) doctor.Config {
	return doctor.Config{
		Backend:     cfg.Tokenizer.Backend,
		ModelPath:   cfg.Paths.ModelPath,
		ModelSHA256: cfg.Tokenizer.ModelSHA256,
		LoadModel: func() (string, error) {
			tok, err := loadTokenizer(cfg)
			if err != nil {
				return "", err
			}
			tokens, err := tok.Tokenize(defaultVerifySample)
			if err != nil {
				return "", err
			}
			return strings.Join(tokens, " "), nil
		},
		InputDir: cfg.Paths.InputDir,
		ListInputs: func() ([]string, error) {
			return pipeline.ListInputs(cfg.Paths.InputDir, cfg.Pipeline.Suffix, cfg.Pipeline.SortFiles)
		},
		OutputPath: cfg.Paths.OutputPath,
	}
}
