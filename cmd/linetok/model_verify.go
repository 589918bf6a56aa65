package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/example/go-linetok/internal/config"
	"github.com/example/go-linetok/internal/model"
	"github.com/spf13/cobra"
)

const defaultVerifySample = "Hello, world! Dr. Smith arrived."

func newModelVerifyCmd() *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the configured model file and run a smoke tokenization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return verifyModel(cfg, sample, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&sample, "sample", defaultVerifySample, "Text tokenized as the smoke test")

	return cmd
}

func verifyModel(cfg config.Config, sample string, w io.Writer) error {
	modelPath := cfg.Paths.ModelPath
	if _, err := fmt.Fprintf(w, "verifying %s model: %s\n", cfg.Tokenizer.Backend, modelPath); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	// 1. Check file exists.
	if err := model.CheckFile(modelPath); err != nil {
		return fmt.Errorf("model file not found: %w", err)
	}

	if _, err := fmt.Fprintf(w, "  ✓ file exists\n"); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	// 2. Checksum.
	sum, err := model.FileSHA256(modelPath)
	if err != nil {
		return err
	}

	if err := model.VerifySHA256(modelPath, cfg.Tokenizer.ModelSHA256); err != nil {
		return fmt.Errorf("checksum verification failed: %w", err)
	}

	status := "not pinned"
	if cfg.Tokenizer.ModelSHA256 != "" {
		status = "matches pin"
	}

	if _, err := fmt.Fprintf(w, "  ✓ sha256 %s (%s)\n", sum, status); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	// 3. Structure.
	if cfg.Tokenizer.Backend == config.BackendSentencePiece {
		info, err := model.InspectSentencePiece(modelPath)
		if err != nil {
			return fmt.Errorf("model inspection failed: %w", err)
		}

		if _, err := fmt.Fprintf(w, "  ✓ %d pieces (%d normal, %d control, %d user-defined)\n",
			info.Pieces, info.Normal, info.Control, info.UserDefined); err != nil {
			return fmt.Errorf("write status: %w", err)
		}
	}

	// 4. Smoke load and tokenize.
	tok, err := loadTokenizer(cfg)
	if err != nil {
		return fmt.Errorf("smoke load failed: %w", err)
	}

	tokens, err := tok.Tokenize(sample)
	if err != nil {
		return fmt.Errorf("smoke tokenization failed: %w", err)
	}

	if _, err := fmt.Fprintf(w, "  ✓ tokens: %s\n", strings.Join(tokens, " ")); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	if _, err := fmt.Fprintln(w, "model verification passed"); err != nil {
		return fmt.Errorf("write status: %w", err)
	}

	return nil
}

func newModelChecksumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checksum [path]",
		Short: "Print the SHA-256 of a model file (default: the configured model)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			path := cfg.Paths.ModelPath
			if len(args) == 1 {
				path = args[0]
			}

			sum, err := model.FileSHA256(path)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sum, path)
			return err
		},
	}
}
