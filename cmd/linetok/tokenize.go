package main

import (
	"io"
	"strings"

	"github.com/example/go-linetok/internal/pipeline"
	"github.com/spf13/cobra"
)

func newTokenizeCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "tokenize",
		Short: "Tokenize text from --text or stdin and print one token line per input line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			tok, err := loadTokenizer(cfg)
			if err != nil {
				return err
			}

			opts, err := streamOptions(cfg)
			if err != nil {
				return err
			}

			_, err = pipeline.TokenizeStream(cmd.Context(), tok, tokenizeInput(cmd, input), cmd.OutOrStdout(), opts)
			return err
		},
	}

	cmd.Flags().StringVar(&input, "text", "", "Text to tokenize (if empty, read from stdin)")

	return cmd
}

func tokenizeInput(cmd *cobra.Command, text string) io.Reader {
	if cmd.Flags().Changed("text") {
		return strings.NewReader(text)
	}
	return cmd.InOrStdin()
}
