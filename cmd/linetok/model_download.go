package main

import (
	"fmt"
	"os"

	"github.com/example/go-linetok/internal/model"
	"github.com/spf13/cobra"
)

func newModelDownloadCmd() *cobra.Command {
	var opts model.DownloadOptions

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download a tokenizer model by URL or from a Hugging Face repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if opts.OutPath == "" {
				opts.OutPath = cfg.Paths.ModelPath
			}
			if opts.SHA256 == "" {
				opts.SHA256 = cfg.Tokenizer.ModelSHA256
			}
			if opts.HFToken == "" {
				opts.HFToken = os.Getenv("HF_TOKEN")
			}
			opts.Stdout = cmd.OutOrStdout()

			if _, err := model.Download(cmd.Context(), opts); err != nil {
				return fmt.Errorf("model download failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.URL, "url", "", "Direct URL of the model artifact")
	cmd.Flags().StringVar(&opts.Repo, "hf-repo", "", "Hugging Face model repository")
	cmd.Flags().StringVar(&opts.Revision, "revision", "main", "Repository revision")
	cmd.Flags().StringVar(&opts.Filename, "file", "", "File within the repository (e.g. tokenizer.json)")
	cmd.Flags().StringVar(&opts.Endpoint, "hf-endpoint", model.DefaultHFEndpoint, "Hugging Face endpoint")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "Destination path (default: configured model path)")
	cmd.Flags().StringVar(&opts.SHA256, "sha256", "", "Expected SHA-256 (default: configured pin, then server metadata)")
	cmd.Flags().StringVar(&opts.HFToken, "hf-token", "", "Hugging Face token (falls back to HF_TOKEN env var)")

	return cmd
}
