package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-linetok/internal/config"
	"github.com/example/go-linetok/internal/tokenizer"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "linetok",
		Short: "Tokenize a directory of text files line by line",
		Long: "linetok reads every matching file in the input directory, tokenizes each line\n" +
			"with a pretrained model and writes the space-joined tokens to one output file.\n" +
			"Without a subcommand it behaves like `linetok run`.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if err := loaded.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			return runBatch(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newTokenizeCmd())
	cmd.AddCommand(newModelCmd())
	cmd.AddCommand(newBenchCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newDoctorCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Paths.ModelPath == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

func loadTokenizer(cfg config.Config) (tokenizer.Tokenizer, error) {
	return tokenizer.Load(tokenizer.LoadOptions{
		Backend:   cfg.Tokenizer.Backend,
		ModelPath: cfg.Paths.ModelPath,
		SHA256:    cfg.Tokenizer.ModelSHA256,
	})
}
