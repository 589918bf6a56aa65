package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Tokenizer TokenizerConfig `mapstructure:"tokenizer"`
	Pipeline  PipelineConfig  `mapstructure:"pipeline"`
	Output    OutputConfig    `mapstructure:"output"`
	LogLevel  string          `mapstructure:"log_level"`
}

type PathsConfig struct {
	ModelPath  string `mapstructure:"model_path"`
	InputDir   string `mapstructure:"input_dir"`
	OutputPath string `mapstructure:"output_path"`
}

type TokenizerConfig struct {
	Backend     string `mapstructure:"backend"`
	ModelSHA256 string `mapstructure:"model_sha256"`
	Normalize   string `mapstructure:"normalize"`
}

type PipelineConfig struct {
	Suffix          string `mapstructure:"suffix"`
	SortFiles       bool   `mapstructure:"sort_files"`
	Workers         int    `mapstructure:"workers"`
	SkipFailedFiles bool   `mapstructure:"skip_failed_files"`
	MaxLineBytes    int    `mapstructure:"max_line_bytes"`
}

type OutputConfig struct {
	LineEnding string `mapstructure:"line_ending"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// DefaultConfig mirrors the paths the batch tool historically used as constants.
func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			ModelPath:  "src/main/resources/models/tokenizer-model.bin",
			InputDir:   "src/main/resources/entrada",
			OutputPath: "salida_tokens.txt",
		},
		Tokenizer: TokenizerConfig{
			Backend:     BackendPunkt,
			ModelSHA256: "",
			Normalize:   NormalizeNone,
		},
		Pipeline: PipelineConfig{
			Suffix:          ".txt",
			SortFiles:       true,
			Workers:         1,
			SkipFailedFiles: false,
			MaxLineBytes:    16 << 20,
		},
		Output: OutputConfig{
			LineEnding: LineEndingLF,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-model-path", defaults.Paths.ModelPath, "Path to the pretrained tokenizer model")
	fs.String("paths-input-dir", defaults.Paths.InputDir, "Directory scanned for input text files")
	fs.String("paths-output-path", defaults.Paths.OutputPath, "Combined output file (overwritten)")
	fs.String("backend", defaults.Tokenizer.Backend, "Tokenizer backend (punkt|sentencepiece|hf)")
	fs.String("tokenizer-model-sha256", defaults.Tokenizer.ModelSHA256, "Expected SHA-256 of the model file (optional)")
	fs.String("tokenizer-normalize", defaults.Tokenizer.Normalize, "Unicode normalization applied to each line (none|nfc|nfkc)")
	fs.String("pipeline-suffix", defaults.Pipeline.Suffix, "File name suffix selecting input files")
	fs.Bool("pipeline-sort-files", defaults.Pipeline.SortFiles, "Process input files in file name order")
	fs.Int("workers", defaults.Pipeline.Workers, "Number of files tokenized concurrently")
	fs.Bool("skip-failed-files", defaults.Pipeline.SkipFailedFiles, "Log and skip input files that fail instead of aborting")
	fs.Int("pipeline-max-line-bytes", defaults.Pipeline.MaxLineBytes, "Maximum accepted input line length in bytes")
	fs.String("output-line-ending", defaults.Output.LineEnding, "Output line terminator (lf|crlf)")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("LINETOK")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("linetok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

// Validate canonicalizes enumerated settings in place and rejects values the
// pipeline cannot run with.
func (c *Config) Validate() error {
	backend, err := NormalizeBackend(c.Tokenizer.Backend)
	if err != nil {
		return err
	}
	c.Tokenizer.Backend = backend

	form, err := NormalizeForm(c.Tokenizer.Normalize)
	if err != nil {
		return err
	}
	c.Tokenizer.Normalize = form

	ending, err := NormalizeLineEnding(c.Output.LineEnding)
	if err != nil {
		return err
	}
	c.Output.LineEnding = ending

	c.Tokenizer.ModelSHA256 = strings.ToLower(strings.TrimSpace(c.Tokenizer.ModelSHA256))

	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("invalid workers %d (must be >= 1)", c.Pipeline.Workers)
	}
	if c.Pipeline.MaxLineBytes < 1 {
		return fmt.Errorf("invalid max line bytes %d (must be >= 1)", c.Pipeline.MaxLineBytes)
	}
	if c.Pipeline.Suffix == "" {
		return errors.New("pipeline suffix must not be empty")
	}

	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.model_path", c.Paths.ModelPath)
	v.SetDefault("paths.input_dir", c.Paths.InputDir)
	v.SetDefault("paths.output_path", c.Paths.OutputPath)
	v.SetDefault("tokenizer.backend", c.Tokenizer.Backend)
	v.SetDefault("tokenizer.model_sha256", c.Tokenizer.ModelSHA256)
	v.SetDefault("tokenizer.normalize", c.Tokenizer.Normalize)
	v.SetDefault("pipeline.suffix", c.Pipeline.Suffix)
	v.SetDefault("pipeline.sort_files", c.Pipeline.SortFiles)
	v.SetDefault("pipeline.workers", c.Pipeline.Workers)
	v.SetDefault("pipeline.skip_failed_files", c.Pipeline.SkipFailedFiles)
	v.SetDefault("pipeline.max_line_bytes", c.Pipeline.MaxLineBytes)
	v.SetDefault("output.line_ending", c.Output.LineEnding)
	v.SetDefault("log_level", c.LogLevel)
}

// flagKeys maps config keys to the flag names registered by RegisterFlags.
var flagKeys = []struct{ key, flag string }{
	{"paths.model_path", "paths-model-path"},
	{"paths.input_dir", "paths-input-dir"},
	{"paths.output_path", "paths-output-path"},
	{"tokenizer.backend", "backend"},
	{"tokenizer.model_sha256", "tokenizer-model-sha256"},
	{"tokenizer.normalize", "tokenizer-normalize"},
	{"pipeline.suffix", "pipeline-suffix"},
	{"pipeline.sort_files", "pipeline-sort-files"},
	{"pipeline.workers", "workers"},
	{"pipeline.skip_failed_files", "skip-failed-files"},
	{"pipeline.max_line_bytes", "pipeline-max-line-bytes"},
	{"output.line_ending", "output-line-ending"},
	{"log_level", "log-level"},
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind flag %q: %w", fk.flag, err)
		}
	}
	return nil
}
