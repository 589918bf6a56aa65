// Package tokenizer loads pretrained tokenizer models and exposes them behind
// a single capability: splitting a line of text into surface tokens.
package tokenizer

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/go-linetok/internal/config"
	"github.com/example/go-linetok/internal/model"
)

// ErrModelLoad wraps every failure to produce a usable Tokenizer.
var ErrModelLoad = errors.New("tokenizer model load failed")

// Tokenizer splits text into an ordered sequence of tokens.
// Implementations are read-only after construction and safe for concurrent use.
type Tokenizer interface {
	// Tokenize returns the tokens of text. Empty text yields an empty slice.
	Tokenize(text string) ([]string, error)
}

// LoadOptions selects the backend and model artifact for Load.
type LoadOptions struct {
	Backend   string
	ModelPath string
	// SHA256 pins the model file contents when non-empty.
	SHA256 string
}

// Load checks the model artifact and constructs the backend named by
// opts.Backend. All failures wrap ErrModelLoad.
func Load(opts LoadOptions) (Tokenizer, error) {
	backend, err := config.NormalizeBackend(opts.Backend)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}

	if err := model.CheckFile(opts.ModelPath); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}

	if err := model.VerifySHA256(opts.ModelPath, opts.SHA256); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}

	var tok Tokenizer
	switch backend {
	case config.BackendPunkt:
		tok, err = NewPunktTokenizer(opts.ModelPath)
	case config.BackendSentencePiece:
		tok, err = NewSentencePieceTokenizer(opts.ModelPath)
	case config.BackendHF:
		tok, err = NewHFTokenizer(opts.ModelPath)
	default:
		err = fmt.Errorf("unsupported backend %q", backend)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrModelLoad, err)
	}

	slog.Debug("tokenizer model loaded", "backend", backend, "path", opts.ModelPath)

	return tok, nil
}
