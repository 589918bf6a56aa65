package tokenizer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/go-linetok/internal/model"
	gosp "github.com/vikesh-raj/go-sentencepiece-encoder/sentencepiece"
)

// ErrEmptyPath is returned when a tokenizer is constructed with an empty model path.
var ErrEmptyPath = errors.New("tokenizer model path must not be empty")

// wordStart is the SentencePiece word-start marker (U+2581).
const wordStart = "▁"

// SentencePieceTokenizer implements Tokenizer using a pure-Go UNIGRAM SentencePiece model.
// Pieces are returned as surface strings: the word-start marker is removed
// and pieces that consisted only of the marker are dropped.
type SentencePieceTokenizer struct {
	proc gosp.Sentencepiece
}

// NewSentencePieceTokenizer loads a SentencePiece model from the given path.
func NewSentencePieceTokenizer(modelPath string) (*SentencePieceTokenizer, error) {
	if modelPath == "" {
		return nil, ErrEmptyPath
	}

	if _, err := model.InspectSentencePiece(modelPath); err != nil {
		return nil, fmt.Errorf("incompatible sentencepiece model %q: %w", modelPath, err)
	}

	proc, err := gosp.NewSentencepieceFromFile(modelPath, false)
	if err != nil {
		return nil, fmt.Errorf("load sentencepiece model %q: %w", modelPath, err)
	}

	return &SentencePieceTokenizer{proc: proc}, nil
}

// Tokenize implements Tokenizer.
func (t *SentencePieceTokenizer) Tokenize(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	pieces := t.proc.Tokenize(text)

	result := make([]string, 0, len(pieces))
	for _, p := range pieces {
		surface := strings.ReplaceAll(p.Text, wordStart, "")
		if surface == "" {
			continue
		}
		result = append(result, surface)
	}

	return result, nil
}
