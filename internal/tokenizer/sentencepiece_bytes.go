package tokenizer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// NewSentencePieceTokenizerFromBytes builds a SentencePieceTokenizer from an
// in-memory model protobuf. The encoder only loads from disk, so the bytes
// are staged in a private temp directory that is removed before returning.
func NewSentencePieceTokenizerFromBytes(data []byte) (*SentencePieceTokenizer, error) {
	if len(data) == 0 {
		return nil, errors.New("sentencepiece model data must not be empty")
	}

	dir, err := os.MkdirTemp("", "linetok-spm-")
	if err != nil {
		return nil, fmt.Errorf("stage sentencepiece model: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tokenizer.model")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("stage sentencepiece model: %w", err)
	}

	return NewSentencePieceTokenizer(path)
}
