package tokenizer

import (
	"fmt"
	"strings"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
)

// HFTokenizer wraps a HuggingFace-compatible tokenizer.json.
// Special tokens are never added, so a line maps to its content tokens only.
type HFTokenizer struct {
	inner *tokenizer.Tokenizer
}

// NewHFTokenizer loads a tokenizer.json file using the pure-Go tokenizer.
// The library panics on structurally incomplete documents; those panics are
// returned as errors.
func NewHFTokenizer(path string) (tok *HFTokenizer, err error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	defer func() {
		if r := recover(); r != nil {
			tok, err = nil, fmt.Errorf("load tokenizer.json %q: %v", path, r)
		}
	}()

	tk, err := pretrained.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer.json %q: %w", path, err)
	}
	return &HFTokenizer{inner: tk}, nil
}

// Tokenize implements Tokenizer.
func (t *HFTokenizer) Tokenize(text string) (tokens []string, err error) {
	if t == nil || t.inner == nil {
		return nil, fmt.Errorf("tokenizer is not initialized")
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	defer func() {
		if r := recover(); r != nil {
			tokens, err = nil, fmt.Errorf("encode line: %v", r)
		}
	}()

	encoding, err := t.inner.EncodeSingle(text, false)
	if err != nil {
		return nil, fmt.Errorf("encode line: %w", err)
	}
	tokens = make([]string, len(encoding.Tokens))
	copy(tokens, encoding.Tokens)
	return tokens, nil
}
