package text

import (
	"fmt"

	"github.com/example/go-linetok/internal/config"
	"golang.org/x/text/unicode/norm"
)

// Normalizer rewrites a line before it reaches the tokenizer.
type Normalizer func(string) string

// Identity returns s unchanged.
func Identity(s string) string { return s }

// NewNormalizer returns the Normalizer for a config.Normalize* form name.
func NewNormalizer(form string) (Normalizer, error) {
	canonical, err := config.NormalizeForm(form)
	if err != nil {
		return nil, err
	}

	switch canonical {
	case config.NormalizeNone:
		return Identity, nil
	case config.NormalizeNFC:
		return norm.NFC.String, nil
	case config.NormalizeNFKC:
		return norm.NFKC.String, nil
	default:
		return nil, fmt.Errorf("unsupported normalization %q", form)
	}
}
