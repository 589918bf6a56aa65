package config

import (
	"fmt"
	"strings"
)

const (
	BackendPunkt         = "punkt"
	BackendSentencePiece = "sentencepiece"
	BackendHF            = "hf"
)

const (
	NormalizeNone = "none"
	NormalizeNFC  = "nfc"
	NormalizeNFKC = "nfkc"
)

const (
	LineEndingLF   = "lf"
	LineEndingCRLF = "crlf"
)

func NormalizeBackend(raw string) (string, error) {
	backend := strings.ToLower(strings.TrimSpace(raw))
	if backend == "" {
		backend = BackendPunkt
	}
	switch backend {
	case BackendPunkt, BackendSentencePiece, BackendHF:
		return backend, nil
	case "sp", "spm":
		return BackendSentencePiece, nil
	case "huggingface":
		return BackendHF, nil
	default:
		return "", fmt.Errorf(
			"invalid backend %q (expected %s|%s|%s)",
			raw,
			BackendPunkt,
			BackendSentencePiece,
			BackendHF,
		)
	}
}

func NormalizeForm(raw string) (string, error) {
	form := strings.ToLower(strings.TrimSpace(raw))
	switch form {
	case "", NormalizeNone:
		return NormalizeNone, nil
	case NormalizeNFC, NormalizeNFKC:
		return form, nil
	default:
		return "", fmt.Errorf("invalid normalization %q (expected %s|%s|%s)", raw, NormalizeNone, NormalizeNFC, NormalizeNFKC)
	}
}

func NormalizeLineEnding(raw string) (string, error) {
	ending := strings.ToLower(strings.TrimSpace(raw))
	switch ending {
	case "", LineEndingLF:
		return LineEndingLF, nil
	case LineEndingCRLF:
		return LineEndingCRLF, nil
	default:
		return "", fmt.Errorf("invalid line ending %q (expected %s|%s)", raw, LineEndingLF, LineEndingCRLF)
	}
}

// Terminator returns the byte sequence written after every output line.
func (o OutputConfig) Terminator() string {
	if o.LineEnding == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}
