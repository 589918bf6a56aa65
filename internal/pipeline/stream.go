package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/go-linetok/internal/text"
	"github.com/example/go-linetok/internal/tokenizer"
)

// DefaultMaxLineBytes bounds a single input line when StreamOptions leaves it unset.
const DefaultMaxLineBytes = 16 << 20

// StreamOptions controls how lines are read, normalized and terminated.
type StreamOptions struct {
	// Normalize is applied to each line before tokenization. Nil means identity.
	Normalize text.Normalizer
	// Terminator follows every output line. Empty means "\n".
	Terminator string
	// MaxLineBytes rejects longer lines with ErrFileRead. Zero means DefaultMaxLineBytes.
	MaxLineBytes int
}

func (o StreamOptions) withDefaults() StreamOptions {
	if o.Normalize == nil {
		o.Normalize = text.Identity
	}
	if o.Terminator == "" {
		o.Terminator = "\n"
	}
	if o.MaxLineBytes <= 0 {
		o.MaxLineBytes = DefaultMaxLineBytes
	}
	return o
}

// TokenizeStream reads r line by line, tokenizes each line independently and
// writes the tokens joined by single spaces to w, one output line per input
// line. It returns the number of lines written.
func TokenizeStream(ctx context.Context, tok tokenizer.Tokenizer, r io.Reader, w io.Writer, opts StreamOptions) (int, error) {
	opts = opts.withDefaults()
	sc := text.NewLineScanner(r, opts.MaxLineBytes)

	lines := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return lines, err
		}

		tokens, err := tok.Tokenize(opts.Normalize(sc.Text()))
		if err != nil {
			return lines, fmt.Errorf("%w %d: %w", ErrTokenize, lines+1, err)
		}

		if _, err := io.WriteString(w, strings.Join(tokens, " ")); err != nil {
			return lines, fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
		if _, err := io.WriteString(w, opts.Terminator); err != nil {
			return lines, fmt.Errorf("%w: %w", ErrOutputWrite, err)
		}
		lines++
	}

	if err := sc.Err(); err != nil {
		return lines, fmt.Errorf("%w after line %d: %w", ErrFileRead, lines, err)
	}

	return lines, nil
}

// tokenizeFile streams the file at path through TokenizeStream.
func tokenizeFile(ctx context.Context, tok tokenizer.Tokenizer, path string, w io.Writer, opts StreamOptions) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrFileRead, err)
	}
	defer f.Close()

	n, err := TokenizeStream(ctx, tok, f, w, opts)
	if err != nil {
		return n, fmt.Errorf("%s: %w", path, err)
	}
	return n, nil
}
