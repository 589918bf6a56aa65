package pipeline

import "errors"

var (
	// ErrFileRead wraps failures to open or read an input file.
	ErrFileRead = errors.New("read input file")
	// ErrTokenize wraps failures returned by the tokenizer for a line.
	ErrTokenize = errors.New("tokenize line")
	// ErrOutputWrite wraps failures to create, write, flush or close the output artifact.
	ErrOutputWrite = errors.New("write output")
)

// isolatable reports whether err is confined to a single input file.
func isolatable(err error) bool {
	return errors.Is(err, ErrFileRead) || errors.Is(err, ErrTokenize)
}
