package pipeline

import (
	"errors"
	"strings"
)

// fieldsTokenizer splits on whitespace and fails on lines containing failOn.
type fieldsTokenizer struct {
	failOn string
}

var errBoom = errors.New("boom")

func (f fieldsTokenizer) Tokenize(s string) ([]string, error) {
	if f.failOn != "" && strings.Contains(s, f.failOn) {
		return nil, errBoom
	}
	return strings.Fields(s), nil
}

// failingWriter rejects every write.
type failingWriter struct{}

var errDiskFull = errors.New("disk full")

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }
