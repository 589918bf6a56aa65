package text

import (
	"bufio"
	"bytes"
	"io"
)

// ScanLines is a bufio.SplitFunc that accepts "\n", "\r\n" and a lone "\r"
// as line terminators. The terminator is stripped, a final unterminated
// line is still returned, and a trailing terminator does not yield an
// extra empty line.
func ScanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// data[i] == '\r': need one more byte to tell "\r" from "\r\n".
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

// NewLineScanner returns a scanner over r using ScanLines. Lines longer
// than maxLineBytes make Scan stop with bufio.ErrTooLong.
func NewLineScanner(r io.Reader, maxLineBytes int) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	initial := 64 * 1024
	if maxLineBytes < initial {
		initial = maxLineBytes
	}
	// The scanner needs room for the terminator lookahead byte.
	sc.Buffer(make([]byte, 0, initial+1), maxLineBytes+1)
	sc.Split(ScanLines)
	return sc
}
