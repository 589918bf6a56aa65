package logging

import (
	"io"
	"log"
	"testing"
)

func TestInitDiscardsStandardLogger(t *testing.T) {
	if log.Writer() != io.Discard {
		t.Fatalf("log.Writer() = %T; want io.Discard", log.Writer())
	}
}
