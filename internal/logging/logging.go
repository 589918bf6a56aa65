// Package logging silences the standard library logger before any
// dependency's package init can write to it.
//
// Some tokenizer libraries announce their cache directory through the
// global log package while initializing. Importing this package for its
// side effect from main discards that output; setting an slog default
// handler later routes the global logger into structured logs again.
//
// The package must import nothing beyond io and log so that it is
// initialized ahead of those libraries.
package logging

import (
	"io"
	"log"
)

func init() {
	log.SetOutput(io.Discard)
}
