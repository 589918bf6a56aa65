// Package testutil provides shared fixtures and skip helpers for tests.
//
// Fixture helpers write small, self-contained model artifacts and input
// directories into t.TempDir(). Skip helpers call t.Skip with a clear reason
// when an optional real model artifact is absent, so tests stay runnable in
// partial environments without failing noisily.
//
// Typical usage:
//
//	func TestRun(t *testing.T) {
//	    model := testutil.WritePunktModel(t)
//	    dir := testutil.WriteInputs(t, map[string]string{"a.txt": "Hello, world!\n"})
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// PunktModelJSON is a minimal English Punkt model: a handful of abbreviation
// types and empty collocation, sentence-starter and orthographic tables.
const PunktModelJSON = `{
  "AbbrevTypes": {"dr": 1, "mr": 1, "mrs": 1, "st": 1, "etc": 1, "e.g": 1, "i.e": 1},
  "Collocations": {},
  "SentStarters": {},
  "OrthoContext": {}
}`

// WritePunktModel writes PunktModelJSON to a temp file and returns its path.
func WritePunktModel(tb testing.TB) string {
	tb.Helper()

	return WriteFile(tb, tb.TempDir(), "punkt-en.json", PunktModelJSON)
}

// WriteFile writes content to dir/name and returns the full path.
func WriteFile(tb testing.TB, dir, name, content string) string {
	tb.Helper()

	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", p, err)
	}

	return p
}

// WriteInputs creates a temp directory holding files (name -> content) and
// returns its path.
func WriteInputs(tb testing.TB, files map[string]string) string {
	tb.Helper()

	dir := tb.TempDir()
	for name, content := range files {
		WriteFile(tb, dir, name, content)
	}

	return dir
}

// ReadLines returns the "\n"-separated lines of the file at path, without a
// trailing empty element for a final newline.
func ReadLines(tb testing.TB, path string) []string {
	tb.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read %s: %v", path, err)
	}

	s := string(data)
	if s == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// RequireModelFile returns the model path named by the environment variable
// env, or the first existing candidate found by walking up from the current
// directory to models/<name>. It skips the test when neither exists.
func RequireModelFile(tb testing.TB, env, name string) string {
	tb.Helper()

	if p := os.Getenv(env); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}

		tb.Skipf("model not found at %s=%q", env, p)
	}

	dir, err := filepath.Abs(".")
	if err != nil {
		tb.Fatalf("abs path: %v", err)
	}

	for {
		candidate := filepath.Join(dir, "models", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	tb.Skipf("models/%s not found; set %s to run this test", name, env)

	return ""
}
