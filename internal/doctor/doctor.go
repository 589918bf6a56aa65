// Package doctor provides environment preflight checks for linetok.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/example/go-linetok/internal/config"
	"github.com/example/go-linetok/internal/model"
)

// PassMark, WarnMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	WarnMark = "⚠"
	FailMark = "✗"
)

// Config holds the settings and injectable probes for each doctor check.
type Config struct {
	Backend     string
	ModelPath   string
	ModelSHA256 string
	// LoadModel loads the tokenizer and returns a short sample of its output.
	// Nil skips the load check.
	LoadModel func() (string, error)

	InputDir string
	// ListInputs returns the input files a run would process. Nil skips the count.
	ListInputs func() ([]string, error)

	OutputPath string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
	warnings []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// Warnings returns checks that passed with a caveat.
func (r *Result) Warnings() []string { return append([]string(nil), r.warnings...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(w io.Writer, check string, err error) {
	r.failures = append(r.failures, fmt.Sprintf("%s: %v", check, err))
	fmt.Fprintf(w, "%s %s: %v\n", FailMark, check, err)
}

func (r *Result) warn(w io.Writer, check, msg string) {
	r.warnings = append(r.warnings, fmt.Sprintf("%s: %s", check, msg))
	fmt.Fprintf(w, "%s %s: %s\n", WarnMark, check, msg)
}

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark, WarnMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- backend ----------------------------------------------------------
	backend, err := config.NormalizeBackend(cfg.Backend)
	if err != nil {
		res.fail(w, "backend", err)
	} else {
		fmt.Fprintf(w, "%s backend: %s\n", PassMark, backend)
	}

	// ---- model file -------------------------------------------------------
	modelOK := true
	if err := model.CheckFile(cfg.ModelPath); err != nil {
		modelOK = false
		res.fail(w, "model file", err)
	} else {
		fmt.Fprintf(w, "%s model file: %s\n", PassMark, cfg.ModelPath)
	}

	if modelOK {
		switch {
		case cfg.ModelSHA256 == "":
			fmt.Fprintf(w, "%s model checksum: not pinned\n", PassMark)
		default:
			if err := model.VerifySHA256(cfg.ModelPath, cfg.ModelSHA256); err != nil {
				modelOK = false
				res.fail(w, "model checksum", err)
			} else {
				fmt.Fprintf(w, "%s model checksum: ok\n", PassMark)
			}
		}
	}

	// ---- model load -------------------------------------------------------
	if cfg.LoadModel != nil {
		switch {
		case !modelOK || backend == "":
			fmt.Fprintf(w, "%s model load: skipped\n", WarnMark)
		default:
			sample, err := cfg.LoadModel()
			if err != nil {
				res.fail(w, "model load", err)
			} else {
				fmt.Fprintf(w, "%s model load: %s\n", PassMark, sample)
			}
		}
	}

	// ---- input directory --------------------------------------------------
	if fi, err := os.Stat(cfg.InputDir); err != nil {
		res.warn(w, "input dir", fmt.Sprintf("%s not readable (%v); a run would find no input files", cfg.InputDir, err))
	} else if !fi.IsDir() {
		res.fail(w, "input dir", fmt.Errorf("%s is not a directory", cfg.InputDir))
	} else if cfg.ListInputs != nil {
		files, err := cfg.ListInputs()
		switch {
		case err != nil:
			res.fail(w, "input dir", err)
		case len(files) == 0:
			res.warn(w, "input dir", fmt.Sprintf("no input files found in %s", cfg.InputDir))
		default:
			fmt.Fprintf(w, "%s input dir: %s (%d files)\n", PassMark, cfg.InputDir, len(files))
		}
	} else {
		fmt.Fprintf(w, "%s input dir: %s\n", PassMark, cfg.InputDir)
	}

	// ---- output location --------------------------------------------------
	if err := checkWritableDir(filepath.Dir(cfg.OutputPath)); err != nil {
		res.fail(w, "output dir", err)
	} else {
		fmt.Fprintf(w, "%s output path: %s\n", PassMark, cfg.OutputPath)
	}

	return res
}

// checkWritableDir creates and removes a probe file in dir.
func checkWritableDir(dir string) error {
	f, err := os.CreateTemp(dir, ".linetok-doctor-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}

	name := f.Name()
	_ = f.Close()

	return os.Remove(name)
}
