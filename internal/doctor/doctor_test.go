package doctor_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-linetok/internal/doctor"
	"github.com/example/go-linetok/internal/model"
	"github.com/example/go-linetok/internal/testutil"
)

var errLoad = errors.New("corrupt model")

func passingConfig(t *testing.T) doctor.Config {
	t.Helper()

	in := testutil.WriteInputs(t, map[string]string{"a.txt": "Hello\n"})

	return doctor.Config{
		Backend:    "punkt",
		ModelPath:  testutil.WritePunktModel(t),
		LoadModel:  func() (string, error) { return "Hello , world !", nil },
		InputDir:   in,
		ListInputs: func() ([]string, error) { return []string{filepath.Join(in, "a.txt")}, nil },
		OutputPath: filepath.Join(t.TempDir(), "out.txt"),
	}
}

func hasFailureContaining(failures []string, substr string) bool {
	for _, f := range failures {
		if strings.Contains(f, substr) {
			return true
		}
	}

	return false
}

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(passingConfig(t), &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	for _, want := range []string{"backend: punkt", "model file", "model checksum: not pinned", "Hello , world !", "(1 files)", "output path"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	if strings.Contains(out.String(), doctor.FailMark) {
		t.Errorf("output contains fail mark:\n%s", out.String())
	}
}

// ---------------------------------------------------------------------------
// backend and model
// ---------------------------------------------------------------------------

func TestRun_InvalidBackendFails(t *testing.T) {
	cfg := passingConfig(t)
	cfg.Backend = "opennlp"

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "backend") {
		t.Errorf("expected backend failure, got: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "model load: skipped") {
		t.Errorf("model load should be skipped:\n%s", out.String())
	}
}

func TestRun_MissingModelFails(t *testing.T) {
	cfg := passingConfig(t)
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.json")
	cfg.LoadModel = func() (string, error) {
		t.Error("LoadModel must not run when the model file is missing")
		return "", nil
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "model file") {
		t.Errorf("expected model file failure, got: %v", result.Failures())
	}
}

func TestRun_ChecksumPinned(t *testing.T) {
	cfg := passingConfig(t)

	sum, err := model.FileSHA256(cfg.ModelPath)
	if err != nil {
		t.Fatalf("FileSHA256: %v", err)
	}

	cfg.ModelSHA256 = sum

	var out strings.Builder
	if result := doctor.Run(cfg, &out); result.Failed() {
		t.Fatalf("unexpected failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "model checksum: ok") {
		t.Errorf("output:\n%s", out.String())
	}

	cfg.ModelSHA256 = strings.Repeat("0", 64)

	out.Reset()
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "model checksum") {
		t.Errorf("expected checksum failure, got: %v", result.Failures())
	}
}

func TestRun_ModelLoadFails(t *testing.T) {
	cfg := passingConfig(t)
	cfg.LoadModel = func() (string, error) { return "", errLoad }

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "corrupt model") {
		t.Errorf("expected load failure, got: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// input and output locations
// ---------------------------------------------------------------------------

func TestRun_MissingInputDirWarns(t *testing.T) {
	cfg := passingConfig(t)
	cfg.InputDir = filepath.Join(t.TempDir(), "entrada")

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("missing input dir should not fail: %v", result.Failures())
	}

	if len(result.Warnings()) != 1 {
		t.Errorf("Warnings = %v; want one", result.Warnings())
	}
}

func TestRun_EmptyInputDirWarns(t *testing.T) {
	cfg := passingConfig(t)
	cfg.ListInputs = func() ([]string, error) { return nil, nil }

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("unexpected failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "no input files found") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestRun_InputDirIsFileFails(t *testing.T) {
	cfg := passingConfig(t)
	cfg.InputDir = cfg.ModelPath

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "input dir") {
		t.Errorf("expected input dir failure, got: %v", result.Failures())
	}
}

func TestRun_OutputDirMissingFails(t *testing.T) {
	cfg := passingConfig(t)
	cfg.OutputPath = filepath.Join(t.TempDir(), "no", "such", "out.txt")

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "output dir") {
		t.Errorf("expected output dir failure, got: %v", result.Failures())
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	r.AddFailure("model verify: boom")

	if !r.Failed() {
		t.Fatal("expected Failed after AddFailure")
	}

	got := r.Failures()
	got[0] = "mutated"

	if r.Failures()[0] != "model verify: boom" {
		t.Error("Failures must return a copy")
	}
}
