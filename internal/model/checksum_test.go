package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// sha256("hello")
const helloSHA = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	return p
}

func TestFileSHA256(t *testing.T) {
	p := writeFile(t, "x.bin", "hello")

	got, err := FileSHA256(p)
	if err != nil {
		t.Fatalf("FileSHA256 error: %v", err)
	}

	if got != helloSHA {
		t.Fatalf("FileSHA256 = %q; want %q", got, helloSHA)
	}

	if !IsSHA256Hex(got) {
		t.Fatal("expected valid sha256 hex")
	}
}

func TestFileSHA256_Missing(t *testing.T) {
	if _, err := FileSHA256(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestVerifySHA256(t *testing.T) {
	p := writeFile(t, "x.bin", "hello")

	tests := []struct {
		name     string
		expected string
		wantErr  bool
		mismatch bool
	}{
		{"empty pin skips", "", false, false},
		{"match", helloSHA, false, false},
		{"match upper case", "2CF24DBA5FB0A30E26E83B2AC5B9E29E1B161E5C1FA7425E73043362938B9824", false, false},
		{"mismatch", "0000000000000000000000000000000000000000000000000000000000000000", true, true},
		{"not hex", "abc", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifySHA256(p, tt.expected)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("VerifySHA256 error: %v", err)
				}

				return
			}

			if err == nil {
				t.Fatal("expected error")
			}

			if got := errors.Is(err, ErrChecksumMismatch); got != tt.mismatch {
				t.Errorf("errors.Is(ErrChecksumMismatch) = %v; want %v (err=%v)", got, tt.mismatch, err)
			}
		})
	}
}

func TestCheckFile(t *testing.T) {
	p := writeFile(t, "m.json", "{}")

	if err := CheckFile(p); err != nil {
		t.Fatalf("CheckFile(file) error: %v", err)
	}

	if err := CheckFile(""); err == nil {
		t.Error("CheckFile(\"\") should fail")
	}

	if err := CheckFile(t.TempDir()); err == nil {
		t.Error("CheckFile(dir) should fail")
	}

	if err := CheckFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("CheckFile(missing) should fail")
	}
}
