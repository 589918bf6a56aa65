// Package model fetches, checksums and inspects tokenizer model artifacts
// before they are handed to a tokenizer backend.
package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

// ErrChecksumMismatch is returned when a model file does not hash to its pinned value.
var ErrChecksumMismatch = errors.New("model checksum mismatch")

var shaHexPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// IsSHA256Hex reports whether v is a lower-case hex SHA-256 digest.
func IsSHA256Hex(v string) bool {
	return shaHexPattern.MatchString(v)
}

// FileSHA256 returns the hex SHA-256 digest of the file at path.
func FileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("read file for checksum: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifySHA256 checks path against expected. An empty expected value skips
// the check.
func VerifySHA256(path, expected string) error {
	expected = strings.ToLower(strings.TrimSpace(expected))
	if expected == "" {
		return nil
	}
	if !IsSHA256Hex(expected) {
		return fmt.Errorf("pinned checksum %q is not a sha256 hex digest", expected)
	}

	actual, err := FileSHA256(path)
	if err != nil {
		return err
	}
	if actual != expected {
		return fmt.Errorf("%w: %s has sha256=%s, want %s", ErrChecksumMismatch, path, actual, expected)
	}
	return nil
}

// CheckFile returns an error unless path names an existing regular file.
func CheckFile(path string) error {
	if path == "" {
		return errors.New("model path must not be empty")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat model file: %w", err)
	}
	if fi.IsDir() {
		return fmt.Errorf("expected file at %s, found directory", path)
	}
	return nil
}
